package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drivers(t *testing.T) map[string]Driver {
	t.Helper()
	lite, err := OpenSQLite(filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { lite.Close() })

	return map[string]Driver{
		"memory": NewMemory(),
		"sqlite": lite,
	}
}

func TestDrivers(t *testing.T) {
	ctx := context.Background()

	for name, d := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := d.Get(ctx, KeyBrightness)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, d.Set(ctx, KeyBrightness, "40"))
			require.NoError(t, d.Set(ctx, KeyBrightness, "65"))
			require.NoError(t, d.Set(ctx, KeyPortfolio, `{"name":"Ada"}`))

			v, err := d.Get(ctx, KeyBrightness)
			require.NoError(t, err)
			assert.Equal(t, "65", v)

			keys, err := d.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{KeyPortfolio, KeyBrightness}, keys)
		})
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "content.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyBrightness, "12"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	v, err := second.Get(ctx, KeyBrightness)
	require.NoError(t, err)
	assert.Equal(t, "12", v)
}

func TestOpen(t *testing.T) {
	d, err := Open(Config{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, d)

	_, err = Open(Config{Driver: "sqlite"})
	assert.Error(t, err)

	_, err = Open(Config{Driver: "redis"})
	assert.Error(t, err)
}

func TestContentBroadcastsSets(t *testing.T) {
	ctx := context.Background()
	c := NewContent(NewMemory(), nil)
	defer c.Close()

	keys, cancel := c.Subscribe()
	defer cancel()

	_, ok, err := c.Get(ctx, KeyPortfolio)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, KeyPortfolio, "{}"))

	select {
	case k := <-keys:
		assert.Equal(t, KeyPortfolio, k)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	v, ok, err := c.Get(ctx, KeyPortfolio)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{}", v)
}

func TestBroadcasterDropsForSlowSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()

	for i := 0; i < subscriberBuffer; i++ {
		assert.Equal(t, 1, b.Publish("k"))
	}
	assert.Equal(t, 0, b.Publish("k"), "full subscriber is skipped, not awaited")

	cancel()
	cancel()
	assert.Len(t, ch, subscriberBuffer)
	assert.Equal(t, 0, b.Publish("k"))

	b.Close()
	late, _ := b.Subscribe()
	_, open := <-late
	assert.False(t, open)
}
