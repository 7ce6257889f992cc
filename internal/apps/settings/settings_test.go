package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

type memStore map[string]string

func (m memStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memStore) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func TestEffective(t *testing.T) {
	tests := []struct {
		in   int
		want float64
	}{
		{0, 15},
		{100, 100},
		{80, 83},
		{-5, 15},
		{250, 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Effective(tt.in), 1e-9, "value %d", tt.in)
	}
}

func TestMountReadsSavedValue(t *testing.T) {
	ctx := context.Background()

	s := New(memStore{}, "screen_brightness")
	require.NoError(t, s.Mount(ctx))
	assert.Equal(t, DefaultBrightness, s.Brightness())

	s = New(memStore{"screen_brightness": "42"}, "screen_brightness")
	require.NoError(t, s.Mount(ctx))
	assert.Equal(t, 42, s.Brightness())

	s = New(memStore{"screen_brightness": "bright"}, "screen_brightness")
	require.NoError(t, s.Mount(ctx))
	assert.Equal(t, DefaultBrightness, s.Brightness())
}

func TestSetWritesOnlyOnSave(t *testing.T) {
	ctx := context.Background()
	store := memStore{}
	s := New(store, "screen_brightness")

	require.NoError(t, s.HandleAction(ctx, registry.Action{Name: "set", Args: map[string]interface{}{"value": float64(130)}}))
	assert.Equal(t, 100, s.Brightness())
	assert.NotContains(t, store, "screen_brightness")

	c := &registry.Container{}
	require.NoError(t, s.Render(ctx, c))
	assert.Equal(t, View{Brightness: 100, Effective: 100, Saved: false}, c.Body)

	require.NoError(t, s.HandleAction(ctx, registry.Action{Name: "save"}))
	assert.Equal(t, "100", store["screen_brightness"])

	assert.Error(t, s.HandleAction(ctx, registry.Action{Name: "set"}))
	assert.Error(t, s.HandleAction(ctx, registry.Action{Name: "dim"}))
}

func TestRefreshFiltersKey(t *testing.T) {
	ctx := context.Background()
	store := memStore{}
	s := New(store, "screen_brightness")

	store["screen_brightness"] = "10"
	require.NoError(t, s.Refresh(ctx, "portfolio_content"))
	assert.Equal(t, DefaultBrightness, s.Brightness())
	require.NoError(t, s.Refresh(ctx, "screen_brightness"))
	assert.Equal(t, 10, s.Brightness())
}
