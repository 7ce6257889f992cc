package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

type fakeFetcher struct {
	pages map[string]Preview
	block chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (Preview, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return Preview{}, ctx.Err()
		}
	}
	p, ok := f.pages[url]
	if !ok {
		return Preview{}, errors.New("unreachable")
	}
	return p, nil
}

func view(t *testing.T, b *Browser) View {
	t.Helper()
	c := &registry.Container{}
	require.NoError(t, b.Render(context.Background(), c))
	return c.Body.(View)
}

func navigate(t *testing.T, b *Browser, u string) {
	t.Helper()
	require.NoError(t, b.HandleAction(context.Background(), registry.Action{Name: "navigate", Args: map[string]interface{}{"url": u}}))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"example.org", "https://example.org", false},
		{" http://example.org/a?b=1 ", "http://example.org/a?b=1", false},
		{"ftp://example.org", "", true},
		{"", "", true},
		{"https://", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHistory(t *testing.T) {
	b := New(nil)
	defer b.Close()

	v := view(t, b)
	assert.Equal(t, HomePage, v.URL)
	assert.True(t, v.Secure)
	assert.False(t, v.CanBack)
	assert.Nil(t, v.Preview)

	navigate(t, b, "a.example")
	navigate(t, b, "http://b.example")
	assert.False(t, view(t, b).Secure)

	ctx := context.Background()
	require.NoError(t, b.HandleAction(ctx, registry.Action{Name: "back"}))
	assert.Equal(t, "https://a.example", b.URL())
	require.NoError(t, b.HandleAction(ctx, registry.Action{Name: "back"}))
	require.NoError(t, b.HandleAction(ctx, registry.Action{Name: "back"}))
	assert.Equal(t, HomePage, b.URL())

	require.NoError(t, b.HandleAction(ctx, registry.Action{Name: "forward"}))
	navigate(t, b, "c.example")
	v = view(t, b)
	assert.Equal(t, "https://c.example", v.URL)
	assert.False(t, v.CanForward)
	assert.True(t, v.CanBack)

	assert.Error(t, b.HandleAction(ctx, registry.Action{Name: "navigate", Args: map[string]interface{}{"url": "javascript://x"}}))
	assert.Error(t, b.HandleAction(ctx, registry.Action{Name: "print"}))
	assert.Equal(t, "https://c.example", b.URL())
}

func TestPreviewUpdatesAsynchronously(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string]Preview{HomePage: {URL: HomePage, Status: 200, Title: "Example Domain"}},
		block: make(chan struct{}),
	}
	b := New(f)
	defer b.Close()

	updated := make(chan struct{}, 4)
	b.OnUpdate(func() { updated <- struct{}{} })
	require.NoError(t, b.Mount(context.Background()))

	v := view(t, b)
	require.NotNil(t, v.Preview)
	assert.True(t, v.Preview.Loading)

	close(f.block)
	select {
	case <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("no update after fetch")
	}

	v = view(t, b)
	require.NotNil(t, v.Preview.Page)
	assert.Equal(t, "Example Domain", v.Preview.Page.Title)
	assert.False(t, v.Preview.Loading)

	navigate(t, b, "missing.example")
	select {
	case <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("no update after failed fetch")
	}
	assert.Equal(t, "unreachable", view(t, b).Preview.Error)
}

func TestSupersededFetchIsDropped(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string]Preview{HomePage: {Title: "home"}, "https://next.example": {Title: "next"}},
		block: make(chan struct{}),
	}
	b := New(f)
	defer b.Close()

	updated := make(chan struct{}, 4)
	b.OnUpdate(func() { updated <- struct{}{} })
	require.NoError(t, b.Mount(context.Background()))
	navigate(t, b, "next.example")
	close(f.block)

	select {
	case <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("no update")
	}
	assert.Equal(t, "next", view(t, b).Preview.Page.Title)
	select {
	case <-updated:
		t.Fatal("superseded fetch reported an update")
	case <-time.After(50 * time.Millisecond):
	}
}
