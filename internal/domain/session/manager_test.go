package session

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

type nullApp struct{}

func (nullApp) Render(context.Context, *registry.Container) error { return nil }

type nullFactory struct{}

func (nullFactory) New(registry.Kind) (registry.App, error) { return nullApp{}, nil }

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) SessionsActive(n int) {
	m.Called(n)
}

func newManager(t *testing.T, max int) *Manager {
	t.Helper()
	reg := registry.NewManager()
	require.NoError(t, registry.NewSeeder(reg, zap.NewNop()).Seed(""))

	cfg := desktop.DefaultConfig()
	cfg.FrameRate = 1
	m := NewManager(Config{MaxSessions: max, Desktop: cfg}, desktop.Deps{
		Registry: reg,
		Apps:     nullFactory{},
	}, zap.NewNop())
	t.Cleanup(m.CloseAll)
	return m
}

func TestCreateAndGet(t *testing.T) {
	m := newManager(t, 0)
	ctx := context.Background()

	desk, err := m.Create(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(desk.ID(), "sess_"))

	got, err := m.Get(desk.ID())
	require.NoError(t, err)
	assert.Same(t, desk, got)

	applied, err := got.Call(ctx, desktop.Launch{AppID: "terminal"})
	require.NoError(t, err)
	assert.True(t, applied)

	infos := m.List()
	require.Len(t, infos, 1)
	assert.Equal(t, 1, infos[0].Windows.TotalWindows)
	assert.Equal(t, 1, m.Stats()["open_windows"])
}

func TestGetUnknown(t *testing.T) {
	m := newManager(t, 0)

	_, err := m.Get("sess_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCloseIsIdempotent(t *testing.T) {
	m := newManager(t, 0)

	desk, err := m.Create(context.Background())
	require.NoError(t, err)

	assert.True(t, m.Close(desk.ID()))
	assert.False(t, m.Close(desk.ID()))

	select {
	case <-desk.Done():
	default:
		t.Fatal("desktop loop should have stopped")
	}
	_, err = m.Get(desk.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestSessionLimit(t *testing.T) {
	m := newManager(t, 2)
	ctx := context.Background()

	first, err := m.Create(ctx)
	require.NoError(t, err)
	_, err = m.Create(ctx)
	require.NoError(t, err)

	_, err = m.Create(ctx)
	assert.ErrorIs(t, err, ErrTooManySessions)

	m.Close(first.ID())
	_, err = m.Create(ctx)
	assert.NoError(t, err)
}

func TestSessionOutlivesCreateContext(t *testing.T) {
	m := newManager(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	desk, err := m.Create(ctx)
	require.NoError(t, err)
	cancel()

	applied, err := desk.Call(context.Background(), desktop.Launch{AppID: "files"})
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestListOrderAndCloseAll(t *testing.T) {
	m := newManager(t, 0)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		desk, err := m.Create(ctx)
		require.NoError(t, err)
		ids = append(ids, desk.ID())
	}

	infos := m.List()
	require.Len(t, infos, 3)
	for i, info := range infos {
		assert.Equal(t, ids[i], info.ID)
	}

	m.CloseAll()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, uint64(3), m.Stats()["total_created"])
}

func TestMetricsReportCount(t *testing.T) {
	m := newManager(t, 0)
	metrics := &mockMetrics{}
	metrics.On("SessionsActive", 1).Return().Once()
	metrics.On("SessionsActive", 0).Return()
	m.SetMetrics(metrics)

	desk, err := m.Create(context.Background())
	require.NoError(t, err)
	m.Close(desk.ID())

	metrics.AssertExpectations(t)
}
