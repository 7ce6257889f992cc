package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/shared/id"
)

var (
	// ErrSessionNotFound is returned for unknown session ids
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned when the session limit is reached
	ErrTooManySessions = errors.New("too many sessions")
)

// Metrics receives the live session count
type Metrics interface {
	SessionsActive(n int)
}

// Config configures the manager
type Config struct {
	MaxSessions int // Zero means unlimited
	Desktop     desktop.Config
}

// Info summarizes a live session
type Info struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Windows   window.Stats `json:"windows"`
}

type entry struct {
	desktop *desktop.Desktop
	cancel  context.CancelFunc
}

// Manager owns the desktop loops
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry // Protected by mu
	created  uint64            // Protected by mu

	cfg     Config
	deps    desktop.Deps
	logger  *zap.Logger
	metrics Metrics
	wg      sync.WaitGroup
}

// NewManager creates a session manager. deps are shared by every desktop.
func NewManager(cfg Config, deps desktop.Deps, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Logger == nil {
		deps.Logger = logger
	}
	return &Manager{
		sessions: make(map[string]*entry),
		cfg:      cfg,
		deps:     deps,
		logger:   logger,
	}
}

// SetMetrics installs a session count observer
func (m *Manager) SetMetrics(metrics Metrics) {
	m.mu.Lock()
	m.metrics = metrics
	m.mu.Unlock()
}

// Create starts a new desktop. Its loop outlives ctx and stops on Close.
func (m *Manager) Create(ctx context.Context) (*desktop.Desktop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		return nil, fmt.Errorf("%w: limit %d", ErrTooManySessions, m.cfg.MaxSessions)
	}

	sid := id.NewSessionID().String()
	desk, err := desktop.New(sid, m.cfg.Desktop, m.deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create desktop: %w", err)
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.sessions[sid] = &entry{desktop: desk, cancel: cancel}
	m.created++
	m.report()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := desk.Run(loopCtx); err != nil {
			m.logger.Error("Desktop loop failed", zap.String("session_id", sid), zap.Error(err))
		}
		m.remove(sid, desk)
	}()

	m.logger.Info("Session created", zap.String("session_id", sid))
	return desk, nil
}

// Get retrieves a live desktop
func (m *Manager) Get(sessionID string) (*desktop.Desktop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return e.desktop, nil
}

// Close stops a desktop and waits for its loop to exit. Unknown ids return false.
func (m *Manager) Close(sessionID string) bool {
	m.mu.Lock()
	e, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
		m.report()
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	e.cancel()
	<-e.desktop.Done()
	m.logger.Info("Session closed", zap.String("session_id", sessionID))
	return true
}

// CloseAll stops every desktop
func (m *Manager) CloseAll() {
	m.mu.Lock()
	entries := m.sessions
	m.sessions = make(map[string]*entry)
	m.report()
	m.mu.Unlock()

	for _, e := range entries {
		e.cancel()
	}
	m.wg.Wait()
	m.logger.Info("All sessions closed", zap.Int("count", len(entries)))
}

// List returns live sessions in creation order
func (m *Manager) List() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.sessions))
	for sid, e := range m.sessions {
		out = append(out, Info{
			ID:        sid,
			CreatedAt: e.desktop.CreatedAt(),
			Windows:   e.desktop.Store().Stats(),
		})
	}
	m.mu.RUnlock()

	// ULIDs sort by creation time
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Stats returns manager statistics
func (m *Manager) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	windows := 0
	for _, e := range m.sessions {
		windows += e.desktop.Store().Len()
	}
	return map[string]interface{}{
		"active_sessions": len(m.sessions),
		"max_sessions":    m.cfg.MaxSessions,
		"total_created":   m.created,
		"open_windows":    windows,
	}
}

// remove drops a session whose loop exited on its own
func (m *Manager) remove(sessionID string, desk *desktop.Desktop) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[sessionID]; ok && e.desktop == desk {
		delete(m.sessions, sessionID)
		m.report()
	}
}

// report publishes the session count (must hold lock)
func (m *Manager) report() {
	if m.metrics != nil {
		m.metrics.SessionsActive(len(m.sessions))
	}
}
