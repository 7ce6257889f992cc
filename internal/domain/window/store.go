package window

import (
	"sort"
	"sync"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Store owns the open windows of one desktop session
type Store struct {
	mu         sync.RWMutex
	windows    map[string]*Window // Protected by mu
	order      []string           // Insertion order, protected by mu
	nextZ      int                // Protected by mu
	generation uint64             // Protected by mu
	opts       Options
	now        func() time.Time

	listenersMu sync.RWMutex
	listeners   []func(Change)
}

// NewStore creates an empty store
func NewStore(opts Options) *Store {
	if opts.FallbackSize.IsZero() {
		opts.FallbackSize = DefaultOptions().FallbackSize
	}
	return &Store{
		windows: make(map[string]*Window),
		nextZ:   1,
		opts:    opts,
		now:     time.Now,
	}
}

// OnChange registers a listener invoked after every applied mutation.
// Listeners run outside the store lock and may read the store.
func (s *Store) OnChange(fn func(Change)) {
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenersMu.Unlock()
}

// Open creates a window for desc, or focuses the existing one.
// An existing minimized window is restored; a maximized one stays maximized.
func (s *Store) Open(desc registry.Descriptor) (Window, bool) {
	s.mu.Lock()
	if existing, ok := s.windows[desc.ID]; ok {
		existing.ZIndex = s.allocateZ()
		changes := []Change{{Op: OpFocus, Window: *existing}}
		if existing.Minimized {
			existing.Minimized = false
			changes = append(changes, Change{Op: OpRestore, Window: *existing})
		}
		w := *existing
		s.mu.Unlock()
		s.notify(changes...)
		return w, false
	}

	size := desc.DefaultSize
	if size.IsZero() {
		size = s.opts.FallbackSize
	}
	offset := s.opts.CascadeOrigin + len(s.order)*s.opts.CascadeStep
	s.generation++

	w := &Window{
		ID:         desc.ID,
		Title:      desc.Name,
		Kind:       desc.Kind,
		Position:   types.Point{X: offset, Y: offset},
		Size:       size,
		ZIndex:     s.allocateZ(),
		Generation: s.generation,
		CreatedAt:  s.now(),
	}
	s.windows[w.ID] = w
	s.order = append(s.order, w.ID)
	created := *w
	s.mu.Unlock()

	s.notify(Change{Op: OpOpen, Window: created})
	return created, true
}

// Close removes a window. Closing an absent id is a no-op.
func (s *Store) Close(id string) bool {
	s.mu.Lock()
	w, ok := s.windows[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.windows, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	closed := *w
	s.mu.Unlock()

	s.notify(Change{Op: OpClose, Window: closed})
	return true
}

// Minimize toggles the minimized flag
func (s *Store) Minimize(id string) bool {
	return s.mutate(id, OpMinimize, func(w *Window) {
		w.Minimized = !w.Minimized
	})
}

// Maximize toggles the maximized flag
func (s *Store) Maximize(id string) bool {
	return s.mutate(id, OpMaximize, func(w *Window) {
		w.Maximized = !w.Maximized
	})
}

// Focus raises a window above every other window. Relative order of the
// rest is untouched.
func (s *Store) Focus(id string) bool {
	return s.mutate(id, OpFocus, func(w *Window) {
		w.ZIndex = s.allocateZ()
	})
}

// UpdatePosition overwrites the position without bounds checks
func (s *Store) UpdatePosition(id string, pos types.Point) bool {
	return s.mutate(id, OpMove, func(w *Window) {
		w.Position = pos
	})
}

// UpdateSize overwrites the size without bounds checks
func (s *Store) UpdateSize(id string, size types.Size) bool {
	return s.mutate(id, OpResize, func(w *Window) {
		w.Size = size
	})
}

// Get retrieves a window by id
func (s *Store) Get(id string) (Window, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// List returns copies of all windows in opening order
func (s *Store) List() []Window {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Window, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.windows[id])
	}
	return out
}

// Ordered returns copies of all windows sorted back to front
func (s *Store) Ordered() []Window {
	out := s.List()
	sort.Slice(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// Topmost returns the focused window: the highest z among non-minimized windows
func (s *Store) Topmost() (Window, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topmost()
}

// Len returns the number of open windows
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Stats returns store statistics
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{TotalWindows: len(s.order), NextZIndex: s.nextZ}
	for _, w := range s.windows {
		if w.Minimized {
			stats.MinimizedWindows++
		} else {
			stats.VisibleWindows++
		}
		if w.Maximized {
			stats.MaximizedWindows++
		}
	}
	if top, ok := s.topmost(); ok {
		id := top.ID
		stats.FocusedWindowID = &id
	}
	return stats
}

// mutate applies fn to a window under the lock (no-op for unknown ids)
func (s *Store) mutate(id string, op Op, fn func(w *Window)) bool {
	s.mu.Lock()
	w, ok := s.windows[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	fn(w)
	changed := *w
	s.mu.Unlock()

	s.notify(Change{Op: op, Window: changed})
	return true
}

// allocateZ hands out the next z-index (must hold lock)
func (s *Store) allocateZ() int {
	z := s.nextZ
	s.nextZ++
	return z
}

// topmost finds the focused window (must hold lock)
func (s *Store) topmost() (Window, bool) {
	var top *Window
	for _, w := range s.windows {
		if w.Minimized {
			continue
		}
		if top == nil || w.ZIndex > top.ZIndex {
			top = w
		}
	}
	if top == nil {
		return Window{}, false
	}
	return *top, true
}

func (s *Store) notify(changes ...Change) {
	s.listenersMu.RLock()
	listeners := s.listeners
	s.listenersMu.RUnlock()

	for _, c := range changes {
		for _, fn := range listeners {
			fn(c)
		}
	}
}
