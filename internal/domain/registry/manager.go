package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
)

var (
	// ErrUnknownKind is returned for a kind outside the known set
	ErrUnknownKind = errors.New("unknown application kind")
	// ErrDuplicateApp is returned when an id is registered twice
	ErrDuplicateApp = errors.New("application already registered")
	// ErrInvalidDescriptor is returned for descriptors missing required fields
	ErrInvalidDescriptor = errors.New("invalid application descriptor")
)

// Manager holds the ordered set of application descriptors
type Manager struct {
	mu    sync.RWMutex
	order []string               // Protected by mu
	descs map[string]*Descriptor // Protected by mu
}

// NewManager creates an empty registry
func NewManager() *Manager {
	return &Manager{
		descs: make(map[string]*Descriptor),
	}
}

// Register adds a descriptor. Registration order is dock order.
func (m *Manager) Register(desc Descriptor) error {
	if err := utils.ValidateID(desc.ID, "app_id", true); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if desc.Name == "" {
		return fmt.Errorf("%w: %s has no name", ErrInvalidDescriptor, desc.ID)
	}
	if !desc.Kind.Valid() {
		return fmt.Errorf("%w: %q for %s", ErrUnknownKind, desc.Kind, desc.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.descs[desc.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateApp, desc.ID)
	}
	d := desc
	m.descs[desc.ID] = &d
	m.order = append(m.order, desc.ID)
	return nil
}

// Get retrieves a descriptor by id
func (m *Manager) Get(id string) (Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.descs[id]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// List returns all descriptors in registration order
func (m *Manager) List() []Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Descriptor, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.descs[id])
	}
	return out
}

// Len returns the number of registered descriptors
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Stats returns registry statistics
func (m *Manager) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kinds := make(map[Kind]int)
	for _, d := range m.descs {
		kinds[d.Kind]++
	}
	return map[string]interface{}{
		"total_apps": len(m.order),
		"kinds":      kinds,
	}
}
