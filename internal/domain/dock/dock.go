// Package dock renders the launcher bar over the application registry and
// the open windows of a desktop.
package dock

import (
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
)

// Catalog is the descriptor lookup the dock reads
type Catalog interface {
	Get(id string) (registry.Descriptor, bool)
	List() []registry.Descriptor
}

// Windows is the store surface the dock reads and opens through
type Windows interface {
	List() []window.Window
	Topmost() (window.Window, bool)
	Open(desc registry.Descriptor) (window.Window, bool)
}

// Launcher is one launch control
type Launcher struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Icon    string        `json:"icon"`
	Kind    registry.Kind `json:"kind"`
	Running bool          `json:"running"`
}

// Indicator marks an open window
type Indicator struct {
	ID        string `json:"id"`
	Minimized bool   `json:"minimized"`
	Focused   bool   `json:"focused"`
}

// View is the rendered dock
type View struct {
	Launchers []Launcher  `json:"launchers"`
	Running   []Indicator `json:"running"`
}

// Dock binds a catalog to one desktop's windows
type Dock struct {
	catalog Catalog
	windows Windows
}

// New creates a dock
func New(catalog Catalog, windows Windows) *Dock {
	return &Dock{catalog: catalog, windows: windows}
}

// View renders launchers in registry order and indicators in opening order
func (d *Dock) View() View {
	open := d.windows.List()
	focused, hasFocus := d.windows.Topmost()

	running := make(map[string]bool, len(open))
	view := View{Running: make([]Indicator, 0, len(open))}
	for _, w := range open {
		if _, ok := d.catalog.Get(w.ID); !ok {
			continue
		}
		running[w.ID] = true
		view.Running = append(view.Running, Indicator{
			ID:        w.ID,
			Minimized: w.Minimized,
			Focused:   hasFocus && focused.ID == w.ID,
		})
	}

	descs := d.catalog.List()
	view.Launchers = make([]Launcher, 0, len(descs))
	for _, desc := range descs {
		view.Launchers = append(view.Launchers, Launcher{
			ID:      desc.ID,
			Name:    desc.Name,
			Icon:    desc.Icon,
			Kind:    desc.Kind,
			Running: running[desc.ID],
		})
	}
	return view
}

// Launch opens the application. Reuse of an existing window is left to the store.
func (d *Dock) Launch(id string) (window.Window, bool) {
	desc, ok := d.catalog.Get(id)
	if !ok {
		return window.Window{}, false
	}
	w, _ := d.windows.Open(desc)
	return w, true
}
