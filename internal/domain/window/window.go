package window

import (
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Window is one live window owned by the Store
type Window struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Kind       registry.Kind `json:"kind"`
	Minimized  bool          `json:"minimized"`
	Maximized  bool          `json:"maximized"`
	Position   types.Point   `json:"position"`
	Size       types.Size    `json:"size"`
	ZIndex     int           `json:"z_index"`
	Generation uint64        `json:"generation"` // Distinguishes a reopened window from a closed one
	CreatedAt  time.Time     `json:"created_at"`
}

// Rect returns the window's normal (non-maximized) geometry
func (w Window) Rect() types.Rect {
	return types.RectOf(w.Position, w.Size)
}

// Op names a store mutation
type Op string

const (
	OpOpen     Op = "open"
	OpRestore  Op = "restore"
	OpClose    Op = "close"
	OpMinimize Op = "minimize"
	OpMaximize Op = "maximize"
	OpFocus    Op = "focus"
	OpMove     Op = "move"
	OpResize   Op = "resize"
)

// Change describes an applied mutation
type Change struct {
	Op     Op
	Window Window
}

// Stats contains store statistics
type Stats struct {
	TotalWindows     int     `json:"total_windows"`
	VisibleWindows   int     `json:"visible_windows"`
	MinimizedWindows int     `json:"minimized_windows"`
	MaximizedWindows int     `json:"maximized_windows"`
	FocusedWindowID  *string `json:"focused_window_id,omitempty"`
	NextZIndex       int     `json:"next_z_index"`
}

// Options configures window creation
type Options struct {
	FallbackSize  types.Size
	CascadeOrigin int
	CascadeStep   int
}

// DefaultOptions returns the stock cascade and fallback size
func DefaultOptions() Options {
	return Options{
		FallbackSize:  types.Size{Width: 800, Height: 600},
		CascadeOrigin: 50,
		CascadeStep:   30,
	}
}
