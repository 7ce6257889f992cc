package desktop

import (
	"github.com/GriffinCanCode/webdesk/internal/domain/chrome"
	"github.com/GriffinCanCode/webdesk/internal/domain/drag"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Event is an input to the desktop loop
type Event interface {
	event()
}

// Viewport reports the page size
type Viewport struct {
	Width  int
	Height int
}

// Launch opens (or focuses) an application from the dock
type Launch struct {
	AppID string
}

// PointerDown is a press on a window
type PointerDown struct {
	WindowID string
	Region   drag.Region
	Point    types.Point
}

// PointerMove is a pointer movement anywhere on the page
type PointerMove struct {
	Point types.Point
}

// PointerUp releases the pointer
type PointerUp struct{}

// Control is a click on a title bar control
type Control struct {
	WindowID string
	Action   chrome.Action
}

// Resize sets a window's size
type Resize struct {
	WindowID string
	Size     types.Size
}

// Move sets a window's position without clamping
type Move struct {
	WindowID string
	Point    types.Point
}

// Focus raises a window
type Focus struct {
	WindowID string
}

// CloseWindow removes a window immediately, without a close transition
type CloseWindow struct {
	WindowID string
}

// AppAction routes an interaction to the app inside a window
type AppAction struct {
	WindowID string
	Name     string
	Args     map[string]interface{}
}

// Refresh tells apps that a content key changed
type Refresh struct {
	Key string
}

// Frame advances one animation frame
type Frame struct{}

// Redraw marks the scene stale, typically after an app updated in the background
type Redraw struct{}

func (Viewport) event()    {}
func (Launch) event()      {}
func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event()   {}
func (Control) event()     {}
func (Resize) event()      {}
func (Move) event()        {}
func (Focus) event()       {}
func (CloseWindow) event() {}
func (AppAction) event()   {}
func (Refresh) event()     {}
func (Frame) event()       {}
func (Redraw) event()      {}
