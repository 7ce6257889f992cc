package drag

import (
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Region identifies the part of a window a pointer event targets
type Region string

const (
	RegionTitleBar Region = "titlebar"
	RegionControls Region = "controls"
	RegionContent  Region = "content"
)

// State represents the tracker phase
type State int

const (
	StateIdle State = iota
	StateDragging
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Viewport reports the current desktop dimensions
type Viewport interface {
	Bounds() types.Size
}

// Sink receives clamped positions, normally the store's UpdatePosition
type Sink func(windowID string, pos types.Point) bool

// Gesture is a pointer-down on a window
type Gesture struct {
	WindowID string
	Target   Region
	Pointer  types.Point
	Origin   types.Point // Window position when the gesture started
}

// Session is the record of an in-progress drag
type Session struct {
	WindowID      string
	PointerOrigin types.Point
	ElementOrigin types.Point
}

// Options configures drag handles and clamping
type Options struct {
	Handle   Region
	Excluded []Region
	Margin   int // Minimum part of the window that stays reachable
}

// DefaultOptions drags by the title bar and never from the window controls
func DefaultOptions() Options {
	return Options{
		Handle:   RegionTitleBar,
		Excluded: []Region{RegionControls},
		Margin:   100,
	}
}

// Tracker runs at most one drag session at a time
type Tracker struct {
	viewport Viewport
	sink     Sink
	opts     Options

	state   State
	session Session
	pending *types.Point // Latest pointer not yet applied
	current types.Point  // Last applied position
}

// NewTracker creates an idle tracker
func NewTracker(viewport Viewport, sink Sink, opts Options) *Tracker {
	return &Tracker{
		viewport: viewport,
		sink:     sink,
		opts:     opts,
	}
}

// State returns the current phase
func (t *Tracker) State() State {
	return t.state
}

// Session returns the active session
func (t *Tracker) Session() (Session, bool) {
	if t.state != StateDragging {
		return Session{}, false
	}
	return t.session, true
}

// Begin starts a session unless the target is excluded or is not the handle.
// A gesture that arrives mid-drag replaces the old session.
func (t *Tracker) Begin(g Gesture) bool {
	if !t.draggable(g.Target) {
		return false
	}

	t.state = StateDragging
	t.session = Session{
		WindowID:      g.WindowID,
		PointerOrigin: g.Pointer,
		ElementOrigin: g.Origin,
	}
	t.pending = nil
	t.current = g.Origin
	return true
}

// Move records the latest pointer; it is applied on the next Flush
func (t *Tracker) Move(p types.Point) {
	if t.state != StateDragging {
		return
	}
	t.pending = &p
}

// Flush applies the latest pending pointer and emits the clamped position
func (t *Tracker) Flush() (types.Point, bool) {
	if t.state != StateDragging || t.pending == nil {
		return types.Point{}, false
	}

	pointer := *t.pending
	t.pending = nil

	delta := pointer.Sub(t.session.PointerOrigin)
	t.current = t.clamp(t.session.ElementOrigin.Add(delta))
	if t.sink != nil {
		t.sink(t.session.WindowID, t.current)
	}
	return t.current, true
}

// End applies any pending move and returns to idle
func (t *Tracker) End() (types.Point, bool) {
	if t.state != StateDragging {
		return types.Point{}, false
	}
	pos, moved := t.Flush()
	t.reset()
	return pos, moved
}

// Cancel drops the session for windowID without emitting anything
func (t *Tracker) Cancel(windowID string) bool {
	if t.state != StateDragging || t.session.WindowID != windowID {
		return false
	}
	t.reset()
	return true
}

// Position returns the live position of the window being dragged
func (t *Tracker) Position(windowID string) (types.Point, bool) {
	if t.state != StateDragging || t.session.WindowID != windowID {
		return types.Point{}, false
	}
	return t.current, true
}

// clamp limits p so that the window stays reachable in the viewport
func (t *Tracker) clamp(p types.Point) types.Point {
	bounds := t.viewport.Bounds()
	return types.Point{
		X: types.Clamp(p.X, 0, bounds.Width-t.opts.Margin),
		Y: types.Clamp(p.Y, 0, bounds.Height-t.opts.Margin),
	}
}

func (t *Tracker) draggable(target Region) bool {
	for _, ex := range t.opts.Excluded {
		if target == ex {
			return false
		}
	}
	return target == t.opts.Handle
}

func (t *Tracker) reset() {
	t.state = StateIdle
	t.session = Session{}
	t.pending = nil
}
