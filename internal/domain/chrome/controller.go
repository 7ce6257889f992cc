package chrome

import (
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
)

// Phase is the visual state of a window's chrome
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseClosing    Phase = "closing"
	PhaseMinimizing Phase = "minimizing"
	PhaseMaximizing Phase = "maximizing"
)

// Action is a title bar control
type Action string

const (
	ActionMinimize Action = "minimize"
	ActionMaximize Action = "maximize"
	ActionClose    Action = "close"
)

// transitions maps each control to the phase it plays
var transitions = map[Action]Phase{
	ActionClose:    PhaseClosing,
	ActionMinimize: PhaseMinimizing,
	ActionMaximize: PhaseMaximizing,
}

// ParseAction validates a control name
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	_, ok := transitions[a]
	return a, ok
}

// Store is the subset of the window store the controller drives
type Store interface {
	Get(id string) (window.Window, bool)
	Close(id string) bool
	Minimize(id string) bool
	Maximize(id string) bool
}

// Options configures transition timing and the mobile breakpoint
type Options struct {
	Delay      time.Duration
	Breakpoint int // Viewport widths below this render every window fullscreen
}

// DefaultOptions returns the stock animation delay and breakpoint
func DefaultOptions() Options {
	return Options{
		Delay:      200 * time.Millisecond,
		Breakpoint: 768,
	}
}

// IsMobile reports whether width is below the breakpoint
func (o Options) IsMobile(width int) bool {
	return width > 0 && width < o.Breakpoint
}

// Controls lists the title bar controls offered at the given viewport width
func (o Options) Controls(width int) []Action {
	if o.IsMobile(width) {
		return []Action{ActionMinimize, ActionClose}
	}
	return []Action{ActionMinimize, ActionMaximize, ActionClose}
}

// Settlement reports a finished transition
type Settlement struct {
	WindowID string
	Action   Action
	Present  bool // Whether the same generation of the window still exists
}

// Controller runs the transitions of one window. It is not safe for
// concurrent use; the Scheduler must deliver callbacks on the owner's goroutine.
type Controller struct {
	windowID string
	store    Store
	sched    Scheduler
	opts     Options
	onSettle func(Settlement)

	phase    Phase
	action   Action
	seq      uint64
	timer    Timer
	snapshot window.Window
}

// NewController creates an idle controller for windowID
func NewController(windowID string, store Store, sched Scheduler, opts Options, onSettle func(Settlement)) *Controller {
	if opts.Delay <= 0 {
		opts.Delay = DefaultOptions().Delay
	}
	return &Controller{
		windowID: windowID,
		store:    store,
		sched:    sched,
		opts:     opts,
		onSettle: onSettle,
		phase:    PhaseIdle,
	}
}

// WindowID returns the window this controller drives
func (c *Controller) WindowID() string {
	return c.windowID
}

// Phase returns the current phase
func (c *Controller) Phase() Phase {
	return c.phase
}

// Snapshot returns the window as it was when the running transition began
func (c *Controller) Snapshot() (window.Window, bool) {
	if c.phase == PhaseIdle {
		return window.Window{}, false
	}
	return c.snapshot, true
}

// Trigger applies action to the store and starts its transition.
// It returns false when the action is unknown, refused, or the window is absent.
func (c *Controller) Trigger(action Action, viewportWidth int) bool {
	phase, ok := transitions[action]
	if !ok || c.phase == PhaseClosing {
		return false
	}
	if action == ActionMaximize && c.opts.IsMobile(viewportWidth) {
		return false
	}

	snapshot, ok := c.store.Get(c.windowID)
	if !ok {
		return false
	}
	if !c.apply(action) {
		return false
	}

	c.stopTimer()
	c.seq++
	seq := c.seq

	// Keep the pre-transition geometry when a transition is superseded
	if c.phase == PhaseIdle {
		c.snapshot = snapshot
	}
	c.phase = phase
	c.action = action
	c.timer = c.sched.AfterFunc(c.opts.Delay, func() {
		c.settle(seq)
	})
	return true
}

// Stop cancels any pending timer and returns to idle without reporting
func (c *Controller) Stop() {
	c.stopTimer()
	c.seq++
	c.phase = PhaseIdle
	c.snapshot = window.Window{}
}

func (c *Controller) apply(action Action) bool {
	switch action {
	case ActionClose:
		return c.store.Close(c.windowID)
	case ActionMinimize:
		return c.store.Minimize(c.windowID)
	case ActionMaximize:
		return c.store.Maximize(c.windowID)
	default:
		return false
	}
}

// settle ends the transition started with seq. Never mutates the store.
func (c *Controller) settle(seq uint64) {
	if seq != c.seq {
		return
	}

	current, ok := c.store.Get(c.windowID)
	present := ok && current.Generation == c.snapshot.Generation

	action := c.action
	c.timer = nil
	c.phase = PhaseIdle
	c.snapshot = window.Window{}

	if c.onSettle != nil {
		c.onSettle(Settlement{WindowID: c.windowID, Action: action, Present: present})
	}
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
