package desktop

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/internal/domain/chrome"
	"github.com/GriffinCanCode/webdesk/internal/domain/dock"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// TopBar is the strip above the desktop area
type TopBar struct {
	Title string `json:"title"`
	Clock string `json:"clock"`
}

// SceneWindow is one window as the page should draw it
type SceneWindow struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Kind       registry.Kind   `json:"kind"`
	Rect       types.Rect      `json:"rect"`
	ZIndex     int             `json:"z_index"`
	Phase      chrome.Phase    `json:"phase"`
	Minimized  bool            `json:"minimized"`
	Maximized  bool            `json:"maximized"`
	Fullscreen bool            `json:"fullscreen"`
	Dragging   bool            `json:"dragging"`
	Focused    bool            `json:"focused"`
	Controls   []chrome.Action `json:"controls"`
	Body       any             `json:"body,omitempty"`
}

// Scene is the complete render description of a desktop
type Scene struct {
	SessionID string        `json:"session_id"`
	Sequence  uint64        `json:"sequence"`
	Viewport  types.Size    `json:"viewport"`
	Mobile    bool          `json:"mobile"`
	TopBar    TopBar        `json:"top_bar"`
	Windows   []SceneWindow `json:"windows"`
	Dock      dock.View     `json:"dock"`
	FocusedID string        `json:"focused_id,omitempty"`
}

// Window returns the scene entry for id
func (s Scene) Window(id string) (SceneWindow, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return SceneWindow{}, false
}

// buildScene renders the current state (loop only)
func (d *Desktop) buildScene(ctx context.Context) Scene {
	vp := d.viewport
	mobile := d.cfg.Chrome.IsMobile(vp.Width)
	controls := d.cfg.Chrome.Controls(vp.Width)
	dragging, _ := d.tracker.Session()

	focusedID := ""
	if top, ok := d.store.Topmost(); ok {
		focusedID = top.ID
	}

	scene := Scene{
		SessionID: d.id,
		Sequence:  d.sequence,
		Viewport:  vp,
		Mobile:    mobile,
		TopBar: TopBar{
			Title: d.cfg.Title,
			Clock: d.clock().Format(d.cfg.ClockFormat),
		},
		Windows:   make([]SceneWindow, 0, d.store.Len()+len(d.settling)),
		Dock:      d.dock.View(),
		FocusedID: focusedID,
	}

	for _, w := range d.store.Ordered() {
		phase := chrome.PhaseIdle
		shown := w
		if ctrl, ok := d.chrome[w.ID]; ok {
			phase = ctrl.Phase()
			// Mid-transition windows keep their pre-transition look
			if snap, ok := ctrl.Snapshot(); ok {
				shown = snap
				shown.ZIndex = w.ZIndex
			}
		}
		if shown.Minimized {
			continue
		}

		sw := d.sceneWindow(shown, phase, mobile, controls)
		sw.Focused = w.ID == focusedID
		sw.Dragging = dragging.WindowID == w.ID
		if app, ok := d.apps[w.ID]; ok {
			sw.Body = d.render(ctx, app, w.ID, sw.Rect)
		}
		scene.Windows = append(scene.Windows, sw)
	}

	// Closing ghosts play their exit animation from the snapshot
	for ctrl := range d.settling {
		if ctrl.Phase() != chrome.PhaseClosing {
			continue
		}
		// A relaunched window replaces its ghost
		if _, live := d.store.Get(ctrl.WindowID()); live {
			continue
		}
		snap, ok := ctrl.Snapshot()
		if !ok || snap.Minimized {
			continue
		}
		scene.Windows = append(scene.Windows, d.sceneWindow(snap, chrome.PhaseClosing, mobile, controls))
	}

	sort.SliceStable(scene.Windows, func(i, j int) bool {
		return scene.Windows[i].ZIndex < scene.Windows[j].ZIndex
	})
	return scene
}

func (d *Desktop) sceneWindow(w window.Window, phase chrome.Phase, mobile bool, controls []chrome.Action) SceneWindow {
	fullscreen := mobile || w.Maximized
	rect := w.Rect()
	if fullscreen {
		rect = d.fullscreenRect()
	} else if pos, ok := d.tracker.Position(w.ID); ok {
		rect = types.RectOf(pos, w.Size)
	}
	return SceneWindow{
		ID:         w.ID,
		Title:      w.Title,
		Kind:       w.Kind,
		Rect:       rect,
		ZIndex:     w.ZIndex,
		Phase:      phase,
		Minimized:  w.Minimized,
		Maximized:  w.Maximized,
		Fullscreen: fullscreen,
		Controls:   controls,
	}
}

// fullscreenRect fills the desktop area above the dock
func (d *Desktop) fullscreenRect() types.Rect {
	h := d.viewport.Height - d.cfg.DockReservation
	if h < 0 {
		h = 0
	}
	return types.Rect{Width: d.viewport.Width, Height: h}
}

func (d *Desktop) render(ctx context.Context, app registry.App, windowID string, bounds types.Rect) any {
	c := &registry.Container{WindowID: windowID, Bounds: bounds}
	if err := app.Render(ctx, c); err != nil {
		d.logger.Warn("App render failed",
			zap.String("window_id", windowID),
			zap.Error(err))
		return map[string]string{"error": err.Error()}
	}
	return c.Body
}
