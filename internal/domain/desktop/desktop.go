package desktop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/internal/domain/chrome"
	"github.com/GriffinCanCode/webdesk/internal/domain/dock"
	"github.com/GriffinCanCode/webdesk/internal/domain/drag"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

var (
	// ErrClosed is returned when the desktop loop has stopped
	ErrClosed = errors.New("desktop closed")
	// ErrRunning is returned when Run is called twice
	ErrRunning = errors.New("desktop already running")
)

// Notifier broadcasts changed content keys
type Notifier interface {
	Subscribe() (<-chan string, func())
}

// Deps are the collaborators of a desktop
type Deps struct {
	Registry  dock.Catalog
	Apps      registry.Factory
	Scheduler chrome.Scheduler
	Notifier  Notifier
	Clock     func() time.Time
	Logger    *zap.Logger
	Metrics   Metrics
}

type result struct {
	applied bool
	err     error
}

type envelope struct {
	fn    func(ctx context.Context) result
	reply chan result
}

type viewportFunc func() types.Size

func (f viewportFunc) Bounds() types.Size { return f() }

// Desktop is one browser tab's window manager
type Desktop struct {
	id        string
	createdAt time.Time
	cfg       Config
	logger    *zap.Logger
	metrics   Metrics
	clock     func() time.Time
	factory   registry.Factory
	notifier  Notifier
	sched     chrome.Scheduler

	store   *window.Store
	tracker *drag.Tracker
	dock    *dock.Dock

	// Owned by the loop goroutine
	viewport  types.Size
	chrome    map[string]*chrome.Controller
	settling  map[*chrome.Controller]struct{}
	apps      map[string]registry.App
	changes   []window.Change
	sequence  uint64
	lastClock string

	dirty     atomic.Bool
	running   atomic.Bool
	events    chan envelope
	done      chan struct{}
	closeOnce sync.Once

	subMu   sync.Mutex
	subs    map[int]chan Scene // Protected by subMu
	nextSub int                // Protected by subMu
	last    *Scene             // Protected by subMu
	closed  bool               // Protected by subMu
}

// New creates a desktop. Run must be called to start its loop.
func New(id string, cfg Config, deps Deps) (*Desktop, error) {
	if deps.Registry == nil {
		return nil, fmt.Errorf("desktop %s: registry is required", id)
	}
	if deps.Apps == nil {
		return nil, fmt.Errorf("desktop %s: app factory is required", id)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Scheduler == nil {
		deps.Scheduler = chrome.WallClock
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultConfig().EventBuffer
	}
	if cfg.Viewport.IsZero() {
		cfg.Viewport = DefaultConfig().Viewport
	}

	d := &Desktop{
		id:       id,
		cfg:      cfg,
		logger:   deps.Logger.With(zap.String("session_id", id)),
		metrics:  deps.Metrics,
		clock:    deps.Clock,
		factory:  deps.Apps,
		notifier: deps.Notifier,
		viewport: cfg.Viewport,
		chrome:   make(map[string]*chrome.Controller),
		settling: make(map[*chrome.Controller]struct{}),
		apps:     make(map[string]registry.App),
		events:   make(chan envelope, cfg.EventBuffer),
		done:     make(chan struct{}),
		subs:     make(map[int]chan Scene),
	}
	d.createdAt = d.clock()
	d.sched = chrome.Deliver(deps.Scheduler, d.deliver)

	d.store = window.NewStore(cfg.Window)
	d.store.OnChange(func(c window.Change) {
		d.changes = append(d.changes, c)
	})
	d.tracker = drag.NewTracker(viewportFunc(func() types.Size { return d.viewport }), d.store.UpdatePosition, cfg.Drag)
	d.dock = dock.New(deps.Registry, d.store)
	d.dirty.Store(true)
	return d, nil
}

// ID returns the session id
func (d *Desktop) ID() string {
	return d.id
}

// CreatedAt returns when the desktop was created
func (d *Desktop) CreatedAt() time.Time {
	return d.createdAt
}

// Store returns the window store for read-only snapshots
func (d *Desktop) Store() *window.Store {
	return d.store
}

// Done is closed when the loop exits
func (d *Desktop) Done() <-chan struct{} {
	return d.done
}

// Run processes events until ctx is cancelled
func (d *Desktop) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer d.shutdown()

	ticker := time.NewTicker(d.cfg.frameInterval())
	defer ticker.Stop()

	var notes <-chan string
	if d.notifier != nil {
		ch, cancel := d.notifier.Subscribe()
		defer cancel()
		notes = ch
	}

	d.logger.Debug("Desktop loop started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("Desktop loop stopped")
			return nil
		case env := <-d.events:
			r := env.fn(ctx)
			if env.reply != nil {
				env.reply <- r
			}
		case <-ticker.C:
			d.Handle(ctx, Frame{})
		case key, ok := <-notes:
			if !ok {
				notes = nil
				continue
			}
			d.Handle(ctx, Refresh{Key: key})
		}
	}
}

// Post queues an event without waiting for it. Safe from any goroutine.
// A failed event is logged; use Send to observe the error.
func (d *Desktop) Post(ev Event) bool {
	return d.Send(ev, nil)
}

// Send queues an event like Post and reports a failure to onErr. onErr runs
// on the loop goroutine and must not block.
func (d *Desktop) Send(ev Event, onErr func(error)) bool {
	return d.enqueue(envelope{fn: func(ctx context.Context) result {
		applied, err := d.Handle(ctx, ev)
		if err != nil {
			d.logger.Warn("Event failed",
				zap.String("event", fmt.Sprintf("%T", ev)),
				zap.Error(err))
			if onErr != nil {
				onErr(err)
			}
		}
		return result{applied: applied, err: err}
	}})
}

// Call queues an event and waits for it to be applied
func (d *Desktop) Call(ctx context.Context, ev Event) (bool, error) {
	r, err := d.do(ctx, func(ctx context.Context) result {
		applied, err := d.Handle(ctx, ev)
		return result{applied: applied, err: err}
	})
	if err != nil {
		return false, err
	}
	return r.applied, r.err
}

// Scene renders the current state on the loop
func (d *Desktop) Scene(ctx context.Context) (Scene, error) {
	var scene Scene
	_, err := d.do(ctx, func(ctx context.Context) result {
		scene = d.buildScene(ctx)
		return result{}
	})
	return scene, err
}

// Subscribe returns a channel of scenes. Only the latest unread scene is kept.
func (d *Desktop) Subscribe() (<-chan Scene, func()) {
	ch := make(chan Scene, 1)

	d.subMu.Lock()
	if d.closed {
		d.subMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch
	if d.last != nil {
		ch <- *d.last
	}
	d.subMu.Unlock()
	d.dirty.Store(true)

	return ch, func() {
		d.subMu.Lock()
		defer d.subMu.Unlock()
		if c, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(c)
		}
	}
}

// Handle applies one event. It must only run on the loop goroutine,
// or in tests that never start the loop.
func (d *Desktop) Handle(ctx context.Context, ev Event) (bool, error) {
	if _, ok := ev.(Frame); ok {
		d.frame(ctx)
		return true, nil
	}

	applied, err := d.apply(ctx, ev)
	d.reconcile(ctx)
	if applied {
		d.dirty.Store(true)
	}
	return applied, err
}

func (d *Desktop) apply(ctx context.Context, ev Event) (bool, error) {
	switch e := ev.(type) {
	case Viewport:
		if e.Width <= 0 || e.Height <= 0 {
			return false, nil
		}
		d.viewport = types.Size{Width: e.Width, Height: e.Height}
		if s, ok := d.tracker.Session(); ok && d.cfg.Chrome.IsMobile(e.Width) {
			d.tracker.Cancel(s.WindowID)
		}
		return true, nil

	case Launch:
		_, ok := d.dock.Launch(e.AppID)
		return ok, nil

	case PointerDown:
		w, ok := d.store.Get(e.WindowID)
		if !ok || w.Minimized {
			return false, nil
		}
		if !d.hitRect(w).Contains(e.Point) {
			return false, nil
		}
		d.store.Focus(w.ID)
		if !d.fullscreen(w) {
			d.tracker.Begin(drag.Gesture{
				WindowID: w.ID,
				Target:   e.Region,
				Pointer:  e.Point,
				Origin:   w.Position,
			})
		}
		return true, nil

	case PointerMove:
		d.tracker.Move(e.Point)
		return false, nil

	case PointerUp:
		if d.tracker.State() != drag.StateDragging {
			return false, nil
		}
		if _, moved := d.tracker.End(); moved {
			d.metrics.DragUpdate()
		}
		return true, nil

	case Control:
		ctrl, ok := d.chrome[e.WindowID]
		if !ok {
			return false, nil
		}
		return ctrl.Trigger(e.Action, d.viewport.Width), nil

	case Resize:
		return d.store.UpdateSize(e.WindowID, e.Size), nil

	case Move:
		return d.store.UpdatePosition(e.WindowID, e.Point), nil

	case Focus:
		return d.store.Focus(e.WindowID), nil

	case CloseWindow:
		return d.store.Close(e.WindowID), nil

	case AppAction:
		app, ok := d.apps[e.WindowID]
		if !ok {
			return false, nil
		}
		h, ok := app.(registry.ActionHandler)
		if !ok {
			return false, nil
		}
		if err := h.HandleAction(ctx, registry.Action{Name: e.Name, Args: e.Args}); err != nil {
			return false, fmt.Errorf("%s action %s: %w", e.WindowID, e.Name, err)
		}
		return true, nil

	case Redraw:
		return true, nil

	case Refresh:
		refreshed := false
		for id, app := range d.apps {
			r, ok := app.(registry.Refresher)
			if !ok {
				continue
			}
			if err := r.Refresh(ctx, e.Key); err != nil {
				d.logger.Warn("App refresh failed",
					zap.String("window_id", id),
					zap.String("key", e.Key),
					zap.Error(err))
				continue
			}
			refreshed = true
		}
		return refreshed, nil

	default:
		return false, fmt.Errorf("unsupported event %T", ev)
	}
}

// frame flushes the drag tracker and publishes a scene when anything changed
func (d *Desktop) frame(ctx context.Context) {
	if _, moved := d.tracker.Flush(); moved {
		d.metrics.DragUpdate()
		d.dirty.Store(true)
	}
	d.reconcile(ctx)
	d.publish(ctx)
}

// reconcile reacts to store changes recorded since the last call
func (d *Desktop) reconcile(ctx context.Context) {
	for len(d.changes) > 0 {
		changes := d.changes
		d.changes = nil
		for _, c := range changes {
			d.metrics.WindowOp(string(c.Op))
			switch c.Op {
			case window.OpOpen:
				d.windowOpened(ctx, c.Window)
			case window.OpClose:
				d.windowClosed(c.Window)
			}
		}
	}
}

func (d *Desktop) windowOpened(ctx context.Context, w window.Window) {
	d.metrics.WindowOpened(string(w.Kind))

	var ctrl *chrome.Controller
	ctrl = chrome.NewController(w.ID, d.store, d.sched, d.cfg.Chrome, func(s chrome.Settlement) {
		d.settled(ctrl, s)
	})
	d.chrome[w.ID] = ctrl

	app, err := d.factory.New(w.Kind)
	if err != nil {
		d.logger.Error("Failed to create app",
			zap.String("window_id", w.ID),
			zap.String("kind", string(w.Kind)),
			zap.Error(err))
		return
	}
	if u, ok := app.(registry.Updater); ok {
		u.OnUpdate(func() { d.Post(Redraw{}) })
	}
	if m, ok := app.(registry.Mounter); ok {
		if err := m.Mount(ctx); err != nil {
			d.logger.Warn("App mount failed",
				zap.String("window_id", w.ID),
				zap.Error(err))
		}
	}
	d.apps[w.ID] = app

	d.logger.Debug("Window opened",
		zap.String("window_id", w.ID),
		zap.Int("z_index", w.ZIndex))
}

func (d *Desktop) windowClosed(w window.Window) {
	d.metrics.WindowClosed(string(w.Kind))
	d.release(w.ID)
	d.tracker.Cancel(w.ID)

	if ctrl, ok := d.chrome[w.ID]; ok {
		delete(d.chrome, w.ID)
		// A pending transition still settles; the ghost stays until then
		if ctrl.Phase() != chrome.PhaseIdle {
			d.settling[ctrl] = struct{}{}
		}
	}

	d.logger.Debug("Window closed", zap.String("window_id", w.ID))
}

// release drops a window's app, closing it when it holds resources
func (d *Desktop) release(windowID string) {
	app, ok := d.apps[windowID]
	if !ok {
		return
	}
	delete(d.apps, windowID)
	if c, ok := app.(io.Closer); ok {
		if err := c.Close(); err != nil {
			d.logger.Warn("App close failed", zap.String("window_id", windowID), zap.Error(err))
		}
	}
}

func (d *Desktop) settled(ctrl *chrome.Controller, s chrome.Settlement) {
	delete(d.settling, ctrl)
	d.dirty.Store(true)
	d.logger.Debug("Transition settled",
		zap.String("window_id", s.WindowID),
		zap.String("action", string(s.Action)),
		zap.Bool("present", s.Present))
}

func (d *Desktop) fullscreen(w window.Window) bool {
	return w.Maximized || d.cfg.Chrome.IsMobile(d.viewport.Width)
}

// hitRect is the area a window occupies on screen, matching the scene
func (d *Desktop) hitRect(w window.Window) types.Rect {
	if ctrl, ok := d.chrome[w.ID]; ok {
		if snap, ok := ctrl.Snapshot(); ok {
			w = snap
		}
	}
	if d.fullscreen(w) {
		return d.fullscreenRect()
	}
	return w.Rect()
}

// publish fans a new scene out when state or the clock changed
func (d *Desktop) publish(ctx context.Context) {
	clock := d.clock().Format(d.cfg.ClockFormat)
	if !d.dirty.Swap(false) && clock == d.lastClock {
		return
	}
	d.lastClock = clock
	d.sequence++
	scene := d.buildScene(ctx)
	d.metrics.ScenePublished()

	d.subMu.Lock()
	defer d.subMu.Unlock()
	d.last = &scene
	for _, ch := range d.subs {
		offer(ch, scene)
	}
}

// offer replaces any unread scene with s
func offer(ch chan Scene, s Scene) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

// deliver hands a scheduled callback to the loop
func (d *Desktop) deliver(fn func()) {
	d.enqueue(envelope{fn: func(ctx context.Context) result {
		fn()
		d.reconcile(ctx)
		return result{}
	}})
}

func (d *Desktop) do(ctx context.Context, fn func(ctx context.Context) result) (result, error) {
	reply := make(chan result, 1)
	if !d.enqueue(envelope{fn: fn, reply: reply}) {
		return result{}, ErrClosed
	}
	select {
	case r := <-reply:
		return r, nil
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-d.done:
		return result{}, ErrClosed
	}
}

func (d *Desktop) enqueue(env envelope) bool {
	select {
	case <-d.done:
		return false
	default:
	}
	select {
	case d.events <- env:
		return true
	case <-d.done:
		return false
	}
}

func (d *Desktop) shutdown() {
	d.closeOnce.Do(func() {
		for _, ctrl := range d.chrome {
			ctrl.Stop()
		}
		for ctrl := range d.settling {
			ctrl.Stop()
		}
		for id := range d.apps {
			d.release(id)
		}

		d.subMu.Lock()
		d.closed = true
		for id, ch := range d.subs {
			close(ch)
			delete(d.subs, id)
		}
		d.subMu.Unlock()

		close(d.done)
	})
}

// Close stops a desktop whose loop never started
func (d *Desktop) Close() {
	if d.running.CompareAndSwap(false, true) {
		d.shutdown()
	}
}
