package registry

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Kind identifies which renderer an application window hosts
type Kind string

const (
	KindTerminal Kind = "terminal"
	KindFiles    Kind = "files"
	KindMusic    Kind = "music"
	KindPhotos   Kind = "photos"
	KindSettings Kind = "settings"
	KindAbout    Kind = "about"
	KindBrowser  Kind = "browser"
)

// Kinds lists every known kind in dock order
var Kinds = []Kind{KindTerminal, KindBrowser, KindFiles, KindPhotos, KindMusic, KindSettings, KindAbout}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind converts a manifest string into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Descriptor is the static registration of a launchable application
type Descriptor struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Name        string     `json:"name" yaml:"name" toml:"name"`
	Icon        string     `json:"icon" yaml:"icon" toml:"icon"`
	Kind        Kind       `json:"kind" yaml:"kind" toml:"kind"`
	DefaultSize types.Size `json:"default_size" yaml:"default_size" toml:"default_size"`
}

// Container is the content area of a window that an App renders into
type Container struct {
	WindowID string     `json:"window_id"`
	Bounds   types.Rect `json:"bounds"`
	Body     any        `json:"body,omitempty"`
}

// Mount replaces the container body
func (c *Container) Mount(body any) {
	c.Body = body
}

// App produces the body of one window. A fresh App is created per window.
type App interface {
	Render(ctx context.Context, c *Container) error
}

// Mounter is implemented by apps that load external state when their window opens
type Mounter interface {
	Mount(ctx context.Context) error
}

// Action is a user interaction routed to the app inside a window
type Action struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}

// String returns the named argument as a string, or "" when absent
func (a Action) String(key string) string {
	v, _ := a.Args[key].(string)
	return v
}

// Int returns the named numeric argument, or def when absent
func (a Action) Int(key string, def int) int {
	switch v := a.Args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// ActionHandler is implemented by interactive apps
type ActionHandler interface {
	HandleAction(ctx context.Context, a Action) error
}

// Refresher is implemented by apps that react to content store broadcasts
type Refresher interface {
	Refresh(ctx context.Context, key string) error
}

// Updater is implemented by apps whose state changes outside of actions.
// The desktop passes a function that schedules a redraw; it is safe to call
// from any goroutine.
type Updater interface {
	OnUpdate(fn func())
}

// Factory creates the App for a window of the given kind
type Factory interface {
	New(kind Kind) (App, error)
}
