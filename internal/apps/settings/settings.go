// Package settings exposes the display brightness control.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

// DefaultBrightness is used until a value has been saved
const DefaultBrightness = 80

// minimum effective brightness keeps the screen visible at slider zero
const floorBrightness = 15

// Store is the key-value content store
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// View is the rendered settings panel
type View struct {
	Brightness int     `json:"brightness"`
	Effective  float64 `json:"effective"`
	Saved      bool    `json:"saved"`
}

// Settings is the settings app
type Settings struct {
	store      Store
	key        string
	brightness int
	saved      bool
}

// New creates the app persisting brightness under key
func New(store Store, key string) *Settings {
	return &Settings{store: store, key: key, brightness: DefaultBrightness, saved: true}
}

// Effective maps a 0-100 slider value onto 15-100
func Effective(v int) float64 {
	return floorBrightness + float64(clamp(v))*(100-floorBrightness)/100
}

// Brightness returns the current slider value
func (s *Settings) Brightness() int {
	return s.brightness
}

// Mount reads the saved brightness. Unparseable values keep the default.
func (s *Settings) Mount(ctx context.Context) error {
	return s.load(ctx)
}

// Refresh picks up a brightness saved from another window
func (s *Settings) Refresh(ctx context.Context, key string) error {
	if key != s.key {
		return nil
	}
	return s.load(ctx)
}

// HandleAction supports "set" with a "value" argument and "save"
func (s *Settings) HandleAction(ctx context.Context, a registry.Action) error {
	switch a.Name {
	case "set":
		v := a.Int("value", -1)
		if v < 0 {
			return fmt.Errorf("settings: missing brightness value")
		}
		s.brightness = clamp(v)
		s.saved = false
		return nil
	case "save":
		if err := s.store.Set(ctx, s.key, strconv.Itoa(s.brightness)); err != nil {
			return fmt.Errorf("save brightness: %w", err)
		}
		s.saved = true
		return nil
	default:
		return fmt.Errorf("settings: unknown action %q", a.Name)
	}
}

// Render mounts the panel view
func (s *Settings) Render(_ context.Context, c *registry.Container) error {
	c.Mount(View{Brightness: s.brightness, Effective: Effective(s.brightness), Saved: s.saved})
	return nil
}

func (s *Settings) load(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load brightness: %w", err)
	}
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	s.brightness = clamp(v)
	s.saved = true
	return nil
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
