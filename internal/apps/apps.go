// Package apps builds the application hosted in each desktop window.
package apps

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/webdesk/internal/apps/about"
	"github.com/GriffinCanCode/webdesk/internal/apps/browser"
	"github.com/GriffinCanCode/webdesk/internal/apps/files"
	"github.com/GriffinCanCode/webdesk/internal/apps/music"
	"github.com/GriffinCanCode/webdesk/internal/apps/photos"
	"github.com/GriffinCanCode/webdesk/internal/apps/settings"
	"github.com/GriffinCanCode/webdesk/internal/apps/terminal"
	"github.com/GriffinCanCode/webdesk/internal/apps/vfs"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

// Content is the key-value store backing the portfolio and settings apps
type Content interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Deps are the shared collaborators handed to new apps
type Deps struct {
	Content       Content
	PortfolioKey  string
	BrightnessKey string
	FS            *vfs.FS
	Fetcher       browser.Fetcher // nil disables browser previews
	Terminal      terminal.Options
}

// Catalog creates apps by kind
type Catalog struct {
	deps     Deps
	commands map[string]string
}

// NewCatalog validates deps and loads the terminal command table
func NewCatalog(deps Deps) (*Catalog, error) {
	if deps.Content == nil {
		return nil, fmt.Errorf("apps: content store is required")
	}
	if deps.PortfolioKey == "" {
		deps.PortfolioKey = "portfolio_content"
	}
	if deps.BrightnessKey == "" {
		deps.BrightnessKey = "screen_brightness"
	}
	if deps.FS == nil {
		deps.FS = vfs.Default()
	}

	commands, err := terminal.LoadCommands()
	if err != nil {
		return nil, err
	}
	return &Catalog{deps: deps, commands: commands}, nil
}

// New returns a fresh app for one window of the given kind
func (c *Catalog) New(kind registry.Kind) (registry.App, error) {
	switch kind {
	case registry.KindTerminal:
		return terminal.New(c.deps.FS, c.commands, c.deps.Terminal), nil
	case registry.KindFiles:
		return files.New(c.deps.FS), nil
	case registry.KindMusic:
		return music.New(music.DefaultPlaylist), nil
	case registry.KindPhotos:
		return photos.New(c.deps.Content, c.deps.PortfolioKey), nil
	case registry.KindSettings:
		return settings.New(c.deps.Content, c.deps.BrightnessKey), nil
	case registry.KindAbout:
		return about.New(c.deps.Content, c.deps.PortfolioKey), nil
	case registry.KindBrowser:
		return browser.New(c.deps.Fetcher), nil
	default:
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownKind, kind)
	}
}
