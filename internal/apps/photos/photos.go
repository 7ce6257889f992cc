// Package photos shows the photo links configured in the portfolio content.
package photos

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/GriffinCanCode/webdesk/internal/apps/portfolio"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

// Photo is one gallery item
type Photo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// View is the rendered gallery. Selected is -1 when no photo is open.
type View struct {
	Photos   []Photo `json:"photos"`
	Selected int     `json:"selected"`
	Empty    bool    `json:"empty"`
}

// Photos is the gallery app
type Photos struct {
	src      portfolio.Source
	key      string
	photos   []Photo
	selected int
}

// New creates a gallery reading key from src
func New(src portfolio.Source, key string) *Photos {
	return &Photos{src: src, key: key, selected: -1}
}

// Mount loads the photo list
func (p *Photos) Mount(ctx context.Context) error {
	return p.load(ctx)
}

// Refresh reloads when the portfolio key changed
func (p *Photos) Refresh(ctx context.Context, key string) error {
	if key != p.key {
		return nil
	}
	return p.load(ctx)
}

// HandleAction supports "select" with an "index" argument and "close"
func (p *Photos) HandleAction(_ context.Context, a registry.Action) error {
	switch a.Name {
	case "select":
		i := a.Int("index", -1)
		if i < 0 || i >= len(p.photos) {
			return fmt.Errorf("photos: index %d out of range", i)
		}
		p.selected = i
	case "close":
		p.selected = -1
	default:
		return fmt.Errorf("photos: unknown action %q", a.Name)
	}
	return nil
}

// Render mounts the gallery view
func (p *Photos) Render(_ context.Context, c *registry.Container) error {
	c.Mount(View{
		Photos:   append([]Photo(nil), p.photos...),
		Selected: p.selected,
		Empty:    len(p.photos) == 0,
	})
	return nil
}

func (p *Photos) load(ctx context.Context) error {
	c, err := portfolio.Load(ctx, p.src, p.key)
	if err != nil {
		return err
	}

	urls := c.PhotoURLs()
	p.photos = make([]Photo, 0, len(urls))
	for i, u := range urls {
		p.photos = append(p.photos, Photo{ID: fmt.Sprintf("photo-%d", i+1), Title: title(u), URL: u})
	}
	if p.selected >= len(p.photos) {
		p.selected = -1
	}
	return nil
}

// title is the last path segment without query or extension
func title(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	base := path.Base(u)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "." || base == "/" || base == "" {
		return u
	}
	return base
}
