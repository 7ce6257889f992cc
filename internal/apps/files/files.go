// Package files is the file browser over the shared pretend tree.
package files

import (
	"context"
	"fmt"
	"path"

	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/webdesk/internal/apps/vfs"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

// Selection describes the selected file
type Selection struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int    `json:"size"`
	MIME string `json:"mime"`
}

// View is the rendered browser
type View struct {
	Path     string      `json:"path"`
	Entries  []vfs.Entry `json:"entries"`
	Selected *Selection  `json:"selected,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// Browser is the file browser app
type Browser struct {
	fs       *vfs.FS
	cwd      string
	selected *Selection
	lastErr  string
}

// New opens a browser in the home directory
func New(fs *vfs.FS) *Browser {
	return &Browser{fs: fs, cwd: fs.Home()}
}

// Path returns the directory being shown
func (b *Browser) Path() string {
	return b.cwd
}

// HandleAction supports "open" {path}, "up" and "select" {name}.
// Opening a file selects it.
func (b *Browser) HandleAction(_ context.Context, a registry.Action) error {
	b.lastErr = ""
	switch a.Name {
	case "open":
		b.open(b.fs.Resolve(b.cwd, a.String("path")))
	case "up":
		b.cwd = path.Dir(b.cwd)
		b.selected = nil
	case "select":
		name := a.String("name")
		if name == "" {
			return fmt.Errorf("files: select requires a name")
		}
		b.open(path.Join(b.cwd, name))
	default:
		return fmt.Errorf("files: unknown action %q", a.Name)
	}
	return nil
}

// Render mounts the listing of the current directory
func (b *Browser) Render(_ context.Context, c *registry.Container) error {
	entries, err := b.fs.ReadDir(b.cwd)
	if err != nil {
		return fmt.Errorf("list %s: %w", b.cwd, err)
	}
	c.Mount(View{Path: b.cwd, Entries: entries, Selected: b.selected, Error: b.lastErr})
	return nil
}

func (b *Browser) open(p string) {
	n, err := b.fs.Stat(p)
	if err != nil {
		b.lastErr = fmt.Sprintf("%s: %v", p, err)
		return
	}
	if n.Dir {
		b.cwd = p
		b.selected = nil
		return
	}
	b.cwd = path.Dir(p)
	b.selected = &Selection{
		Name: n.Name,
		Path: p,
		Size: len(n.Content),
		MIME: mimetype.Detect(n.Content).String(),
	}
}
