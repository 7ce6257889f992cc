// Package browser is the web viewer: an address bar with history and an
// optional fetched preview of the current page.
package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

// HomePage is the initial address
const HomePage = "https://example.com"

var ErrInvalidURL = errors.New("invalid url")

// PreviewState is the rendered fetch status
type PreviewState struct {
	Loading bool     `json:"loading"`
	Page    *Preview `json:"page,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// View is the rendered browser
type View struct {
	URL        string        `json:"url"`
	Secure     bool          `json:"secure"`
	CanBack    bool          `json:"can_back"`
	CanForward bool          `json:"can_forward"`
	Preview    *PreviewState `json:"preview,omitempty"`
}

// Browser is the web viewer app. Fetches run on their own goroutine and
// report through the update hook.
type Browser struct {
	fetcher Fetcher

	history []string
	index   int

	mu      sync.Mutex
	seq     uint64
	preview PreviewState
	update  func()
	cancel  context.CancelFunc
	ctx     context.Context
	stop    context.CancelFunc
}

// New creates a browser at the home page. A nil fetcher disables previews.
func New(fetcher Fetcher) *Browser {
	ctx, stop := context.WithCancel(context.Background())
	return &Browser{
		fetcher: fetcher,
		history: []string{HomePage},
		ctx:     ctx,
		stop:    stop,
	}
}

// Normalize adds a missing scheme and rejects anything but http and https
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u.String(), nil
}

// OnUpdate registers the redraw hook used when a fetch completes
func (b *Browser) OnUpdate(fn func()) {
	b.mu.Lock()
	b.update = fn
	b.mu.Unlock()
}

// Mount starts the preview of the home page
func (b *Browser) Mount(_ context.Context) error {
	b.load()
	return nil
}

// URL returns the current address
func (b *Browser) URL() string {
	return b.history[b.index]
}

// HandleAction supports navigate {url}, back, forward, home and reload
func (b *Browser) HandleAction(_ context.Context, a registry.Action) error {
	switch a.Name {
	case "navigate":
		u, err := Normalize(a.String("url"))
		if err != nil {
			return err
		}
		b.push(u)
	case "home":
		b.push(HomePage)
	case "back":
		if b.index == 0 {
			return nil
		}
		b.index--
	case "forward":
		if b.index == len(b.history)-1 {
			return nil
		}
		b.index++
	case "reload":
	default:
		return fmt.Errorf("browser: unknown action %q", a.Name)
	}
	b.load()
	return nil
}

// Render mounts the current view
func (b *Browser) Render(_ context.Context, c *registry.Container) error {
	current := b.URL()
	v := View{
		URL:        current,
		Secure:     strings.HasPrefix(current, "https://"),
		CanBack:    b.index > 0,
		CanForward: b.index < len(b.history)-1,
	}
	if b.fetcher != nil {
		b.mu.Lock()
		state := b.preview
		b.mu.Unlock()
		v.Preview = &state
	}
	c.Mount(v)
	return nil
}

// Close cancels any fetch in flight
func (b *Browser) Close() error {
	b.stop()
	return nil
}

func (b *Browser) push(u string) {
	b.history = append(b.history[:b.index+1], u)
	b.index = len(b.history) - 1
}

// load starts fetching the current page, superseding any earlier fetch
func (b *Browser) load() {
	if b.fetcher == nil {
		return
	}
	target := b.URL()

	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	ctx, cancel := context.WithCancel(b.ctx)
	b.cancel = cancel
	b.seq++
	seq := b.seq
	b.preview = PreviewState{Loading: true}
	b.mu.Unlock()

	go func() {
		defer cancel()
		page, err := b.fetcher.Fetch(ctx, target)

		b.mu.Lock()
		if seq != b.seq || ctx.Err() != nil {
			b.mu.Unlock()
			return
		}
		if err != nil {
			b.preview = PreviewState{Error: err.Error()}
		} else {
			b.preview = PreviewState{Page: &page}
		}
		update := b.update
		b.mu.Unlock()

		if update != nil {
			update()
		}
	}()
}
