// Package about renders the portfolio profile.
package about

import (
	"context"

	"github.com/GriffinCanCode/webdesk/internal/apps/portfolio"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

// View is the rendered profile
type View struct {
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	About     string   `json:"about"`
	Skills    []string `json:"skills"`
	ResumeURL string   `json:"resumeUrl,omitempty"`
}

// About shows the portfolio content and reloads it when the content key changes
type About struct {
	src     portfolio.Source
	key     string
	content portfolio.Content
}

// New creates the app reading key from src
func New(src portfolio.Source, key string) *About {
	return &About{src: src, key: key, content: portfolio.Default()}
}

// Mount loads the stored content
func (a *About) Mount(ctx context.Context) error {
	return a.load(ctx)
}

// Refresh reloads when the portfolio key changed
func (a *About) Refresh(ctx context.Context, key string) error {
	if key != a.key {
		return nil
	}
	return a.load(ctx)
}

// Render mounts the profile view
func (a *About) Render(_ context.Context, c *registry.Container) error {
	c.Mount(View{
		Name:      a.content.Name,
		Role:      a.content.Role,
		About:     a.content.About,
		Skills:    a.content.SkillList(),
		ResumeURL: a.content.ResumeURL,
	})
	return nil
}

// load keeps the previous content when the stored document is unreadable
func (a *About) load(ctx context.Context) error {
	c, err := portfolio.Load(ctx, a.src, a.key)
	if err != nil {
		return err
	}
	a.content = c
	return nil
}
