package apps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

type memContent map[string]string

func (m memContent) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memContent) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func TestCatalogBuildsEveryKind(t *testing.T) {
	c, err := NewCatalog(Deps{Content: memContent{}})
	require.NoError(t, err)

	for _, kind := range registry.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			app, err := c.New(kind)
			require.NoError(t, err)

			if m, ok := app.(registry.Mounter); ok {
				require.NoError(t, m.Mount(context.Background()))
			}
			container := &registry.Container{WindowID: string(kind)}
			require.NoError(t, app.Render(context.Background(), container))
			assert.NotNil(t, container.Body)
		})
	}
}

func TestCatalogFreshAppPerWindow(t *testing.T) {
	c, err := NewCatalog(Deps{Content: memContent{}})
	require.NoError(t, err)

	a, err := c.New(registry.KindTerminal)
	require.NoError(t, err)
	b, err := c.New(registry.KindTerminal)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestCatalogErrors(t *testing.T) {
	_, err := NewCatalog(Deps{})
	assert.Error(t, err)

	c, err := NewCatalog(Deps{Content: memContent{}})
	require.NoError(t, err)
	_, err = c.New("spreadsheet")
	assert.ErrorIs(t, err, registry.ErrUnknownKind)
}
