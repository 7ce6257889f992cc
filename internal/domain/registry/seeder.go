package registry

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

//go:embed apps.yaml
var builtinManifest []byte

// Manifest is the on-disk list of application descriptors
type Manifest struct {
	Apps []Descriptor `yaml:"apps" toml:"apps"`
}

// Seeder loads descriptors into a Manager
type Seeder struct {
	manager *Manager
	logger  *zap.Logger
}

// NewSeeder creates a new registry seeder
func NewSeeder(manager *Manager, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		manager: manager,
		logger:  logger,
	}
}

// Seed registers the manifest at path, or the built-in manifest when path is empty
func (s *Seeder) Seed(path string) error {
	var (
		manifest *Manifest
		err      error
	)
	if path == "" {
		manifest, err = ParseManifest(builtinManifest, "yaml")
		if err != nil {
			return fmt.Errorf("failed to parse builtin manifest: %w", err)
		}
	} else {
		manifest, err = LoadManifest(path)
		if err != nil {
			return err
		}
	}

	var loaded, failed int
	for _, desc := range manifest.Apps {
		if err := s.manager.Register(desc); err != nil {
			s.logger.Warn("Skipping application", zap.String("app_id", desc.ID), zap.Error(err))
			failed++
			continue
		}
		loaded++
	}

	s.logger.Info("Registry seeded",
		zap.String("source", sourceName(path)),
		zap.Int("loaded", loaded),
		zap.Int("failed", failed),
	)
	if loaded == 0 {
		return fmt.Errorf("no applications registered from %s", sourceName(path))
	}
	return nil
}

// LoadManifest reads a YAML or TOML manifest, chosen by file extension
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	manifest, err := ParseManifest(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return manifest, nil
}

// ParseManifest decodes manifest bytes in the given format ("yaml", "yml" or "toml")
func ParseManifest(data []byte, format string) (*Manifest, error) {
	var manifest Manifest
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return nil, err
		}
	case "toml":
		if err := toml.Unmarshal(data, &manifest); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
	return &manifest, nil
}

func sourceName(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}
