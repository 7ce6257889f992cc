package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotFound is returned by drivers for missing keys
var ErrNotFound = errors.New("key not found")

// Well-known content keys
const (
	KeyPortfolio  = "portfolio_content"
	KeyBrightness = "screen_brightness"
)

// Driver persists key-value pairs
type Driver interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Config selects and configures a driver
type Config struct {
	Driver string // memory or sqlite
	Path   string // Database file for sqlite
}

// Open creates the configured driver
func Open(cfg Config) (Driver, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Content is a driver plus change broadcasting
type Content struct {
	driver Driver
	bus    *Broadcaster
	logger *zap.Logger
}

// NewContent wraps a driver
func NewContent(driver Driver, logger *zap.Logger) *Content {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Content{
		driver: driver,
		bus:    NewBroadcaster(),
		logger: logger,
	}
}

// Get returns the value for key and whether it exists
func (c *Content) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.driver.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value and notifies subscribers
func (c *Content) Set(ctx context.Context, key, value string) error {
	if err := c.driver.Set(ctx, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	n := c.bus.Publish(key)
	c.logger.Debug("Content updated",
		zap.String("key", key),
		zap.Int("size", len(value)),
		zap.Int("subscribers", n))
	return nil
}

// Keys lists stored keys
func (c *Content) Keys(ctx context.Context) ([]string, error) {
	return c.driver.Keys(ctx)
}

// Subscribe receives the keys of changed values
func (c *Content) Subscribe() (<-chan string, func()) {
	return c.bus.Subscribe()
}

// Close stops broadcasting and closes the driver
func (c *Content) Close() error {
	c.bus.Close()
	return c.driver.Close()
}
