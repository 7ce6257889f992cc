package desktop

import (
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/chrome"
	"github.com/GriffinCanCode/webdesk/internal/domain/drag"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

// Config holds desktop tunables
type Config struct {
	Title           string
	ClockFormat     string
	FrameRate       int // Frames per second for drag flushes and scene publishing
	DockReservation int // Pixels kept free for the dock under fullscreen windows
	EventBuffer     int
	Viewport        types.Size // Assumed until the page reports its size
	Window          window.Options
	Drag            drag.Options
	Chrome          chrome.Options
}

// DefaultConfig returns the stock desktop configuration
func DefaultConfig() Config {
	return Config{
		Title:           "Linux Portfolio",
		ClockFormat:     "Mon, Jan 2 03:04 PM",
		FrameRate:       60,
		DockReservation: 80,
		EventBuffer:     256,
		Viewport:        types.Size{Width: 1280, Height: 800},
		Window:          window.DefaultOptions(),
		Drag:            drag.DefaultOptions(),
		Chrome:          chrome.DefaultOptions(),
	}
}

// frameInterval converts the frame rate into a ticker period
func (c Config) frameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}
