// Package music is a playlist player. Audio playback itself happens in the page;
// this app owns the transport state.
package music

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
)

// DefaultVolume is the initial volume percentage
const DefaultVolume = 70

// Song is one playlist entry
type Song struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

// View is the rendered player
type View struct {
	Playlist []Song `json:"playlist"`
	Current  int    `json:"current"`
	Song     Song   `json:"song"`
	Playing  bool   `json:"playing"`
	Volume   int    `json:"volume"`
}

// Player is the music app
type Player struct {
	songs   []Song
	current int
	playing bool
	volume  int
}

// New creates a player over songs, which must not be empty
func New(songs []Song) *Player {
	if len(songs) == 0 {
		songs = DefaultPlaylist
	}
	return &Player{songs: songs, volume: DefaultVolume}
}

// HandleAction drives the transport: play, pause, toggle, next, prev,
// select {index} and volume {value}
func (p *Player) HandleAction(_ context.Context, a registry.Action) error {
	switch a.Name {
	case "play":
		p.playing = true
	case "pause":
		p.playing = false
	case "toggle":
		p.playing = !p.playing
	case "next":
		p.current = (p.current + 1) % len(p.songs)
		p.playing = false
	case "prev":
		p.current = (p.current - 1 + len(p.songs)) % len(p.songs)
		p.playing = false
	case "select":
		i := a.Int("index", -1)
		if i < 0 || i >= len(p.songs) {
			return fmt.Errorf("music: index %d out of range", i)
		}
		p.current = i
		p.playing = false
	case "volume":
		v := a.Int("value", -1)
		if v < 0 || v > 100 {
			return fmt.Errorf("music: volume %d out of range", v)
		}
		p.volume = v
	default:
		return fmt.Errorf("music: unknown action %q", a.Name)
	}
	return nil
}

// Render mounts the player view
func (p *Player) Render(_ context.Context, c *registry.Container) error {
	c.Mount(View{
		Playlist: p.songs,
		Current:  p.current,
		Song:     p.songs[p.current],
		Playing:  p.playing,
		Volume:   p.volume,
	})
	return nil
}
