// Package tui provides the terminal front end of the player.
package tui

import (
	"github.com/flicker-player/flicker/display"
	"github.com/flicker-player/flicker/player"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Location is opened on start.
	Location string

	// Title is shown instead of the location when set.
	Title string

	// Start is the position playback begins at, in seconds.
	Start float64

	// Paused loads the media without starting playback.
	Paused bool
}

// Run loads the media into p and drives it from the keyboard until the user quits.
// Frames presented to screen are drawn as a preview.
func Run(p *player.Player, screen *display.Latest, options *Options) error {
	bubble := newBubble(p, screen, options)
	bubble.setState(loadingState)

	final, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if b, ok := final.(*statefulBubble); ok && b.state == errorState {
		return b.lastError
	}
	return nil
}
