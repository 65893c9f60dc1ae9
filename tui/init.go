package tui

import (
	"fmt"

	"github.com/flicker-player/flicker/display"
	"github.com/flicker-player/flicker/player"
	tea "github.com/charmbracelet/bubbletea"
)

type (
	loadedMsg  struct{ err error }
	eventsMsg  []player.Event
	pictureMsg string
)

// Init loads the media and starts listening for player events and frames.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.load(), b.waitForEvents(), b.waitForFrame())
}

func (b *statefulBubble) load() tea.Cmd {
	p, options := b.player, b.options
	return func() tea.Msg {
		if err := p.Load(options.Location); err != nil {
			return loadedMsg{err: err}
		}

		if options.Start > 0 {
			if err := p.Seek(options.Start, false); err != nil {
				return loadedMsg{err: fmt.Errorf("seek to start: %w", err)}
			}
		}

		if !options.Paused {
			if err := p.Play(); err != nil {
				return loadedMsg{err: err}
			}
		}
		return loadedMsg{}
	}
}

func (b *statefulBubble) waitForEvents() tea.Cmd {
	p := b.player
	return func() tea.Msg {
		<-p.Notify()
		return eventsMsg(p.Poll())
	}
}

// waitForFrame renders the next presented frame off the UI goroutine.
func (b *statefulBubble) waitForFrame() tea.Cmd {
	screen, width, enabled := b.screen, b.previewWidth, b.preview
	return func() tea.Msg {
		<-screen.Updated()
		frame, ok := screen.Take()
		if !ok || !enabled {
			return pictureMsg("")
		}
		return pictureMsg(display.Render(frame.Image, width))
	}
}
