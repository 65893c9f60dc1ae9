package tui

import (
	"errors"
	"fmt"

	"github.com/flicker-player/flicker/internal/ui"
	"github.com/flicker-player/flicker/key"
	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/player"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	speedStep = 0.25

	defaultSeekStep   = 5
	defaultVolumeStep = 5
)

func step(k string, fallback int) int {
	if v := viper.GetInt(k); v > 0 {
		return v
	}
	return fallback
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	case spinner.TickMsg:
		if b.state != loadingState {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case loadedMsg:
		if msg.err != nil {
			b.raiseError(msg.err)
			return b, nil
		}
		b.setState(playerState)
		b.duration = b.player.Duration()
		b.position = b.player.Position()
		b.playback = b.player.State()
		return b, nil
	case ui.NotificationMsg, ui.ClearNotificationMsg:
		return b, b.notifier.Update(msg)
	case eventsMsg:
		b.handleEvents(msg)
		return b, b.waitForEvents()
	case pictureMsg:
		if msg != "" {
			b.picture = string(msg)
		}
		return b, b.waitForFrame()
	}

	switch b.state {
	case playerState:
		return b.updatePlayer(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) handleEvents(events []player.Event) {
	for _, e := range events {
		switch e.Kind {
		case player.TimeUpdate:
			b.position = e.Position
		case player.DurationChanged:
			b.duration = e.Duration
		case player.StateChanged:
			b.playback = e.State
			if e.State != player.Stopped {
				b.ended = false
			}
		case player.Ended:
			b.ended = true
			b.position = e.Position
		case player.Error:
			b.status = e.Err.Error()
		}
	}
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	var (
		err    error
		notify tea.Cmd
	)
	p := b.player
	seekStep := float64(step(key.PlayerSeekStep, defaultSeekStep))
	volumeStep := step(key.PlayerVolumeStep, defaultVolumeStep)

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return b, tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.playPause):
		err = p.TogglePause()
	case bubblesKey.Matches(keyMsg, b.keymap.stop):
		err = p.Stop()
	case bubblesKey.Matches(keyMsg, b.keymap.seekForward):
		err = p.Seek(seekStep, true)
	case bubblesKey.Matches(keyMsg, b.keymap.seekBackward):
		err = p.Seek(-seekStep, true)
	case bubblesKey.Matches(keyMsg, b.keymap.volumeUp):
		p.SetVolume(p.Params().Volume + volumeStep)
		notify = ui.Notify(fmt.Sprintf("volume %d%%", p.Params().Volume))
	case bubblesKey.Matches(keyMsg, b.keymap.volumeDown):
		p.SetVolume(p.Params().Volume - volumeStep)
		notify = ui.Notify(fmt.Sprintf("volume %d%%", p.Params().Volume))
	case bubblesKey.Matches(keyMsg, b.keymap.mute):
		p.ToggleMute()
		notify = ui.Notify(lo.Ternary(p.Params().Muted, "muted", "unmuted"))
	case bubblesKey.Matches(keyMsg, b.keymap.faster):
		p.SetSpeed(p.Params().Speed + speedStep)
		notify = ui.Notify(fmt.Sprintf("speed x%.2f", p.Params().Speed))
	case bubblesKey.Matches(keyMsg, b.keymap.slower):
		p.SetSpeed(p.Params().Speed - speedStep)
		notify = ui.Notify(fmt.Sprintf("speed x%.2f", p.Params().Speed))
	case bubblesKey.Matches(keyMsg, b.keymap.preview):
		b.preview = !b.preview
		b.picture = ""
		return b, ui.Notify(lo.Ternary(b.preview, "preview on", "preview off"))
	case bubblesKey.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return b, nil
	default:
		return b, nil
	}

	b.status = ""
	if err != nil {
		log.Warnf("command %q: %s", keyMsg.String(), err)
		b.status = err.Error()
		if errors.Is(err, player.ErrCancellationTimeout) {
			b.status = fmt.Sprintf("playback error: %s", err)
		}
	}
	return b, notify
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(keyMsg, b.keymap.quit) {
		return b, tea.Quit
	}
	return b, nil
}
