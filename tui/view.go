package tui

import (
	"fmt"
	"strings"

	"github.com/flicker-player/flicker/color"
	"github.com/flicker-player/flicker/icon"
	"github.com/flicker-player/flicker/player"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case playerState:
		return b.viewPlayer()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + style.Truncate(b.width)(b.options.Location),
		},
	)
}

func (b *statefulBubble) viewPlayer() string {
	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Get(icon.Film), style.Fg(color.Purple)(b.title))),
		"",
	}

	if b.preview && b.picture != "" {
		lines = append(lines, strings.Split(b.picture, "\n")...)
		lines = append(lines, "")
	}

	var ratio float64
	if b.duration > 0 {
		ratio = util.Clamp(b.position/b.duration, 0, 1)
	}

	lines = append(lines,
		b.progressC.ViewAs(ratio),
		style.Truncate(b.width)(b.notifier.View(b.statusLine())),
	)

	if b.status != "" {
		lines = append(lines, "", style.Fg(color.Red)(style.Truncate(b.width)(b.status)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) statusLine() string {
	var stateIcon, stateName string
	switch {
	case b.ended:
		stateIcon, stateName = icon.Get(icon.Ended), "ended"
	case b.playback == player.Playing:
		stateIcon, stateName = icon.Get(icon.Play), "playing"
	case b.playback == player.Paused:
		stateIcon, stateName = icon.Get(icon.Pause), "paused"
	default:
		stateIcon, stateName = icon.Get(icon.Stop), "stopped"
	}

	params := b.player.Params()
	volume := fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), params.Volume)
	if params.Muted {
		volume = fmt.Sprintf("%s muted", icon.Get(icon.Muted))
	}

	return strings.Join([]string{
		fmt.Sprintf("%s / %s", util.FormatTime(b.position), util.FormatTime(b.duration)),
		style.Faint(fmt.Sprintf("%s %s", stateIcon, stateName)),
		style.Faint(volume),
		style.Faint(fmt.Sprintf("%s x%.2f", icon.Get(icon.Speed), params.Speed)),
	}, "   ")
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(b.lastError.Error())
	errorMsg := wrap.String(errorBody, util.Max(b.width, 1))
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Could not play " + style.Fg(color.Purple)(b.title) + ":",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
