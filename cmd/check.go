package cmd

import (
	"fmt"
	"os"

	"github.com/flicker-player/flicker/icon"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/util"
	"github.com/charmbracelet/lipgloss"
)

const minTerminalWidth, minTerminalHeight = 40, 12

// CheckTerminal exits with an explanation when standard output is not an interactive terminal
// or the terminal is too small for the transport controls.
func CheckTerminal() {
	if !util.IsTerminal() {
		printRequirementError("an interactive terminal", "Run flicker directly in a terminal instead of piping its output.")
		os.Exit(1)
	}

	width, height, err := util.TerminalSize()
	if err == nil && (width < minTerminalWidth || height < minTerminalHeight) {
		printRequirementError(
			fmt.Sprintf("a terminal of at least %dx%d cells", minTerminalWidth, minTerminalHeight),
			fmt.Sprintf("The current terminal is %dx%d. Enlarge the window and try again.", width, height),
		)
		os.Exit(1)
	}
}

func printRequirementError(requirement, hint string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Requirement", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("Playback requires %s.", requirement))
	suggestion := fmt.Sprintf("\n\n%s", style.New().Foreground(style.Accent).Bold(true).Render(hint))

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
