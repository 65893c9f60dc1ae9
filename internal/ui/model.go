// Package ui provides short-lived notifications shown next to the transport controls.
package ui

import (
	"time"

	"github.com/flicker-player/flicker/style"
	tea "github.com/charmbracelet/bubbletea"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 2 * time.Second

// NotificationMsg shows a notification.
type NotificationMsg struct {
	Text string
}

// ClearNotificationMsg hides the notification with the given id.
type ClearNotificationMsg struct {
	id int
}

// Model holds the notification currently on screen.
type Model struct {
	notification string
	id           int
}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

func clearAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearNotificationMsg{id: id}
	})
}

// Update shows and hides notifications.
// A newer notification resets the lifetime, stale clear ticks are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.id++
		m.notification = msg.Text
		return clearAfter(m.id, Lifetime)
	case ClearNotificationMsg:
		if msg.id == m.id {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the visible notification, or an empty string.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to line.
func (m *Model) View(line string) string {
	if m.notification == "" {
		return line
	}
	return line + "   " + style.Faint(m.notification)
}
