// Package ui keeps the short-lived status line shown under the browser.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pk-services/pks/style"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Notification is a message to display next to the current view.
type Notification string

// ClearNotificationMsg resets the status line.
type ClearNotificationMsg struct {
	at time.Time
}

// Model holds the notification currently shown.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// Notify returns a tea.Cmd that shows msg.
func Notify(msg string) tea.Cmd {
	return func() tea.Msg {
		return Notification(msg)
	}
}

func clearAfter(at time.Time) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Update handles Notification and ClearNotificationMsg, ignoring anything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case Notification:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return clearAfter(m.notifiedAt)
	case ClearNotificationMsg:
		// a newer notification keeps its own timer
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the visible notification, empty if none.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
