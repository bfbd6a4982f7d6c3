package tui

import tea "github.com/charmbracelet/bubbletea"

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.startLoading(), b.load(b.options.URL))
}
