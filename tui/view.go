package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case entriesState:
		output = listExtraPaddingStyle.Render(b.entriesC.View())
	case historyState:
		output = listExtraPaddingStyle.Render(b.historyC.View())
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(true, []string{
		style.Title("Loading"),
		"",
		b.spinnerC.View() + " " + style.Faint(b.options.URL),
	})
}

func (b *statefulBubble) viewError() string {
	msg := "unknown error"
	if b.lastError != nil {
		msg = b.lastError.Error()
	}

	return b.renderLines(true, []string{
		style.Tag(color.New("230"), color.Red)("Error"),
		"",
		icon.Get(icon.Fail) + " " + style.Fg(color.Red)(wrap.String(msg, max(b.width-2, 20))),
	})
}

// renderLines joins lines, pushing the help to the bottom when addHelp is set.
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
