package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pk-services/pks/internal/ui"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	notifyCmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.raiseError(msg)
		return b, notifyCmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, notifyCmd
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case entriesLoadedMsg:
		b.stopLoading()
		b.newState(entriesState)
		return b, tea.Batch(notifyCmd, b.entriesC.SetItems(toItems(msg)))
	case historyLoadedMsg:
		b.stopLoading()
		b.newState(historyState)
		return b, tea.Batch(notifyCmd, b.historyC.SetItems(toItems(msg)))
	case ui.Notification:
		b.stopLoading()
		return b, notifyCmd
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		if b.busy && b.state != errorState {
			return b, nil
		}
	}

	switch b.state {
	case entriesState:
		return b, tea.Batch(notifyCmd, b.updateEntries(msg))
	case historyState:
		return b, tea.Batch(notifyCmd, b.updateHistory(msg))
	case errorState:
		return b, tea.Batch(notifyCmd, b.updateError(msg))
	default:
		return b, notifyCmd
	}
}

func (b *statefulBubble) updateEntries(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && b.entriesC.FilterState() != list.Filtering {
		item, ok := selected(&b.entriesC)

		switch {
		case key.Matches(keyMsg, b.keymap.play) && ok:
			return tea.Batch(b.startLoading(), b.play(item))
		case key.Matches(keyMsg, b.keymap.download) && ok:
			return tea.Batch(b.startLoading(), b.download(item))
		case key.Matches(keyMsg, b.keymap.openURL) && ok:
			return b.openURL(item)
		case key.Matches(keyMsg, b.keymap.more):
			return tea.Batch(b.startLoading(), b.loadMore())
		case key.Matches(keyMsg, b.keymap.save):
			return tea.Batch(b.startLoading(), b.saveM3U())
		case key.Matches(keyMsg, b.keymap.history):
			return tea.Batch(b.startLoading(), b.loadHistory())
		}
	}

	var cmd tea.Cmd
	b.entriesC, cmd = b.entriesC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && b.historyC.FilterState() != list.Filtering {
		item, ok := selected(&b.historyC)

		switch {
		case key.Matches(keyMsg, b.keymap.back) && b.historyC.FilterState() == list.Unfiltered:
			b.previousState()
			return nil
		case key.Matches(keyMsg, b.keymap.play) && ok:
			return tea.Batch(b.startLoading(), b.play(item))
		case key.Matches(keyMsg, b.keymap.remove) && ok:
			return b.removeHistory(item)
		case key.Matches(keyMsg, b.keymap.openURL) && ok:
			return b.openURL(item)
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, b.keymap.quit):
			return tea.Quit
		case key.Matches(keyMsg, b.keymap.back):
			if len(b.statesHistory) == 0 {
				return tea.Quit
			}
			b.previousState()
		}
	}
	return nil
}
