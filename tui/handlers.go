package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pk-services/pks/extract"
	"github.com/pk-services/pks/history"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/internal/ui"
	"github.com/pk-services/pks/open"
	"github.com/samber/lo"
)

type (
	entriesLoadedMsg []extract.Info
	historyLoadedMsg []*history.Entry
)

// load lists rawURL, replacing the playlist cache.
func (b *statefulBubble) load(rawURL string) tea.Cmd {
	return func() tea.Msg {
		if err := b.playlist.SetURL(b.ctx, rawURL); err != nil {
			return err
		}
		return entriesLoadedMsg(b.playlist.Cache())
	}
}

// loadMore appends the next batch to the cache.
func (b *statefulBubble) loadMore() tea.Cmd {
	return func() tea.Msg {
		b.playlist.ExtractInfo()
		return entriesLoadedMsg(b.playlist.Cache())
	}
}

func (b *statefulBubble) play(item *listItem) tea.Cmd {
	return func() tea.Msg {
		b.playlist.Play(b.ctx, item.entry(), b.options.Height)
		return ui.Notification(fmt.Sprintf("%s %s", icon.Get(icon.Play), item.Title()))
	}
}

func (b *statefulBubble) download(item *listItem) tea.Cmd {
	return func() tea.Msg {
		b.playlist.Download(b.ctx, item.entry())
		return ui.Notification(fmt.Sprintf("%s %s", icon.Get(icon.Download), item.Title()))
	}
}

func (b *statefulBubble) saveM3U() tea.Cmd {
	return func() tea.Msg {
		path, err := b.playlist.SaveM3U(b.ctx, b.options.Name)
		if err != nil {
			return err
		}
		return ui.Notification(fmt.Sprintf("%s saved to %s", icon.Get(icon.Playlist), path))
	}
}

func (b *statefulBubble) loadHistory() tea.Cmd {
	return func() tea.Msg {
		entries, err := history.Recent()
		if err != nil {
			return err
		}
		return historyLoadedMsg(entries)
	}
}

func (b *statefulBubble) removeHistory(item *listItem) tea.Cmd {
	return func() tea.Msg {
		if err := history.Remove(item.target()); err != nil {
			return err
		}
		entries, err := history.Recent()
		if err != nil {
			return err
		}
		return historyLoadedMsg(entries)
	}
}

func (b *statefulBubble) openURL(item *listItem) tea.Cmd {
	return func() tea.Msg {
		if err := open.Start(item.target()); err != nil {
			return err
		}
		return nil
	}
}

func toItems[T any](values []T) []list.Item {
	return lo.Map(values, func(v T, _ int) list.Item {
		return &listItem{internal: v}
	})
}

// selected returns the highlighted item of l, if any.
func selected(l *list.Model) (*listItem, bool) {
	item, ok := l.SelectedItem().(*listItem)
	return item, ok
}
