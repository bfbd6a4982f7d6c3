package tui

import (
	"fmt"
	"time"

	"github.com/pk-services/pks/extract"
	"github.com/pk-services/pks/history"
	"github.com/pk-services/pks/icon"
	"github.com/pk-services/pks/style"
	"github.com/pk-services/pks/util"
)

// listItem implements list.DefaultItem over cached entries and history records.
type listItem struct {
	internal any
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case extract.Info:
		if title := e.Title(); title != "" {
			return title
		}
		return e.Target()
	case *history.Entry:
		return e.Title
	default:
		return ""
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case extract.Info:
		desc := e.Target()
		if d := e.Duration(); d >= 0 {
			desc = fmt.Sprintf("%s %s", style.Faint(duration(d)), desc)
		}
		return desc
	case *history.Entry:
		return fmt.Sprintf("%s %s %s",
			icon.Get(icon.Player),
			style.Faint(fmt.Sprintf("%s, %s, %s", e.Player, util.Quantify(e.Plays, "play", "plays"), e.LastPlayed.Format(time.DateOnly))),
			e.URL,
		)
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	return t.Title()
}

// target returns the URL handed to the player or the browser.
func (t *listItem) target() string {
	switch e := t.internal.(type) {
	case extract.Info:
		return e.Target()
	case *history.Entry:
		return e.URL
	default:
		return ""
	}
}

// entry returns the item as a playlist entry.
func (t *listItem) entry() extract.Info {
	switch e := t.internal.(type) {
	case extract.Info:
		return e
	case *history.Entry:
		return extract.NewURLEntry(e.URL)
	default:
		return extract.Info{}
	}
}

func duration(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}
