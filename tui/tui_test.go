package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pk-services/pks/extract"
	"github.com/pk-services/pks/filesystem"
	"github.com/pk-services/pks/history"
	"github.com/pk-services/pks/internal/ui"
	"github.com/pk-services/pks/player"
	"github.com/pk-services/pks/playlist"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

const listURL = "https://video.example.com/playlist?list=tui"

type fakeExtractor map[string]extract.Info

func (f fakeExtractor) Extract(_ context.Context, url string, _ extract.Options) (extract.Info, error) {
	if info, ok := f[url]; ok {
		return info, nil
	}
	return nil, errors.New("unsupported url")
}

func (f fakeExtractor) Download(context.Context, string, string) error {
	return nil
}

func newTestBubble(url string) *statefulBubble {
	fake := fakeExtractor{
		listURL: {
			"_type": "playlist",
			"entries": []any{
				map[string]any{"_type": "url", "url": "https://video.example.com/watch?v=a", "title": "Alpha", "duration": 5.0},
				map[string]any{"_type": "url", "url": "https://video.example.com/watch?v=b", "title": "Bravo"},
			},
		},
		"https://video.example.com/watch?v=a": {"title": "Alpha", "webpage_url": "https://video.example.com/watch?v=a"},
	}
	pl := playlist.New(fake, player.NewDummy(), playlist.WithHistory(true), playlist.WithPlaylistsDir("/tui"))
	b := newBubble(context.Background(), pl, &Options{URL: url, Height: 720, Name: "browse"})
	b.setState(loadingState)
	b.resize(120, 40)
	return b
}

// run executes cmd and feeds every message it yields back into b.
func run(b *statefulBubble, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(b, c)
		}
	case entriesLoadedMsg, historyLoadedMsg, ui.Notification, error:
		b.Update(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowser(t *testing.T) {
	Convey("Given a browser over a playlist", t, func() {
		b := newTestBubble(listURL)
		So(b.View(), ShouldContainSubstring, "Loading")

		run(b, b.load(listURL))

		Convey("The cached entries are listed", func() {
			So(b.state, ShouldEqual, entriesState)
			So(b.entriesC.Items(), ShouldHaveLength, 2)
			So(b.View(), ShouldContainSubstring, "Alpha")
		})

		Convey("Keys are ignored while busy", func() {
			b.busy = true
			_, cmd := b.Update(runes("s"))
			So(cmd, ShouldBeNil)
		})

		Convey("Playing records the entry in history", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			run(b, cmd)
			So(b.busy, ShouldBeFalse)
			So(b.notifier.Current(), ShouldContainSubstring, "Alpha")

			played, err := history.Get()
			So(err, ShouldBeNil)
			So(played, ShouldContainKey, "https://video.example.com/watch?v=a")

			Convey("And the history view lists it", func() {
				_, cmd := b.Update(runes("h"))
				run(b, cmd)
				So(b.state, ShouldEqual, historyState)
				So(b.historyC.Items(), ShouldNotBeEmpty)

				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, entriesState)
			})
		})

		Convey("The cache can be saved", func() {
			_, cmd := b.Update(runes("s"))
			run(b, cmd)
			exists, _ := filesystem.API().Exists("/tui/browse.m3u")
			So(exists, ShouldBeTrue)
		})

		Convey("The next batch is appended", func() {
			_, cmd := b.Update(runes("n"))
			run(b, cmd)
			So(b.entriesC.Items(), ShouldHaveLength, 4)
		})
	})

	Convey("Given a url that cannot be listed", t, func() {
		b := newTestBubble("https://nothing.example.com")
		run(b, b.load("https://nothing.example.com"))

		So(b.state, ShouldEqual, errorState)
		So(b.View(), ShouldContainSubstring, "unsupported url")

		_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEsc})
		So(cmd, ShouldNotBeNil)
	})
}
