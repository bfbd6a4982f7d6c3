package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/pk-services/pks/filesystem"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeExtractor struct {
	infos map[string]Info
	calls int
}

var errUnavailable = errors.New("video unavailable")

func (f *fakeExtractor) Extract(_ context.Context, url string, _ Options) (Info, error) {
	f.calls++
	info, ok := f.infos[url]
	if !ok {
		return nil, errUnavailable
	}
	return info, nil
}

func (f *fakeExtractor) Download(context.Context, string, string) error {
	return nil
}

func heights(hs ...int) []Format {
	formats := make([]Format, len(hs))
	for i, h := range hs {
		formats[i] = Format{"height": h, "url": "u" + stringify(h), "format": stringify(h) + "p"}
	}
	return formats
}

func TestSelectFormat(t *testing.T) {
	Convey("Given formats of 480, 720 and 1080 lines", t, func() {
		formats := heights(480, 720, 1080)

		Convey("The nearest at or above the target is chosen", func() {
			f, ok := SelectFormat(formats, mo.Some(720))
			So(ok, ShouldBeTrue)
			So(f["height"], ShouldEqual, 720)

			f, _ = SelectFormat(formats, mo.Some(500))
			So(f["height"], ShouldEqual, 720)
		})

		Convey("Without a target the highest is chosen", func() {
			f, _ := SelectFormat(formats, mo.None[int]())
			So(f["height"], ShouldEqual, 1080)
		})

		Convey("A target above every format falls back to the highest", func() {
			f, _ := SelectFormat(formats, mo.Some(2000))
			So(f["height"], ShouldEqual, 1080)
		})
	})

	Convey("Key priority prefers quality, then format", t, func() {
		formats := []Format{
			{"format": "22 - 1280x720", "height": 1080},
			{"format": "18 - 640x360", "height": 2160},
		}
		f, _ := SelectFormat(formats, mo.None[int]())
		So(f.Name(), ShouldEqual, "22 - 1280x720")

		formats = append(formats, Format{"quality": 3, "format": "low"})
		f, _ = SelectFormat(formats, mo.None[int]())
		So(f.Name(), ShouldEqual, "low")
	})

	Convey("Values without digits rank as zero and ties keep list order", t, func() {
		formats := []Format{
			{"format": "audio only", "url": "a"},
			{"format": "best", "url": "b"},
		}
		f, _ := SelectFormat(formats, mo.None[int]())
		So(f.URL(), ShouldEqual, "a")
	})

	Convey("Records missing every key yield the last one", t, func() {
		f, ok := SelectFormat([]Format{{"url": "first"}, {"url": "last"}}, mo.Some(720))
		So(ok, ShouldBeTrue)
		So(f.URL(), ShouldEqual, "last")

		_, ok = SelectFormat(nil, mo.None[int]())
		So(ok, ShouldBeFalse)
	})
}

func TestService(t *testing.T) {
	ctx := context.Background()
	single := "https://video.example.com/watch?v=1"
	list := "https://video.example.com/playlist?list=2"
	bare := "https://radio.example.com/stream"

	fake := &fakeExtractor{infos: map[string]Info{
		single: {
			"title":       "Song",
			"webpage_url": single,
			"formats":     []any{map[string]any{"height": 360.0, "format": "360p", "url": "s360"}, map[string]any{"height": 720.0, "format": "720p", "url": "s720"}},
		},
		list: {
			"_type":       "playlist",
			"title":       "Mix",
			"webpage_url": list,
			"entries": []any{
				map[string]any{"title": "One", "formats": []any{map[string]any{"height": 480.0, "format": "480p", "url": "o480"}}},
				map[string]any{"title": "Two", "formats": []any{map[string]any{"height": 1080.0, "format": "1080p", "url": "t1080"}}},
			},
		},
		bare: {"title": "Radio", "url": "icy://radio", "format": "mp3"},
	}}

	Convey("Given a fresh service", t, func() {
		s := NewService(fake, Options{})

		Convey("Nothing is valid before a resolution", func() {
			So(errors.Is(s.Validate(), ErrNotResolved), ShouldBeTrue)
			So(s.Count(), ShouldEqual, 0)
			_, _, err := s.Video(mo.None[int]())
			So(err, ShouldNotBeNil)
		})

		Convey("A single item resolves to its best format", func() {
			result := s.Resolve(ctx, single)
			So(result.IsOk(), ShouldBeTrue)
			So(s.Validate(), ShouldBeNil)
			So(s.URL(), ShouldEqual, single)
			So(s.Count(), ShouldEqual, 1)

			title, url, err := s.Video(mo.None[int]())
			So(err, ShouldBeNil)
			So(title, ShouldEqual, "Song - 720p")
			So(url, ShouldEqual, "s720")

			names, err := s.FormatList()
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"360p", "720p"})
		})

		Convey("A playlist is navigated through its cursor", func() {
			So(s.Resolve(ctx, list).IsOk(), ShouldBeTrue)
			So(s.Count(), ShouldEqual, 2)

			title, _, _ := s.Video(mo.None[int]())
			So(title, ShouldEqual, "One - 480p")

			s.SetCurrent(10)
			So(s.Current(), ShouldEqual, 1)
			_, url, _ := s.Video(mo.Some(720))
			So(url, ShouldEqual, "t1080")

			s.SetCurrent(-3)
			So(s.Current(), ShouldEqual, 0)
		})

		Convey("A playlist video is titled after its entry, not the playlist", func() {
			So(s.Resolve(ctx, list).IsOk(), ShouldBeTrue)
			s.SetCurrent(1)
			title, _, err := s.Video(mo.None[int]())
			So(err, ShouldBeNil)
			So(title, ShouldEqual, "Two - 1080p")
			So(title, ShouldNotContainSubstring, "Mix")
		})

		Convey("An item without formats is its own format", func() {
			So(s.Resolve(ctx, bare).IsOk(), ShouldBeTrue)
			title, url, err := s.Video(mo.Some(720))
			So(err, ShouldBeNil)
			So(title, ShouldEqual, "Radio - mp3")
			So(url, ShouldEqual, "icy://radio")
		})

		Convey("A failed resolution is carried by the result", func() {
			result := s.Resolve(ctx, "https://video.example.com/gone")
			So(result.IsError(), ShouldBeTrue)
			So(errors.Is(s.Validate(), errUnavailable), ShouldBeTrue)
			So(s.Infos().IsEmpty(), ShouldBeTrue)
		})

		Convey("An invalid URL never reaches the extractor", func() {
			calls := fake.calls
			So(s.Resolve(ctx, "not a url").IsError(), ShouldBeTrue)
			So(fake.calls, ShouldEqual, calls)
		})
	})
}

func TestInfo(t *testing.T) {
	Convey("Given a decoded flat playlist", t, func() {
		info, err := ParseInfo([]byte(`{"_type":"playlist","entries":[{"_type":"url","url":"https://a","title":"A","duration":215.4},{"_type":"url","url":"https://b"}]}`))
		So(err, ShouldBeNil)

		Convey("Entries keep their type, title and duration", func() {
			entries := info.Entries()
			So(entries, ShouldHaveLength, 2)
			So(entries[0].Type(), ShouldEqual, TypeURL)
			So(entries[0].Duration(), ShouldEqual, 215)
			So(entries[1].Duration(), ShouldEqual, -1)
			So(entries[1].Target(), ShouldEqual, "https://b")
		})
	})

	Convey("Untagged records are videos and empty ones have no type", t, func() {
		So(Info{"title": "x"}.Type(), ShouldEqual, TypeVideo)
		So(Info{}.Type(), ShouldBeEmpty)
	})

	Convey("Playlist items use slice syntax", t, func() {
		So(Options{PlaylistStart: 1, PlaylistEnd: 50}.playlistItems(), ShouldEqual, "1:50")
		So(Options{PlaylistStart: 5}.playlistItems(), ShouldEqual, "5:")
		So(Options{}.playlistItems(), ShouldBeEmpty)
	})
}

func TestCached(t *testing.T) {
	Convey("Given a cached extractor", t, func() {
		fake := &fakeExtractor{infos: map[string]Info{"https://c.example.com/v": {"title": "Cached"}}}
		ex := Cached(fake)
		ctx := context.Background()

		Convey("A second extraction is served from disk", func() {
			first, err := ex.Extract(ctx, "https://c.example.com/v", Options{Flat: true})
			So(err, ShouldBeNil)
			second, err := ex.Extract(ctx, "https://c.example.com/v", Options{Flat: true})
			So(err, ShouldBeNil)
			So(second.Title(), ShouldEqual, first.Title())
			So(fake.calls, ShouldEqual, 1)
		})

		Convey("Failures are not stored", func() {
			_, err := ex.Extract(ctx, "https://c.example.com/missing", Options{})
			So(err, ShouldNotBeNil)
			_, err = ex.Extract(ctx, "https://c.example.com/missing", Options{})
			So(err, ShouldNotBeNil)
			So(fake.calls, ShouldEqual, 2)
		})
	})
}
