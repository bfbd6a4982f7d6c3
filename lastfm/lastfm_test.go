package lastfm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const album = `<html><body><table>
<tr><td class="chartlist-play"><a href="https://www.youtube.com/watch?v=one">play</a></td><td>One</td></tr>
<tr><td class="chartlist-play"><a href="/music/Artist/_/Two">play</a></td><td>Two</td></tr>
<tr><td class="chartlist-play"></td><td>Unavailable</td></tr>
<tr><td class="chartlist-name"><a href="/music/Artist/_/Three">Three</a></td></tr>
</table></body></html>`

func TestURL(t *testing.T) {
	Convey("Given builder fields", t, func() {
		Convey("An artist alone lists the tracks of the week", func() {
			So(URL{Artist: "Daft Punk"}.String(), ShouldEqual, "https://www.last.fm/music/Daft%20Punk/+tracks?date_preset=LAST_7_DAYS")
		})

		Convey("A song or an album narrows the artist, album first", func() {
			So(URL{Artist: "A", Song: "S"}.String(), ShouldEqual, "https://www.last.fm/music/A/_/S")
			So(URL{Artist: "A", Song: "S", Album: "B"}.String(), ShouldEqual, "https://www.last.fm/music/A/B")
		})

		Convey("A tag wins over an artist and a url over everything", func() {
			So(URL{Artist: "A", Tag: "jazz"}.String(), ShouldEqual, "https://www.last.fm/tag/jazz/tracks")
			So(URL{URL: "https://x.example/y", Tag: "jazz"}.String(), ShouldEqual, "https://x.example/y")
		})

		Convey("Nothing gives an empty url", func() {
			So(URL{Song: "orphan"}.String(), ShouldBeEmpty)
		})
	})
}

func TestPage(t *testing.T) {
	Convey("Given an album page", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, album)
		}))
		defer server.Close()

		page, err := Load(context.Background(), server.URL+"/music/Artist/Album")
		So(err, ShouldBeNil)

		Convey("Play links are listed in order and resolved", func() {
			So(page.Tracks(), ShouldResemble, []string{
				"https://www.youtube.com/watch?v=one",
				server.URL + "/music/Artist/_/Two",
			})
		})
	})
}
