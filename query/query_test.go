package query

import (
	"testing"

	"github.com/pk-services/pks/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given remembered URLs", t, func() {
		rare := "https://www.last.fm/tag/jazz/tracks"
		frequent := "https://www.last.fm/tag/jungle/tracks"

		So(Remember(rare), ShouldBeNil)
		for i := 0; i < 3; i++ {
			So(Remember(frequent), ShouldBeNil)
		}

		Convey("The most used match comes first", func() {
			s := SuggestMany("lastfm/tag/j")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, frequent)
			So(s, ShouldContain, rare)
		})

		Convey("Matching ignores case", func() {
			So(Suggest("LAST.FM/TAG/JAZZ").MustGet(), ShouldEqual, rare)
		})

		Convey("Unrelated input suggests nothing", func() {
			So(Suggest("zzzzzz").IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Blank input is not remembered", t, func() {
		So(Remember("   "), ShouldBeNil)
		So(SuggestMany(""), ShouldNotContain, "")
	})
}
