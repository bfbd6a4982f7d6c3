package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Versions compare part by part", t, func() {
		So(must(Compare("0.3.0", "0.3.0")), ShouldEqual, 0)
		So(must(Compare("v0.4.0", "0.3.9")), ShouldEqual, 1)
		So(must(Compare("1.2.3", "1.10.0")), ShouldEqual, -1)
	})

	Convey("Malformed versions are errors", t, func() {
		_, err := Compare("latest", "0.3.0")
		So(err, ShouldNotBeNil)
	})
}

func must(n int, err error) int {
	if err != nil {
		panic(err)
	}
	return n
}
