package filesystem

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestWriteFileAtomic(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()

		Convey("When writing a file in a missing directory", func() {
			err := WriteFileAtomic("/a/b/file.txt", []byte("hello"), 0644)

			Convey("Then the content is in place and no temp file remains", func() {
				So(err, ShouldBeNil)
				So(string(lo.Must(API().ReadFile("/a/b/file.txt"))), ShouldEqual, "hello")
				So(lo.Must(API().Exists("/a/b/file.txt.tmp")), ShouldBeFalse)
			})
		})

		Convey("When overwriting an existing file", func() {
			So(WriteFileAtomic("/f.txt", []byte("one"), 0644), ShouldBeNil)
			So(WriteFileAtomic("/f.txt", []byte("two"), 0644), ShouldBeNil)
			So(string(lo.Must(API().ReadFile("/f.txt"))), ShouldEqual, "two")
		})
	})
}
