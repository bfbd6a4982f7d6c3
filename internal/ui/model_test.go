package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given an empty notifier", t, func() {
		m := &Model{}
		So(m.View("a\nb"), ShouldEqual, "a\nb")

		Convey("A notification is kept until its own clear message", func() {
			So(m.Update(Notify("saved")()), ShouldNotBeNil)
			So(m.Current(), ShouldEqual, "saved")
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")

			stale := ClearNotificationMsg{}
			So(m.Update(stale), ShouldBeNil)
			So(m.Current(), ShouldEqual, "saved")

			So(m.Update(ClearNotificationMsg{at: m.notifiedAt}), ShouldBeNil)
			So(m.Current(), ShouldBeEmpty)
		})

		Convey("Other messages are ignored", func() {
			So(m.Update("plain string"), ShouldBeNil)
			So(m.Current(), ShouldBeEmpty)
		})
	})
}
