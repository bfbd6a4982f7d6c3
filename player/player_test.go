package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestArgs(t *testing.T) {
	Convey("Given each program variant", t, func() {
		Convey("mpv puts options before the title and uri", func() {
			p := NewMPV()
			p.AddOptions(YtdlFormat(720), Shuffle())
			So(p.Args("Song", "https://example.com/v"), ShouldResemble, []string{
				"--ytdl-format=bestvideo[height<=720]+bestaudio/best[height<=720]",
				"--shuffle",
				"--title", "Song",
				"https://example.com/v",
			})

			p.ClearOptions()
			So(p.Options(), ShouldBeEmpty)
			So(p.Args("Song", "u"), ShouldResemble, []string{"--title", "Song", "u"})
		})

		Convey("ffplay names the window and reads the input quietly", func() {
			So(NewFFPlay().Args("T", "U"), ShouldResemble, []string{"-window_title", "T", "-loglevel", "quiet", "-i", "U"})
		})

		Convey("vlc runs without an interface and quits", func() {
			p := NewVLC()
			p.AddOptions("--fullscreen")
			So(p.Args("ignored", "U"), ShouldResemble, []string{"--fullscreen", "--intf", "dummy", "U", "vlc://quit"})
		})

		Convey("Titles are flattened to one line", func() {
			So(NewMPV().Args("a\nb\t", "U")[1], ShouldEqual, "a b")
		})
	})

	Convey("Playlist items use a start:end window", t, func() {
		So(YtdlRawPlaylistItems(1, 100), ShouldEqual, "--ytdl-raw-options=playlist-items=1:100")
	})
}

func TestDummy(t *testing.T) {
	Convey("The dummy player", t, func() {
		p := NewDummy()

		Convey("Always passes its check", func() {
			So(p.Check(), ShouldBeTrue)
		})

		Convey("Describes the play instead of spawning", func() {
			proc, err := p.Play("Song", "https://example.com/v")
			So(err, ShouldBeNil)
			So(proc.String(), ShouldEqual, "dummy(title=Song, uri=https://example.com/v)")
			So(proc.Wait(), ShouldBeNil)
			So(proc.Kill(), ShouldBeNil)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("The built-in variants are registered in order", t, func() {
		So(List(), ShouldResemble, []string{Dummy, MPV, FFPlay, VLC})
	})

	Convey("New constructs by name", t, func() {
		p, err := New(FFPlay)
		So(err, ShouldBeNil)
		So(p.Name(), ShouldEqual, FFPlay)

		_, err = New("winamp")
		So(err, ShouldNotBeNil)
	})

	Convey("Given a host without any player program", t, func() {
		t.Setenv("PATH", t.TempDir())

		Convey("Checks report false instead of failing", func() {
			So(NewMPV().Check(), ShouldBeFalse)
			So(NewVLC().Check(), ShouldBeFalse)
		})

		Convey("Probing falls back to the dummy player", func() {
			So(Get("").Name(), ShouldEqual, Dummy)
		})

		Convey("A named player is built without probing", func() {
			So(Get(MPV).Name(), ShouldEqual, MPV)
			So(Get("winamp").Name(), ShouldEqual, Dummy)
		})

		Convey("Playing a missing program is an error", func() {
			_, err := NewMPV().Play("Song", "https://example.com/v")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Targets that look like flags are refused", t, func() {
		_, err := NewMPV().Play("x", "--script=evil.lua")
		So(err, ShouldNotBeNil)
	})

	Convey("Register replaces a constructor in place", t, func() {
		Register(VLC, func() Player {
			p := NewVLC().(*Program)
			p.Path = "/opt/vlc/vlc"
			return p
		})
		defer Register(VLC, NewVLC)

		So(List(), ShouldResemble, []string{Dummy, MPV, FFPlay, VLC})
		p, _ := New(VLC)
		So(p.(*Program).Path, ShouldEqual, "/opt/vlc/vlc")
	})
}
