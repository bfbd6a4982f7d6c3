package player

import "fmt"

const (
	Dummy  = "dummy"
	MPV    = "mpv"
	FFPlay = "ffplay"
	VLC    = "vlc"
)

func NewMPV() Player {
	return &Program{
		name: MPV,
		Path: "mpv",
		args: func(title, uri string) []string {
			return []string{"--title", title, uri}
		},
		check: []string{"--version"},
	}
}

func NewFFPlay() Player {
	return &Program{
		name: FFPlay,
		Path: "ffplay",
		args: func(title, uri string) []string {
			return []string{"-window_title", title, "-loglevel", "quiet", "-i", uri}
		},
		check: []string{"-version"},
	}
}

// NewVLC plays without an interface and quits at the end of the queue.
func NewVLC() Player {
	return &Program{
		name: VLC,
		Path: "vlc",
		args: func(_, uri string) []string {
			return []string{"--intf", "dummy", uri, "vlc://quit"}
		},
		check: []string{"--intf", "dummy", "vlc://quit"},
	}
}

// YtdlFormat limits mpv's yt-dlp hook to streams at most height lines tall.
func YtdlFormat(height int) string {
	return fmt.Sprintf("--ytdl-format=bestvideo[height<=%[1]d]+bestaudio/best[height<=%[1]d]", height)
}

// YtdlRawPlaylistItems restricts a playlist to the items start through end.
func YtdlRawPlaylistItems(start, end int) string {
	return fmt.Sprintf("--ytdl-raw-options=playlist-items=%d:%d", start, end)
}

func Shuffle() string {
	return "--shuffle"
}
