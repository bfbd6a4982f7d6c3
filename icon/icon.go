// Package icon renders status symbols in the variant chosen by cli.icons.
package icon

import (
	"github.com/pk-services/pks/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants lists the accepted values of cli.icons.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

type Icon int

const (
	Fail Icon = iota
	Success
	Mark
	Cross
	Play
	Download
	Image
	Link
	Playlist
	Tor
	Player
	Progress
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

var icons = map[Icon]iconDef{
	Fail:     {"💀", "\uf05e", "X"},
	Success:  {"🎉", "\uf058", "OK"},
	Mark:     {"✔️", "\uf00c", "~"},
	Cross:    {"❌", "\uf00d", "x"},
	Play:     {"▶️", "\uf04b", ">"},
	Download: {"📥", "\uf019", "v"},
	Image:    {"🖼️", "\uf03e", "#"},
	Link:     {"🔗", "\uf0c1", "@"},
	Playlist: {"📃", "\uf0cb", "="},
	Tor:      {"🧅", "\uf023", "T"},
	Player:   {"📺", "\uf26c", "P"},
	Progress: {"👾", "\uf110", "..."},
}

func (d iconDef) get() string {
	switch viper.GetString(key.CliIcons) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

// Get renders i, or returns an empty string for an unknown variant.
func Get(i Icon) string {
	return icons[i].get()
}
