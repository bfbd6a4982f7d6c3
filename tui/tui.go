// Package tui is an interactive browser over the cached entries of a playlist.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pk-services/pks/playlist"
)

// Options configures the browser.
type Options struct {
	// URL is listed when the browser starts.
	URL string
	// Height is the maximum video height requested from the player.
	Height int
	// Name is the file name used when the cache is saved as M3U.
	Name string
}

// Run browses pl until the user quits.
func Run(ctx context.Context, pl *playlist.Playlist, options *Options) error {
	bubble := newBubble(ctx, pl, options)
	bubble.setState(loadingState)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
