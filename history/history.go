// Package history keeps track of the media items played through pks.
package history

import (
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/pk-services/pks/filesystem"
	"github.com/pk-services/pks/where"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the recorded entries keyed by URL.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Save records a play of url. Playing a known URL again bumps its count
// and keeps the most recent title.
func Save(title, url, player string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	entry, ok := saved[url]
	if !ok {
		entry = &Entry{URL: url}
		saved[url] = entry
	}

	if title != "" {
		entry.Title = title
	}
	entry.Player = player
	entry.Plays++
	entry.LastPlayed = time.Now()

	return cacher.Set(saved)
}

// Recent lists the entries, most recently played first.
func Recent() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	slices.SortFunc(entries, func(a, b *Entry) int {
		return b.LastPlayed.Compare(a.LastPlayed)
	})
	return entries, nil
}

func Remove(url string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, url)
	return cacher.Set(saved)
}
