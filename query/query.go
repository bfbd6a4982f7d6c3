// Package query remembers the URLs given to pks and suggests them back for
// shell completion.
package query

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/pk-services/pks/filesystem"
	"github.com/pk-services/pks/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank int    `json:"rank"`
	URL  string `json:"url"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Remember records a use of url.
func Remember(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*record)
	}

	if r, ok := cached[url]; ok {
		r.Rank++
	} else {
		cached[url] = &record{Rank: 1, URL: url}
	}

	return cacher.Set(cached)
}

// Suggest returns the best ranked URL matching the partial input.
func Suggest(partial string) mo.Option[string] {
	suggestions := SuggestMany(partial)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns the remembered URLs fuzzily matching the partial
// input, most used first.
func SuggestMany(partial string) []string {
	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return []string{}
	}

	partial = strings.TrimSpace(partial)
	records := lo.Filter(lo.Values(cached), func(r *record, _ int) bool {
		return fuzzy.MatchFold(partial, r.URL)
	})

	slices.SortFunc(records, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.URL, b.URL)
	})

	return lo.Map(records, func(r *record, _ int) string {
		return r.URL
	})
}
