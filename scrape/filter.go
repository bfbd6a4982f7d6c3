package scrape

import (
	"path"
	"regexp"
	"strings"

	"github.com/pk-services/pks/log"
	"github.com/pk-services/pks/parse"
)

// Filter keeps the pairs whose image base name contains a match of head and
// whose image matches one of ext followed by an optional query marker.
// An empty extension matches a bare dot, so {""} accepts every image with one.
// Invalid patterns yield no pairs.
func Filter(pairs *parse.Pairs, head string, ext []string) *parse.Pairs {
	filtered := parse.NewPairs()

	headRe, err := regexp.Compile(head)
	if err != nil {
		log.Debugf("head pattern %q: %s", head, err)
		return filtered
	}

	extRe, err := regexp.Compile(`\.(` + strings.Join(ext, "|") + `)\?*`)
	if err != nil {
		log.Debugf("ext pattern %q: %s", ext, err)
		return filtered
	}

	pairs.Each(func(image, link string) {
		if headRe.MatchString(path.Base(image)) && extRe.MatchString(image) {
			filtered.Set(image, link)
		}
	})

	return filtered
}
