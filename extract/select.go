package extract

import (
	"regexp"
	"strconv"

	"github.com/pk-services/pks/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// formatKeys lists the comparison keys by priority.
var formatKeys = []string{"quality", "format", "height"}

var digitRun = regexp.MustCompile(`\d+`)

// SelectFormat picks one record of formats.
//
// The comparison key is the first of quality, format and height present in
// any record; records lacking it are ignored. Each record is ranked by the
// largest number found in the key's value, 0 when there is none. With a
// target, the lowest ranked record at or above it wins; otherwise, or when
// every record is below the target, the highest ranked one does. Ties go to
// the earliest record.
//
// When no record carries any key the last one is returned, the extractor
// ordering formats from worst to best. It returns false only for an empty list.
func SelectFormat(formats []Format, target mo.Option[int]) (Format, bool) {
	if len(formats) == 0 {
		return nil, false
	}

	key, ok := lo.Find(formatKeys, func(k string) bool {
		return lo.SomeBy(formats, func(f Format) bool { return f.Has(k) })
	})
	if !ok {
		return formats[len(formats)-1], true
	}

	candidates := lo.Filter(formats, func(f Format, _ int) bool { return f.Has(key) })
	log.Debugf("select format: key=%s candidates=%d target=%v", key, len(candidates), target.OrElse(-1))

	var (
		best      Format
		bestValue int
		found     bool
	)

	if h, ok := target.Get(); ok {
		for _, f := range candidates {
			v := rank(f, key)
			if v >= h && (!found || v < bestValue) {
				best, bestValue, found = f, v, true
			}
		}
	}

	if !found {
		for _, f := range candidates {
			v := rank(f, key)
			if !found || v > bestValue {
				best, bestValue, found = f, v, true
			}
		}
	}

	log.Debugf("select format: %s=%s", key, best.String(key))
	return best, true
}

func rank(f Format, key string) int {
	best := 0
	for _, run := range digitRun.FindAllString(f.String(key), -1) {
		n, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		best = max(best, n)
	}
	return best
}
