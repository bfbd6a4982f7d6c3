// Package extract resolves media pages into metadata records through yt-dlp
// and selects a playable format among the ones it reports.
package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Record types reported by the extractor under "_type".
const (
	TypeVideo    = "video"
	TypePlaylist = "playlist"
	TypeURL      = "url"
)

// Info is a metadata record as produced by the extractor: a single item,
// a playlist holding entries, or a bare url reference to resolve later.
type Info map[string]any

// ParseInfo decodes the JSON document printed by the extractor.
func ParseInfo(data []byte) (Info, error) {
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode info: %w", err)
	}
	return info, nil
}

// NewURLEntry returns a reference to url to be resolved later.
func NewURLEntry(url string) Info {
	return Info{"_type": TypeURL, "url": url}
}

func (i Info) IsEmpty() bool {
	return len(i) == 0
}

// Type returns the record type. Records without a tag are videos.
func (i Info) Type() string {
	if i.IsEmpty() {
		return ""
	}
	if t := i.String("_type"); t != "" {
		return t
	}
	return TypeVideo
}

func (i Info) IsPlaylist() bool {
	return i.Type() == TypePlaylist
}

// String returns the value of key in its string form, or "" when absent.
func (i Info) String(key string) string {
	return stringify(i[key])
}

func (i Info) Title() string {
	return i.String("title")
}

func (i Info) URL() string {
	return i.String("url")
}

func (i Info) WebpageURL() string {
	return i.String("webpage_url")
}

// Target returns the page URL when known, the plain url otherwise.
func (i Info) Target() string {
	if u := i.WebpageURL(); u != "" {
		return u
	}
	return i.URL()
}

// Duration returns the duration in whole seconds, or -1 when unknown.
func (i Info) Duration() int {
	switch v := i["duration"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return -1
	}
}

// Entries returns the entries of a playlist record.
func (i Info) Entries() []Info {
	return records[Info](i["entries"])
}

// Formats returns the format records of an item.
func (i Info) Formats() []Format {
	return records[Format](i["formats"])
}

// Format describes one playable encoding of an item.
type Format map[string]any

func (f Format) String(key string) string {
	return stringify(f[key])
}

func (f Format) Has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f Format) URL() string {
	return f.String("url")
}

// Name returns the human readable format description.
func (f Format) Name() string {
	return f.String("format")
}

func records[T ~map[string]any](v any) []T {
	switch list := v.(type) {
	case []T:
		return list
	case []map[string]any:
		out := make([]T, len(list))
		for i, m := range list {
			out[i] = T(m)
		}
		return out
	case []any:
		out := make([]T, 0, len(list))
		for _, item := range list {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, T(m))
			case T:
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
