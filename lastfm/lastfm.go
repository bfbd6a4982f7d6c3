// Package lastfm builds Last.fm listing URLs and reads the tracks of album pages.
package lastfm

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/pk-services/pks/log"
	"github.com/pk-services/pks/network"
	"github.com/pk-services/pks/parse"
)

const base = "https://www.last.fm"

// URL describes a Last.fm listing.
// An explicit URL wins over a tag, which wins over an artist.
// With an artist, an album wins over a song.
type URL struct {
	URL    string
	Tag    string
	Artist string
	Song   string
	Album  string
}

func (u URL) String() string {
	switch {
	case u.URL != "":
		return u.URL
	case u.Tag != "":
		return fmt.Sprintf("%s/tag/%s/tracks", base, segment(u.Tag))
	case u.Artist == "":
		return ""
	case u.Album != "":
		return fmt.Sprintf("%s/music/%s/%s", base, segment(u.Artist), segment(u.Album))
	case u.Song != "":
		return fmt.Sprintf("%s/music/%s/_/%s", base, segment(u.Artist), segment(u.Song))
	default:
		return fmt.Sprintf("%s/music/%s/+tracks?date_preset=LAST_7_DAYS", base, segment(u.Artist))
	}
}

// segment escapes s the way Last.fm writes names in paths.
func segment(s string) string {
	return url.PathEscape(s)
}

// Page is a loaded Last.fm page.
type Page struct {
	url *url.URL
	doc *goquery.Document
}

// Load fetches and parses rawURL.
func Load(ctx context.Context, rawURL string) (*Page, error) {
	resp, err := network.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	body, err := parse.Decode(resp.Body)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	return &Page{url: resp.URL, doc: doc}, nil
}

// URL returns the final location of the page.
func (p *Page) URL() string {
	return p.url.String()
}

// Tracks returns the play links of the track chart, in page order.
func (p *Page) Tracks() []string {
	var tracks []string
	p.doc.Find("td.chartlist-play a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		if ref, err := p.url.Parse(href); err == nil {
			href = ref.String()
		}
		tracks = append(tracks, href)
	})

	log.WithField("url", p.URL()).Debugf("%d tracks", len(tracks))
	return tracks
}
