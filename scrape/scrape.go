// Package scrape loads a page and lists the images it links to, filtered by
// file name and extension.
package scrape

import (
	"context"
	"net/url"

	"github.com/pk-services/pks/log"
	"github.com/pk-services/pks/network"
	"github.com/pk-services/pks/parse"
	"github.com/pk-services/pks/rules"
)

type Strategy string

const (
	// XPath pairs images and links with the domain rule of the page.
	XPath Strategy = "xpath"
	// Stream maps images to their enclosing anchors in a single tag scan.
	Stream Strategy = "stream"
)

type Service struct {
	table    *rules.Table
	head     string
	ext      []string
	strategy Strategy

	url   *url.URL
	pairs *parse.Pairs
}

type Option func(*Service)

// WithHead sets the pattern searched in image file names.
func WithHead(head string) Option {
	return func(s *Service) { s.head = head }
}

// WithExt sets the accepted image extensions.
func WithExt(ext ...string) Option {
	return func(s *Service) { s.ext = ext }
}

func WithStrategy(strategy Strategy) Option {
	return func(s *Service) { s.strategy = strategy }
}

// New returns a service matching every image of any extension.
func New(table *rules.Table, opts ...Option) *Service {
	s := &Service{
		table:    table,
		head:     ".*",
		ext:      []string{""},
		strategy: XPath,
		pairs:    parse.NewPairs(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load fetches rawURL and extracts its raw pairs.
func (s *Service) Load(ctx context.Context, rawURL string) error {
	resp, err := network.Get(ctx, rawURL)
	if err != nil {
		return err
	}

	body, err := parse.Decode(resp.Body)
	if err != nil {
		return err
	}

	var pairs *parse.Pairs
	switch s.strategy {
	case Stream:
		pairs = parse.Media(body)
	default:
		rule := s.table.Find(resp.URL.String())
		log.WithField("url", resp.URL.String()).Debugf("rule %s | %s", rule.Image, rule.Link)
		pairs, err = parse.ImageLinks(body, rule.Image, rule.Link)
		if err != nil {
			return err
		}
	}

	s.url = resp.URL
	s.pairs = pairs
	log.Infof("scraped %d pairs from %s", pairs.Len(), resp.URL)
	return nil
}

func (s *Service) SetHead(head string) { s.head = head }

func (s *Service) SetExt(ext ...string) { s.ext = ext }

func (s *Service) Head() string { return s.head }

func (s *Service) Ext() []string { return s.ext }

// URL returns the final location of the loaded page, or an empty string.
func (s *Service) URL() string {
	if s.url == nil {
		return ""
	}
	return s.url.String()
}

// Base returns the origin root of the loaded page.
func (s *Service) Base() string {
	if s.url == nil {
		return ""
	}
	return (&url.URL{Scheme: s.url.Scheme, Host: s.url.Host, Path: "/"}).String()
}

// ImagesLinks filters the loaded pairs and resolves both sides against the page URL.
func (s *Service) ImagesLinks() *parse.Pairs {
	resolved := parse.NewPairs()
	Filter(s.pairs, s.head, s.ext).Each(func(image, link string) {
		resolved.Set(s.resolve(image), s.resolve(link))
	})
	return resolved
}

func (s *Service) Images() []string {
	return s.ImagesLinks().Images()
}

func (s *Service) Links() []string {
	return s.ImagesLinks().Links()
}

func (s *Service) resolve(ref string) string {
	if s.url == nil {
		return ref
	}

	u, err := s.url.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}
