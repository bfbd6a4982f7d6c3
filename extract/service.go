package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/pk-services/pks/log"
	"github.com/pk-services/pks/network"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrNotResolved is reported by a service that has not resolved any URL yet.
var ErrNotResolved = errors.New("no url resolved")

// Service holds the last resolved record and a cursor over its entries.
type Service struct {
	extractor Extractor
	options   Options

	target  string
	result  mo.Result[*Info]
	current int
}

func NewService(extractor Extractor, options Options) *Service {
	return &Service{
		extractor: extractor,
		options:   options,
		result:    mo.Err[*Info](ErrNotResolved),
	}
}

// Resolve extracts rawURL and makes it the current target.
// The result replaces any previous one and the cursor restarts.
func (s *Service) Resolve(ctx context.Context, rawURL string) mo.Result[*Info] {
	s.target = rawURL
	s.current = 0
	s.result = s.resolve(ctx, rawURL)

	if err := s.result.Error(); err != nil {
		log.WithField("url", rawURL).Error(err)
	}
	return s.result
}

func (s *Service) resolve(ctx context.Context, rawURL string) mo.Result[*Info] {
	if err := network.ValidateURL(rawURL); err != nil {
		return mo.Err[*Info](fmt.Errorf("invalid url %q: %w", rawURL, err))
	}

	info, err := s.extractor.Extract(ctx, rawURL, s.options)
	if err != nil {
		return mo.Err[*Info](err)
	}
	return mo.Ok(&info)
}

// Validate reports why the last resolution cannot be used.
func (s *Service) Validate() error {
	if err := s.result.Error(); err != nil {
		return fmt.Errorf("url: %s - reason: %w", s.target, err)
	}
	return nil
}

// Infos returns the resolved record, empty when resolution failed.
func (s *Service) Infos() Info {
	info, err := s.result.Get()
	if err != nil {
		return Info{}
	}
	return *info
}

// URL returns the canonical page URL of the resolved record.
func (s *Service) URL() string {
	return s.Infos().WebpageURL()
}

// Count returns the number of entries of a playlist, 1 for a single item
// and 0 when nothing is resolved.
func (s *Service) Count() int {
	info := s.Infos()
	switch {
	case info.IsEmpty():
		return 0
	case info.IsPlaylist():
		return len(info.Entries())
	default:
		return 1
	}
}

func (s *Service) Current() int {
	return s.current
}

// SetCurrent moves the cursor, clamped to the entry range.
func (s *Service) SetCurrent(i int) {
	s.current = lo.Clamp(i, 0, max(s.Count()-1, 0))
}

// Selected returns the current entry of a playlist, or the item itself.
func (s *Service) Selected() (Info, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	info := s.Infos()
	if !info.IsPlaylist() {
		return info, nil
	}

	entries := info.Entries()
	if len(entries) == 0 {
		return nil, fmt.Errorf("url: %s - reason: empty playlist", s.target)
	}
	return entries[s.current], nil
}

// SelectFormat chooses a format of the selected item. An item without a
// format list is its own format.
func (s *Service) SelectFormat(maxHeight mo.Option[int]) (Format, error) {
	selected, err := s.Selected()
	if err != nil {
		return nil, err
	}

	format, ok := SelectFormat(selected.Formats(), maxHeight)
	if !ok {
		return Format(selected), nil
	}
	return format, nil
}

// Video returns the display title and the stream URL of the chosen format.
// The title is the selected entry's, so a playlist entry is named after itself.
func (s *Service) Video(maxHeight mo.Option[int]) (title, url string, err error) {
	selected, err := s.Selected()
	if err != nil {
		return "", "", err
	}

	format, err := s.SelectFormat(maxHeight)
	if err != nil {
		return "", "", err
	}

	title = fmt.Sprintf("%s - %s", selected.Title(), format.Name())
	log.Debugf("video: title=%q url=%q", title, format.URL())
	return title, format.URL(), nil
}

// FormatList returns the format descriptions of the selected item.
func (s *Service) FormatList() ([]string, error) {
	selected, err := s.Selected()
	if err != nil {
		return nil, err
	}

	return lo.Map(selected.Formats(), func(f Format, _ int) string {
		return f.Name()
	}), nil
}
