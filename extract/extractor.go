package extract

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"
	"github.com/pk-services/pks/internal/cache"
	"github.com/pk-services/pks/log"
)

// Options tune a single extraction.
type Options struct {
	// PlaylistStart and PlaylistEnd bound the playlist window, 1-based.
	// Zero leaves the side open.
	PlaylistStart int
	PlaylistEnd   int
	FormatSort    string
	Verbose       bool
	// Flat lists playlist entries as url references without resolving them.
	Flat bool
}

func (o Options) playlistItems() string {
	if o.PlaylistStart <= 0 && o.PlaylistEnd <= 0 {
		return ""
	}

	var start, end string
	if o.PlaylistStart > 0 {
		start = fmt.Sprint(o.PlaylistStart)
	}
	if o.PlaylistEnd > 0 {
		end = fmt.Sprint(o.PlaylistEnd)
	}
	return start + ":" + end
}

// Extractor turns page URLs into metadata records and downloads media.
type Extractor interface {
	Extract(ctx context.Context, url string, opts Options) (Info, error)
	Download(ctx context.Context, url, dir string) error
}

// YTDLP runs the yt-dlp program.
type YTDLP struct {
	// Path of the executable. Empty resolves it from PATH.
	Path string
}

func (y YTDLP) command() *ytdlp.Command {
	cmd := ytdlp.New()
	if y.Path != "" {
		cmd.SetExecutable(y.Path)
	}
	return cmd
}

func (y YTDLP) Extract(ctx context.Context, url string, opts Options) (Info, error) {
	cmd := y.command().DumpSingleJSON().NoWarnings()

	if opts.Flat {
		cmd.FlatPlaylist()
	}
	if items := opts.playlistItems(); items != "" {
		cmd.PlaylistItems(items)
	}
	if opts.FormatSort != "" {
		cmd.FormatSort(opts.FormatSort)
	}
	if opts.Verbose {
		cmd.Verbose()
	}

	log.WithField("url", url).Debugf("yt-dlp extract %+v", opts)
	result, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", url, err)
	}

	return ParseInfo([]byte(result.Stdout))
}

func (y YTDLP) Download(ctx context.Context, url, dir string) error {
	cmd := y.command().
		NoProgress().
		RestrictFilenames().
		Output(filepath.Join(dir, "%(title)s.%(ext)s"))

	log.WithField("url", url).Infof("yt-dlp download into %s", dir)
	if _, err := cmd.Run(ctx, url); err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	return nil
}

// Cached wraps ex so that extraction results are kept on disk for cache.TTL.
// Failed extractions are not stored.
func Cached(ex Extractor) Extractor {
	return cached{ex}
}

type cached struct {
	Extractor
}

func (c cached) Extract(ctx context.Context, url string, opts Options) (Info, error) {
	key := cache.Key(url, fmt.Sprintf("%+v", opts))

	var info Info
	if cache.Read(key, &info) {
		log.WithField("url", url).Debug("extraction cache hit")
		return info, nil
	}

	info, err := c.Extractor.Extract(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	if err := cache.Write(key, info); err != nil {
		log.Warnf("extraction cache: %s", err)
	}
	return info, nil
}
