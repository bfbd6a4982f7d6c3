// Package playlist walks the entries of a media listing in batches and hands
// them, one at a time, to the downloader or to a player.
//
// Every per-entry operation is best effort: failures are logged and the walk
// goes on, so one broken entry never stops a batch.
package playlist

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/pk-services/pks/extract"
	"github.com/pk-services/pks/filesystem"
	"github.com/pk-services/pks/history"
	"github.com/pk-services/pks/lastfm"
	"github.com/pk-services/pks/log"
	"github.com/pk-services/pks/player"
	"github.com/pk-services/pks/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const (
	DefaultBatch  = 50
	DefaultHeight = 1080

	// CacheName is the playlist the cache is saved to before being played.
	CacheName = "cache_playlist"
)

type Playlist struct {
	extractor extract.Extractor
	player    player.Player

	batch     int
	album     *lastfm.Page
	history   bool
	downloads string
	playlists string
	options   []string

	url    string
	infos  extract.Info
	cache  []extract.Info
	cursor int
}

type Option func(*Playlist)

// WithBatch sets how many entries each extraction adds to the cache.
func WithBatch(n int) Option {
	return func(p *Playlist) { p.batch = max(n, 1) }
}

// WithAlbum takes the entries from the track chart of page instead of the
// extractor.
func WithAlbum(page *lastfm.Page) Option {
	return func(p *Playlist) { p.album = page }
}

// WithHistory records every play.
func WithHistory(enabled bool) Option {
	return func(p *Playlist) { p.history = enabled }
}

// WithDir sets the directory downloads go to.
func WithDir(dir string) Option {
	return func(p *Playlist) { p.downloads = dir }
}

// WithPlaylistsDir sets the directory M3U files are saved in.
func WithPlaylistsDir(dir string) Option {
	return func(p *Playlist) { p.playlists = dir }
}

// WithPlayerOptions sets options passed to the player on every play.
func WithPlayerOptions(options ...string) Option {
	return func(p *Playlist) { p.options = options }
}

func New(extractor extract.Extractor, p player.Player, opts ...Option) *Playlist {
	pl := &Playlist{
		extractor: extractor,
		player:    p,
		batch:     DefaultBatch,
		downloads: ".",
		playlists: ".",
		infos:     extract.Info{},
	}

	for _, opt := range opts {
		opt(pl)
	}

	return pl
}

// SetURL lists the entries of rawURL and loads the first batch.
func (p *Playlist) SetURL(ctx context.Context, rawURL string) error {
	if err := p.update(ctx, rawURL); err != nil {
		return err
	}

	p.ExtractInfo()
	return nil
}

func (p *Playlist) update(ctx context.Context, rawURL string) error {
	p.url = rawURL

	if p.album != nil {
		entries := lo.Map(p.album.Tracks(), func(track string, _ int) any {
			return map[string]any(extract.NewURLEntry(track))
		})
		p.infos = extract.Info{"_type": extract.TypePlaylist, "webpage_url": p.album.URL(), "entries": entries}
		return nil
	}

	infos, err := p.extractor.Extract(ctx, rawURL, extract.Options{Flat: true})
	if err != nil {
		return err
	}

	p.infos = infos
	return nil
}

// ExtractInfo loads the listing into the cache. A single item replaces the
// cache; a playlist appends its first batch of entries. The cursor restarts.
func (p *Playlist) ExtractInfo() {
	if p.infos.IsPlaylist() {
		entries := p.infos.Entries()
		p.cache = append(p.cache, entries[:min(p.batch, len(entries))]...)
	} else if !p.infos.IsEmpty() {
		p.cache = []extract.Info{p.infos}
	}

	log.WithField("url", p.url).Infof("%d entries cached", len(p.cache))
	p.Restart()
}

func (p *Playlist) Restart() {
	p.cursor = 0
}

// NextEntry returns the entry under the cursor and advances it.
// An empty record marks the end of the cache.
func (p *Playlist) NextEntry() extract.Info {
	if p.cursor >= len(p.cache) {
		return extract.Info{}
	}

	entry := p.cache[p.cursor]
	p.cursor++
	log.Debugf("entry %d: %s", p.cursor, entry.Target())
	return entry
}

// Info fully resolves entry. It returns an empty record on failure.
func (p *Playlist) Info(ctx context.Context, entry extract.Info) extract.Info {
	info, err := p.resolve(ctx, entry)
	if err != nil {
		log.Error(err)
		return extract.Info{}
	}

	log.Infof("info: title=%s url=%s", info.Title(), info.WebpageURL())
	return info
}

func (p *Playlist) resolve(ctx context.Context, entry extract.Info) (extract.Info, error) {
	if entry.IsEmpty() {
		return nil, fmt.Errorf("empty entry")
	}

	// Entries carrying formats are already resolved.
	if entry.Type() == extract.TypeVideo && len(entry.Formats()) > 0 {
		return entry, nil
	}

	target := entry.Target()
	if target == "" {
		return nil, fmt.Errorf("entry without url: %v", entry)
	}

	info, err := p.extractor.Extract(ctx, target, extract.Options{})
	if err != nil {
		return nil, err
	}
	if info.IsEmpty() {
		return nil, fmt.Errorf("nothing extracted from %s", target)
	}
	return info, nil
}

// InfoNext resolves the next entry.
func (p *Playlist) InfoNext(ctx context.Context) extract.Info {
	return p.Info(ctx, p.NextEntry())
}

// Download saves the media of entry. Failures are logged.
func (p *Playlist) Download(ctx context.Context, entry extract.Info) {
	if err := p.download(ctx, entry); err != nil {
		log.Errorf("download: %s", err)
	}
}

func (p *Playlist) download(ctx context.Context, entry extract.Info) error {
	info, err := p.resolve(ctx, entry)
	if err != nil {
		return err
	}

	return p.extractor.Download(ctx, info.Target(), p.downloads)
}

// DownloadAll downloads the remaining entries and returns how many succeeded.
func (p *Playlist) DownloadAll(ctx context.Context) (done int) {
	for entry := p.NextEntry(); !entry.IsEmpty(); entry = p.NextEntry() {
		if ctx.Err() != nil {
			return
		}
		if err := p.download(ctx, entry); err != nil {
			log.Errorf("download: %s", err)
			continue
		}
		done++
	}
	return
}

// Play resolves entry, plays it and waits for the player to exit.
// Failures are logged.
func (p *Playlist) Play(ctx context.Context, entry extract.Info, height int) {
	if err := p.play(ctx, entry, height); err != nil {
		log.Errorf("play: %s", err)
	}
}

func (p *Playlist) play(ctx context.Context, entry extract.Info, height int) error {
	p.resetOptions(height)

	info, err := p.resolve(ctx, entry)
	if err != nil {
		return err
	}

	uri := p.playable(info, height)
	proc, err := p.player.Play(info.Title(), uri)
	if err != nil {
		return err
	}

	log.Infof("playing %s", proc)
	if err := proc.Wait(); err != nil {
		return fmt.Errorf("%s: %w", proc, err)
	}

	if p.history {
		if err := history.Save(info.Title(), info.Target(), p.player.Name()); err != nil {
			log.Warnf("history: %s", err)
		}
	}
	return nil
}

// playable returns what the player is given for info. mpv resolves page URLs
// itself; other players get the stream URL of the chosen format.
func (p *Playlist) playable(info extract.Info, height int) string {
	if p.player.Name() == player.MPV {
		return info.Target()
	}

	format, ok := extract.SelectFormat(info.Formats(), mo.Some(height))
	if !ok || format.URL() == "" {
		return info.Target()
	}
	return format.URL()
}

// resetOptions rebuilds the player options before an invocation.
func (p *Playlist) resetOptions(height int, extra ...string) {
	p.player.ClearOptions()
	p.player.AddOptions(p.options...)
	if p.player.Name() == player.MPV {
		p.player.AddOptions(player.YtdlFormat(height))
		p.player.AddOptions(extra...)
	}
}

// PlayNext plays the next entry.
func (p *Playlist) PlayNext(ctx context.Context, height int) {
	p.Play(ctx, p.NextEntry(), height)
}

// PlayAll plays the remaining entries in order and returns how many played.
func (p *Playlist) PlayAll(ctx context.Context, height int) (done int) {
	for entry := p.NextEntry(); !entry.IsEmpty(); entry = p.NextEntry() {
		if ctx.Err() != nil {
			return
		}
		if err := p.play(ctx, entry, height); err != nil {
			log.Errorf("play: %s", err)
			continue
		}
		done++
	}
	return
}

// M3UPath returns where the playlist called name is saved.
func (p *Playlist) M3UPath(name string) string {
	name = util.SanitizeFilename(name)
	if name == "" {
		name = "playlist"
	}
	return filepath.Join(p.playlists, name+".m3u")
}

// SaveM3U writes the cached entries to an M3U file and returns its path.
// Entries without a title are resolved first; those that fail are left out.
func (p *Playlist) SaveM3U(ctx context.Context, name string) (string, error) {
	var tracks []Track
	for _, entry := range p.cache {
		track, err := p.track(ctx, entry)
		if err != nil {
			log.Errorf("m3u: %s", err)
			continue
		}
		log.Debugf("m3u: title=%s url=%s duration=%d", track.Title, track.URL, track.Duration)
		tracks = append(tracks, track)
	}

	var buf bytes.Buffer
	if err := WriteM3U(&buf, tracks); err != nil {
		return "", err
	}

	path := p.M3UPath(name)
	if err := filesystem.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	log.Infof("saved %d of %d entries to %s", len(tracks), len(p.cache), path)
	return path, nil
}

func (p *Playlist) track(ctx context.Context, entry extract.Info) (Track, error) {
	track := Track{
		URL:      entry.URL(),
		Title:    entry.Title(),
		Duration: entry.Duration(),
	}

	if track.Title == "" {
		info, err := p.resolve(ctx, entry)
		if err != nil {
			return Track{}, err
		}
		track.Title = info.Title()
		track.Duration = info.Duration()
		if track.URL == "" {
			track.URL = info.Target()
		}
	}

	if track.URL == "" {
		track.URL = entry.Target()
	}
	if track.URL == "" {
		return Track{}, fmt.Errorf("entry %q has no url", track.Title)
	}
	return track, nil
}

// PlayM3U plays the saved playlist called name.
func (p *Playlist) PlayM3U(name string, height int, shuffle bool) error {
	path := p.M3UPath(name)
	if exists, _ := filesystem.API().Exists(path); !exists {
		return fmt.Errorf("no playlist named %q", name)
	}

	p.resetOptions(height, shuffleOption(shuffle)...)
	return p.run("", path)
}

// PlayCache saves the cache then plays it.
func (p *Playlist) PlayCache(ctx context.Context, height int, shuffle bool) error {
	if _, err := p.SaveM3U(ctx, CacheName); err != nil {
		return err
	}
	return p.PlayM3U(CacheName, height, shuffle)
}

// PlayAuto lets mpv walk the items start through end of the listing itself.
func (p *Playlist) PlayAuto(start, end, height int, shuffle bool) error {
	if p.url == "" {
		return fmt.Errorf("no url set")
	}

	p.resetOptions(height, append([]string{player.YtdlRawPlaylistItems(start, end)}, shuffleOption(shuffle)...)...)
	return p.run("", p.url)
}

func (p *Playlist) run(title, uri string) error {
	proc, err := p.player.Play(title, uri)
	if err != nil {
		return err
	}

	log.Infof("playing %s", proc)
	return proc.Wait()
}

func shuffleOption(shuffle bool) []string {
	if shuffle {
		return []string{player.Shuffle()}
	}
	return nil
}

// CacheSize returns the number of cached entries.
func (p *Playlist) CacheSize() int {
	return len(p.cache)
}

// SetCacheSize shrinks the cache to n entries. It never grows it.
func (p *Playlist) SetCacheSize(n int) {
	p.cache = p.cache[:lo.Clamp(n, 0, len(p.cache))]
	p.cursor = min(p.cursor, len(p.cache))
}

func (p *Playlist) Batch() int {
	return p.batch
}

func (p *Playlist) SetBatch(n int) {
	p.batch = max(n, 1)
}

func (p *Playlist) URL() string {
	return p.url
}

// Cache returns a copy of the cached entries.
func (p *Playlist) Cache() []extract.Info {
	return append([]extract.Info(nil), p.cache...)
}

func (p *Playlist) Player() player.Player {
	return p.player
}
