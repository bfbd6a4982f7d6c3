// Package key defines the canonical set of configuration identifiers.
package key

// Transport - user agent, timeouts and proxying of outgoing HTTP requests.
const (
	NetworkUserAgent      = "network.user_agent"
	NetworkTimeout        = "network.timeout"
	NetworkTLSFingerprint = "network.tls_fingerprint"
	NetworkTor            = "network.tor"
	NetworkTorAddress     = "network.tor_address"
)

// Scraping - default filters and parsing strategy of the image/link scraper.
const (
	ScrapeHead     = "scrape.head"
	ScrapeExt      = "scrape.ext"
	ScrapeStrategy = "scrape.strategy"
)

// Extraction - parameters handed to yt-dlp.
const (
	ExtractMaxHeight  = "extract.max_height"
	ExtractFormatSort = "extract.format_sort"
	ExtractVerbose    = "extract.verbose"
	ExtractCache      = "extract.cache"
	ExtractYtdlpPath  = "extract.ytdlp_path"
)

// Playback.
const (
	PlayerDefault = "player.default"
	PlayerConsole = "player.console"
	PlayerOptions = "player.options"
)

// Playlist orchestration.
const (
	PlaylistBatch   = "playlist.batch"
	PlaylistHeight  = "playlist.height"
	PlaylistShuffle = "playlist.shuffle"
)

const (
	HistorySaveOnPlay = "history.save_on_play"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliIcons        = "cli.icons"
	CliVersionCheck = "cli.version_check"
)
