// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Pks is the canonical application identifier used for filesystem paths and CLI branding.
	Pks = "pks"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is the default User-Agent sent to scraped sites.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:102.0) Gecko/20100101 Firefox/102.0"

	// TorAddress is the SOCKS endpoint exposed by a local Tor Browser.
	TorAddress = "localhost:9150"
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
