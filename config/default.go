package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/pk-services/pks/color"
	"github.com/pk-services/pks/constant"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered configuration key with its factory default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Pks + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.NetworkUserAgent, constant.UserAgent, "User-Agent header sent with every page request")
	register(key.NetworkTimeout, 0, "HTTP request timeout in seconds, 0 for none")
	register(key.NetworkTLSFingerprint, false, "Mimic a Chrome TLS fingerprint when fetching pages.\nUseful for sites that reject non-browser clients")
	register(key.NetworkTor, false, "Route every request through the local Tor SOCKS proxy")
	register(key.NetworkTorAddress, constant.TorAddress, "Address of the Tor SOCKS endpoint (host:port)")
	register(key.ScrapeHead, ".*", "Regular expression the image file name must match")
	register(key.ScrapeExt, []string{""}, "Image extensions to keep.\nAn empty extension keeps every image with a dot in its URL")
	register(key.ScrapeStrategy, "xpath", "Scraping strategy.\nAvailable options are: xpath (domain rules), stream (tag scan)")
	register(key.ExtractMaxHeight, 0, "Preferred video height.\nThe smallest format at or above this height is selected, 0 means best")
	register(key.ExtractFormatSort, "", "Format sorting hint passed to yt-dlp (--format-sort)")
	register(key.ExtractVerbose, false, "Run yt-dlp in verbose mode")
	register(key.ExtractCache, false, "Cache resolved media metadata for a day")
	register(key.ExtractYtdlpPath, "", "Path to the yt-dlp executable.\nSearched in PATH when empty")
	register(key.PlayerDefault, "", "Media player to use.\nAvailable options are: dummy, mpv, ffplay, vlc\nThe first available player is used when empty")
	register(key.PlayerConsole, false, "Attach the player to the current terminal")
	register(key.PlayerOptions, []string{}, "Extra command line options passed to the player")
	register(key.PlaylistBatch, 50, "Number of playlist entries loaded at once")
	register(key.PlaylistHeight, 1080, "Maximum video height requested from mpv for playlists")
	register(key.PlaylistShuffle, false, "Shuffle playlists played from m3u files")
	register(key.HistorySaveOnPlay, true, "Record played entries in the history")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliIcons, "plain", "Icons variant.\nAvailable options are: emoji, nerd (nerd-font required), plain")
	register(key.CliVersionCheck, false, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
