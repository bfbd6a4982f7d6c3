// Package where resolves the filesystem locations used by the application.
package where

import (
	"os"
	"path/filepath"

	"github.com/pk-services/pks/constant"
	"github.com/pk-services/pks/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "PKS_CONFIG_PATH"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory.
// It honors PKS_CONFIG_PATH, then falls back to the platform user config directory.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}

	return mkdir(filepath.Join(lo.Must(os.UserConfigDir()), constant.Pks))
}

// Cache returns the cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return mkdir(filepath.Join(base, constant.Pks))
}

// Logs returns the directory holding daily log files.
func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Playlists returns the directory where m3u files are saved.
func Playlists() string {
	return mkdir(filepath.Join(Config(), "playlists"))
}

// Downloads returns the directory yt-dlp downloads into.
func Downloads() string {
	return mkdir(filepath.Join(Config(), "downloads"))
}

// Extractions returns the directory of cached extraction results.
func Extractions() string {
	return mkdir(filepath.Join(Cache(), "extract"))
}

// Rules returns the path of the domain rule document.
func Rules() string {
	return filepath.Join(Config(), "rules.json")
}

// History returns the path of the play history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Queries returns the path of the remembered URLs file.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Temp returns a scratch directory removed on startup.
func Temp() string {
	return mkdir(filepath.Join(os.TempDir(), constant.Pks))
}
