// Package cache stores resolved extraction results as JSON files under the
// extraction cache directory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pk-services/pks/filesystem"
	"github.com/pk-services/pks/log"
	"github.com/pk-services/pks/where"
)

const TTL = 24 * time.Hour

// Key derives a file name from the given parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry named key into target.
// It reports false when the entry is missing, expired or unreadable.
func Read(key string, target any) bool {
	path := filepath.Join(where.Extractions(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.Debugf("cache entry %s: %s", key, err)
		return false
	}
	return true
}

func Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return filesystem.WriteFileAtomic(filepath.Join(where.Extractions(), key), data, 0644)
}

// CollectGarbage removes expired entries in the background.
func CollectGarbage() {
	go func() {
		if err := collect(); err != nil {
			log.Warnf("cache gc: %s", err)
		}
	}()
}

func collect() error {
	return filesystem.API().Walk(where.Extractions(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > TTL {
			return filesystem.API().Remove(path)
		}
		return nil
	})
}
