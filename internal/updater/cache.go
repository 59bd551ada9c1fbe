package updater

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const cacheFileName = "version-check.json"

// VersionCache is the last successful latest-version lookup.
type VersionCache struct {
	LatestVersion string    `json:"latest_version"`
	CheckedAt     time.Time `json:"checked_at"`
}

// LoadCache reads the version cache from dir. A missing file yields nil, nil.
func LoadCache(dir string) (*VersionCache, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes cache to dir, creating it if needed.
func SaveCache(dir string, cache *VersionCache) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), data, 0o644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// Fresh reports whether the cache exists, holds a version, and was written
// within maxAge of now.
func (c *VersionCache) Fresh(now time.Time, maxAge time.Duration) bool {
	if c == nil || c.LatestVersion == "" {
		return false
	}
	return now.Sub(c.CheckedAt) <= maxAge
}
