// Package cache persists per-source payloads on disk with a freshness TTL.
//
// Each key is backed by a single JSON file written with a tmp-file, fsync and
// rename sequence, so a concurrent reader observes either the complete old
// entry or the complete new one, never a truncated file. There is no locking:
// cached data is a disposable snapshot of third-party information, and the
// last rename for a key wins.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTTLHours is the freshness window used when config does not set one.
const DefaultTTLHours = 24

type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	TTLHours  int             `json:"ttl_hours"`
	Data      json.RawMessage `json:"data"`
}

// Cache is a directory of TTL'd JSON files, one per source key.
type Cache struct {
	dir      string
	ttlHours int
	bypass   bool
	now      func() time.Time // test seam
}

// New creates a cache rooted at dir with the given TTL. An empty dir selects
// the per-user cache directory; a non-positive TTL selects DefaultTTLHours.
func New(dir string, ttlHours int) *Cache {
	if dir == "" {
		dir = defaultDir()
	}
	if ttlHours <= 0 {
		ttlHours = DefaultTTLHours
	}
	return &Cache{dir: dir, ttlHours: ttlHours, now: time.Now}
}

func defaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = ".cache"
	}
	return filepath.Join(base, "pondus")
}

// SetBypass makes Get report a miss for every key for the rest of this
// process. Set still writes, so a bypassed run refreshes the cache.
func (c *Cache) SetBypass(bypass bool) {
	c.bypass = bypass
}

// Get returns the cached payload for key if present, parseable and younger
// than its stored TTL in whole hours. Any read or parse failure is a miss,
// never an error; a stale file is left on disk to be overwritten by Set.
func (c *Cache) Get(key string) (time.Time, json.RawMessage, bool) {
	if c.bypass {
		return time.Time{}, nil, false
	}

	content, err := os.ReadFile(c.path(key))
	if err != nil {
		return time.Time{}, nil, false
	}

	var e entry
	if err := json.Unmarshal(content, &e); err != nil {
		return time.Time{}, nil, false
	}

	age := c.now().Sub(e.FetchedAt)
	if int(age.Hours()) >= e.TTLHours {
		return time.Time{}, nil, false
	}
	return e.FetchedAt, e.Data, true
}

// Set atomically replaces the entry for key with data stamped now.
func (c *Cache) Set(key string, data json.RawMessage) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", c.dir, err)
	}

	e := entry{
		FetchedAt: c.now().UTC(),
		TTLHours:  c.ttlHours,
		Data:      data,
	}
	content, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache entry for %s: %w", key, err)
	}

	// Atomic write: temp file in the same directory, fsync, rename onto the
	// final path. Rename is the only mutation of the visible path.
	path := c.path(key)
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync temp cache file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename cache file for %s: %w", key, err)
	}
	return nil
}

// Clear removes every cache-backed file in the cache directory, forcing the
// next query to fetch every source fresh.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache directory %s: %w", c.dir, err)
	}

	for _, de := range entries {
		if !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, de.Name())); err != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", de.Name(), err)
		}
	}
	return nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}
