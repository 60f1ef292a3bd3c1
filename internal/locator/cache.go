package locator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// CacheFileName is the per-user file that remembers the last discovered
// installation path across runs.
const CacheFileName = ".peacock-webapp-cache.json"

type cacheRecord struct {
	PeacockPath string `json:"peacockPath"`
	LastUpdated string `json:"lastUpdated"`
}

// Cache persists the last successfully located installation path. Every
// failure mode is deliberately mapped to a cache miss or a silent no-op:
// discovery simply runs again on the next request, so the cache is never
// allowed to break anything.
type Cache struct {
	path string
}

// NewCache returns a cache backed by the given file path. An empty path
// falls back to the default location in the user's home directory.
func NewCache(path string) *Cache {
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, CacheFileName)
		}
	}
	return &Cache{path: path}
}

// Get returns the cached installation path, if any. Missing files and
// malformed JSON are both a miss.
func (c *Cache) Get() (string, bool) {
	if c.path == "" {
		return "", false
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", false
	}
	var record cacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return "", false
	}
	if record.PeacockPath == "" {
		return "", false
	}
	return record.PeacockPath, true
}

// Put records the installation path. Write failures are swallowed; the
// cache is an optimization, not state the editor depends on.
func (c *Cache) Put(installPath string) {
	if c.path == "" {
		return
	}
	record := cacheRecord{
		PeacockPath: installPath,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(c.path, data, 0644)
}
