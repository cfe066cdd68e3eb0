package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrResolutionFailed marks a location the geocoder could not resolve.
// The failure is remembered for the rest of the run, so a rate-limited
// upstream is never asked twice for the same key.
var ErrResolutionFailed = errors.New("geocode resolution failed")

type cacheEntry struct {
	Point     *Point    `json:"point"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Cache is the persistent normalized-key -> coordinate store. Successful
// resolutions are flushed to disk as soon as they arrive. Failed ones are
// written as null-point markers; those are dropped again at load time, so
// the next run retries them.
type Cache struct {
	mu       sync.Mutex
	path     string
	upstream Geocoder
	points   map[string]cacheEntry
	failed   map[string]time.Time // this run only
}

// NewCache loads the cache file at path, if any. A file that exists but
// cannot be read or parsed is an error: proceeding without the cache would
// re-fire every geocode call of past runs.
func NewCache(path string, upstream Geocoder) (*Cache, error) {
	c := &Cache{
		path:     filepath.Clean(path),
		upstream: upstream,
		points:   map[string]cacheEntry{},
		failed:   map[string]time.Time{},
	}

	b, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read geocode cache %s: %w", c.path, err)
	}
	if len(b) == 0 {
		return c, nil
	}

	raw := map[string]cacheEntry{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse geocode cache %s: %w", c.path, err)
	}
	for k, e := range raw {
		if e.Point == nil {
			continue
		}
		c.points[k] = e
	}
	return c, nil
}

// Resolve returns the coordinate for a normalized location key, calling the
// upstream geocoder at most once per key per run. A resolution failure comes
// back as ErrResolutionFailed; any other error is a cache persistence
// failure and should abort the run.
func (c *Cache) Resolve(ctx context.Context, key string) (Point, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.points[key]; ok {
		return *e.Point, nil
	}
	if _, ok := c.failed[key]; ok {
		return Point{}, fmt.Errorf("%w: %s", ErrResolutionFailed, key)
	}

	p, err := c.upstream.Geocode(ctx, key)
	if err != nil {
		c.failed[key] = time.Now().UTC()
		if serr := c.saveLocked(); serr != nil {
			return Point{}, serr
		}
		return Point{}, fmt.Errorf("%w: %s: %s", ErrResolutionFailed, key, err)
	}

	c.points[key] = cacheEntry{Point: &p, FetchedAt: time.Now().UTC()}
	if err := c.saveLocked(); err != nil {
		return Point{}, err
	}
	return p, nil
}

func (c *Cache) saveLocked() error {
	out := make(map[string]cacheEntry, len(c.points)+len(c.failed))
	for k, e := range c.points {
		out[k] = e
	}
	for k, at := range c.failed {
		out[k] = cacheEntry{FetchedAt: at}
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode geocode cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("flush geocode cache: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("flush geocode cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("flush geocode cache: %w", err)
	}
	return nil
}
