// Package refdata assembles the price parity table used for estimates from the
// built-in values, the local cache and a live BEA fetch.
package refdata

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"
	"github.com/NihalShah4/cost-of-living-estimator/internal/store"
)

// DefaultMaxAge is how long a cached fetch counts as current.
const DefaultMaxAge = 24 * time.Hour

// Fetcher returns fresh price parity entries.
type Fetcher interface {
	Fetch(ctx context.Context) ([]rpp.Entry, error)
}

// Options controls Load.
type Options struct {
	Refresh   bool // fetch live data; without it only the cache is consulted
	NoCache   bool
	CachePath string        // defaults to CachePath()
	MaxAge    time.Duration // defaults to DefaultMaxAge
	SourceURL string        // defaults to rpp.DefaultBEAURL
	Fetcher   Fetcher       // defaults to an rpp.Fetcher for SourceURL
	Overrides map[string]float64
	Now       func() time.Time
}

// Info describes where the loaded table came from.
type Info struct {
	Source    rpp.Source
	FetchedAt time.Time // zero for built-in data
	Stale     bool      // the cached fetch is older than MaxAge
	Warnings  []string
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "colest")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "colest")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "rpp.db")
}

// Load returns the price parity table to estimate with: the built-in values
// merged with the cached fetch, or with a live fetch when opts.Refresh is set.
// Fetch and cache failures are never fatal: they are reported in
// Info.Warnings and the next source in line (cache, then built-in values) is
// used. Only invalid overrides return an error.
func Load(ctx context.Context, opts Options) (*rpp.Table, Info, error) {
	opts = opts.withDefaults()
	base := rpp.Default()
	info := Info{Source: rpp.SourceBuiltin}

	var cache *store.Cache
	if !opts.NoCache {
		c, err := store.Open(opts.CachePath)
		if err != nil {
			info.warn("rpp cache unavailable: %v", err)
		} else {
			cache = c
			defer func() { _ = cache.Close() }()
		}
	}

	var cached []rpp.Entry
	var snap store.Snapshot
	if cache != nil {
		entries, s, err := cache.LoadTable()
		switch {
		case err == nil:
			cached, snap = entries, s
		case !errors.Is(err, store.ErrEmpty):
			info.warn("reading rpp cache: %v", err)
		}
	}

	now := opts.Now()
	stale := cached != nil && snap.Stale(opts.MaxAge, now)

	if opts.Refresh {
		entries, err := opts.Fetcher.Fetch(ctx)
		if err == nil {
			if cache != nil {
				if err := cache.SaveTable(entries, opts.SourceURL, now); err != nil {
					info.warn("saving rpp cache: %v", err)
				}
			}
			return finish(base, entries, rpp.SourceBEA, now, false, info, opts.Overrides)
		}
		info.warn("live rpp fetch failed, using fallback data: %v", err)
	}

	if cached != nil {
		return finish(base, cached, rpp.SourceCache, snap.FetchedAt, stale, info, opts.Overrides)
	}

	return applyOverrides(base, info, opts.Overrides)
}

func finish(base *rpp.Table, entries []rpp.Entry, src rpp.Source, fetched time.Time, stale bool, info Info, overrides map[string]float64) (*rpp.Table, Info, error) {
	table, err := base.Merge(entries, src)
	if err != nil {
		info.warn("discarding %s rpp data: %v", src, err)
		return applyOverrides(base, info, overrides)
	}
	info.Source = src
	info.FetchedAt = fetched
	info.Stale = stale
	return applyOverrides(table, info, overrides)
}

func applyOverrides(table *rpp.Table, info Info, overrides map[string]float64) (*rpp.Table, Info, error) {
	t, err := table.WithOverrides(overrides)
	if err != nil {
		return nil, info, fmt.Errorf("applying rpp overrides: %w", err)
	}
	return t, info, nil
}

func (o Options) withDefaults() Options {
	if o.CachePath == "" {
		o.CachePath = CachePath()
	}
	if o.MaxAge <= 0 {
		o.MaxAge = DefaultMaxAge
	}
	if o.SourceURL == "" {
		o.SourceURL = rpp.DefaultBEAURL
	}
	if o.Fetcher == nil {
		o.Fetcher = rpp.Fetcher{URL: o.SourceURL}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func (i *Info) warn(format string, args ...any) {
	i.Warnings = append(i.Warnings, fmt.Sprintf(format, args...))
}
