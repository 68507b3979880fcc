// Package store provides a SQLite-backed cache for fetched price parity data.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrEmpty is returned when no snapshot has been saved yet.
var ErrEmpty = errors.New("rpp cache is empty")

// Cache stores the most recent successful price parity fetch.
type Cache struct {
	db *sql.DB
}

// Snapshot describes the cached fetch.
type Snapshot struct {
	SourceURL string
	FetchedAt time.Time
	Rows      int
}

// Age returns how long ago the snapshot was fetched.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Stale reports whether the snapshot is older than maxAge. A zero maxAge
// never expires.
func (s Snapshot) Stale(maxAge time.Duration, now time.Time) bool {
	return maxAge > 0 && s.Age(now) > maxAge
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveTable replaces the cached entries with a fresh fetch.
func (c *Cache) SaveTable(entries []rpp.Entry, sourceURL string, fetchedAt time.Time) error {
	if len(entries) == 0 {
		return errors.New("refusing to cache an empty table")
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM rpp_entries"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO rpp_entries (code, name, rpp_index) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Code, e.Name, e.Index); err != nil {
			return fmt.Errorf("caching %s: %w", e.Code, err)
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO rpp_snapshot (id, source_url, fetched_at, row_count)
		VALUES (1, ?, ?, ?)`, sourceURL, fetchedAt.UTC().Format(time.RFC3339), len(entries))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Snapshot returns metadata for the cached fetch, or ErrEmpty.
func (c *Cache) Snapshot() (Snapshot, error) {
	var s Snapshot
	var fetched string
	err := c.db.QueryRow("SELECT source_url, fetched_at, row_count FROM rpp_snapshot WHERE id = 1").
		Scan(&s.SourceURL, &fetched, &s.Rows)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrEmpty
	}
	if err != nil {
		return Snapshot{}, err
	}
	s.FetchedAt, err = time.Parse(time.RFC3339, fetched)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing fetched_at %q: %w", fetched, err)
	}
	return s, nil
}

// LoadTable reads the cached entries ordered by state name.
func (c *Cache) LoadTable() ([]rpp.Entry, Snapshot, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, Snapshot{}, err
	}

	rows, err := c.db.Query("SELECT code, name, rpp_index FROM rpp_entries ORDER BY name")
	if err != nil {
		return nil, Snapshot{}, err
	}
	defer func() { _ = rows.Close() }()

	var entries []rpp.Entry
	for rows.Next() {
		var e rpp.Entry
		if err := rows.Scan(&e.Code, &e.Name, &e.Index); err != nil {
			return nil, Snapshot{}, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, Snapshot{}, err
	}
	if len(entries) == 0 {
		return nil, Snapshot{}, ErrEmpty
	}
	return entries, snap, nil
}

// Clear removes the cached snapshot.
func (c *Cache) Clear() error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM rpp_entries"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM rpp_snapshot"); err != nil {
		return err
	}
	return tx.Commit()
}
