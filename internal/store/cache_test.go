package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "rpp.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_EmptyUntilSaved(t *testing.T) {
	c := openTemp(t)

	if _, err := c.Snapshot(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Snapshot err = %v, want ErrEmpty", err)
	}
	if _, _, err := c.LoadTable(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("LoadTable err = %v, want ErrEmpty", err)
	}
}

func TestCache_SaveAndLoad(t *testing.T) {
	c := openTemp(t)
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	in := []rpp.Entry{
		{Code: "NJ", Name: "New Jersey", Index: 109.9},
		{Code: "AL", Name: "Alabama", Index: 88.0},
	}
	if err := c.SaveTable(in, "https://example.test/rpp", fetched); err != nil {
		t.Fatalf("SaveTable: %v", err)
	}

	got, snap, err := c.LoadTable()
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if len(got) != 2 || got[0].Code != "AL" || got[1].Index != 109.9 {
		t.Errorf("LoadTable = %+v", got)
	}
	if !snap.FetchedAt.Equal(fetched) || snap.Rows != 2 || snap.SourceURL != "https://example.test/rpp" {
		t.Errorf("snapshot = %+v", snap)
	}

	// A second save replaces rather than appends.
	if err := c.SaveTable(in[:1], "u", fetched.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	got, snap, _ = c.LoadTable()
	if len(got) != 1 || snap.Rows != 1 {
		t.Errorf("after replace: %d entries, snapshot rows %d", len(got), snap.Rows)
	}
}

func TestCache_RejectsEmptySave(t *testing.T) {
	c := openTemp(t)
	if err := c.SaveTable(nil, "u", time.Now()); err == nil {
		t.Fatal("expected error saving empty table")
	}
}

func TestCache_Clear(t *testing.T) {
	c := openTemp(t)
	_ = c.SaveTable([]rpp.Entry{{Code: "OH", Name: "Ohio", Index: 90.6}}, "u", time.Now())
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Snapshot(); !errors.Is(err, ErrEmpty) {
		t.Errorf("after Clear err = %v, want ErrEmpty", err)
	}
}

func TestSnapshot_Stale(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s := Snapshot{FetchedAt: now.Add(-25 * time.Hour)}

	if !s.Stale(24*time.Hour, now) {
		t.Error("25h old snapshot should be stale at 24h")
	}
	if s.Stale(48*time.Hour, now) {
		t.Error("25h old snapshot should be fresh at 48h")
	}
	if s.Stale(0, now) {
		t.Error("zero maxAge should never expire")
	}
}
