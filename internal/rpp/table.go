// Package rpp holds the state-level Regional Price Parity (RPP) reference table.
//
// A Table is immutable once built. Overrides and refreshed data produce a new
// Table, so a single instance can be shared by concurrent estimates.
package rpp

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// ErrNotFound is returned when a key matches no state in the table.
var ErrNotFound = errors.New("state not found in price parity table")

// National is the RPP index of the national average.
const National = 100.0

// Entry is one state's price level.
type Entry struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Index float64 `json:"index"` // e.g. 112.6 means 12.6% above the national average
}

// Factor returns the index normalized to a multiplier around 1.0.
func (e Entry) Factor() float64 {
	return e.Index / National
}

// Source names where a table's values came from.
type Source string

// Table sources.
const (
	SourceBuiltin Source = "builtin"
	SourceBEA     Source = "bea"
	SourceCache   Source = "cache"
)

// Table is a read-only lookup from state code or name to its Entry.
type Table struct {
	entries []Entry // sorted by name
	byKey   map[string]int
	source  Source
}

var folder = cases.Fold()

// normalizeKey folds case, collapses whitespace and drops periods so that
// "d.c.", "DC" and "  dc " all compare equal.
// minSubstringKey is the shortest key matched as part of a name. Shorter
// keys are codes and must match exactly.
const minSubstringKey = 3

func normalizeKey(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	return folder.String(strings.Join(strings.Fields(s), " "))
}

// New validates entries and builds a Table.
func New(entries []Entry) (*Table, error) {
	return build(entries, SourceBuiltin)
}

func build(entries []Entry, source Source) (*Table, error) {
	if len(entries) == 0 {
		return nil, errors.New("rpp table is empty")
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	byKey := make(map[string]int, len(sorted)*2)
	for i, e := range sorted {
		e.Code = strings.ToUpper(strings.TrimSpace(e.Code))
		e.Name = strings.TrimSpace(e.Name)
		if e.Code == "" || e.Name == "" {
			return nil, fmt.Errorf("rpp entry %d: code and name are required", i)
		}
		if !(e.Index > 0) || math.IsInf(e.Index, 0) {
			return nil, fmt.Errorf("rpp entry %s: index must be a positive number, got %v", e.Code, e.Index)
		}
		sorted[i] = e

		for _, k := range []string{normalizeKey(e.Code), normalizeKey(e.Name)} {
			if prev, dup := byKey[k]; dup && prev != i {
				return nil, fmt.Errorf("rpp entry %s: duplicate key %q", e.Code, k)
			}
			byKey[k] = i
		}
	}

	return &Table{entries: sorted, byKey: byKey, source: source}, nil
}

// Len returns the number of states in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Source reports where the table's values came from.
func (t *Table) Source() Source {
	return t.source
}

// Entries returns a copy of all entries sorted by state name.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Names returns all state names sorted alphabetically.
func (t *Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup resolves a two-letter code or a state name. Exact matches win;
// otherwise a key of at least minSubstringKey characters that is a substring
// of exactly one state name is accepted, so "jersey" finds New Jersey but
// "carolina" is ambiguous and an unknown code like "MP" is not found.
func (t *Table) Lookup(key string) (Entry, error) {
	k := normalizeKey(key)
	if k == "" {
		return Entry{}, ErrNotFound
	}
	if i, ok := t.byKey[k]; ok {
		return t.entries[i], nil
	}

	if utf8.RuneCountInString(k) < minSubstringKey {
		return Entry{}, ErrNotFound
	}

	match := -1
	for i, e := range t.entries {
		if strings.Contains(normalizeKey(e.Name), k) {
			if match >= 0 {
				return Entry{}, ErrNotFound
			}
			match = i
		}
	}
	if match < 0 {
		return Entry{}, ErrNotFound
	}
	return t.entries[match], nil
}

// Factor is shorthand for Lookup(key).Factor().
func (t *Table) Factor(key string) (float64, error) {
	e, err := t.Lookup(key)
	if err != nil {
		return 0, err
	}
	return e.Factor(), nil
}

// WithOverrides returns a copy of the table with the given indexes replaced.
// Keys are codes or names; values are RPP indexes (100 = national average).
func (t *Table) WithOverrides(overrides map[string]float64) (*Table, error) {
	if len(overrides) == 0 {
		return t, nil
	}

	entries := t.Entries()
	for key, index := range overrides {
		i, ok := t.byKey[normalizeKey(key)]
		if !ok {
			return nil, fmt.Errorf("rpp override %q: %w", key, ErrNotFound)
		}
		entries[i].Index = index
	}
	return build(entries, t.source)
}

// Merge returns a copy of the table with indexes taken from fresh wherever a
// state is present in both. States missing from fresh keep their current value.
func (t *Table) Merge(fresh []Entry, source Source) (*Table, error) {
	entries := t.Entries()
	for _, f := range fresh {
		i, ok := t.byKey[normalizeKey(f.Code)]
		if !ok {
			i, ok = t.byKey[normalizeKey(f.Name)]
		}
		if !ok {
			continue
		}
		entries[i].Index = f.Index
	}
	return build(entries, source)
}
