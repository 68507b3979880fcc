package rpp

import (
	"errors"
	"math"
	"testing"
)

func TestDefault_HasAllStatesAndDC(t *testing.T) {
	tbl := Default()
	if tbl.Len() != 51 {
		t.Fatalf("Len() = %d, want 51", tbl.Len())
	}
	if tbl.Source() != SourceBuiltin {
		t.Errorf("Source() = %q, want %q", tbl.Source(), SourceBuiltin)
	}
	for _, e := range tbl.Entries() {
		if f := e.Factor(); f < 0.8 || f > 1.5 {
			t.Errorf("%s factor = %.3f, outside 0.80-1.50", e.Code, f)
		}
	}
}

func TestLookup(t *testing.T) {
	tbl := Default()

	tests := []struct {
		key      string
		wantCode string
		wantErr  bool
	}{
		{key: "NJ", wantCode: "NJ"},
		{key: "nj", wantCode: "NJ"},
		{key: "New Jersey", wantCode: "NJ"},
		{key: "  new   jersey ", wantCode: "NJ"},
		{key: "D.C.", wantCode: "DC"},
		{key: "District of Columbia", wantCode: "DC"},
		{key: "Virginia", wantCode: "VA"},
		{key: "west virg", wantCode: "WV"},
		{key: "jersey", wantCode: "NJ"},
		{key: "carolina", wantErr: true},
		{key: "Puerto Rico", wantErr: true},
		{key: "", wantErr: true},
		{key: "XX", wantErr: true},
		{key: "MP", wantErr: true}, // Northern Mariana Islands, part of "New Hampshire"
		{key: "gu", wantErr: true},
		{key: "ham", wantCode: "NH"},
	}

	for _, tt := range tests {
		got, err := tbl.Lookup(tt.key)
		if tt.wantErr {
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Lookup(%q) err = %v, want ErrNotFound", tt.key, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%q) unexpected error: %v", tt.key, err)
			continue
		}
		if got.Code != tt.wantCode {
			t.Errorf("Lookup(%q) = %s, want %s", tt.key, got.Code, tt.wantCode)
		}
	}
}

func TestFactor(t *testing.T) {
	f, err := Default().Factor("California")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(f-1.126) > 1e-9 {
		t.Fatalf("California factor = %v, want 1.126", f)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty", nil},
		{"zero index", []Entry{{Code: "AA", Name: "Alpha", Index: 0}}},
		{"negative index", []Entry{{Code: "AA", Name: "Alpha", Index: -3}}},
		{"nan index", []Entry{{Code: "AA", Name: "Alpha", Index: math.NaN()}}},
		{"inf index", []Entry{{Code: "AA", Name: "Alpha", Index: math.Inf(1)}}},
		{"missing code", []Entry{{Name: "Alpha", Index: 100}}},
		{"duplicate", []Entry{{Code: "AA", Name: "Alpha", Index: 100}, {Code: "aa", Name: "Beta", Index: 100}}},
	}
	for _, tt := range tests {
		if _, err := New(tt.entries); err == nil {
			t.Errorf("%s: New() returned nil error", tt.name)
		}
	}
}

func TestWithOverrides_DoesNotMutateOriginal(t *testing.T) {
	base := Default()
	before, _ := base.Lookup("OH")

	over, err := base.WithOverrides(map[string]float64{"ohio": 95.0})
	if err != nil {
		t.Fatal(err)
	}

	got, _ := over.Lookup("OH")
	if got.Index != 95.0 {
		t.Errorf("override Index = %v, want 95", got.Index)
	}
	after, _ := base.Lookup("OH")
	if after.Index != before.Index {
		t.Errorf("original table mutated: %v -> %v", before.Index, after.Index)
	}

	if _, err := base.WithOverrides(map[string]float64{"Atlantis": 100}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown override err = %v, want ErrNotFound", err)
	}
	if _, err := base.WithOverrides(map[string]float64{"OH": 0}); err == nil {
		t.Error("zero override accepted")
	}
}

func TestMerge_KeepsMissingStates(t *testing.T) {
	base := Default()
	merged, err := base.Merge([]Entry{{Code: "CA", Name: "California", Index: 115.0}}, SourceBEA)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Source() != SourceBEA {
		t.Errorf("Source() = %q, want bea", merged.Source())
	}
	ca, _ := merged.Lookup("CA")
	if ca.Index != 115.0 {
		t.Errorf("CA = %v, want 115", ca.Index)
	}
	tx, _ := merged.Lookup("TX")
	wantTX, _ := base.Lookup("TX")
	if tx.Index != wantTX.Index {
		t.Errorf("TX = %v, want unchanged %v", tx.Index, wantTX.Index)
	}
}
