package rpp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// statePage renders an HTML page with a small unrelated table followed by a
// state RPP table built from the built-in entries with index+delta.
func statePage(delta float64) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<table><tr><th>Release</th><th>Date</th></tr><tr><td>RPP</td><td>2024</td></tr></table>")
	b.WriteString("<table><thead><tr><th>State</th><th>2022</th><th>2021</th></tr></thead><tbody>")
	b.WriteString("<tr><td>United States</td><td>100.0</td><td>100.0</td></tr>")
	for _, e := range builtinEntries {
		fmt.Fprintf(&b, "<tr><td><a href=\"#\">%s</a></td><td>%.1f</td><td>n/a</td></tr>", e.Name, e.Index+delta)
	}
	b.WriteString("<tr><td>Trenton, NJ</td><td>110.2</td><td>109.0</td></tr>")
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}

func TestParseStateTable(t *testing.T) {
	entries, err := ParseStateTable(strings.NewReader(statePage(1.0)), Default())
	if err != nil {
		t.Fatalf("ParseStateTable: %v", err)
	}
	if len(entries) != 51 {
		t.Fatalf("got %d entries, want 51", len(entries))
	}

	byCode := make(map[string]float64, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e.Index
	}
	if got := byCode["NJ"]; got < 109.89 || got > 109.91 {
		t.Errorf("NJ index = %v, want 109.9", got)
	}
}

func TestParseStateTable_SkipsImplausibleValues(t *testing.T) {
	page := strings.Replace(statePage(0), "<td>112.6</td>", "<td>9999</td>", 1)
	entries, err := ParseStateTable(strings.NewReader(page), Default())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Code == "CA" {
			t.Fatalf("California with index 9999 was not skipped")
		}
	}
}

func TestParseStateTable_NoStateTable(t *testing.T) {
	page := "<html><body><table><tr><th>Metro</th><th>RPP</th></tr><tr><td>A</td><td>1</td></tr></table></body></html>"
	_, err := ParseStateTable(strings.NewReader(page), Default())
	if !errors.Is(err, ErrNoStateTable) {
		t.Fatalf("err = %v, want ErrNoStateTable", err)
	}
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(statePage(0)))
	}))
	defer srv.Close()

	entries, err := Fetcher{Client: srv.Client(), URL: srv.URL}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(entries) != 51 {
		t.Fatalf("got %d entries, want 51", len(entries))
	}
}

func TestFetcher_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := (Fetcher{Client: srv.Client(), URL: srv.URL}).Fetch(context.Background()); err == nil {
		t.Fatal("Fetch returned nil error on 503")
	}
}
