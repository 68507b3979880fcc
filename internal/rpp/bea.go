package rpp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultBEAURL is the BEA page listing RPPs by state and metro area.
const DefaultBEAURL = "https://www.bea.gov/data/prices-inflation/regional-price-parities-state-and-metro-area"

const (
	defaultFetchTimeout = 20 * time.Second
	maxPageBytes        = 8 << 20

	// A state table has one row per state plus a few aggregate rows.
	minStateRows = 40

	// Parsed indexes outside this range are treated as scrape noise.
	minPlausibleIndex = 50.0
	maxPlausibleIndex = 200.0
)

// ErrNoStateTable is returned when a page contains no usable state table.
var ErrNoStateTable = errors.New("no state RPP table found")

// Fetcher downloads and parses the BEA RPP page.
type Fetcher struct {
	Client *http.Client
	URL    string
}

// Fetch downloads the page and returns the entries it could resolve to a
// known state. Names are matched against the built-in table.
func (f Fetcher) Fetch(ctx context.Context) ([]Entry, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	url := f.URL
	if url == "" {
		url = DefaultBEAURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "colest/1 (+cost of living estimator)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rpp page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching rpp page: unexpected status %s", resp.Status)
	}

	return ParseStateTable(io.LimitReader(resp.Body, maxPageBytes), Default())
}

// ParseStateTable scans every <table> in an HTML document and returns the
// entries of the first one that has a "state" header column and at least
// minStateRows data rows. The first column other than the state column whose
// cells are mostly numeric is used as the index. Rows naming a state that is
// not in known (national totals, metro areas) are skipped.
func ParseStateTable(r io.Reader, known *Table) ([]Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing rpp page: %w", err)
	}

	for _, rows := range collectTables(doc) {
		entries, ok := stateEntries(rows, known)
		if ok {
			return entries, nil
		}
	}
	return nil, ErrNoStateTable
}

func stateEntries(rows [][]string, known *Table) ([]Entry, bool) {
	if len(rows) < minStateRows+1 {
		return nil, false
	}

	header, data := rows[0], rows[1:]
	stateCol := -1
	for i, h := range header {
		if strings.Contains(strings.ToLower(h), "state") {
			stateCol = i
			break
		}
	}
	if stateCol < 0 {
		return nil, false
	}

	valueCol := -1
	for col := range header {
		if col == stateCol {
			continue
		}
		if numericShare(data, col) > 0.6 {
			valueCol = col
			break
		}
	}
	if valueCol < 0 {
		return nil, false
	}

	var entries []Entry
	for _, row := range data {
		if stateCol >= len(row) || valueCol >= len(row) {
			continue
		}
		v, ok := parseIndex(row[valueCol])
		if !ok || v < minPlausibleIndex || v > maxPlausibleIndex {
			continue
		}
		e, ok := exactState(known, row[stateCol])
		if !ok {
			continue
		}
		e.Index = v
		entries = append(entries, e)
	}
	return entries, len(entries) > 0
}

// exactState resolves name without the substring fallback of Lookup, so
// metro rows such as "Trenton, NJ" never shadow a state.
func exactState(known *Table, name string) (Entry, bool) {
	i, ok := known.byKey[normalizeKey(name)]
	if !ok {
		return Entry{}, false
	}
	return known.entries[i], true
}

func numericShare(rows [][]string, col int) float64 {
	if len(rows) == 0 {
		return 0
	}
	n := 0
	for _, row := range rows {
		if col < len(row) {
			if _, ok := parseIndex(row[col]); ok {
				n++
			}
		}
	}
	return float64(n) / float64(len(rows))
}

func parseIndex(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// collectTables returns the text of every table as rows of cells.
func collectTables(n *html.Node) [][][]string {
	var tables [][][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, tableRows(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return tables
}

func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
					cells = append(cells, nodeText(c))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		// Nested tables are scanned separately by collectTables.
		if n != table && n.Type == html.ElementNode && n.DataAtom == atom.Table {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
