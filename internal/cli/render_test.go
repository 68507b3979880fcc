package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Step", "Amount"},
		Rows: [][]string{
			{"baseline", "$2,000"},
			{SeparatorRow},
			{"Total", "$2,640"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top, header, header rule, row, separator, row, bottom
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	w := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != w {
			t.Errorf("line %d width %d, want %d: %q", i, lipgloss.Width(l), w, l)
		}
	}
	if !strings.Contains(out, "baseline") || !strings.Contains(out, "$2,640") {
		t.Errorf("table missing cells:\n%s", out)
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 4, false); got != "ab  " {
		t.Errorf("left pad = %q", got)
	}
	if got := pad("ab", 4, true); got != "  ab" {
		t.Errorf("right pad = %q", got)
	}
	if got := pad("abcdef", 4, true); got != "abcdef" {
		t.Errorf("overflow pad = %q", got)
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	out := RenderHorizontalBar("Housing", 50, 100, 10, 20)
	if !strings.Contains(out, "Housing") || !strings.Contains(out, "50.0%") {
		t.Errorf("bar = %q", out)
	}
	if got := RenderHorizontalBar("Travel", 0, 100, 10, 20); strings.Contains(got, "█") {
		t.Errorf("zero value drew a bar: %q", got)
	}
}
