package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/NihalShah4/cost-of-living-estimator/internal/config"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/report"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCLI executes the root command with isolated config and cache
// directories and returns what it wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--quiet", "--no-cache"))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	flagState, flagTheme = "", ""
	flagNoCache, flagQuiet, flagJSON, flagRefresh = false, false, false, false
	flagBasket = 0
	flagAdults, flagKids, flagCars = 1, 0, 0
	flagGym, flagWithIncome = false, false
	flagTravel = estimate.TravelNone
	flagSavings, flagTax, flagBuffer = 0, 0, 0
	flagSet = nil

	cmds := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)
	for _, c := range cmds {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		c.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

func TestEstimate_JSON(t *testing.T) {
	out, err := runCLI(t, "estimate", "--state", "CA", "--basket", "2000", "--json")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	var got report.Estimate
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !got.Monthly.Equal(decimal.NewFromInt(2252)) {
		t.Errorf("monthly_total = %s, want 2252", got.Monthly)
	}
	if got.Source != string(rpp.SourceBuiltin) {
		t.Errorf("rpp_source = %q, want builtin", got.Source)
	}
}

func TestEstimate_SetSelections(t *testing.T) {
	out, err := runCLI(t, "estimate", "-s", "TX", "-b", "1000", "--set", "housing=2br", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got report.Estimate
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	var housing *report.Step
	for i := range got.Breakdown {
		if got.Breakdown[i].Category == lifestyle.Housing {
			housing = &got.Breakdown[i]
		}
	}
	if housing == nil || housing.Tier != "2br" {
		t.Fatalf("housing step = %+v, want tier 2br", housing)
	}
}

func TestEstimate_Table(t *testing.T) {
	out, err := runCLI(t, "estimate", "-s", "Ohio", "-b", "2500")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"COST OF LIVING", "Ohio", "Baseline basket", "Monthly", "RPP source: builtin"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestEstimate_DomainErrors(t *testing.T) {
	tests := []struct {
		args []string
		kind string
	}{
		{[]string{"estimate", "-s", "Atlantis", "-b", "1000"}, report.KindInvalidState},
		{[]string{"estimate", "-s", "TX", "-b", "0"}, report.KindInvalidInput},
		{[]string{"estimate", "-s", "CA", "-b", "1.7e308", "--json"}, report.KindInvalidInput},
		{[]string{"household", "-s", "TX", "--adults", "9"}, report.KindInvalidInput},
		{[]string{"household", "-s", "TX", "--travel", "orbital"}, report.KindUnknownChoice},
	}
	for _, tt := range tests {
		_, err := runCLI(t, tt.args...)
		if err == nil {
			t.Errorf("%v: expected error", tt.args)
			continue
		}
		if got := report.Kind(err); got != tt.kind {
			t.Errorf("%v: kind = %s, want %s (%v)", tt.args, got, tt.kind, err)
		}
		if errorHint(err) == "" {
			t.Errorf("%v: no hint for %s", tt.args, tt.kind)
		}
	}
}

func TestHousehold_JSONWithIncome(t *testing.T) {
	out, err := runCLI(t, "household", "-s", "OH", "--adults", "2", "--kids", "1", "--income", "--tax", "0.3", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got report.Household
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.State.Code != "OH" || len(got.Lines) != 9 {
		t.Errorf("household = %s with %d lines", got.State.Code, len(got.Lines))
	}
	if got.Income == nil {
		t.Fatal("income missing")
	}
	if !got.Income.TaxRate.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("tax_rate = %s, want 0.3", got.Income.TaxRate)
	}
	if !got.Income.SavingsRate.Equal(decimal.RequireFromString("0.15")) {
		t.Errorf("savings_rate = %s, want configured 0.15", got.Income.SavingsRate)
	}
}

func TestIncome_JSON(t *testing.T) {
	out, err := runCLI(t, "income", "$3,000", "--savings", "0.2", "--tax", "0.25", "--buffer", "0.1", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got report.Income
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if !got.GrossMonthly.Equal(decimal.NewFromInt(5500)) || !got.GrossAnnual.Equal(decimal.NewFromInt(66000)) {
		t.Errorf("gross = %s/%s, want 5500/66000", got.GrossMonthly, got.GrossAnnual)
	}

	if _, err := runCLI(t, "income", "lots"); report.Kind(err) != report.KindInvalidInput {
		t.Errorf("non-numeric cost: err = %v", err)
	}
}

func TestStates_Filter(t *testing.T) {
	out, err := runCLI(t, "states", "new", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got []report.State
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	// New Hampshire, New Jersey, New Mexico, New York
	if len(got) != 4 {
		t.Errorf("got %d states, want 4: %+v", len(got), got)
	}
}

func TestChoices_JSON(t *testing.T) {
	out, err := runCLI(t, "choices", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got []lifestyle.Category
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(lifestyle.Default().Categories()) {
		t.Errorf("got %d categories", len(got))
	}
}

func TestSelections_SetOverridesConfigDefaults(t *testing.T) {
	resetFlags()
	flagSet = map[string]string{"Dining": "high"}
	defer resetFlags()

	cfg := config.DefaultConfig()
	cfg.Lifestyle.Defaults = map[string]string{"dining": "low", "housing": "2br"}
	rt := &runtimeEnv{cfg: cfg}

	sel := rt.selections()
	if sel["dining"] != "high" || sel["housing"] != "2br" {
		t.Errorf("selections = %v", sel)
	}
}

func TestHouseholdSummary(t *testing.T) {
	got := householdSummary(estimate.Household{Adults: 2, Kids: 1, Gym: true, Travel: "Frequent"})
	want := "2 adults, 1 kid, 0 cars, gym, frequent travel"
	if got != want {
		t.Errorf("householdSummary = %q, want %q", got, want)
	}
}

func TestNewLogger_AutoFormat(t *testing.T) {
	tests := []struct {
		format   string
		tty      bool
		wantJSON bool
	}{
		{"auto", false, true},
		{"", false, true},
		{"auto", true, false},
		{"console", false, false},
		{"json", true, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger, err := newLogger(tt.format, &buf, tt.tty)
		if err != nil {
			t.Fatalf("newLogger(%q): %v", tt.format, err)
		}
		logger.Info().Msg("hello")
		isJSON := json.Valid(bytes.TrimSpace(buf.Bytes()))
		if isJSON != tt.wantJSON {
			t.Errorf("newLogger(%q, tty=%v) wrote %q, want JSON %v", tt.format, tt.tty, buf.String(), tt.wantJSON)
		}
	}

	if _, err := newLogger("xml", io.Discard, false); err == nil {
		t.Error("unknown format accepted")
	}
}
