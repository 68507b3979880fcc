package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/NihalShah4/cost-of-living-estimator/internal/basket"
	"github.com/NihalShah4/cost-of-living-estimator/internal/config"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/refdata"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

func loadedApp(t *testing.T) App {
	t.Helper()
	a := NewApp(Options{Basket: basket.Default(), State: "New Jersey"})

	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = m.(App).Update(tableLoadedMsg{table: rpp.Default(), info: refdata.Info{Source: rpp.SourceBuiltin}})
	a = m.(App)
	if a.form == nil {
		t.Fatal("form not opened after table load")
	}
	return a
}

func TestApp_LoadOpensForm(t *testing.T) {
	a := loadedApp(t)
	if a.vals.state != "New Jersey" || a.vals.adults != 1 || a.vals.travel != estimate.TravelNone {
		t.Errorf("vals = %+v", a.vals)
	}
	if got := *a.vals.tiers[lifestyle.Housing]; got != "1br" {
		t.Errorf("housing tier = %q, want neutral 1br", got)
	}
	if !strings.Contains(a.View(), "colest") {
		t.Error("form view missing header")
	}
}

func TestApp_ComputeAndResultView(t *testing.T) {
	a := loadedApp(t)
	a.vals.adults = 2
	a.vals.kids = 1
	*a.vals.tiers[lifestyle.Dining] = "high"

	if err := a.compute(); err != nil {
		t.Fatalf("compute: %v", err)
	}
	a.form = nil

	if a.household == nil || a.steps == nil {
		t.Fatal("results not set")
	}
	if c, _ := a.household.Line(estimate.LineChildcare); c.Monthly <= 0 {
		t.Errorf("childcare = %v, want > 0", c.Monthly)
	}
	if last := a.steps.Breakdown[len(a.steps.Breakdown)-1]; last.Category != lifestyle.Entertainment {
		t.Errorf("last step = %q", last.Category)
	}

	view := a.View()
	for _, want := range []string{"Household budget", "Housing", "Monthly", "RPP: builtin"} {
		if !strings.Contains(view, want) {
			t.Errorf("result view missing %q", want)
		}
	}
}

func TestApp_ComputeRejectsUnknownState(t *testing.T) {
	a := loadedApp(t)
	a.vals.state = "Narnia"
	if err := a.compute(); !errors.Is(err, estimate.ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func TestApp_LoadFailure(t *testing.T) {
	a := NewApp(Options{})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.(App).Update(tableLoadedMsg{err: errors.New("disk full")})
	a = m.(App)

	if !strings.Contains(a.View(), "disk full") {
		t.Errorf("fatal view = %q", a.View())
	}
	if _, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd == nil {
		t.Error("expected quit command after load failure")
	}
}

func TestFormValues_FromHousehold(t *testing.T) {
	h := estimate.Household{
		Adults:     3,
		Travel:     estimate.TravelFrequent,
		Selections: lifestyle.Selections{"HOUSING": "2BR", "dining": "nope"},
	}
	v := newFormValues("OH", h, lifestyle.Default())

	if *v.tiers[lifestyle.Housing] != "2br" {
		t.Errorf("housing = %q, want 2br", *v.tiers[lifestyle.Housing])
	}
	// Unknown tiers fall back to neutral.
	if *v.tiers[lifestyle.Dining] != "medium" {
		t.Errorf("dining = %q, want medium", *v.tiers[lifestyle.Dining])
	}
	got := v.household()
	if got.Adults != 3 || got.Travel != estimate.TravelFrequent || len(got.Selections) != len(lifestyle.Default().Categories()) {
		t.Errorf("household = %+v", got)
	}
}

func TestStateValidator(t *testing.T) {
	validate := stateValidator(rpp.Default())
	if err := validate("nj"); err != nil {
		t.Errorf("nj: %v", err)
	}
	if err := validate(""); err == nil {
		t.Error("empty state accepted")
	}
	if err := validate("Gondor"); err == nil {
		t.Error("unknown state accepted")
	}
}

func TestSetup_ApplyAndValidate(t *testing.T) {
	for in, ok := range map[string]bool{"": true, "2,500": true, "3100.5": true, "0": false, "-1": false, "lots": false} {
		if err := validateBasket(in); (err == nil) != ok {
			t.Errorf("validateBasket(%q) err = %v", in, err)
		}
	}

	defer theme.SetActive(theme.FlexokiDark.Name)

	cfg := config.DefaultConfig()
	v := NewSetupValues(cfg)
	v.State = "tx"
	v.Basket = "2,500"
	v.Theme = "terminal"
	v.Apply(&cfg, rpp.Default())

	if cfg.General.DefaultState != "Texas" {
		t.Errorf("DefaultState = %q, want Texas", cfg.General.DefaultState)
	}
	if cfg.General.BasketUSD == nil || *cfg.General.BasketUSD != 2500 {
		t.Errorf("BasketUSD = %v, want 2500", cfg.General.BasketUSD)
	}
	if cfg.Appearance.Theme != "terminal" {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}
}
