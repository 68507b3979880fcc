package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/config"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the first-run wizard.
type SetupValues struct {
	State  string
	Basket string // blank keeps the line-item basket
	Theme  string
}

// NewSetupValues seeds the wizard from an existing config.
func NewSetupValues(cfg config.Config) *SetupValues {
	v := &SetupValues{State: cfg.General.DefaultState, Theme: cfg.Appearance.Theme}
	if cfg.General.BasketUSD != nil {
		v.Basket = strconv.FormatFloat(*cfg.General.BasketUSD, 'f', -1, 64)
	}
	return v
}

// NewSetupForm builds the wizard that `colest setup` runs.
func NewSetupForm(v *SetupValues, table *rpp.Table) *huh.Form {
	themes := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themes[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to colest!").
				Description("Estimate living costs from a national basket, state price levels\nand your lifestyle. Let's set a few defaults."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default state").
				Suggestions(table.Names()).
				Value(&v.State).
				Validate(stateValidator(table)),
			huh.NewInput().
				Title("Monthly baseline basket (USD)").
				Description("Leave blank to use the built-in line-item basket").
				Value(&v.Basket).
				Validate(validateBasket),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

func validateBasket(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive dollar amount")
	}
	return nil
}

// Apply writes the wizard answers into cfg.
func (v *SetupValues) Apply(cfg *config.Config, table *rpp.Table) {
	if e, err := table.Lookup(v.State); err == nil {
		cfg.General.DefaultState = e.Name
	}
	s := strings.ReplaceAll(strings.TrimSpace(v.Basket), ",", "")
	if s == "" {
		cfg.General.BasketUSD = nil
	} else if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		cfg.General.BasketUSD = &f
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = theme.ByName(v.Theme).Name
		theme.SetActive(cfg.Appearance.Theme)
	}
}
