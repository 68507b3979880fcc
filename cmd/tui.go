package cmd

import (
	"context"
	"fmt"

	"github.com/NihalShah4/cost-of-living-estimator/internal/basket"
	"github.com/NihalShah4/cost-of-living-estimator/internal/config"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/refdata"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive estimator",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Fetch current price parities from BEA first")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Load config for theme
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagTheme != "" {
		cfg.Appearance.Theme = flagTheme
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	catalog, err := lifestyle.Default().WithOverrides(cfg.Lifestyle.Overrides)
	if err != nil {
		return fmt.Errorf("applying lifestyle overrides: %w", err)
	}
	b := basket.Default()
	if cfg.General.BasketFile != "" {
		if b, err = basket.Load(cfg.General.BasketFile); err != nil {
			return err
		}
	}

	state := cfg.General.DefaultState
	if flagState != "" {
		state = flagState
	}
	h := estimate.DefaultHousehold()
	h.Selections = lifestyle.Selections(cfg.Lifestyle.Defaults)

	opts := refdataOptions(cfg)
	app := tui.NewApp(tui.Options{
		Load: func(ctx context.Context) (*rpp.Table, refdata.Info, error) {
			return refdata.Load(ctx, opts)
		},
		Catalog:   catalog,
		Basket:    b,
		State:     state,
		Household: h,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
