package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/basket"
	"github.com/NihalShah4/cost-of-living-estimator/internal/cli"
	"github.com/NihalShah4/cost-of-living-estimator/internal/config"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/refdata"
	"github.com/NihalShah4/cost-of-living-estimator/internal/report"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagState   string
	flagNoCache bool
	flagQuiet   bool
	flagTheme   string
	flagJSON    bool
	flagSet     map[string]string
	flagRefresh bool
)

var rootCmd = &cobra.Command{
	Use:   "colest",
	Short: "Cost of living estimator",
	Long: "Estimate monthly living costs for a U.S. state from a baseline basket, " +
		"BEA regional price parities and lifestyle choices.",
	RunE:         runEstimate,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if hint := errorHint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderNote(hint))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagState, "state", "s", "", "State code or name (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite price parity cache")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output and warnings")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme ("+strings.Join(theme.Names(), ", ")+")")
	addEstimateFlags(rootCmd)
}

// errorHint suggests how to fix a rejected input.
func errorHint(err error) string {
	switch report.Kind(err) {
	case report.KindInvalidState:
		return "Run `colest states` to list valid states."
	case report.KindUnknownChoice:
		return "Run `colest choices` to list lifestyle categories and tiers."
	case report.KindInvalidInput:
		return "Amounts must be positive numbers and household sizes within range (see --help)."
	}
	return ""
}

// runtimeEnv is everything a command needs to estimate.
type runtimeEnv struct {
	cfg    config.Config
	est    *estimate.Estimator
	info   refdata.Info
	basket basket.Basket
}

// loadRuntime is the shared loading path used by all estimating commands.
func loadRuntime(ctx context.Context) (*runtimeEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagTheme != "" {
		cfg.Appearance.Theme = flagTheme
	}
	theme.SetActive(cfg.Appearance.Theme)

	if flagRefresh {
		stderrf("  Fetching BEA regional price parities...\n")
	}
	table, info, err := refdata.Load(ctx, refdataOptions(cfg))
	if err != nil {
		return nil, err
	}
	printWarnings(info)

	catalog, err := lifestyle.Default().WithOverrides(cfg.Lifestyle.Overrides)
	if err != nil {
		return nil, fmt.Errorf("applying lifestyle overrides: %w", err)
	}

	b := basket.Default()
	if cfg.General.BasketFile != "" {
		b, err = basket.Load(cfg.General.BasketFile)
		if err != nil {
			return nil, err
		}
	}

	return &runtimeEnv{
		cfg:    cfg,
		est:    estimate.New(table, catalog),
		info:   info,
		basket: b,
	}, nil
}

func refdataOptions(cfg config.Config) refdata.Options {
	return refdata.Options{
		Refresh:   flagRefresh,
		NoCache:   flagNoCache,
		MaxAge:    cfg.RPP.CacheTTL(),
		SourceURL: cfg.RPP.SourceURL,
		Overrides: cfg.RPP.Overrides,
	}
}

func printWarnings(info refdata.Info) {
	if flagQuiet {
		return
	}
	for _, w := range info.Warnings {
		fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarning(w))
	}
	if info.Stale {
		msg := fmt.Sprintf("cached price parities from %s are stale; run `colest states --refresh`",
			info.FetchedAt.Local().Format("2006-01-02"))
		fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarning(msg))
	}
}

// state returns the --state flag or the configured default.
func (rt *runtimeEnv) state() string {
	if flagState != "" {
		return flagState
	}
	return rt.cfg.General.DefaultState
}

// selections layers --set over the configured lifestyle defaults.
func (rt *runtimeEnv) selections() lifestyle.Selections {
	sel := lifestyle.Selections{}
	for k, v := range rt.cfg.Lifestyle.Defaults {
		sel[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for k, v := range flagSet {
		sel[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return sel
}

func sourceNote(info refdata.Info) string {
	note := "RPP source: " + string(info.Source)
	if !info.FetchedAt.IsZero() {
		note += ", fetched " + info.FetchedAt.Local().Format("2006-01-02 15:04")
	}
	if info.Stale {
		note += " (stale)"
	}
	return note
}
