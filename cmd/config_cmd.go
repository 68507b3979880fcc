// Package cmd implements the colest CLI commands.
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/cli"
	"github.com/NihalShah4/cost-of-living-estimator/internal/config"
	"github.com/NihalShah4/cost-of-living-estimator/internal/refdata"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintf(out, "  RPP cache:   %s\n", refdata.CachePath())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Default state: %s\n", cfg.General.DefaultState)
	if cfg.General.BasketUSD != nil {
		fmt.Fprintf(out, "    Basket:        %s/month\n", cli.FormatUSD(*cfg.General.BasketUSD))
	} else {
		fmt.Fprintln(out, "    Basket:        built-in line items")
	}
	if cfg.General.BasketFile != "" {
		fmt.Fprintf(out, "    Basket file:   %s\n", cfg.General.BasketFile)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [RPP]")
	if cfg.RPP.SourceURL != "" {
		fmt.Fprintf(out, "    Source URL: %s\n", cfg.RPP.SourceURL)
	}
	fmt.Fprintf(out, "    Cache TTL:  %dh\n", cfg.RPP.CacheTTLHours)
	for _, k := range sortedKeys(cfg.RPP.Overrides) {
		fmt.Fprintf(out, "    Override:   %s = %s\n", k, cli.FormatIndex(cfg.RPP.Overrides[k]))
	}
	fmt.Fprintln(out)

	if len(cfg.Lifestyle.Defaults) > 0 || len(cfg.Lifestyle.Overrides) > 0 {
		fmt.Fprintln(out, "  [Lifestyle]")
		for _, k := range sortedKeys(cfg.Lifestyle.Defaults) {
			fmt.Fprintf(out, "    Default:  %s = %s\n", k, cfg.Lifestyle.Defaults[k])
		}
		for _, cat := range sortedKeys(cfg.Lifestyle.Overrides) {
			tiers := cfg.Lifestyle.Overrides[cat]
			parts := make([]string, 0, len(tiers))
			for _, t := range sortedKeys(tiers) {
				parts = append(parts, t+cli.FormatFactor(tiers[t]))
			}
			fmt.Fprintf(out, "    Override: %s %s\n", cat, strings.Join(parts, " "))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "  [Income]")
	fmt.Fprintf(out, "    Savings rate: %s\n", cli.FormatPercent(cfg.Income.SavingsRate))
	fmt.Fprintf(out, "    Tax rate:     %s\n", cli.FormatPercent(cfg.Income.TaxRate))
	fmt.Fprintf(out, "    Buffer:       %s\n", cli.FormatPercent(cfg.Income.Buffer))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Server]")
	fmt.Fprintf(out, "    Address:    %s\n", cfg.Server.Addr)
	fmt.Fprintf(out, "    Log format: %s\n", cfg.Server.LogFormat)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `colest setup` to reconfigure.")
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
