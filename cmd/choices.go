package cmd

import (
	"fmt"

	"github.com/NihalShah4/cost-of-living-estimator/internal/cli"
	"github.com/NihalShah4/cost-of-living-estimator/internal/config"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/report"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	"github.com/spf13/cobra"
)

var choicesCmd = &cobra.Command{
	Use:   "choices",
	Short: "List lifestyle categories, tiers and multipliers",
	RunE:  runChoices,
}

func init() {
	choicesCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(choicesCmd)
}

func runChoices(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	catalog, err := lifestyle.Default().WithOverrides(cfg.Lifestyle.Overrides)
	if err != nil {
		return fmt.Errorf("applying lifestyle overrides: %w", err)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return report.WriteJSON(out, catalog.Categories())
	}

	var rows [][]string
	for i, cat := range catalog.Categories() {
		if i > 0 {
			rows = append(rows, []string{cli.SeparatorRow})
		}
		for j, t := range cat.Tiers {
			name := ""
			if j == 0 {
				name = cat.Name
			}
			tier := t.Name
			if t.Name == cat.Neutral {
				tier += " *"
			}
			rows = append(rows, []string{name, tier, t.Label, cli.FormatFactor(t.Multiplier)})
		}
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   "Lifestyle choices",
		Headers: []string{"Category", "Tier", "Label", "Multiplier"},
		Rows:    rows,
	}))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", cli.RenderNote("* neutral tier, used when a category is not set. Use --set category=tier."))
	return nil
}
