package cmd

import (
	"fmt"
	"os"

	"github.com/NihalShah4/cost-of-living-estimator/internal/cli"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/report"

	"github.com/spf13/cobra"
)

var flagBasket float64

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate monthly cost from a baseline basket",
	Example: `  colest estimate --state CA --basket 2000
  colest estimate -s "New Jersey" --set housing=2br --set dining=high
  colest estimate -s TX --json`,
	RunE: runEstimate,
}

func init() {
	addEstimateFlags(estimateCmd)
	rootCmd.AddCommand(estimateCmd)
}

func addEstimateFlags(c *cobra.Command) {
	c.Flags().Float64VarP(&flagBasket, "basket", "b", 0, "Monthly baseline basket in USD (default from config)")
	c.Flags().StringToStringVar(&flagSet, "set", nil, "Lifestyle choice as category=tier (repeatable)")
	c.Flags().BoolVar(&flagJSON, "json", false, "Print JSON instead of a table")
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}

	res, err := rt.est.Estimate(estimate.Request{
		State:      rt.state(),
		Basket:     rt.basketUSD(cmd),
		Selections: rt.selections(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return report.WriteJSON(out, report.FromResult(res, rt.info.Source))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("COST OF LIVING  %s", res.State.Name)))
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(res.Breakdown)+4)
	for _, c := range res.Breakdown {
		label := c.Category
		switch c.Category {
		case estimate.StepBaseline:
			label = "Baseline basket"
		case estimate.StepState:
			label = fmt.Sprintf("%s (RPP %s)", res.State.Name, cli.FormatIndex(res.State.Index))
		default:
			if cat, ok := rt.est.Catalog().Category(c.Category); ok && cat.Label != "" {
				label = cat.Label
			}
		}
		change := cli.FormatDelta(c.Amount)
		if c.Category == estimate.StepBaseline {
			change = cli.FormatUSD(c.Amount)
		}
		rows = append(rows, []string{label, c.Tier, cli.FormatFactor(c.Factor), change})
	}
	rows = append(rows,
		[]string{cli.SeparatorRow},
		[]string{"Monthly", "", cli.FormatFactor(res.Multiplier()), cli.FormatUSD(res.Total)},
		[]string{"Annual", "", "", cli.FormatUSD(res.Annual())},
	)

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Step", "Choice", "Factor", "Change"},
		Rows:    rows,
	}))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", cli.RenderNote(sourceNote(rt.info)))
	return nil
}

// basketUSD returns --basket when given, then the configured amount, then
// the total of the line-item basket.
func (rt *runtimeEnv) basketUSD(cmd *cobra.Command) float64 {
	if f := cmd.Flags().Lookup("basket"); f != nil && f.Changed {
		return flagBasket
	}
	if rt.cfg.General.BasketUSD != nil {
		return *rt.cfg.General.BasketUSD
	}
	return rt.basket.Monthly()
}

// stderrf prints progress unless --quiet.
func stderrf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
