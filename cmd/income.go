package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/cli"
	"github.com/NihalShah4/cost-of-living-estimator/internal/config"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/report"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagSavings float64
	flagTax     float64
	flagBuffer  float64
)

var incomeCmd = &cobra.Command{
	Use:   "income MONTHLY_COST",
	Short: "Recommend a gross income that covers a monthly cost",
	Example: `  colest income 3000
  colest income 4200 --savings 0.2 --tax 0.25 --buffer 0.1`,
	Args: cobra.ExactArgs(1),
	RunE: runIncome,
}

func init() {
	incomeCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON instead of a table")
	addIncomeRateFlags(incomeCmd)
	rootCmd.AddCommand(incomeCmd)
}

func addIncomeRateFlags(c *cobra.Command) {
	c.Flags().Float64Var(&flagSavings, "savings", 0, "Share of net income to save, 0-0.80 (default from config)")
	c.Flags().Float64Var(&flagTax, "tax", 0, "Effective tax rate on gross income, 0-0.60 (default from config)")
	c.Flags().Float64Var(&flagBuffer, "buffer", 0, "Extra cushion on expenses, e.g. 0.05 (default from config)")
}

func runIncome(cmd *cobra.Command, args []string) error {
	cost, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(args[0], "$"), ",", ""), 64)
	if err != nil {
		return &estimate.InputError{Field: "monthly cost", Reason: fmt.Sprintf("%q is not a number", args[0])}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagTheme != "" {
		cfg.Appearance.Theme = flagTheme
	}
	theme.SetActive(cfg.Appearance.Theme)

	rt := &runtimeEnv{cfg: cfg}
	in, err := rt.recommendIncome(cmd, cost)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return report.WriteJSON(out, report.FromIncome(in))
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, renderIncome(in))
	fmt.Fprintln(out)
	return nil
}

// recommendIncome uses the rate flags that were given and the configured
// defaults for the rest.
func (rt *runtimeEnv) recommendIncome(cmd *cobra.Command, monthlyCost float64) (estimate.Income, error) {
	rate := func(name string, flag, def float64) float64 {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			return flag
		}
		return def
	}
	ic := rt.cfg.Income
	return estimate.RecommendIncome(monthlyCost,
		rate("savings", flagSavings, ic.SavingsRate),
		rate("tax", flagTax, ic.TaxRate),
		rate("buffer", flagBuffer, ic.Buffer))
}

func renderIncome(in estimate.Income) string {
	return cli.RenderTable(cli.Table{
		Title: "Recommended income",
		Rows: [][]string{
			{"Expenses + buffer", cli.FormatUSD(in.ExpensesAdjusted)},
			{"Net monthly", cli.FormatUSD(in.NetMonthly) + "  (saves " + cli.FormatPercent(in.SavingsRate) + ")"},
			{"Gross monthly", cli.FormatUSD(in.GrossMonthly) + "  (tax " + cli.FormatPercent(in.TaxRate) + ")"},
			{cli.SeparatorRow},
			{"Gross annual", cli.FormatUSD(in.GrossAnnual)},
		},
	})
}
