package cmd

import (
	"fmt"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/cli"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagAdults     int
	flagKids       int
	flagCars       int
	flagGym        bool
	flagTravel     string
	flagWithIncome bool
)

var householdCmd = &cobra.Command{
	Use:   "household",
	Short: "Per-category monthly budget for a household",
	Example: `  colest household -s OH --adults 2 --kids 1 --cars 1
  colest household -s "New York" --set housing=2br --income --json`,
	RunE: runHousehold,
}

func init() {
	f := householdCmd.Flags()
	f.IntVar(&flagAdults, "adults", 1, fmt.Sprintf("Adults in the household (%d-%d)", estimate.MinAdults, estimate.MaxAdults))
	f.IntVar(&flagKids, "kids", 0, fmt.Sprintf("Children (0-%d)", estimate.MaxKids))
	f.IntVar(&flagCars, "cars", 0, fmt.Sprintf("Cars (0-%d)", estimate.MaxCars))
	f.BoolVar(&flagGym, "gym", false, "Include a gym membership")
	f.StringVar(&flagTravel, "travel", estimate.TravelNone, "Travel level ("+strings.Join(estimate.TravelLevels(), ", ")+")")
	f.BoolVar(&flagWithIncome, "income", false, "Also recommend a gross income")
	f.StringToStringVar(&flagSet, "set", nil, "Lifestyle choice as category=tier (repeatable)")
	f.BoolVar(&flagJSON, "json", false, "Print JSON instead of a table")
	addIncomeRateFlags(householdCmd)
	rootCmd.AddCommand(householdCmd)
}

func runHousehold(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}

	h := estimate.Household{
		Adults:     flagAdults,
		Kids:       flagKids,
		Cars:       flagCars,
		Gym:        flagGym,
		Travel:     flagTravel,
		Selections: rt.selections(),
	}
	res, err := rt.est.EstimateHousehold(rt.state(), h, rt.basket)
	if err != nil {
		return err
	}

	var income *estimate.Income
	if flagWithIncome {
		in, err := rt.recommendIncome(cmd, res.Total)
		if err != nil {
			return err
		}
		income = &in
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		r := report.FromHousehold(res, rt.info.Source)
		if income != nil {
			ri := report.FromIncome(*income)
			r.Income = &ri
		}
		return report.WriteJSON(out, r)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("HOUSEHOLD BUDGET  %s", res.State.Name)))
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(res.Lines)+3)
	for _, l := range res.Lines {
		rows = append(rows, []string{l.Category, cli.FormatUSD(l.Monthly), cli.FormatUSD(l.Annual()), share(l.Monthly, res.Total)})
	}
	rows = append(rows,
		[]string{cli.SeparatorRow},
		[]string{"Total", cli.FormatUSD(res.Total), cli.FormatUSD(res.Annual()), ""},
	)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   householdSummary(h),
		Headers: []string{"Category", "Monthly", "Annual", "Share"},
		Rows:    rows,
	}))

	if income != nil {
		fmt.Fprintln(out)
		fmt.Fprint(out, renderIncome(*income))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", cli.RenderNote(sourceNote(rt.info)))
	return nil
}

func share(part, total float64) string {
	if total <= 0 {
		return ""
	}
	return cli.FormatPercent(part / total)
}

func householdSummary(h estimate.Household) string {
	parts := []string{plural(h.Adults, "adult"), plural(h.Kids, "kid"), plural(h.Cars, "car")}
	if h.Gym {
		parts = append(parts, "gym")
	}
	if t := strings.ToLower(h.Travel); t != "" && t != estimate.TravelNone {
		parts = append(parts, t+" travel")
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
