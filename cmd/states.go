package cmd

import (
	"fmt"
	"strings"

	"github.com/NihalShah4/cost-of-living-estimator/internal/cli"
	"github.com/NihalShah4/cost-of-living-estimator/internal/report"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"

	"github.com/spf13/cobra"
)

var statesCmd = &cobra.Command{
	Use:   "states [FILTER]",
	Short: "List states and their regional price parity",
	Example: `  colest states
  colest states new
  colest states --refresh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStates,
}

func init() {
	statesCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Fetch current values from BEA and update the cache")
	statesCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(statesCmd)
}

func runStates(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}

	entries := filterEntries(rt.est.Table().Entries(), args)
	out := cmd.OutOrStdout()
	if flagJSON {
		states := make([]report.State, len(entries))
		for i, e := range entries {
			states[i] = report.FromEntry(e)
		}
		return report.WriteJSON(out, states)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "\n  No states match %q.\n\n", args[0])
		return nil
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, e.Code, cli.FormatIndex(e.Index), cli.FormatFactor(e.Factor())}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("REGIONAL PRICE PARITIES"))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"State", "Code", "RPP", "Factor"},
		Rows:    rows,
	}))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", cli.RenderNote(sourceNote(rt.info)))
	return nil
}

// filterEntries keeps entries whose name or code contains the filter.
func filterEntries(entries []rpp.Entry, args []string) []rpp.Entry {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return entries
	}
	q := strings.ToLower(strings.TrimSpace(args[0]))
	var out []rpp.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) || strings.ToLower(e.Code) == q {
			out = append(out, e)
		}
	}
	return out
}
