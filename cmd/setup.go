package cmd

import (
	"errors"
	"fmt"

	"github.com/NihalShah4/cost-of-living-estimator/internal/config"
	"github.com/NihalShah4/cost-of-living-estimator/internal/rpp"
	"github.com/NihalShah4/cost-of-living-estimator/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()
	table := rpp.Default()

	vals := tui.NewSetupValues(cfg)
	if err := tui.NewSetupForm(vals, table).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}
	vals.Apply(&cfg, table)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `colest setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
