package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NihalShah4/cost-of-living-estimator/internal/web"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagAddr      string
	flagLogFormat string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the estimator as a web form and JSON API",
	Example: `  colest serve
  colest serve --addr :8080 --log-format json --refresh`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	serveCmd.Flags().StringVar(&flagLogFormat, "log-format", "", "Log format: auto, console or json (default from config)")
	serveCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Fetch current price parities from BEA before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := loadRuntime(ctx)
	if err != nil {
		return err
	}

	addr := rt.cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}
	format := rt.cfg.Server.LogFormat
	if flagLogFormat != "" {
		format = flagLogFormat
	}
	logger, err := newLogger(format, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
	if err != nil {
		return err
	}

	var baseline float64
	if rt.cfg.General.BasketUSD != nil {
		baseline = *rt.cfg.General.BasketUSD
	}

	srv := web.New(web.Config{
		Addr:         addr,
		DefaultState: rt.state(),
		Basket:       rt.basket,
		BaselineUSD:  baseline,
		Income: web.IncomeDefaults{
			SavingsRate: rt.cfg.Income.SavingsRate,
			TaxRate:     rt.cfg.Income.TaxRate,
			Buffer:      rt.cfg.Income.Buffer,
		},
		Info:   rt.info,
		Logger: logger,
	}, rt.est)

	stderrf("  colest serving on http://%s (Ctrl-C to stop)\n", addr)
	return srv.Run(ctx)
}

// newLogger builds the server logger. "auto" picks the console writer when
// w is a terminal and JSON lines otherwise.
func newLogger(format string, w io.Writer, tty bool) (zerolog.Logger, error) {
	if format == "" || format == "auto" {
		format = "json"
		if tty {
			format = "console"
		}
	}
	switch format {
	case "console":
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger(), nil
	case "json":
		zerolog.TimeFieldFormat = time.RFC3339
		return zerolog.New(w).With().Timestamp().Logger(), nil
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q (want auto, console or json)", format)
	}
}
