package main

import (
	"fmt"
	"os"
	"time"

	"overnight-analyzer/internal/config"
	"overnight-analyzer/internal/data"
	"overnight-analyzer/internal/pipeline"
	"overnight-analyzer/internal/util"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "overnight",
		Short:         "Overnight gap pattern analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd())
	root.AddCommand(computeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runCmd fetches live series from the data gateway and writes the report.
func runCmd() *cobra.Command {
	var (
		cfgPath string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch series, backtest the pattern, write the status report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if outPath != "" {
				cfg.Output.Path = outPath
			}
			log := util.NewLogger(cfg.LogLevel, true)

			client := data.NewClient(
				cfg.Provider.APIKey,
				cfg.Provider.BaseURL,
				time.Duration(cfg.Provider.TimeoutSeconds)*time.Second,
				log,
			)
			return runPipeline(cfg, client, log)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to YAML config (optional)")
	cmd.Flags().StringVar(&outPath, "out", "", "Report output path (overrides config)")
	return cmd
}

// computeCmd runs offline from saved provider frames, no network.
func computeCmd() *cobra.Command {
	var (
		cfgPath     string
		outPath     string
		primaryPath string
		proxyPath   string
		vixPath     string
	)
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Backtest from local series JSON files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if primaryPath == "" {
				return fmt.Errorf("--primary is required")
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if outPath != "" {
				cfg.Output.Path = outPath
			}
			log := util.NewLogger(cfg.LogLevel, true)

			paths := map[string]string{cfg.Symbols.Primary: primaryPath}
			if proxyPath != "" {
				paths[cfg.Symbols.Proxy] = proxyPath
			}
			if vixPath != "" {
				paths[cfg.Symbols.Vix] = vixPath
			}
			return runPipeline(cfg, &data.FixtureSource{Paths: paths}, log)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to YAML config (optional)")
	cmd.Flags().StringVar(&outPath, "out", "", "Report output path (overrides config)")
	cmd.Flags().StringVar(&primaryPath, "primary", "", "Primary instrument series JSON")
	cmd.Flags().StringVar(&proxyPath, "proxy", "", "Proxy-market series JSON (optional)")
	cmd.Flags().StringVar(&vixPath, "vix", "", "Volatility-index series JSON (optional)")
	return cmd
}

func runPipeline(cfg *config.Config, source data.SeriesSource, log zerolog.Logger) error {
	rep, err := pipeline.New(cfg, source, log).Run()
	if err != nil {
		return err
	}
	if err := pipeline.WriteReport(cfg.Output.Path, rep); err != nil {
		return err
	}
	log.Info().Str("path", cfg.Output.Path).Msg("report written")

	m := rep.Metrics
	fmt.Printf("%-16s %d\n", "trades", m.Trades)
	fmt.Printf("%-16s %.4f%%\n", "avg", m.AvgPct)
	fmt.Printf("%-16s %.2f\n", "avg points", m.AvgPoints)
	fmt.Printf("%-16s %.2f\n", "avg raw points", m.AvgPointsRaw)
	fmt.Printf("%-16s %.1f%%\n", "winrate", m.WinratePct)
	fmt.Printf("%-16s %.2f%%\n", "cagr", m.CagrPct)
	fmt.Printf("%-16s %.2f%%\n", "max drawdown", m.MaxDDPct)
	fmt.Printf("%-16s %.2f%%\n", "total return", m.TotalReturnPct)
	fmt.Printf("%-16s %s %s (as of %s, next %s)\n", "signal",
		rep.Signal.Signal, rep.Signal.Emoji, rep.Signal.Today, rep.Signal.Tomorrow)
	return nil
}
