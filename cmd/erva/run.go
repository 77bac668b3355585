package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantbr/erva/internal/app"
	"github.com/quantbr/erva/internal/config"
	"github.com/quantbr/erva/internal/logger"
	"github.com/quantbr/erva/internal/metrics"
	"github.com/quantbr/erva/internal/report"
	"github.com/quantbr/erva/internal/source/bcb"
	"github.com/quantbr/erva/internal/source/cvm"
	"github.com/quantbr/erva/internal/source/yahoo"
)

var (
	fromYear int
	toYear   int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one full valuation pass",
	RunE:  runValuation,
}

func init() {
	runCmd.Flags().IntVar(&fromYear, "from", 0, "override first fiscal year")
	runCmd.Flags().IntVar(&toYear, "to", 0, "override last fiscal year")
	rootCmd.AddCommand(runCmd)
}

func runValuation(cmd *cobra.Command, args []string) error {
	// Initialize logger
	log := logger.Must(debug)
	defer log.Sync()

	// Load config
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if fromYear != 0 {
		cfg.Years.From = fromYear
	}
	if toYear != 0 {
		cfg.Years.To = toYear
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("starting valuation run",
		zap.Int("from", cfg.Years.From),
		zap.Int("to", cfg.Years.To),
		zap.Int("entities", len(cfg.Entities)),
		zap.String("benchmark", cfg.Benchmark),
	)

	reg := metrics.NewRegistry()

	// Optional metrics listener for the duration of the run.
	var metricsSrv *http.Server
	if cfg.Metrics.Enabled && cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics listener error", zap.Error(err))
			}
		}()
		log.Info("metrics listener started", zap.String("addr", cfg.Metrics.Addr))
	}

	sources := app.Sources{
		Disclosures: cvm.New(cfg.Sources.Disclosure.BaseURL),
		Prices:      yahoo.New(cfg.Sources.Prices.BaseURL),
		Rates:       bcb.New(cfg.Sources.Rates.BaseURL, cfg.Sources.Rates.Series),
	}
	sink := report.NewCSVSink(cfg.Report.Dir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := app.New(cfg, log, reg, sources, sink).Run(ctx)

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics listener shutdown error", zap.Error(err))
		}
	}

	return runErr
}
