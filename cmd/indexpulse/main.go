package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"IndexPulse/internal/applog"
	"IndexPulse/internal/calculator"
	"IndexPulse/internal/chart"
	"IndexPulse/internal/collector"
	"IndexPulse/internal/config"
	"IndexPulse/internal/ranker"
	"IndexPulse/internal/recorder"
	"IndexPulse/internal/report"
)

const version = "1.0.0"

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "indexpulse",
		Short: "One-shot movers report for a fixed equity index",
		Long: `indexpulse fetches a live snapshot of the configured index, backfills
per-symbol history, ranks daily movers, 52-week range proximity and 30-day
returns, then writes a text report and bar charts and exits.`,
		RunE:         runAnalysis,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "configs/config.yaml", "path to YAML config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("indexpulse " + version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalysis(cmd *cobra.Command, _ []string) error {
	if v := os.Getenv("CONFIG_PATH"); v != "" && !cmd.Flags().Changed("config") {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log, err := applog.New(applog.Options{
		FilePath: cfg.Log.File,
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
	})
	if err != nil {
		return err
	}
	defer log.Close()
	log.Infof("indexpulse %s starting, index %q", version, cfg.Index.Name)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap := collector.NewNSEFetcher(cfg.Index.BaseURL, cfg.Index.Name,
		cfg.Timeout(), cfg.Fetch.MaxRetries, cfg.Proxy, log)
	hist := collector.NewYahooFetcher(cfg.Index.SymbolSuffix, cfg.Timeout(), cfg.Proxy, log)
	col := collector.New(snap, hist, cfg.Fetch.RequestsPerSec, cfg.Analysis.HistoryDays, log)

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.WithError(err).Warn("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}
	defer rec.Close()

	records, err := col.Collect(ctx)
	if err != nil {
		log.WithError(err).Error("collect failed")
		return fmt.Errorf("collect: %w", err)
	}

	metrics, skipped, err := calculator.Compute(records)
	if err != nil {
		log.WithError(err).Error("metric computation failed")
		return fmt.Errorf("compute metrics: %w", err)
	}
	for _, s := range skipped {
		log.WithError(s.Reason).Warnf("excluded %s from all rankings", s.Symbol)
	}

	rankings := ranker.BuildAll(metrics, ranker.Options{
		TopN:         cfg.Analysis.TopN,
		BelowHighMin: cfg.Analysis.BelowHighMinPct,
		AboveLowMin:  cfg.Analysis.AboveLowMinPct,
	})

	asOf := time.Now()
	text := report.Format(asOf, cfg.Index.Name, rankings, metrics)
	reportPath := filepath.Join(cfg.Output.DataDir, cfg.Output.ReportFile)
	if err := report.Write(reportPath, text); err != nil {
		return err
	}
	log.Infof("report saved: %s", reportPath)

	// Echo the saved report so a terminal run shows the result directly.
	fmt.Print(text)

	cr := chart.NewRenderer(log)
	if err := cr.RenderBars(fmt.Sprintf("Top %d Gainers (%% change)", rankings.TopN),
		rankings.Gainers, chart.ColorGain,
		filepath.Join(cfg.Output.DataDir, cfg.Output.GainersChart)); err != nil {
		log.WithError(err).Error("render gainers chart")
	}
	if err := cr.RenderBars(fmt.Sprintf("Top %d Losers (%% change)", rankings.TopN),
		rankings.Losers, chart.ColorLoss,
		filepath.Join(cfg.Output.DataDir, cfg.Output.LosersChart)); err != nil {
		log.WithError(err).Error("render losers chart")
	}

	if err := rec.RecordRun(&recorder.RunRecord{
		Timestamp:    asOf,
		IndexName:    cfg.Index.Name,
		SymbolCount:  len(metrics),
		SkippedCount: len(skipped),
		Rankings:     rankings,
	}); err != nil {
		log.WithError(err).Error("record run history")
	}

	log.Info("run complete")
	return nil
}
