package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/billaudit/internal/audit"
	"github.com/gyeh/billaudit/internal/exitcode"
	"github.com/gyeh/billaudit/internal/logging"
	"github.com/gyeh/billaudit/internal/report"
	"github.com/gyeh/billaudit/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run duplicate detection over a bill-lines JSON file",
	RunE:  runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to bill lines JSON file (required)")
	f.StringVar(&cfg.Format, "format", "text", "Report output: text or json")
	f.BoolVar(&cfg.Save, "save", false, "Persist the analysis to Postgres")
	f.BoolVar(&cfg.ApplyExclusions, "apply-exclusions", false, "Drop matches where every line pair has a valid clinical explanation")
	_ = analyzeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfg.Save {
		if err := cfg.ValidateWithDSN(); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}
	} else if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var st *store.Store
	if cfg.Save {
		pool, err := store.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
		st = store.New(pool)
	}

	res, err := audit.Run(ctx, log, &cfg, st)
	if err != nil {
		var pe *audit.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("analysis failed")
			switch pe.Phase {
			case "load":
				os.Exit(exitcode.InputError)
			case "persist":
				os.Exit(exitcode.StoreError)
			default:
				os.Exit(exitcode.DetectError)
			}
		}
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(exitcode.DetectError)
	}

	if cfg.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"analysis_id": res.Summary.AnalysisID,
			"line_count":  res.Summary.LineCount,
			"matches":     res.Matches,
			"summary":     res.Report,
		})
	}

	report.RenderText(os.Stdout, res.Matches, res.Report)
	return nil
}
