package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/billaudit/internal/archive"
	"github.com/gyeh/billaudit/internal/audit"
	"github.com/gyeh/billaudit/internal/exitcode"
	"github.com/gyeh/billaudit/internal/logging"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Analyze a bill and archive the findings to Parquet",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to bill lines JSON file (required)")
	f.StringVar(&cfg.OutPath, "out", "findings.parquet", "Output Parquet path")
	f.BoolVar(&cfg.ApplyExclusions, "apply-exclusions", false, "Drop matches where every line pair has a valid clinical explanation")
	_ = exportCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	res, err := audit.Run(ctx, log, &cfg, nil)
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(exitcode.DetectError)
	}

	if err := archive.WriteFindings(cfg.OutPath, res.Summary.AnalysisID, res.Matches); err != nil {
		log.Error().Err(err).Msg("parquet export failed")
		os.Exit(exitcode.ExportError)
	}

	fmt.Printf("Exported %d findings ($%.2f potential savings) to %s\n",
		len(res.Matches), float64(res.Report.TotalSavingsCents)/100, cfg.OutPath)
	return nil
}
