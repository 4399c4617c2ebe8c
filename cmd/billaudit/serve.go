package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/billaudit/internal/exitcode"
	"github.com/gyeh/billaudit/internal/logging"
	"github.com/gyeh/billaudit/internal/rules"
	"github.com/gyeh/billaudit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the duplicate engine over HTTP",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.Addr, "addr", ":8080", "Listen address")
	f.BoolVar(&cfg.ApplyExclusions, "apply-exclusions", false, "Drop matches where every line pair has a valid clinical explanation")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	text, tables, err := cfg.LoadTables()
	if err != nil {
		log.Error().Err(err).Msg("failed to load tables")
		os.Exit(exitcode.UsageError)
	}

	srv := server.New(log, text, tables, rules.Options{ApplyExclusions: cfg.ApplyExclusions})
	log.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := srv.Router().Run(cfg.Addr); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(exitcode.ServeError)
	}
	return nil
}
