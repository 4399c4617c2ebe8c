package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gyeh/billaudit/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "billaudit",
	Short: "Hospital bill duplicate-charge auditor",
	Long:  "Analyzes extracted bill line items for duplicate and fraudulent billing patterns and estimates recoverable savings.",
}

func init() {
	// .env is optional; explicit flags and environment always win.
	_ = godotenv.Load()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("BILLAUDIT_DB_URL"), "Postgres connection string (or set BILLAUDIT_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.TablesPath, "tables", "", "YAML file overriding the built-in domain tables")
}
