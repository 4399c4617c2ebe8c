package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/billaudit/internal/billread"
	"github.com/gyeh/billaudit/internal/chargekey"
	"github.com/gyeh/billaudit/internal/exitcode"
	"github.com/gyeh/billaudit/internal/logging"
	"github.com/gyeh/billaudit/internal/normalize"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dry-run classification stats over a bill (no detection, no writes)",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&cfg.FilePath, "file", "", "Path to bill lines JSON file (required)")
	_ = inspectCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	lines, err := billread.ReadFile(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to read bill lines")
		os.Exit(exitcode.InputError)
	}

	text, tables, err := cfg.LoadTables()
	if err != nil {
		log.Error().Err(err).Msg("failed to load tables")
		os.Exit(exitcode.UsageError)
	}

	groups := chargekey.GroupAll(lines, &text, tables)

	// Every line lands in exactly one department-level bucket, so walking
	// that lens covers the whole bill.
	deptCounts := make(map[string]int)
	var undated int
	var totalCents int64
	for _, gk := range chargekey.SortedKeys(groups.Department) {
		for _, key := range groups.Department[gk] {
			deptCounts[string(key.Department)]++
			if key.Date == "" {
				undated++
			}
			totalCents += key.AmountCents
		}
	}

	var unpriced int
	for i := range lines {
		if _, ok := normalize.ParseMoneyOK(lines[i].Charged); !ok {
			unpriced++
		}
	}

	repeatedDetail := 0
	for _, gk := range chargekey.SortedKeys(groups.ExactDetail) {
		if len(groups.ExactDetail[gk]) > 1 {
			repeatedDetail++
		}
	}

	fmt.Println("=== billaudit inspect ===")
	fmt.Printf("File:            %s\n", cfg.FilePath)
	fmt.Printf("Lines:           %d\n", len(lines))
	fmt.Printf("Total charged:   $%.2f\n", normalize.CentsToDollars(totalCents))
	fmt.Printf("Undated lines:   %d\n", undated)
	fmt.Printf("Unpriced lines:  %d\n", unpriced)
	fmt.Println()
	fmt.Println("Grouping density:")
	fmt.Printf("  exact-detail groups with repeats:  %d\n", repeatedDetail)
	fmt.Printf("  daily-fee day buckets:             %d\n", len(groups.DailyFee))
	fmt.Printf("  episode buckets:                   %d\n", len(groups.Episode))
	fmt.Println()
	fmt.Println("Department distribution:")

	depts := make([]string, 0, len(deptCounts))
	for d := range deptCounts {
		depts = append(depts, d)
	}
	sort.Slice(depts, func(i, j int) bool {
		if deptCounts[depts[i]] != deptCounts[depts[j]] {
			return deptCounts[depts[i]] > deptCounts[depts[j]]
		}
		return depts[i] < depts[j]
	})
	for _, d := range depts {
		fmt.Printf("  %-22s %d\n", d, deptCounts[d])
	}

	return nil
}
