// mkfixture generates a synthetic noisy bill fixture with seeded duplicate
// patterns for local testing and demos.
// Usage: go run ./cmd/mkfixture --out testdata/sample-bill.json [--parquet testdata/sample-bill.parquet]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/billaudit/internal/model"
)

func main() {
	out := flag.String("out", "testdata/sample-bill.json", "output JSON path")
	parquetOut := flag.String("parquet", "", "optional Parquet copy of the same lines")
	flag.Parse()

	lines := sampleBill()

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lines); err != nil {
		fmt.Fprintf(os.Stderr, "write json: %v\n", err)
		os.Exit(1)
	}
	f.Close()
	fmt.Printf("Wrote %d lines to %s\n", len(lines), *out)

	if *parquetOut != "" {
		if err := writeParquet(*parquetOut, lines); err != nil {
			fmt.Fprintf(os.Stderr, "write parquet: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote parquet copy to %s\n", *parquetOut)
	}
}

// parquetLine mirrors model.BillLine with flat parquet tags.
type parquetLine struct {
	LineID        string  `parquet:"line_id"`
	Description   string  `parquet:"description"`
	DateOfService string  `parquet:"date_of_service"`
	RevenueCode   string  `parquet:"revenue_code"`
	CPTCode       string  `parquet:"cpt_code"`
	Provider      string  `parquet:"provider"`
	Charged       string  `parquet:"charged"`
	Units         float64 `parquet:"units"`
}

func writeParquet(path string, lines []model.BillLine) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := goparquet.NewGenericWriter[parquetLine](f)
	rows := make([]parquetLine, len(lines))
	for i, l := range lines {
		rows[i] = parquetLine{
			LineID:        l.LineID,
			Description:   l.Description,
			DateOfService: l.DateOfService,
			RevenueCode:   l.RevenueCode,
			CPTCode:       l.CPTCode,
			Provider:      l.Provider,
			Charged:       l.Charged,
			Units:         l.Units,
		}
	}
	if _, err := w.Write(rows); err != nil {
		w.Close()
		f.Close()
		return err
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sampleBill() []model.BillLine {
	mk := func(id, desc, date, rev, cpt, provider, charged string, units float64) model.BillLine {
		return model.BillLine{
			LineID: id, Description: desc, DateOfService: date,
			RevenueCode: rev, CPTCode: cpt, Provider: provider,
			Charged: charged, Units: units, HasUnits: units > 0,
		}
	}

	return []model.BillLine{
		// R1 seed: exact repeat, same provider.
		mk("L1", "Chest X-Ray 2 Views", "03/14/2024", "0320", "71046", "General Hospital", "$380.00", 0),
		mk("L2", "Chest X-Ray 2 Views", "03/14/2024", "0320", "71046", "General Hospital", "$380.00", 0),

		// R3 seed: two room and board charges on one day.
		mk("L3", "Room and Board - Semi Private", "2024-03-15", "0120", "", "General Hospital", "500.00", 0),
		mk("L4", "ROOM/BOARD SEMI-PVT", "2024-03-15", "0120", "", "General Hospital", "500.00", 0),

		// Legit clinical progression: must not be flagged.
		mk("L5", "ER Visit Level 3", "03/14/2024", "0450", "99283", "General Hospital", "$1,250.00", 0),
		mk("L6", "Observation per hour", "2024-03-14", "0762", "", "General Hospital", "$88.00", 6),

		// R6 seed: pharmacy, same day, mixed amounts.
		mk("L7", "IV Solution NS 1000ml", "2024-03-15", "0258", "", "General Hospital", "10.00", 0),
		mk("L8", "Ondansetron 4mg INJ", "2024-03-15", "0250", "", "General Hospital", "25.00", 0),
		mk("L9", "Acetaminophen Tablet", "2024-03-15", "0250", "", "General Hospital", "40.00", 0),

		// R7 seed: same description and amount on two dates.
		mk("L10", "Basic Metabolic Panel", "2024-03-14", "0301", "80048", "General Hospital", "$212.00", 0),
		mk("L11", "Basic Metabolic Panel", "2024-03-16", "0301", "80048", "General Hospital", "$212.00", 0),

		// Dirty data: unparseable amount and date.
		mk("L12", "MISC SUPPLY", "unknown", "0270", "", "General Hospital", "N/A", 0),

		// Credit line (excluded from R7 by sign).
		mk("L13", "Payment Adjustment", "2024-03-16", "", "", "General Hospital", "(100.00)", 0),
	}
}
