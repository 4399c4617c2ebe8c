// Package rules implements the seven-rule duplicate-charge detection engine.
package rules

import (
	"fmt"
	"strings"

	"github.com/gyeh/billaudit/internal/department"
	"github.com/gyeh/billaudit/internal/model"
	"github.com/gyeh/billaudit/internal/normalize"
)

// Fact is the per-line view the rules operate on: every derived field
// computed exactly once per analysis pass.
type Fact struct {
	ID          string
	Index       int
	NormDesc    string
	Date        string // canonical YYYY-MM-DD, "" when unparseable
	AmountCents int64
	AmountOK    bool // false when the charged amount did not parse
	Provider    string
	Dept        model.Department
	Detail      string
	Units       float64
	HasUnits    bool
}

// Context carries the shared state for one rule pass.
type Context struct {
	Facts  []*Fact
	Tables *department.Tables
}

// buildFacts derives Facts for every line. Lines without an identifier get a
// stable synthetic one from their position so matches can always reference
// participants.
func buildFacts(lines []model.BillLine, text *normalize.TextRules, tables *department.Tables) []*Fact {
	facts := make([]*Fact, len(lines))
	for i := range lines {
		line := &lines[i]

		id := strings.TrimSpace(line.LineID)
		if id == "" {
			id = fmt.Sprintf("line-%d", i+1)
		}

		normDesc := text.NormalizeText(line.Description)
		info := tables.Classify(normDesc, line.RevenueCode, line.CPTCode)
		cents, ok := normalize.ParseMoneyOK(line.Charged)

		facts[i] = &Fact{
			ID:          id,
			Index:       i,
			NormDesc:    normDesc,
			Date:        normalize.NormalizeDate(line.DateOfService),
			AmountCents: cents,
			AmountOK:    ok,
			Provider:    strings.TrimSpace(line.Provider),
			Dept:        info.Department,
			Detail:      info.Detail,
			Units:       line.Units,
			HasUnits:    line.HasUnits,
		}
	}
	return facts
}

func ids(group []*Fact) []string {
	out := make([]string, len(group))
	for i, f := range group {
		out[i] = f.ID
	}
	return out
}

func dollars(cents int64) string {
	return fmt.Sprintf("%.2f", normalize.CentsToDollars(cents))
}
