package archive

import (
	"path/filepath"
	"testing"

	"github.com/gyeh/billaudit/internal/model"
)

func TestWriteReadFindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.parquet")
	matches := []model.RuleMatch{
		{
			Rule:         model.RuleDailyFeeTwice,
			Category:     model.CategoryDefinite,
			Confidence:   model.ConfidenceHigh,
			LineIDs:      []string{"L3", "L4"},
			Reason:       "2 room and board charges on 2024-03-15",
			SavingsCents: 50000,
		},
		{
			Rule:         model.RulePharmacyRepeat,
			Category:     model.CategoryReview,
			Confidence:   model.ConfidenceLow,
			LineIDs:      []string{"L7", "L8", "L9"},
			Reason:       "3 pharmacy charges with all-different amounts",
			SavingsCents: 0,
		},
	}

	if err := WriteFindings(path, "a1b2", matches); err != nil {
		t.Fatalf("WriteFindings: %v", err)
	}

	rows, err := ReadFindings(path)
	if err != nil {
		t.Fatalf("ReadFindings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	r := rows[0]
	if r.AnalysisID != "a1b2" || r.Rule != "R3" || r.Category != "P1" {
		t.Errorf("row 0 = %+v", r)
	}
	if r.LineIDs != "L3;L4" {
		t.Errorf("line ids = %q", r.LineIDs)
	}
	if r.SavingsCents != 50000 {
		t.Errorf("savings = %d", r.SavingsCents)
	}
	if rows[1].Confidence != "low" {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestWriteFindingsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := WriteFindings(path, "a1b2", nil); err != nil {
		t.Fatalf("WriteFindings: %v", err)
	}
	rows, err := ReadFindings(path)
	if err != nil {
		t.Fatalf("ReadFindings: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}
