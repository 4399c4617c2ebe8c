// Package archive writes analysis findings to Parquet for long-term storage
// and downstream analytics.
package archive

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/billaudit/internal/model"
)

// FindingRow is the flattened Parquet representation of one RuleMatch.
type FindingRow struct {
	AnalysisID   string `parquet:"analysis_id"`
	Rule         string `parquet:"rule"`
	Category     string `parquet:"category"`
	Confidence   string `parquet:"confidence"`
	LineIDs      string `parquet:"line_ids"` // semicolon-joined
	Reason       string `parquet:"reason"`
	SavingsCents int64  `parquet:"savings_cents"`
}

// WriteFindings writes all matches for one analysis to a Parquet file.
func WriteFindings(path, analysisID string, matches []model.RuleMatch) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[FindingRow](f)
	rows := make([]FindingRow, len(matches))
	for i, m := range matches {
		rows[i] = FindingRow{
			AnalysisID:   analysisID,
			Rule:         string(m.Rule),
			Category:     m.Category.String(),
			Confidence:   string(m.Confidence),
			LineIDs:      strings.Join(m.LineIDs, ";"),
			Reason:       m.Reason,
			SavingsCents: m.SavingsCents,
		}
	}

	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			w.Close()
			f.Close()
			return fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}

// ReadFindings reads every FindingRow from a Parquet file.
func ReadFindings(path string) ([]FindingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewGenericReader[FindingRow](pf)
	defer r.Close()

	var out []FindingRow
	buf := make([]FindingRow, 64)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
	}
	return out, nil
}
