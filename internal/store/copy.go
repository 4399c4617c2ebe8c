package store

import (
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/billaudit/internal/model"
)

// matchColumns is the COPY column order for audit.matches.
var matchColumns = []string{
	"analysis_id", "seq", "rule", "category", "confidence",
	"line_ids", "reason", "savings_cents",
}

// matchSource implements pgx.CopyFromSource over a match slice.
type matchSource struct {
	analysisID string
	matches    []model.RuleMatch
	idx        int
}

func newMatchSource(analysisID string, matches []model.RuleMatch) *matchSource {
	return &matchSource{analysisID: analysisID, matches: matches, idx: -1}
}

func (s *matchSource) Next() bool {
	s.idx++
	return s.idx < len(s.matches)
}

func (s *matchSource) Values() ([]any, error) {
	m := s.matches[s.idx]
	return []any{
		s.analysisID,
		int64(s.idx),
		string(m.Rule),
		m.Category.String(),
		string(m.Confidence),
		m.LineIDs,
		m.Reason,
		m.SavingsCents,
	}, nil
}

func (s *matchSource) Err() error { return nil }

var _ pgx.CopyFromSource = (*matchSource)(nil)
