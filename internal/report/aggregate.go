// Package report combines rule-engine output with issue findings from other
// sources into a single savings summary without double-counting.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/gyeh/billaudit/internal/model"
)

// IssueSource identifies where a non-duplicate finding came from. Closed
// enum: adding a source requires touching every switch below, so a new
// source cannot silently fall through to a default bucket.
type IssueSource int

const (
	SourceNSA IssueSource = iota + 1
	SourceOvercharge
	SourceUnbundling
)

func (s IssueSource) String() string {
	switch s {
	case SourceNSA:
		return "nsa_violation"
	case SourceOvercharge:
		return "overcharge"
	case SourceUnbundling:
		return "unbundling"
	}
	return fmt.Sprintf("source(%d)", int(s))
}

func (s IssueSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *IssueSource) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v {
	case "nsa_violation":
		*s = SourceNSA
	case "overcharge":
		*s = SourceOvercharge
	case "unbundling":
		*s = SourceUnbundling
	default:
		return fmt.Errorf("unknown issue source %q", v)
	}
	return nil
}

// ExternalIssue is a finding produced outside the duplicate engine (NSA
// review, overcharge estimation) that claims savings on specific lines.
type ExternalIssue struct {
	Source       IssueSource `json:"source"`
	Description  string      `json:"description"`
	LineIDs      []string    `json:"line_ids"`
	SavingsCents int64       `json:"savings_cents"`
}

// Summary is the combined savings picture for one analysis.
type Summary struct {
	DuplicateSavingsCents int64          `json:"duplicate_savings_cents"`
	ExternalSavingsCents  int64          `json:"external_savings_cents"`
	TotalSavingsCents     int64          `json:"total_savings_cents"`
	MatchesByCategory     map[string]int `json:"matches_by_category"`
	// SuppressedIssues counts external issues excluded because a duplicate
	// match already claimed one of their lines.
	SuppressedIssues int `json:"suppressed_issues"`
}

// Summarize totals duplicate and external savings. A line already
// participating in a duplicate match cannot contribute savings again through
// an external issue; the duplicate claim wins because its savings formula is
// grounded in the line amounts themselves.
func Summarize(matches []model.RuleMatch, external []ExternalIssue) Summary {
	s := Summary{MatchesByCategory: make(map[string]int)}

	claimed := make(map[string]bool)
	for _, m := range matches {
		s.DuplicateSavingsCents += m.SavingsCents
		s.MatchesByCategory[m.Category.String()]++
		for _, id := range m.LineIDs {
			claimed[id] = true
		}
	}

	for _, issue := range external {
		overlaps := false
		for _, id := range issue.LineIDs {
			if claimed[id] {
				overlaps = true
				break
			}
		}
		if overlaps {
			s.SuppressedIssues++
			continue
		}
		s.ExternalSavingsCents += issue.SavingsCents
	}

	s.TotalSavingsCents = s.DuplicateSavingsCents + s.ExternalSavingsCents
	return s
}
