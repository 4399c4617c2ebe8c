package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/billaudit/internal/model"
)

// Store persists analysis runs.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps a connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SaveAnalysis writes the summary row and COPY-loads its matches in one
// transaction.
func (s *Store) SaveAnalysis(ctx context.Context, summary *model.AnalysisSummary, matches []model.RuleMatch) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO audit.analyses (analysis_id, source_file, line_count, skipped_lines, match_count, savings_cents)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		summary.AnalysisID, summary.SourceFile, summary.LineCount,
		summary.SkippedLines, summary.MatchCount, summary.SavingsCents,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	if len(matches) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"audit", "matches"},
			matchColumns,
			newMatchSource(summary.AnalysisID, matches),
		)
		if err != nil {
			return fmt.Errorf("copy matches: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// StoredAnalysis is one persisted analysis header row.
type StoredAnalysis struct {
	AnalysisID   string
	SourceFile   string
	LineCount    int64
	MatchCount   int64
	SavingsCents int64
}

// RecentAnalyses lists the most recent analysis runs, newest first.
func (s *Store) RecentAnalyses(ctx context.Context, limit int) ([]StoredAnalysis, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT analysis_id, source_file, line_count, match_count, savings_cents
		 FROM audit.analyses ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []StoredAnalysis
	for rows.Next() {
		var a StoredAnalysis
		if err := rows.Scan(&a.AnalysisID, &a.SourceFile, &a.LineCount, &a.MatchCount, &a.SavingsCents); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MatchesFor returns the persisted matches for one analysis in stored order.
func (s *Store) MatchesFor(ctx context.Context, analysisID string) ([]model.RuleMatch, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT rule, category, confidence, line_ids, reason, savings_cents
		 FROM audit.matches WHERE analysis_id = $1 ORDER BY seq`, analysisID)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []model.RuleMatch
	for rows.Next() {
		var (
			m        model.RuleMatch
			rule     string
			category string
			conf     string
		)
		if err := rows.Scan(&rule, &category, &conf, &m.LineIDs, &m.Reason, &m.SavingsCents); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Rule = model.RuleID(rule)
		m.Confidence = model.Confidence(conf)
		if err := m.Category.UnmarshalJSON([]byte(`"` + category + `"`)); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
