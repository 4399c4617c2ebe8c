// Package audit orchestrates a full analysis run: load bill lines, run the
// duplicate engine, summarize, and optionally persist.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/billaudit/internal/billread"
	"github.com/gyeh/billaudit/internal/config"
	"github.com/gyeh/billaudit/internal/model"
	"github.com/gyeh/billaudit/internal/normalize"
	"github.com/gyeh/billaudit/internal/report"
	"github.com/gyeh/billaudit/internal/rules"
	"github.com/gyeh/billaudit/internal/store"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Result bundles everything one run produces.
type Result struct {
	Summary *model.AnalysisSummary
	Matches []model.RuleMatch
	Report  report.Summary
}

// Run executes load -> detect -> summarize -> persist. st may be nil to skip
// persistence.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, st *store.Store) (*Result, error) {
	totalStart := time.Now()
	analysisID := uuid.New().String()

	// Phase 1: load
	log.Info().Str("file", cfg.FilePath).Str("analysis_id", analysisID).Msg("loading bill lines")
	loadStart := time.Now()
	lines, err := billread.ReadFile(cfg.FilePath)
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}
	loadDur := time.Since(loadStart)

	text, tables, err := cfg.LoadTables()
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}

	// Phase 2: detect
	detectStart := time.Now()
	matches, err := rules.Run(lines, &text, tables, rules.Options{ApplyExclusions: cfg.ApplyExclusions})
	if err != nil {
		return nil, &PipelineError{Phase: "detect", Err: err}
	}
	detectDur := time.Since(detectStart)

	skipped := 0
	for i := range lines {
		if _, ok := normalize.ParseMoneyOK(lines[i].Charged); !ok {
			skipped++
		}
	}

	rep := report.Summarize(matches, nil)

	summary := &model.AnalysisSummary{
		AnalysisID:     analysisID,
		SourceFile:     cfg.FilePath,
		LineCount:      len(lines),
		SkippedLines:   skipped,
		MatchCount:     len(matches),
		SavingsCents:   rep.TotalSavingsCents,
		DurationLoad:   loadDur,
		DurationDetect: detectDur,
	}

	// Phase 3: persist (optional)
	if st != nil {
		persistStart := time.Now()
		if err := st.SaveAnalysis(ctx, summary, matches); err != nil {
			return nil, &PipelineError{Phase: "persist", Err: err}
		}
		summary.DurationPersist = time.Since(persistStart)
		log.Info().Str("analysis_id", analysisID).Msg("analysis persisted")
	}

	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Int("lines", summary.LineCount).
		Int("skipped", summary.SkippedLines).
		Int("matches", summary.MatchCount).
		Int64("savings_cents", summary.SavingsCents).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("analysis complete")

	return &Result{Summary: summary, Matches: matches, Report: rep}, nil
}
