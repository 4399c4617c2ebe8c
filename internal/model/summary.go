package model

import "time"

// AnalysisSummary captures metrics from a single detection run.
type AnalysisSummary struct {
	AnalysisID      string
	SourceFile      string
	LineCount       int
	SkippedLines    int // lines with unparseable charged amounts
	MatchCount      int
	SavingsCents    int64
	DurationLoad    time.Duration
	DurationDetect  time.Duration
	DurationPersist time.Duration
	DurationTotal   time.Duration
}
