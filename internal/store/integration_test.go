package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/billaudit/internal/audit"
	"github.com/gyeh/billaudit/internal/config"
	"github.com/gyeh/billaudit/internal/logging"
	"github.com/gyeh/billaudit/internal/model"
	"github.com/gyeh/billaudit/internal/store"
)

const (
	testPort     = 15433
	testDB       = "audittest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

func TestMain(m *testing.M) {
	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30*time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB creates a connection pool against a clean schema with migrations
// applied.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS audit CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}

	log := logging.Setup("text")
	if err := store.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func sampleMatches() []model.RuleMatch {
	return []model.RuleMatch{
		{
			Rule:         model.RuleDailyFeeTwice,
			Category:     model.CategoryDefinite,
			Confidence:   model.ConfidenceHigh,
			LineIDs:      []string{"L3", "L4"},
			Reason:       "2 room and board charges on 2024-03-15",
			SavingsCents: 50000,
		},
		{
			Rule:         model.RuleExactRepeat,
			Category:     model.CategoryDefinite,
			Confidence:   model.ConfidenceHigh,
			LineIDs:      []string{"L1", "L2"},
			Reason:       "2 identical charges",
			SavingsCents: 38000,
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
}

func TestSaveAndLoadAnalysis(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	st := store.New(pool)

	matches := sampleMatches()
	summary := &model.AnalysisSummary{
		AnalysisID:   uuid.New().String(),
		SourceFile:   "testdata/bill.json",
		LineCount:    13,
		SkippedLines: 1,
		MatchCount:   len(matches),
		SavingsCents: 88000,
	}

	if err := st.SaveAnalysis(ctx, summary, matches); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	t.Run("recent_analyses", func(t *testing.T) {
		recent, err := st.RecentAnalyses(ctx, 10)
		if err != nil {
			t.Fatalf("RecentAnalyses: %v", err)
		}
		if len(recent) != 1 {
			t.Fatalf("got %d analyses, want 1", len(recent))
		}
		a := recent[0]
		if a.AnalysisID != summary.AnalysisID {
			t.Errorf("analysis id = %q, want %q", a.AnalysisID, summary.AnalysisID)
		}
		if a.LineCount != 13 || a.MatchCount != 3 || a.SavingsCents != 88000 {
			t.Errorf("analysis = %+v", a)
		}
	})

	t.Run("matches_round_trip", func(t *testing.T) {
		got, err := st.MatchesFor(ctx, summary.AnalysisID)
		if err != nil {
			t.Fatalf("MatchesFor: %v", err)
		}
		if len(got) != len(matches) {
			t.Fatalf("got %d matches, want %d", len(got), len(matches))
		}
		for i, m := range got {
			want := matches[i]
			if m.Rule != want.Rule || m.Category != want.Category || m.Confidence != want.Confidence {
				t.Errorf("match %d = %+v, want %+v", i, m, want)
			}
			if m.SavingsCents != want.SavingsCents || m.Reason != want.Reason {
				t.Errorf("match %d = %+v, want %+v", i, m, want)
			}
			if len(m.LineIDs) != len(want.LineIDs) {
				t.Errorf("match %d line ids = %v, want %v", i, m.LineIDs, want.LineIDs)
				continue
			}
			for j := range m.LineIDs {
				if m.LineIDs[j] != want.LineIDs[j] {
					t.Errorf("match %d line ids = %v, want %v", i, m.LineIDs, want.LineIDs)
					break
				}
			}
		}
	})
}

func TestSaveAnalysisNoMatches(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	st := store.New(pool)

	summary := &model.AnalysisSummary{
		AnalysisID: uuid.New().String(),
		SourceFile: "clean.json",
		LineCount:  3,
	}
	if err := st.SaveAnalysis(ctx, summary, nil); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	got, err := st.MatchesFor(ctx, summary.AnalysisID)
	if err != nil {
		t.Fatalf("MatchesFor: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d matches, want 0", len(got))
	}
}

func TestSaveAnalysisDuplicateIDFails(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	st := store.New(pool)

	summary := &model.AnalysisSummary{AnalysisID: uuid.New().String(), SourceFile: "a.json"}
	if err := st.SaveAnalysis(ctx, summary, nil); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := st.SaveAnalysis(ctx, summary, nil); err == nil {
		t.Error("expected primary key violation on duplicate analysis id")
	}
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	if err := store.ApplyMigrations(ctx, pool, log); err != nil {
		t.Fatalf("second ApplyMigrations: %v", err)
	}
}

func TestPipelinePersists(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	st := store.New(pool)

	bill := filepath.Join(t.TempDir(), "bill.json")
	data := `[
		{"line_id": "L1", "description": "Chest X-Ray", "date_of_service": "2024-03-14",
		 "cpt_code": "71046", "provider": "General Hospital", "charged": "380.00"},
		{"line_id": "L2", "description": "Chest X-Ray", "date_of_service": "2024-03-14",
		 "cpt_code": "71046", "provider": "General Hospital", "charged": "380.00"},
		{"line_id": "L3", "description": "Misc Supply", "date_of_service": "unknown", "charged": "N/A"}
	]`
	if err := os.WriteFile(bill, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{FilePath: bill, DSN: testDSN, LogFormat: "text", Save: true}
	result, err := audit.Run(ctx, log, cfg, st)
	if err != nil {
		t.Fatalf("audit.Run: %v", err)
	}

	if result.Summary.LineCount != 3 || result.Summary.SkippedLines != 1 {
		t.Errorf("summary = %+v", result.Summary)
	}
	if result.Summary.MatchCount != 1 || result.Summary.SavingsCents != 38000 {
		t.Errorf("summary = %+v", result.Summary)
	}

	stored, err := st.MatchesFor(ctx, result.Summary.AnalysisID)
	if err != nil {
		t.Fatalf("MatchesFor: %v", err)
	}
	if len(stored) != 1 || stored[0].Rule != model.RuleExactRepeat {
		t.Errorf("stored = %+v", stored)
	}

	recent, err := st.RecentAnalyses(ctx, 1)
	if err != nil {
		t.Fatalf("RecentAnalyses: %v", err)
	}
	if len(recent) != 1 || recent[0].SavingsCents != 38000 {
		t.Errorf("recent = %+v", recent)
	}
}
