package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gyeh/billaudit/internal/department"
	"github.com/gyeh/billaudit/internal/normalize"
	"github.com/gyeh/billaudit/internal/report"
	"github.com/gyeh/billaudit/internal/rules"
)

func testServer() *Server {
	return New(zerolog.Nop(), normalize.DefaultTextRules(), department.Default(), rules.Options{})
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	testServer().Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAnalyze(t *testing.T) {
	body := `[
		{"line_id": "L1", "description": "Chest X-Ray", "date_of_service": "2024-03-14",
		 "cpt_code": "71046", "provider": "General Hospital", "charged": "380.00"},
		{"line_id": "L2", "description": "Chest X-Ray", "date_of_service": "2024-03-14",
		 "cpt_code": "71046", "provider": "General Hospital", "charged": "380.00"}
	]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	testServer().Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		AnalysisID string `json:"analysis_id"`
		LineCount  int    `json:"line_count"`
		Matches    []struct {
			Rule         string   `json:"rule"`
			Category     string   `json:"category"`
			LineIDs      []string `json:"line_ids"`
			SavingsCents int64    `json:"savings_cents"`
		} `json:"matches"`
		Summary report.Summary `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.AnalysisID == "" {
		t.Error("missing analysis id")
	}
	if resp.LineCount != 2 {
		t.Errorf("line count = %d", resp.LineCount)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("matches = %+v", resp.Matches)
	}
	m := resp.Matches[0]
	if m.Rule != "R1" || m.Category != "P1" || m.SavingsCents != 38000 {
		t.Errorf("match = %+v", m)
	}
	if resp.Summary.DuplicateSavingsCents != 38000 {
		t.Errorf("summary = %+v", resp.Summary)
	}
}

func TestAnalyzeEmptyBill(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`[]`))
	testServer().Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"matches":[]`) {
		t.Errorf("empty bill should return an empty match array, got %s", w.Body.String())
	}
}

func TestAnalyzeRejectsNonArray(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`{"lines": []}`))
	testServer().Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_INPUT") {
		t.Errorf("body = %s", w.Body.String())
	}
}
