// Package server exposes the duplicate engine over HTTP for callers that
// cross a process boundary instead of linking the library.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/billaudit/internal/billread"
	"github.com/gyeh/billaudit/internal/department"
	"github.com/gyeh/billaudit/internal/model"
	"github.com/gyeh/billaudit/internal/normalize"
	"github.com/gyeh/billaudit/internal/report"
	"github.com/gyeh/billaudit/internal/rules"
)

// Server holds the immutable per-process analysis configuration. Each
// request gets its own line slice, so no cross-request state needs guarding.
type Server struct {
	log    zerolog.Logger
	text   normalize.TextRules
	tables *department.Tables
	opts   rules.Options
}

// New builds a Server with the given domain tables.
func New(log zerolog.Logger, text normalize.TextRules, tables *department.Tables, opts rules.Options) *Server {
	return &Server{log: log, text: text, tables: tables, opts: opts}
}

// Router assembles the gin engine.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)
	r.POST("/v1/analyze", s.analyze)
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// analyzeResponse is the wire shape of one analysis.
type analyzeResponse struct {
	AnalysisID string            `json:"analysis_id"`
	LineCount  int               `json:"line_count"`
	Matches    []model.RuleMatch `json:"matches"`
	Summary    report.Summary    `json:"summary"`
}

func (s *Server) analyze(c *gin.Context) {
	lines, err := billread.Decode(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "INVALID_INPUT", "message": err.Error()},
		})
		return
	}

	matches, err := rules.Run(lines, &s.text, s.tables, s.opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "INVALID_INPUT", "message": err.Error()},
		})
		return
	}
	if matches == nil {
		matches = []model.RuleMatch{}
	}

	resp := analyzeResponse{
		AnalysisID: uuid.New().String(),
		LineCount:  len(lines),
		Matches:    matches,
		Summary:    report.Summarize(matches, nil),
	}

	s.log.Info().
		Str("analysis_id", resp.AnalysisID).
		Int("lines", resp.LineCount).
		Int("matches", len(matches)).
		Msg("analyze request served")

	c.JSON(http.StatusOK, resp)
}
