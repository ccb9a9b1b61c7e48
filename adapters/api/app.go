// Package api exposes the analysis pipeline as a JSON service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ablab/app"
	"ablab/domain/core"
	"ablab/domain/dataset"
	"ablab/domain/experiment"
	"ablab/domain/verdict"
	"ablab/internal"
	"ablab/internal/config"
	"ablab/internal/errors"
	"ablab/ports"
)

// App is the JSON API application.
type App struct {
	router   *chi.Mux
	analysis *app.AnalysisService
	sweep    *app.SweepService
	runs     ports.RunRepository
	cfg      *config.Config
	logger   *internal.Logger
}

// NewApp wires the API. The run repository may be nil when no history
// store is configured.
func NewApp(analysis *app.AnalysisService, sweep *app.SweepService, runs ports.RunRepository, cfg *config.Config, logger *internal.Logger) *App {
	a := &App{
		router:   chi.NewRouter(),
		analysis: analysis,
		sweep:    sweep,
		runs:     runs,
		cfg:      cfg,
		logger:   logger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Post("/api/analyze", a.handleAnalyze)
	a.router.Post("/api/sweep", a.handleSweep)
	a.router.Get("/api/runs", a.handleRuns)
	a.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Start starts the API server
func (a *App) Start(addr string) error {
	a.logger.Info("Starting A/B analysis API on http://%s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Handler exposes the router for tests.
func (a *App) Handler() http.Handler { return a.router }

// analyzeRequest is the JSON shape of one analysis call. Rows are raw string
// cells without the header; the columns list plays the header's role.
type analyzeRequest struct {
	ExperimentName string     `json:"experiment_name"`
	Columns        []string   `json:"columns"`
	Rows           [][]string `json:"rows"`
	VariantColumn  string     `json:"variant_column"`
	MetricColumn   string     `json:"metric_column"`
	MetricType     string     `json:"metric_type"`
	ControlLabel   string     `json:"control_label,omitempty"`
	Alpha          float64    `json:"alpha,omitempty"`
}

type sweepAPIRequest struct {
	analyzeRequest
	Metrics []app.SweepMetric `json:"metrics"`
}

func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, errors.InvalidInput("request body is not valid JSON"))
		return
	}

	analysisReq, err := req.toAnalysisRequest(a.cfg.Analysis.Alpha)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := a.analysis.Analyze(analysisReq)
	if err != nil {
		a.writeError(w, statusFor(err), err)
		return
	}

	a.recordRun(r.Context(), report)
	a.writeJSON(w, http.StatusOK, report)
}

func (a *App) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, errors.InvalidInput("request body is not valid JSON"))
		return
	}
	if len(req.Metrics) == 0 {
		a.writeError(w, http.StatusBadRequest, errors.InvalidInput("sweep needs at least one metric"))
		return
	}

	base, err := req.toAnalysisRequest(a.cfg.Analysis.Alpha)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	entries, err := a.sweep.Run(r.Context(), app.SweepRequest{Base: base, Metrics: req.Metrics})
	if err != nil {
		a.writeError(w, statusFor(err), err)
		return
	}

	for _, e := range entries {
		if e.Report != nil {
			a.recordRun(r.Context(), e.Report)
		}
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"results": entries})
}

func (a *App) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	records := []ports.RunRecord{}
	if a.runs != nil {
		var err error
		records, err = a.runs.RecentRuns(r.Context(), limit)
		if err != nil {
			a.logger.Error("Failed to load run history: %v", err)
			a.writeError(w, http.StatusInternalServerError, errors.DatabaseError("failed to load run history"))
			return
		}
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"runs": records})
}

func (req analyzeRequest) toAnalysisRequest(defaultAlpha float64) (app.AnalysisRequest, error) {
	if len(req.Columns) == 0 {
		return app.AnalysisRequest{}, errors.InvalidInput("columns must not be empty")
	}
	alpha := req.Alpha
	if alpha == 0 {
		alpha = defaultAlpha
	}
	if alpha <= 0 || alpha >= 1 {
		return app.AnalysisRequest{}, errors.InvalidInput("alpha must be between 0 and 1")
	}
	return app.AnalysisRequest{
		Table:          dataset.Table{Columns: req.Columns, Rows: req.Rows},
		ExperimentName: strings.TrimSpace(req.ExperimentName),
		VariantColumn:  req.VariantColumn,
		MetricColumn:   req.MetricColumn,
		MetricType:     experiment.MetricType(req.MetricType),
		ControlLabel:   req.ControlLabel,
		Alpha:          alpha,
	}, nil
}

// recordRun persists a completed report when a history store is wired.
// Persistence failures are logged, never surfaced to the caller.
func (a *App) recordRun(ctx context.Context, report *verdict.AnalysisReport) {
	if a.runs == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.runs.SaveRun(saveCtx, report); err != nil {
		a.logger.Warn("Failed to record run %s: %v", report.RunID, err)
	}
}

func statusFor(err error) int {
	if core.IsValidationError(err) {
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeUnreadableFile:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (a *App) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error("Failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, err error) {
	a.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
