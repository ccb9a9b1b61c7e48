package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ablab/adapters/csvfile"
	"ablab/adapters/excel"
	"ablab/app"
	"ablab/domain/core"
	"ablab/domain/dataset"
	"ablab/domain/experiment"
	"ablab/internal"
	"ablab/internal/config"
	"ablab/ports"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Server is the web front end: upload a dataset, configure the experiment,
// read the verdict.
type Server struct {
	router    *gin.Engine
	templates *template.Template
	analysis  *app.AnalysisService
	runs      ports.RunRepository
	cfg       *config.Config
	logger    *internal.Logger
}

// NewServer wires the web server. The run repository may be nil, in which
// case the history page reports no runs and nothing is persisted.
func NewServer(analysis *app.AnalysisService, runs ports.RunRepository, cfg *config.Config, logger *internal.Logger) (*Server, error) {
	s := &Server{
		router:   gin.Default(),
		analysis: analysis,
		runs:     runs,
		cfg:      cfg,
		logger:   logger,
	}

	funcMap := template.FuncMap{
		"pct": func(v float64) float64 { return v * 100 },
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = tmpl

	s.router.MaxMultipartMemory = cfg.Analysis.MaxUploadBytes
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/analyze", s.handleAnalyze)
	s.router.GET("/runs", s.handleRuns)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting A/B analysis UI on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) renderTemplate(c *gin.Context, name string, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		s.logger.Error("Template %s: %v", name, err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index", gin.H{
		"Alpha": s.cfg.Analysis.Alpha,
	})
}

// handleAnalyze runs one upload through the full pipeline and renders the
// verdict page. Validation problems come back as a 400 with the message on
// the form page; only reader and template failures rate a 500.
func (s *Server) handleAnalyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "no dataset file uploaded")
		return
	}
	if fileHeader.Size > s.cfg.Analysis.MaxUploadBytes {
		s.renderError(c, http.StatusBadRequest, fmt.Sprintf("file exceeds the %d byte upload limit", s.cfg.Analysis.MaxUploadBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "could not open uploaded file")
		return
	}
	defer file.Close()

	table, err := readTable(fileHeader.Filename, file)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, fmt.Sprintf("could not read %s: %v", fileHeader.Filename, err))
		return
	}

	req := app.AnalysisRequest{
		Table:          table,
		ExperimentName: strings.TrimSpace(c.PostForm("experiment_name")),
		VariantColumn:  strings.TrimSpace(c.PostForm("variant_column")),
		MetricColumn:   strings.TrimSpace(c.PostForm("metric_column")),
		MetricType:     experiment.MetricType(c.PostForm("metric_type")),
		ControlLabel:   strings.TrimSpace(c.PostForm("control_label")),
		Alpha:          s.cfg.Analysis.Alpha,
	}
	if raw := strings.TrimSpace(c.PostForm("alpha")); raw != "" {
		alpha, err := strconv.ParseFloat(raw, 64)
		if err != nil || alpha <= 0 || alpha >= 1 {
			s.renderError(c, http.StatusBadRequest, "alpha must be a number between 0 and 1")
			return
		}
		req.Alpha = alpha
	}

	report, err := s.analysis.Analyze(req)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsValidationError(err) {
			status = http.StatusBadRequest
		}
		s.renderError(c, status, err.Error())
		return
	}

	if s.runs != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := s.runs.SaveRun(ctx, report); err != nil {
			s.logger.Warn("Failed to record run %s: %v", report.RunID, err)
		}
	}

	s.renderTemplate(c, "result", Present(report))
}

func (s *Server) handleRuns(c *gin.Context) {
	var records []ports.RunRecord
	if s.runs != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		var err error
		records, err = s.runs.RecentRuns(ctx, 50)
		if err != nil {
			s.logger.Error("Failed to load run history: %v", err)
			c.String(http.StatusInternalServerError, "run history unavailable")
			return
		}
	}
	s.renderTemplate(c, "runs", gin.H{"Runs": records})
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	c.Status(status)
	s.renderTemplate(c, "error", gin.H{"Message": message, "Status": status})
}

// readTable picks the reader from the file extension. CSV is the default;
// .xlsx goes through the spreadsheet reader.
func readTable(filename string, src io.Reader) (dataset.Table, error) {
	var reader ports.TableReader
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		reader = excel.NewReader()
	default:
		reader = csvfile.NewReader()
	}
	return reader.Read(src)
}
