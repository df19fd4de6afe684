package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/charsheet/internal/config"
	"github.com/dgallion1/charsheet/internal/layout"
	"github.com/dgallion1/charsheet/internal/pipeline"
	"github.com/dgallion1/charsheet/internal/sheets"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP preview API for charsheet.
type Server struct {
	router chi.Router
	layout *layout.Layout
	runner *pipeline.Runner
	runs   *pipeline.RunStore
	stats  *sheets.WriteStats
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(l *layout.Layout, w sheets.Writer, runs *pipeline.RunStore, log *slog.Logger, cfg config.Config) *Server {
	stats := sheets.NewWriteStats(time.Hour)
	s := &Server{
		layout: l,
		runner: pipeline.NewRunner(l, sheets.TimedWriter{Writer: w, Stats: stats}, log),
		runs:   runs,
		stats:  stats,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/extract", s.handleExtract)
		r.Post("/api/sync", s.handleSync)
		r.Get("/api/runs/{runID}", s.handleRunStatus)
		r.Get("/api/stats/writes", s.handleWriteStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
