package api

import (
	"log/slog"
	"net/http"

	"digestd/internal/config"
	"digestd/internal/pipeline"
	"digestd/internal/summarizer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for digestd.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	summarizer   *summarizer.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, sum *summarizer.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		summarizer:   sum,
		log:          log,
		cfg:          cfg,
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
		r.Use(AuthMiddleware(s.cfg.DigestdAPIKey, s.log))

		r.Get("/api/digest", s.handleGetDigest)
		r.Post("/api/digest/refresh", s.handleRefreshDigest)
		r.Delete("/api/digest/{key}", s.handleDeleteDigest)
		r.Get("/api/digests", s.handleListDigests)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)

		r.Post("/api/segment", s.handleSegmentText)
		r.Post("/api/segment/file", s.handleSegmentFile)

		r.Get("/api/stats/upstream", s.handleUpstreamStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
