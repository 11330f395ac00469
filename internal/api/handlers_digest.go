package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"digestd/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleGetDigest serves the digest for a message, fetching it from the
// summarizer on a cache miss. Upstream failures are logged with detail
// but reported generically.
func (s *Server) handleGetDigest(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		message = s.cfg.SummaryMessage
	}

	d, cached, err := s.orchestrator.GetDigest(r.Context(), message)
	if err != nil {
		s.log.Error("digest fetch failed", "key", pipeline.DigestKey(message), "error", err)
		jsonError(w, "digest temporarily unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"digest": d,
		"cached": cached,
	})
}

func (s *Server) handleRefreshDigest(w http.ResponseWriter, r *http.Request) {
	// The body is optional; an absent or empty message falls back to
	// the configured default.
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	message := req.Message
	if message == "" {
		message = s.cfg.SummaryMessage
	}

	job, err := s.orchestrator.SubmitRefresh(message)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":     snap.ID,
		"digest_key": snap.DigestKey,
		"status":     snap.Status,
		"poll_url":   fmt.Sprintf("/api/jobs/%s", snap.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
