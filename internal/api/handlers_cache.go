package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListDigests lists cached digests, freshest first.
func (s *Server) handleListDigests(w http.ResponseWriter, r *http.Request) {
	entries := s.orchestrator.Digests()
	digests := make([]map[string]any, 0, len(entries))
	for _, d := range entries {
		digests = append(digests, map[string]any{
			"key":         d.Key,
			"message":     d.Message,
			"cards":       len(d.Cards),
			"fetched_at":  d.FetchedAt,
			"upstream_ms": d.UpstreamMs,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"digests": digests})
}

// handleDeleteDigest evicts one digest from the cache.
func (s *Server) handleDeleteDigest(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !s.orchestrator.EvictDigest(key) {
		jsonError(w, "digest not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"evicted": key})
}
