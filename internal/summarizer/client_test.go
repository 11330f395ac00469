package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "", 5*time.Second, time.Hour)
	t.Cleanup(client.Close)
	return client, srv
}

func TestClient_CreateSummary(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/create_final_summary" {
			t.Errorf("expected /create_final_summary, got %s", r.URL.Path)
		}
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Message != "Summarize the latest tech news" {
			t.Errorf("unexpected message %q", req.Message)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"response": "## Story One\nIntro text.",
		})
	})

	digest, err := client.CreateSummary(context.Background(), "Summarize the latest tech news")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if digest != "## Story One\nIntro text." {
		t.Errorf("expected digest text, got %q", digest)
	}

	if snap := client.Stats(); snap.Count != 1 {
		t.Errorf("expected 1 recorded sample, got %d", snap.Count)
	}
}

func TestClient_EnvelopeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"response": "",
			"error":    "search backend unavailable",
		})
	})

	_, err := client.CreateSummary(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for envelope error field")
	}
	if !strings.Contains(err.Error(), "search backend unavailable") {
		t.Errorf("expected envelope message in error, got %v", err)
	}
}

func TestClient_EmptyDigestRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": ""})
	})

	if _, err := client.CreateSummary(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for empty digest")
	}
}

func TestClient_RetryableStatuses(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway} {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", status)
		})

		_, err := client.CreateSummary(context.Background(), "anything")
		var re *RetryableError
		if !errors.As(err, &re) {
			t.Fatalf("status %d: expected RetryableError, got %v", status, err)
		}
		if re.StatusCode != status {
			t.Errorf("expected status %d in error, got %d", status, re.StatusCode)
		}
	}
}

func TestClient_ClientErrorNotRetryable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := client.CreateSummary(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	var re *RetryableError
	if errors.As(err, &re) {
		t.Errorf("400 must not be retryable, got %v", err)
	}
}
