// Package summarizer talks to the external summarization service that
// produces raw digest text. The service exposes a single endpoint returning
// a JSON envelope with the digest string and an optional error message; only
// the extracted digest string ever leaves this package.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxEnvelopeBytes caps how much of the upstream response is read. Digests
// run a few KB; anything near this limit is misbehavior upstream.
const maxEnvelopeBytes = 4 << 20

// Client calls the summarization service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	stats      *UpstreamStats
}

// NewClient builds a client for the service at baseURL. apiKey may be empty
// when the upstream runs unauthenticated. timeout bounds one whole call; the
// upstream drives an LLM pipeline, so generous values (minutes) are normal.
func NewClient(baseURL, apiKey string, timeout, statsWindow time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		stats: NewUpstreamStats(statsWindow),
	}
}

type summaryRequest struct {
	Message string `json:"message"`
}

// summaryEnvelope is the upstream response: a required digest string plus an
// optional error message.
type summaryEnvelope struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// CreateSummary asks the upstream to build a digest for the given message
// and returns the raw digest text. Transient upstream failures (429, 5xx)
// come back as *RetryableError so callers can back off and retry.
func (c *Client) CreateSummary(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(summaryRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create_final_summary", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("summarizer: %w", err)
	}
	defer resp.Body.Close()
	c.stats.Record(time.Since(start))

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxEnvelopeBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var envelope summaryEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Error != "" {
		return "", fmt.Errorf("summarizer error: %s", envelope.Error)
	}
	if envelope.Response == "" {
		return "", fmt.Errorf("empty digest in envelope")
	}

	return envelope.Response, nil
}

// Stats reports latencies of recent upstream calls.
func (c *Client) Stats() StatsSnapshot {
	return c.stats.Snapshot()
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// RetryableError indicates a transient upstream failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
