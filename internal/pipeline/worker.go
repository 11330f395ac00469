package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"digestd/internal/digest"
)

// Worker processes queued digest refreshes.
type Worker struct {
	fetcher SummaryFetcher
	cache   *Cache
	log     *slog.Logger
}

func NewWorker(fetcher SummaryFetcher, cache *Cache, log *slog.Logger) *Worker {
	return &Worker{
		fetcher: fetcher,
		cache:   cache,
		log:     log,
	}
}

// Process runs one refresh job: fetch the summary text upstream, then
// derive cards and an outline from it.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "digest_key", job.DigestKey)

	// Phase 1: Fetch
	job.SetStatus(StatusFetching, "fetching")
	summary, attempts, elapsed, err := fetchSummary(ctx, w.fetcher, job.Message, log)
	job.SetAttempts(attempts)
	if err != nil {
		log.Error("summary fetch failed", "attempts", attempts, "error", err)
		job.AddError(fmt.Sprintf("fetch: %s", err))
		job.SetStatus(StatusFailed, "fetching")
		return
	}

	// Phase 2: Segment
	job.SetStatus(StatusSegmenting, "segmenting")
	d := buildDigest(job.Message, summary, attempts, elapsed)
	w.cache.Put(d)

	log.Info("digest refreshed", "key", d.Key, "cards", len(d.Cards), "upstream_ms", d.UpstreamMs)
	job.SetStatus(StatusCompleted, "done")
}

// fetchSummary calls the summarizer, retrying transient failures with
// backoff. It reports the attempt count and the latency of the last
// attempt.
func fetchSummary(ctx context.Context, fetcher SummaryFetcher, message string, log *slog.Logger) (string, int, time.Duration, error) {
	var summary string
	var lastErr error
	var elapsed time.Duration
	attempts := 0
	for attempt := range MaxRetries {
		attempts = attempt + 1
		start := time.Now()
		summary, lastErr = fetcher.CreateSummary(ctx, message)
		elapsed = time.Since(start)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable summarizer error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", attempts, elapsed, ctx.Err()
		}
	}
	if lastErr != nil {
		return "", attempts, elapsed, lastErr
	}
	return summary, attempts, elapsed, nil
}

// buildDigest normalizes a summary and derives its cards and outline.
func buildDigest(message, summary string, attempts int, upstream time.Duration) *Digest {
	norm := digest.Normalize(summary)
	return &Digest{
		Key:        DigestKey(message),
		Message:    message,
		Summary:    summary,
		Cards:      digest.Segment(norm),
		Outline:    digest.Outline(norm),
		Attempts:   attempts,
		FetchedAt:  time.Now(),
		UpstreamMs: upstream.Milliseconds(),
	}
}
