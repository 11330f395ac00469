package pipeline

import (
	"errors"
	"math/rand/v2"
	"time"

	"digestd/internal/summarizer"
)

const (
	// MaxRetries bounds upstream attempts per fetch.
	MaxRetries = 3

	maxBackoff = 30 * time.Second
)

// IsRetryable reports whether a summarizer error is transient.
func IsRetryable(err error) bool {
	var rerr *summarizer.RetryableError
	return errors.As(err, &rerr)
}

// Backoff returns the wait before retrying attempt n (0-indexed),
// exponential with up to 50% jitter.
func Backoff(attempt int) time.Duration {
	base := min(time.Duration(1<<uint(attempt))*time.Second, maxBackoff)
	return base + rand.N(base/2)
}
