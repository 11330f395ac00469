package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Summarizer connection
	SummaryURL     string
	SummaryAPIKey  string
	SummaryMessage string
	SummaryTimeout time.Duration

	// Auth
	DigestdAPIKey string

	// Refresh worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Digest cache freshness
	DigestTTL time.Duration

	// Job state
	JobTTL time.Duration

	// Upstream latency stats
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8085"),

		SummaryURL:    envOr("SUMMARY_URL", "http://localhost:8000"),
		SummaryAPIKey: os.Getenv("SUMMARY_API_KEY"),
		// The default query the digest is built from when a request
		// doesn't carry its own.
		SummaryMessage: envOr("SUMMARY_MESSAGE", "Summarize the latest tech news"),
		// The upstream drives a search+summarize pipeline; a single call
		// routinely takes tens of seconds.
		SummaryTimeout: envDuration("SUMMARY_TIMEOUT", 2*time.Minute),

		DigestdAPIKey: os.Getenv("DIGESTD_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 32),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		DigestTTL: envDuration("DIGEST_TTL", 15*time.Minute),
		JobTTL:    envDuration("JOB_TTL", 1*time.Hour),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 32
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.SummaryTimeout <= 0 {
		cfg.SummaryTimeout = 2 * time.Minute
	}
	if cfg.DigestTTL <= 0 {
		cfg.DigestTTL = 15 * time.Minute
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DigestdAPIKey == "" {
		return fmt.Errorf("DIGESTD_API_KEY is required")
	}
	if c.SummaryURL == "" {
		return fmt.Errorf("SUMMARY_URL is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
