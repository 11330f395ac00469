package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"digestd/internal/config"
)

// SummaryFetcher produces digest text for a message. *summarizer.Client
// implements it; tests substitute stubs.
type SummaryFetcher interface {
	CreateSummary(ctx context.Context, message string) (string, error)
}

// flight tracks one in-progress upstream fetch so concurrent cache
// misses on the same key share a single call.
type flight struct {
	done chan struct{}
	dig  *Digest
	err  error
}

// Orchestrator manages the digest refresh pipeline.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	cache   *Cache
	fetcher SummaryFetcher
	log     *slog.Logger
	cfg     config.Config

	flightMu sync.Mutex
	inflight map[string]*flight

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, fetcher SummaryFetcher, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		cache:    NewCache(cfg.DigestTTL),
		fetcher:  fetcher,
		log:      log,
		cfg:      cfg,
		inflight: make(map[string]*flight),
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.fetcher, o.cache, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Evict expired jobs and digests.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
				o.cache.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// SubmitRefresh queues a background refresh for a message.
func (o *Orchestrator) SubmitRefresh(message string) (*Job, error) {
	job := NewJob(message)
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return job, nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return nil, fmt.Errorf("refresh queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// GetDigest returns the digest for a message, fetching and segmenting
// it on a cache miss. The second result reports a cache hit. Concurrent
// misses on the same key share one upstream call.
func (o *Orchestrator) GetDigest(ctx context.Context, message string) (*Digest, bool, error) {
	key := DigestKey(message)
	if d := o.cache.Get(key); d != nil {
		return d, true, nil
	}

	o.flightMu.Lock()
	if f, ok := o.inflight[key]; ok {
		o.flightMu.Unlock()
		select {
		case <-f.done:
			return f.dig, false, f.err
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
	f := &flight{done: make(chan struct{})}
	o.inflight[key] = f
	o.flightMu.Unlock()

	summary, attempts, elapsed, err := fetchSummary(ctx, o.fetcher, message, o.log)
	if err != nil {
		f.err = err
	} else {
		f.dig = buildDigest(message, summary, attempts, elapsed)
		o.cache.Put(f.dig)
	}

	o.flightMu.Lock()
	delete(o.inflight, key)
	o.flightMu.Unlock()
	close(f.done)

	return f.dig, false, f.err
}

// Digests lists cached digests, freshest first.
func (o *Orchestrator) Digests() []*Digest {
	return o.cache.Entries()
}

// EvictDigest removes a digest from the cache.
func (o *Orchestrator) EvictDigest(key string) bool {
	return o.cache.Delete(key)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
