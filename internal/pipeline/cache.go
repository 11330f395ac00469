package pipeline

import (
	"sort"
	"sync"
	"time"

	"digestd/internal/digest"
)

// Digest is a fully processed summary: the upstream text plus the cards
// and outline derived from it.
type Digest struct {
	Key      string           `json:"key"`
	Message  string           `json:"message"`
	Summary  string           `json:"summary"`
	Cards    []digest.Card    `json:"cards"`
	Outline  []digest.Heading `json:"outline"`
	Attempts int              `json:"attempts"`

	FetchedAt  time.Time `json:"fetched_at"`
	UpstreamMs int64     `json:"upstream_ms"`
}

// Cache is a thread-safe in-memory digest store with TTL expiry.
// Entries past their TTL are invisible to Get but linger until the
// next Cleanup.
type Cache struct {
	mu      sync.Mutex
	digests map[string]*Digest
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		digests: make(map[string]*Digest),
		ttl:     ttl,
	}
}

// Get returns the cached digest for a key, or nil if absent or stale.
func (c *Cache) Get(key string) *Digest {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.digests[key]
	if d == nil {
		return nil
	}
	if time.Since(d.FetchedAt) > c.ttl {
		return nil
	}
	return d
}

func (c *Cache) Put(d *Digest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.digests[d.Key] = d
}

// Delete evicts a digest and reports whether it was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.digests[key]
	delete(c.digests, key)
	return ok
}

// Entries lists cached digests, freshest first. Stale entries are
// excluded.
func (c *Cache) Entries() []*Digest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Digest, 0, len(c.digests))
	for _, d := range c.digests {
		if time.Since(d.FetchedAt) > c.ttl {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FetchedAt.After(out[j].FetchedAt)
	})
	return out
}

// Cleanup removes expired digests.
func (c *Cache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for key, d := range c.digests {
		if now.Sub(d.FetchedAt) > c.ttl {
			delete(c.digests, key)
		}
	}
}
