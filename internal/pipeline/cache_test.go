package pipeline

import (
	"testing"
	"time"
)

func testDigest(message string, age time.Duration) *Digest {
	return &Digest{
		Key:       DigestKey(message),
		Message:   message,
		Summary:   "## Top\nBody.",
		FetchedAt: time.Now().Add(-age),
	}
}

func TestCache_PutGet(t *testing.T) {
	c := NewCache(time.Hour)
	d := testDigest("tech news", 0)
	c.Put(d)

	got := c.Get(d.Key)
	if got == nil {
		t.Fatal("expected to get digest back")
	}
	if got.Message != "tech news" {
		t.Errorf("expected message %q, got %q", "tech news", got.Message)
	}
}

func TestCache_GetMissing(t *testing.T) {
	c := NewCache(time.Hour)
	if c.Get("nonexistent") != nil {
		t.Error("expected nil for missing digest")
	}
}

func TestCache_GetStale(t *testing.T) {
	c := NewCache(time.Minute)
	d := testDigest("stale news", 2*time.Minute)
	c.Put(d)

	if c.Get(d.Key) != nil {
		t.Error("expected stale digest to be invisible to Get")
	}
}

func TestCache_Delete(t *testing.T) {
	c := NewCache(time.Hour)
	d := testDigest("evict me", 0)
	c.Put(d)

	if !c.Delete(d.Key) {
		t.Error("expected Delete to report the digest was present")
	}
	if c.Get(d.Key) != nil {
		t.Error("expected digest to be gone after Delete")
	}
	if c.Delete(d.Key) {
		t.Error("expected Delete to report false for missing digest")
	}
}

func TestCache_EntriesFreshestFirst(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put(testDigest("oldest", 30*time.Minute))
	c.Put(testDigest("newest", time.Minute))
	c.Put(testDigest("middle", 10*time.Minute))

	entries := c.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"newest", "middle", "oldest"}
	for i, msg := range want {
		if entries[i].Message != msg {
			t.Errorf("entry %d: expected message %q, got %q", i, msg, entries[i].Message)
		}
	}
}

func TestCache_EntriesExcludeStale(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put(testDigest("fresh", 0))
	c.Put(testDigest("stale", 5*time.Minute))

	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Message != "fresh" {
		t.Errorf("expected fresh entry, got %q", entries[0].Message)
	}
}

func TestCache_Cleanup(t *testing.T) {
	c := NewCache(time.Minute)
	fresh := testDigest("fresh", 0)
	stale := testDigest("stale", 5*time.Minute)
	c.Put(fresh)
	c.Put(stale)

	c.Cleanup()

	c.mu.Lock()
	_, staleKept := c.digests[stale.Key]
	_, freshKept := c.digests[fresh.Key]
	c.mu.Unlock()
	if staleKept {
		t.Error("expected stale digest to be removed by Cleanup")
	}
	if !freshKept {
		t.Error("expected fresh digest to survive Cleanup")
	}
}
