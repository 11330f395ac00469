package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestDigestKey_PrefixOfContentHash(t *testing.T) {
	key := DigestKey("hello world")
	if len(key) != 16 {
		t.Fatalf("expected 16-char key, got %d chars: %q", len(key), key)
	}
	if key != "b94d27b9934d3e08" {
		t.Errorf("expected key %q, got %q", "b94d27b9934d3e08", key)
	}
	if DigestKey("hello world") != key {
		t.Error("expected identical keys for identical messages")
	}
	if DigestKey("other message") == key {
		t.Error("expected different keys for different messages")
	}
}

func TestNewJob_Defaults(t *testing.T) {
	job := NewJob("Summarize the latest tech news")
	if job.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, job.Status)
	}
	if job.Phase != "queued" {
		t.Errorf("expected phase %q, got %q", "queued", job.Phase)
	}
	if len(job.ID) != 26 {
		t.Errorf("expected 26-char ULID job ID, got %d chars: %q", len(job.ID), job.ID)
	}
	if job.DigestKey != DigestKey(job.Message) {
		t.Errorf("expected digest key %q, got %q", DigestKey(job.Message), job.DigestKey)
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestNewJob_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewJob("same message").ID
		if seen[id] {
			t.Fatalf("duplicate job ID %q", id)
		}
		seen[id] = true
	}
}

func TestNewJob_ULIDAlphabet(t *testing.T) {
	id := NewJob("msg").ID
	for _, r := range id {
		if !strings.ContainsRune(crockford, r) {
			t.Fatalf("job ID %q contains %q outside the Crockford alphabet", id, r)
		}
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("test message")

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusFetching, "fetching summary"},
		{StatusSegmenting, "segmenting"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_SetStatusFailed(t *testing.T) {
	job := NewJob("doomed")
	job.SetStatus(StatusFailed, "fetching")
	if job.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, job.Status)
	}
}

func TestJob_AddError(t *testing.T) {
	job := NewJob("err test")
	job.AddError("fetch: status 503")
	job.AddError("fetch: status 502")

	snap := job.Snapshot()
	if len(snap.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Errors))
	}
	if snap.Errors[0] != "fetch: status 503" {
		t.Errorf("expected first error %q, got %q", "fetch: status 503", snap.Errors[0])
	}
}

func TestJob_SetAttempts(t *testing.T) {
	job := NewJob("attempts test")
	job.SetAttempts(3)
	if snap := job.Snapshot(); snap.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", snap.Attempts)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := NewJob("snap test")
	snap := job.Snapshot()
	if snap.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("store test")
	store.Put(job)

	got := store.Get(job.ID)
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != job.ID {
		t.Errorf("expected ID %q, got %q", job.ID, got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob("old")
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := NewJob("new")
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
