package cache

import (
	"context"
	"testing"
	"time"
)

func newFrozenMemory() (*memoryStore, *time.Time) {
	now := time.Unix(1700000000, 0)
	s := &memoryStore{
		entries: map[string]memoryEntry{},
		now:     func() time.Time { return now },
	}
	return s, &now
}

func TestMemoryStoreSetGet(t *testing.T) {
	s, _ := newFrozenMemory()
	ctx := context.Background()

	if _, ok := s.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	s.Set(ctx, "k", "v", time.Minute)
	got, ok := s.Get(ctx, "k")
	if !ok || got != "v" {
		t.Fatalf("expected hit with %q, got %q ok=%t", "v", got, ok)
	}
}

func TestMemoryStoreLazyExpiry(t *testing.T) {
	s, now := newFrozenMemory()
	ctx := context.Background()

	s.Set(ctx, "k", "v", time.Minute)
	*now = now.Add(2 * time.Minute)

	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("expected expired key to miss")
	}
	// Expired entries are removed on read.
	s.mu.Lock()
	_, still := s.entries["k"]
	s.mu.Unlock()
	if still {
		t.Fatal("expected expired entry deleted after lazy read")
	}
}

func TestMemoryStoreIncr(t *testing.T) {
	s, now := newFrozenMemory()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := s.Incr(ctx, "counter", time.Minute)
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if n != i {
			t.Fatalf("expected counter %d, got %d", i, n)
		}
	}

	// Window rollover resets the counter.
	*now = now.Add(2 * time.Minute)
	n, err := s.Incr(ctx, "counter", time.Minute)
	if err != nil {
		t.Fatalf("incr: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected reset counter 1, got %d", n)
	}
}
