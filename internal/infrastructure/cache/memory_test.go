package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Error("unknown key should miss")
	}

	if err := store.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, ok := store.Get(ctx, "k"); !ok || got != "v" {
		t.Errorf("expected v, got %q (hit=%v)", got, ok)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("deleted key should miss")
	}
}

func TestMemoryStoreExpiration(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("expired key should miss")
	}
}
