package kv

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Fatal("Get on empty store returned a value")
	}

	if err := m.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := m.Get(ctx, "k"); !ok || v != "v1" {
		t.Fatalf("Get = %q, %v", v, ok)
	}

	if err := m.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, _ := m.Get(ctx, "k"); v != "v2" {
		t.Fatalf("overwrite lost, got %q", v)
	}

	if err := m.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("value survived Del")
	}
	// Deleting an absent key is not an error.
	if err := m.Del(ctx, "k"); err != nil {
		t.Fatalf("Del absent: %v", err)
	}
}
