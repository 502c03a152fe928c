package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before set
	_, hit, err := c.Get(ctx, "poly")
	if err != nil || hit {
		t.Fatalf("Get before Set: hit=%v err=%v", hit, err)
	}

	// Round trip
	if err := c.Set(ctx, "poly", []byte("cells"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "poly")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "cells" {
		t.Errorf("data = %q, want %q", data, "cells")
	}

	// Expiry
	if err := c.Set(ctx, "fleeting", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "fleeting"); hit {
		t.Error("entry with negative ttl should not be expired-proof")
	}

	// Delete
	if err := c.Delete(ctx, "poly"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "poly"); hit {
		t.Error("deleted entry still present")
	}

	// Deleting a missing key is fine
	if err := c.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete missing key error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Different distances produce different inset keys
	i1 := k.InsetKey("abc", 1.0)
	i2 := k.InsetKey("abc", 2.0)
	if i1 == i2 {
		t.Error("Different distances should produce different keys")
	}

	// GridKey should include options in hash
	g1 := k.GridKey("abc", GridKeyOpts{Size: 0.6})
	g2 := k.GridKey("abc", GridKeyOpts{Size: 1.0})
	if g1 == g2 {
		t.Error("Different GridKeyOpts should produce different keys")
	}

	// EvalKey distinguishes zones
	e1 := k.EvalKey("ZONE_R2_GENERAL", "abc", EvalKeyOpts{})
	e2 := k.EvalKey("ZONE_C_CENTRAL", "abc", EvalKeyOpts{})
	if e1 == e2 {
		t.Error("Different zones should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "site:42:")

	key := scoped.InsetKey("abc", 1.5)
	if len(key) < 8 || key[:8] != "site:42:" {
		t.Errorf("ScopedKeyer key should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	want := "prefix:" + NewDefaultKeyer().InsetKey("h", 1)
	if got := scoped.InsetKey("h", 1); got != want {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}
