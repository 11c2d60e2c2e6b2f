package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "tenant_a:patients:list", []byte(`[{"id":1}]`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "tenant_a:patients:list")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Fatalf("got %q", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)

	if _, err := c.Get(context.Background(), "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("got %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("got %v, want ErrCacheMiss after expiry", err)
	}
	if ok, _ := c.Exists(ctx, "short"); ok {
		t.Fatal("expired key must not exist")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("got %v, want ErrCacheMiss after delete", err)
	}
}

// Clearing one tenant's entries must not touch another tenant's.
func TestMemoryCacheClearPattern(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, Key("tenant_a", "patients", "list"), []byte("a"), time.Minute)
	c.Set(ctx, Key("tenant_a", "patients", "search:jane"), []byte("a2"), time.Minute)
	c.Set(ctx, Key("tenant_b", "patients", "list"), []byte("b"), time.Minute)

	if err := c.Clear(ctx, TenantPattern("tenant_a", "patients")); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := c.Get(ctx, Key("tenant_a", "patients", "list")); !errors.Is(err, ErrCacheMiss) {
		t.Fatal("tenant_a list should be cleared")
	}
	if _, err := c.Get(ctx, Key("tenant_a", "patients", "search:jane")); !errors.Is(err, ErrCacheMiss) {
		t.Fatal("tenant_a search entry should be cleared")
	}
	if got, err := c.Get(ctx, Key("tenant_b", "patients", "list")); err != nil || string(got) != "b" {
		t.Fatalf("tenant_b entry must survive: %q %v", got, err)
	}
}

func TestKeyShapes(t *testing.T) {
	if got := Key("tenant_a", "patients", "list"); got != "tenant_a:patients:list" {
		t.Errorf("Key with suffix: %q", got)
	}
	if got := Key("tenant_a", "patients", ""); got != "tenant_a:patients" {
		t.Errorf("Key without suffix: %q", got)
	}
	if got := TenantPattern("tenant_a", "patients"); got != "tenant_a:patients*" {
		t.Errorf("TenantPattern: %q", got)
	}
}
