package providers

import (
	"context"
	"testing"
)

func TestPoolReusesBinding(t *testing.T) {
	clearCredentials(t)

	pool, err := NewPool(4)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	opts := Options{Model: "m", Temperature: 0.2}
	first := pool.Get(context.Background(), opts)
	second := pool.Get(context.Background(), opts)

	if first != second {
		t.Error("same options should return the cached binding")
	}
	if first.Provider != "static" {
		t.Errorf("provider = %s, want static with no credentials", first.Provider)
	}
}

func TestPoolDistinguishesOptions(t *testing.T) {
	clearCredentials(t)

	pool, err := NewPool(4)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	a := pool.Get(context.Background(), Options{Temperature: 0.1})
	b := pool.Get(context.Background(), Options{Temperature: 0.9})

	if a == b {
		t.Error("different options should resolve separate bindings")
	}
}

func TestPoolInvalidateForcesFreshResolve(t *testing.T) {
	clearCredentials(t)

	pool, err := NewPool(4)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	opts := Options{Model: "m"}
	resolves := 0
	pool.resolve = func(ctx context.Context, o Options) *Resolved {
		resolves++
		return &Resolved{Provider: "static", Client: &Static{}, Fallback: true}
	}

	pool.Get(context.Background(), opts)
	pool.Get(context.Background(), opts)
	if resolves != 1 {
		t.Fatalf("expected 1 resolution before invalidate, got %d", resolves)
	}

	pool.Invalidate(opts)
	pool.Get(context.Background(), opts)
	if resolves != 2 {
		t.Errorf("expected fresh resolution after invalidate, got %d", resolves)
	}
}

func TestPoolSizeDefault(t *testing.T) {
	if _, err := NewPool(0); err != nil {
		t.Errorf("NewPool(0) should use default size, got %v", err)
	}
}
