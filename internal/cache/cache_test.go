package cache

import (
	"testing"
	"time"
)

func TestCachePutGet(t *testing.T) {
	c := New(t.TempDir(), 3600)
	if !c.Enabled() {
		t.Fatal("cache should be enabled")
	}

	key := HashKey("openai", "gpt-4o-mini", "review this code")
	if _, ok := c.Get(key); ok {
		t.Error("unexpected hit on empty cache")
	}

	if err := c.Put(key, `{"issues":[]}`); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got != `{"issues":[]}` {
		t.Errorf("Get = %q", got)
	}
}

func TestCacheKeyDependsOnAllInputs(t *testing.T) {
	base := HashKey("openai", "gpt-4o-mini", "prompt")
	if HashKey("groq", "gpt-4o-mini", "prompt") == base {
		t.Error("key should depend on provider")
	}
	if HashKey("openai", "gpt-4-turbo", "prompt") == base {
		t.Error("key should depend on model")
	}
	if HashKey("openai", "gpt-4o-mini", "other prompt") == base {
		t.Error("key should depend on prompt")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(t.TempDir(), 1)
	key := HashKey("openai", "m", "p")
	if err := c.Put(key, "resp"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestCacheClearAndStats(t *testing.T) {
	c := New(t.TempDir(), 3600)
	for _, p := range []string{"a", "b", "c"} {
		if err := c.Put(HashKey("prov", "model", p), "resp"); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Entries != 3 {
		t.Errorf("entries = %d, want 3", stats.Entries)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	stats, err = c.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Entries != 0 {
		t.Errorf("entries after clear = %d", stats.Entries)
	}
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := &Cache{}
	if err := c.Put("k", "v"); err != nil {
		t.Errorf("Put on disabled cache: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("disabled cache should always miss")
	}
}
