package providers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultPoolSize = 16

// Pool caches resolved backend bindings keyed by their generation options.
// Repeated analysis calls with the same options reuse the committed binding
// instead of re-running the resolution chain. Invalidate is the explicit
// refresh hook; a binding is never re-resolved behind the caller's back.
type Pool struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *Resolved]
	resolve func(ctx context.Context, opts Options) *Resolved
}

// NewPool creates a pool holding at most size bindings. Size values below 1
// use a small default.
func NewPool(size int) (*Pool, error) {
	if size < 1 {
		size = defaultPoolSize
	}
	cache, err := lru.New[string, *Resolved](size)
	if err != nil {
		return nil, fmt.Errorf("creating backend cache: %w", err)
	}
	return &Pool{
		cache: cache,
		resolve: func(ctx context.Context, opts Options) *Resolved {
			return NewResolver(opts).Resolve(ctx)
		},
	}, nil
}

// Get returns the cached binding for the options, resolving and caching one
// on a miss.
func (p *Pool) Get(ctx context.Context, opts Options) *Resolved {
	key := poolKey(opts)

	p.mu.Lock()
	defer p.mu.Unlock()

	if resolved, ok := p.cache.Get(key); ok {
		return resolved
	}
	resolved := p.resolve(ctx, opts)
	p.cache.Add(key, resolved)
	return resolved
}

// Invalidate drops the cached binding for the options. The next Get runs a
// fresh resolution.
func (p *Pool) Invalidate(opts Options) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache.Remove(poolKey(opts))
}

func poolKey(opts Options) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s:%g:%d", opts.Model, opts.Temperature, opts.MaxTokens))
	return hex.EncodeToString(h[:])
}
