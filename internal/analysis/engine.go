package analysis

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dshills/critic/internal/cache"
	"github.com/dshills/critic/internal/config"
	"github.com/dshills/critic/internal/logging"
	"github.com/dshills/critic/internal/providers"
	"github.com/dshills/critic/internal/redact"
)

// Engine is the orchestrator facade. It holds one committed backend binding
// for its lifetime; a fresh binding requires constructing a new Engine (or
// invalidating the pool entry it came from).
type Engine struct {
	cfg     config.Config
	backend *providers.Resolved
	store   *cache.Cache
	log     *logrus.Entry
}

// New builds an engine, obtaining its backend binding through the pool.
func New(ctx context.Context, cfg config.Config, pool *providers.Pool) *Engine {
	backend := pool.Get(ctx, providers.Options{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	return NewWithBackend(cfg, backend)
}

// NewWithBackend builds an engine around an existing binding.
func NewWithBackend(cfg config.Config, backend *providers.Resolved) *Engine {
	var store *cache.Cache
	if cfg.Cache.Enabled {
		store = cache.New(cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	}
	return &Engine{
		cfg:     cfg,
		backend: backend,
		store:   store,
		log:     logging.WithComponent("engine"),
	}
}

// Backend returns the committed binding's status view.
func (e *Engine) Backend() providers.Info { return e.backend.Info() }

// Analyze runs a review, security, or performance task over one source unit.
// Oversized sources are chunked and processed strictly in order, one remote
// round-trip at a time. Analyze never fails: every error degrades to the
// static analyzer and the result's provenance tag says which path produced it.
func (e *Engine) Analyze(ctx context.Context, req Request) Result {
	text := req.Text
	if e.cfg.Privacy.RedactSecrets {
		// Path-matched files are blanked wholesale; everything else gets
		// secret-pattern redaction.
		text = redact.Content(text, req.Path, e.cfg.Privacy.RedactPaths)
	}

	// The fallback binding produces results through the static analyzer
	// directly so provenance stays truthful.
	if e.backend.Fallback {
		return AnalyzeStatic(text, req.Path)
	}

	chunks := SplitChunks(text, e.cfg.ChunkSize, e.cfg.ChunkOverlap)
	if len(chunks) == 1 {
		return e.analyzeChunk(ctx, req.Task, chunks[0].Text, req.Path, req.Language)
	}

	e.log.WithFields(logrus.Fields{
		"path":   req.Path,
		"chunks": len(chunks),
	}).Info("analyzing in chunks")

	results := make([]Result, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, e.analyzeChunk(ctx, req.Task, chunk.Text, req.Path, req.Language))
	}
	return MergeChunkResults(results, e.cfg.ChunkSize)
}

func (e *Engine) analyzeChunk(ctx context.Context, task TaskKind, text, path, language string) Result {
	prompt := BuildPrompt(task, text, path, language)
	reply := e.invoke(ctx, prompt)
	return Normalize(reply, task, text, path)
}

// invoke sends one prompt through the cache and the committed backend.
// Invocation failure yields the empty reply; the normalizer degrades it.
func (e *Engine) invoke(ctx context.Context, prompt string) providers.Reply {
	var key string
	if e.store != nil {
		key = cache.HashKey(e.backend.Provider, e.backend.Model, prompt)
		if cached, ok := e.store.Get(key); ok {
			return providers.TextReply(cached)
		}
	}

	reply, err := e.backend.Client.Invoke(ctx, prompt)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"provider": e.backend.Provider,
			"model":    e.backend.Model,
		}).WithError(err).Warn("invoke failed, degrading")
		return providers.EmptyReply()
	}

	if e.store != nil && !reply.IsEmpty() {
		if err := e.store.Put(key, reply.Flatten()); err != nil {
			e.log.WithError(err).Debug("caching reply failed")
		}
	}
	return reply
}

// Improve asks the backend to rewrite the code addressing the given issues.
// The rewritten code is extracted from the reply's fenced code block; when
// no block is found or the backend is unavailable, the original text is
// returned unchanged.
func (e *Engine) Improve(ctx context.Context, req Request, issues []Issue) string {
	if e.backend.Fallback {
		return req.Text
	}
	reply := e.invoke(ctx, BuildImprovePrompt(req.Text, req.Path, issues))
	return extractCode(reply.Flatten(), req.Text)
}

// Document asks the backend to add documentation comments to the code.
func (e *Engine) Document(ctx context.Context, req Request) string {
	if e.backend.Fallback {
		return req.Text
	}
	reply := e.invoke(ctx, BuildDocumentPrompt(req.Text, req.Path, req.Language))
	return extractCode(reply.Flatten(), req.Text)
}

var codeBlockRe = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\\n(.*?)```")

// extractCode pulls the first fenced code block out of a reply, falling back
// to the original code when none is found.
func extractCode(response, original string) string {
	if strings.TrimSpace(response) == "" {
		return original
	}
	if m := codeBlockRe.FindStringSubmatch(response); m != nil {
		code := strings.TrimRight(m[1], "\n")
		if strings.TrimSpace(code) != "" {
			return code
		}
	}
	return original
}
