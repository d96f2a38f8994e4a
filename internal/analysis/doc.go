// Package analysis contains the core pipeline: chunking, normalization, the
// deterministic static analyzer, and the orchestrating engine.
//
// The Engine holds one committed backend binding from the providers package
// and exposes the five analysis tasks: review, security scan, performance
// scan, improvement rewrite, and documentation rewrite. Source text is split
// into overlapping token-bounded chunks, each chunk makes one remote round
// trip in order, and per-chunk results are merged with line-number offsets
// and averaged metrics.
//
// The normalizer reduces any backend reply to the canonical Result shape:
// structured JSON parses to a remote result, actionable plain text is
// heuristically mined for issues, and anything unusable degrades to the
// static analyzer. A Result's provenance tag always says which of those
// paths produced it.
//
// No failure in this package escapes to the caller as an error; degraded
// analysis is the failure mode.
package analysis
