// Package providers implements backend resolution for the analysis pipeline.
//
// Supported backends: HuggingFace inference API, Google Gemini, Groq, and
// OpenAI, plus a deterministic static fallback that needs no network or
// credentials.
//
// The Resolver walks a fixed descriptor chain in order, skipping providers
// whose credential env var is unset, probing each model variant with a
// one-word prompt, and committing to the first backend that answers with a
// non-empty reply. Quota exhaustion during a probe abandons the provider's
// remaining variants. Resolution never fails; the chain ends in the fallback.
//
// Replies cross the transport boundary as the Reply variant type (empty,
// text, or structured mapping) so downstream code never inspects raw
// response shapes. Remote clients share a retry helper with exponential
// back-off for rate-limit and server errors. HTTP base URLs are overridable
// via env vars so tests can redirect calls to local httptest servers.
//
// The Pool caches committed bindings keyed by generation options; Invalidate
// is the explicit refresh hook.
package providers
