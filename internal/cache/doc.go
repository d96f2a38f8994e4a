// Package cache provides a file-based cache for backend replies.
//
// Entries are keyed by a SHA-256 hash of the provider name, model, and full
// prompt text. Each entry stores the flattened reply with a creation
// timestamp and TTL; expired entries are skipped on read and removed during
// cache-clear operations. The default cache directory is
// $XDG_CACHE_HOME/critic (or the OS-appropriate equivalent). Prompts reach
// the cache after secret redaction.
package cache
