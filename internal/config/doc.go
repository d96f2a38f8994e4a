// Package config loads and merges critic configuration.
//
// The effective config is built by layering four sources, later wins:
// built-in defaults, the JSON config file under the platform config
// directory, environment variables, and CLI flag overrides. Loading
// validates the merged result and fails fast on out-of-range values
// (temperature, chunk sizing) so bad configuration never reaches the
// pipeline.
package config
