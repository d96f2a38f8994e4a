// Package cli wires together the Cobra command tree for the critic binary.
//
// It defines the root command and all subcommands (review, security,
// performance, improve, document, providers, config, cache, version), binds
// flags, reads configuration, invokes the analysis engine, and returns
// deterministic exit codes for CI gating.
package cli
