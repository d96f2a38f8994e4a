// Package ingest collects source units for analysis.
//
// Load accepts a single file, a directory tree, a .zip archive, or a git URL
// (shallow-cloned into a temp directory). Directory and archive walks filter
// to recognized source extensions, apply a built-in ignore list (VCS
// metadata, dependency directories, build output, compiled artifacts), and
// skip files above the configured size limit.
package ingest
