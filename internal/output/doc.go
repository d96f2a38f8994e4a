// Package output renders analysis reports in text, JSON, and markdown
// formats.
//
// Each format implements the Writer interface; WriteReport dispatches on the
// configured format name and writes to a file path or stdout. Reports carry
// a per-file provenance tag so every format can annotate whether findings
// came from a remote backend or the static fallback analyzer.
package output
