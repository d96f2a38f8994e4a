package providers

import (
	"context"
	"strings"
)

// Static is the deterministic fallback client. It never errors and needs no
// network or credentials; it answers with a mode banner keyed on the prompt
// so downstream normalization routes results to the static analyzer.
type Static struct{}

func (s *Static) Name() string { return "static" }

func (s *Static) Invoke(_ context.Context, prompt string) (Reply, error) {
	p := strings.ToLower(prompt)
	var content string
	switch {
	case strings.Contains(p, "code review"):
		content = "Fallback static analysis mode: Performing basic code analysis without LLM."
	case strings.Contains(p, "security"):
		content = "Fallback security analysis: Checking for common security patterns."
	case strings.Contains(p, "performance"):
		content = "Fallback performance analysis: Identifying basic performance issues."
	default:
		content = "Fallback analysis mode: Using static code analysis techniques."
	}
	return StructuredReply(map[string]any{"content": content}), nil
}
