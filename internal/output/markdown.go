package output

import (
	"fmt"
	"io"

	"github.com/dshills/critic/internal/analysis"
)

// MarkdownWriter outputs the report as a markdown document.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *analysis.Report) error {
	ew := &errWriter{w: w}

	ew.printf("# Critic Code Analysis Report\n\n")
	ew.printf("**Task:** %s  \n", report.Task)
	ew.printf("**Backend:** %s", report.Provider)
	if report.Model != "" {
		ew.printf(" (`%s`)", report.Model)
	}
	ew.println("  ")
	if report.FallbackMode {
		ew.println("**Mode:** static fallback (no remote backend available)  ")
	}

	counts := analysis.CountSeverities(report.Files)
	ew.printf("\n## Summary\n\n")
	ew.printf("| Severity | Count |\n|---|---|\n")
	ew.printf("| critical | %d |\n", counts.Critical)
	ew.printf("| high | %d |\n", counts.High)
	ew.printf("| medium | %d |\n", counts.Medium)
	ew.printf("| low | %d |\n", counts.Low)
	ew.printf("| info | %d |\n", counts.Info)

	for _, fr := range report.Files {
		ew.printf("\n## %s\n\n", fr.Path)
		if fr.Language != "" && fr.Language != "Unknown" {
			ew.printf("Language: %s  \n", fr.Language)
		}
		ew.printf("Provenance: `%s`\n\n", fr.Result.Provenance)

		if len(fr.Result.Issues) == 0 {
			ew.println("No issues found.")
		}
		for _, is := range fr.Result.Issues {
			line := fmt.Sprintf("%d", is.Line)
			if is.LineApproximate {
				line += " (approx)"
			}
			ew.printf("- **%s/%s** line %s: %s\n", is.Type, is.Severity, line, is.Description)
			if is.Suggestion != "" {
				ew.printf("  - Suggestion: %s\n", is.Suggestion)
			}
		}

		met := fr.Result.Metrics
		ew.printf("\n| Metric | Score |\n|---|---|\n")
		ew.printf("| Complexity | %.1f |\n", met.ComplexityScore)
		ew.printf("| Maintainability | %.1f |\n", met.MaintainabilityScore)
		ew.printf("| Security | %.1f |\n", met.SecurityScore)
		ew.printf("| Performance | %.1f |\n", met.PerformanceScore)

		if fr.Result.Summary != "" {
			ew.printf("\n%s\n", fr.Result.Summary)
		}
	}

	ew.printf("\n---\n\nCompleted in %dms (resolve: %dms, LLM: %dms)\n",
		report.Timing.TotalMs, report.Timing.ResolveMs, report.Timing.LLMMs)

	return ew.err
}
