package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dshills/critic/internal/analysis"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *analysis.Report) error {
	ew := &errWriter{w: w}

	counts := analysis.CountSeverities(report.Files)
	total := counts.Total()

	ew.printf("Critic Code Analysis: %s\n", report.Task)
	ew.printf("Backend: %s", report.Provider)
	if report.Model != "" {
		ew.printf(" (%s)", report.Model)
	}
	if report.FallbackMode {
		ew.printf(" [static fallback mode]")
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))
	ew.printf("Issues: %d total", total)
	if total > 0 {
		ew.printf(" (%d critical, %d high, %d medium, %d low, %d info)",
			counts.Critical, counts.High, counts.Medium, counts.Low, counts.Info)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	if total == 0 {
		ew.println("\nNo issues found. Looks good!")
		return ew.err
	}

	for _, fr := range report.Files {
		if len(fr.Result.Issues) == 0 {
			continue
		}
		ew.printf("\n%s", fr.Path)
		if fr.Language != "" && fr.Language != "Unknown" {
			ew.printf(" (%s)", fr.Language)
		}
		ew.printf("  [%s]\n", fr.Result.Provenance)
		ew.println(strings.Repeat("─", 40))

		issues := append([]analysis.Issue(nil), fr.Result.Issues...)
		sort.SliceStable(issues, func(i, j int) bool {
			return analysis.SeverityRank(issues[i].Severity) > analysis.SeverityRank(issues[j].Severity)
		})

		for _, is := range issues {
			ew.printf("\n  %s %s line %d%s  [%s]\n",
				severityIcon(is.Severity), strings.ToUpper(string(is.Severity)),
				is.Line, approxMark(is), is.Type)
			for _, line := range wrapText(is.Description, 70) {
				ew.printf("    %s\n", line)
			}
			if is.Suggestion != "" {
				ew.println("  Suggestion:")
				for _, line := range wrapText(is.Suggestion, 70) {
					ew.printf("    %s\n", line)
				}
			}
		}

		m := fr.Result.Metrics
		ew.printf("\n  Metrics: complexity %.1f | maintainability %.1f | security %.1f | performance %.1f\n",
			m.ComplexityScore, m.MaintainabilityScore, m.SecurityScore, m.PerformanceScore)
		if fr.Result.Summary != "" {
			for _, line := range wrapText(fr.Result.Summary, 70) {
				ew.printf("  %s\n", line)
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (resolve: %dms, LLM: %dms)\n",
		report.Timing.TotalMs, report.Timing.ResolveMs, report.Timing.LLMMs)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func approxMark(is analysis.Issue) string {
	if is.LineApproximate {
		return " (approx)"
	}
	return ""
}

func severityIcon(s analysis.Severity) string {
	switch s {
	case analysis.SeverityCritical:
		return "[!!!]"
	case analysis.SeverityHigh:
		return "[!!]"
	case analysis.SeverityMedium:
		return "[!]"
	case analysis.SeverityLow:
		return "[-]"
	case analysis.SeverityInfo:
		return "[i]"
	default:
		return "[?]"
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
