package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/critic/internal/analysis"
)

func sampleReport() *analysis.Report {
	return &analysis.Report{
		Tool:     "critic",
		Version:  "0.1.0",
		Task:     analysis.TaskReview,
		Provider: "groq",
		Model:    "llama-3.1-8b-instant",
		Files: []analysis.FileResult{
			{
				Path:     "main.py",
				Language: "Python",
				Result: analysis.Result{
					Issues: []analysis.Issue{
						{
							Type:        analysis.TypeSecurity,
							Severity:    analysis.SeverityHigh,
							Line:        4,
							Description: "Code injection vulnerability",
							Suggestion:  "Avoid eval",
						},
						{
							Type:            analysis.TypeMaintainability,
							Severity:        analysis.SeverityLow,
							Line:            812,
							LineApproximate: true,
							Description:     "Line too long - affects readability",
						},
					},
					Metrics: analysis.Metrics{
						ComplexityScore:      3,
						MaintainabilityScore: 8,
						SecurityScore:        4,
						PerformanceScore:     7,
					},
					Summary:    "Found 2 issues",
					Provenance: analysis.ProvenanceRemote,
				},
			},
		},
		Timing: analysis.Timing{ResolveMs: 120, LLMMs: 900, TotalMs: 1100},
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "json", "markdown"} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q): %v", format, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Critic Code Analysis",
		"groq",
		"main.py",
		"Code injection vulnerability",
		"(approx)",
		"security 4.0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTextWriterNoIssues(t *testing.T) {
	report := sampleReport()
	report.Files[0].Result.Issues = nil

	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "No issues found") {
		t.Errorf("expected clean-report message:\n%s", buf.String())
	}
}

func TestJSONWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded analysis.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Provider != "groq" || len(decoded.Files) != 1 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Files[0].Result.Provenance != analysis.ProvenanceRemote {
		t.Errorf("provenance = %s", decoded.Files[0].Result.Provenance)
	}
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Critic Code Analysis Report",
		"## main.py",
		"**security/high** line 4",
		"line 812 (approx)",
		"| Security | 4.0 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownWriterFallbackMode(t *testing.T) {
	report := sampleReport()
	report.Provider = "static"
	report.FallbackMode = true

	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "static fallback") {
		t.Error("expected fallback mode annotation")
	}
}
