package analysis

import (
	"strings"
	"testing"
)

func findIssues(issues []Issue, typ IssueType) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Type == typ {
			out = append(out, is)
		}
	}
	return out
}

func TestAnalyzeStaticDetectsDynamicExecution(t *testing.T) {
	res := AnalyzeStatic("result = eval(user_input)\n", "app.py")

	sec := findIssues(res.Issues, TypeSecurity)
	if len(sec) == 0 {
		t.Fatal("expected a security issue for eval()")
	}
	found := false
	for _, is := range sec {
		if is.Severity == SeverityHigh || is.Severity == SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Errorf("eval() should be high or critical severity: %+v", sec)
	}
	if res.Provenance != ProvenanceStaticFallback {
		t.Errorf("provenance = %s", res.Provenance)
	}
}

func TestAnalyzeStaticLongLine(t *testing.T) {
	long := strings.Repeat("x", 130)
	res := AnalyzeStatic("short\n"+long+"\nshort again\n", "app.js")

	var hit *Issue
	for i, is := range res.Issues {
		if is.Type == TypeMaintainability && strings.Contains(is.Description, "Line too long") {
			hit = &res.Issues[i]
			break
		}
	}
	if hit == nil {
		t.Fatal("expected a long-line maintainability issue")
	}
	if hit.Severity != SeverityLow {
		t.Errorf("severity = %s, want low", hit.Severity)
	}
	if hit.Line != 2 {
		t.Errorf("line = %d, want the real line number 2", hit.Line)
	}
}

func TestAnalyzeStaticAlwaysAppendsBestPractices(t *testing.T) {
	for _, text := range []string{"", "x = 1\n", "result = eval(input())\n"} {
		res := AnalyzeStatic(text, "app.py")
		bp := findIssues(res.Issues, TypeBestPractice)
		if len(bp) != 2 {
			t.Errorf("text %q: got %d best-practice issues, want 2", text, len(bp))
		}
	}
}

func TestAnalyzeStaticGoSyntaxError(t *testing.T) {
	src := "package main\n\nfunc main() {\n\tx := \n}\n"
	res := AnalyzeStatic(src, "main.go")

	syn := findIssues(res.Issues, TypeSyntax)
	if len(syn) != 1 {
		t.Fatalf("got %d syntax issues, want 1", len(syn))
	}
	if syn[0].Severity != SeverityCritical {
		t.Errorf("severity = %s, want critical", syn[0].Severity)
	}
	if syn[0].Line < 4 {
		t.Errorf("line = %d, want the parser's real position", syn[0].Line)
	}
}

func TestAnalyzeStaticValidGoHasNoSyntaxIssue(t *testing.T) {
	src := "package main\n\nfunc main() {}\n"
	res := AnalyzeStatic(src, "main.go")
	if syn := findIssues(res.Issues, TypeSyntax); len(syn) != 0 {
		t.Errorf("unexpected syntax issues: %+v", syn)
	}
}

func TestAnalyzeStaticMetrics(t *testing.T) {
	res := AnalyzeStatic("x = 1\n", "app.py")

	m := res.Metrics
	if m.ComplexityScore != 1 {
		t.Errorf("complexity = %g, want floor 1 for a tiny file", m.ComplexityScore)
	}
	if m.SecurityScore != 10 || m.PerformanceScore != 10 || m.MaintainabilityScore != 10 {
		t.Errorf("clean code scores = %+v, want 10s", m)
	}

	dirty := AnalyzeStatic("password = \"hunter2\"\nresult = eval(x)\n", "app.py")
	if dirty.Metrics.SecurityScore >= 10 {
		t.Errorf("security score should drop with findings, got %g", dirty.Metrics.SecurityScore)
	}
	if dirty.Metrics.SecurityScore < 1 {
		t.Errorf("scores are floored at 1, got %g", dirty.Metrics.SecurityScore)
	}
}

func TestAnalyzeStaticDeterministic(t *testing.T) {
	src := "result = eval(x)\npassword = \"abc\"\nfor i in range(len(items)):\n    print(i)\n"
	a := AnalyzeStatic(src, "app.py")
	b := AnalyzeStatic(src, "app.py")
	if len(a.Issues) != len(b.Issues) || a.Metrics != b.Metrics {
		t.Error("static analysis must be deterministic")
	}
}
