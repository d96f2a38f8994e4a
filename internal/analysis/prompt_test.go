package analysis

import (
	"strings"
	"testing"
)

func TestBuildPromptCarriesContract(t *testing.T) {
	tests := []struct {
		task   TaskKind
		fields []string
	}{
		{TaskReview, []string{`"issues"`, `"metrics"`, `"complexity_score"`}},
		{TaskSecurity, []string{`"security_issues"`, `"mitigation"`}},
		{TaskPerformance, []string{`"performance_issues"`, `"optimization"`}},
	}
	for _, tt := range tests {
		prompt := BuildPrompt(tt.task, "x = 1", "app.py", "Python")
		for _, field := range tt.fields {
			if !strings.Contains(prompt, field) {
				t.Errorf("%s prompt missing contract field %s", tt.task, field)
			}
		}
		if !strings.Contains(prompt, "x = 1") {
			t.Errorf("%s prompt missing code", tt.task)
		}
		if !strings.Contains(prompt, "File: app.py") {
			t.Errorf("%s prompt missing file header", tt.task)
		}
	}
}

func TestBuildPromptOmitsUnknownLanguage(t *testing.T) {
	prompt := BuildPrompt(TaskReview, "x", "data.xyz", "Unknown")
	if strings.Contains(prompt, "Language:") {
		t.Error("unknown language should be omitted from the prompt")
	}
}

func TestBuildImprovePromptListsIssues(t *testing.T) {
	issues := []Issue{
		{Type: TypeSecurity, Severity: SeverityHigh, Line: 3, Description: "Code injection"},
	}
	prompt := BuildImprovePrompt("x = eval(y)", "app.py", issues)
	if !strings.Contains(prompt, "[security/high] line 3: Code injection") {
		t.Errorf("improve prompt missing issue listing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "fenced code block") {
		t.Error("improve prompt should require a fenced code block")
	}
}
