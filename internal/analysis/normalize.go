package analysis

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/dshills/critic/internal/providers"
)

// Keyword sets gating the plain-text extractor, per task kind.
var taskKeywords = map[TaskKind][]string{
	TaskReview:      {"security", "vulnerability", "performance", "issue", "problem", "error", "bug"},
	TaskSecurity:    {"vulnerability", "security", "injection", "xss", "csrf", "authentication", "authorization", "encryption"},
	TaskPerformance: {"performance", "slow", "inefficient", "optimization", "memory", "cpu", "bottleneck", "complexity"},
}

// Labels that attach a following line to the current issue as its suggestion.
var suggestionLabels = []string{
	"suggestion:", "mitigation:", "optimization:", "fix:", "recommendation:", "solution:", "improvement:",
}

// Issue list field names accepted from structured replies, per task kind.
var issueFields = map[TaskKind][]string{
	TaskReview:      {"issues"},
	TaskSecurity:    {"security_issues", "issues"},
	TaskPerformance: {"performance_issues", "issues"},
}

// Normalize turns a raw backend reply into the canonical result shape. The
// same machinery applies to every task kind, parameterized only by keyword
// set and issue field names. Priority order: empty reply degrades to the
// static analyzer; a parseable JSON object yields a remote result; actionable
// plain text yields a heuristically extracted remote_plain_text result;
// anything else degrades to the static analyzer.
func Normalize(reply providers.Reply, task TaskKind, text, path string) Result {
	if reply.IsEmpty() {
		return AnalyzeStatic(text, path)
	}

	response := reply.Flatten()
	if strings.TrimSpace(response) == "" {
		return AnalyzeStatic(text, path)
	}

	if res, ok := parseStructured(response, task); ok {
		return res
	}

	if res, ok := parsePlainText(response, task); ok {
		return res
	}

	return AnalyzeStatic(text, path)
}

// rawIssue tolerates the field-name variance of backend JSON.
type rawIssue struct {
	Type         string `json:"type"`
	Severity     string `json:"severity"`
	Line         int    `json:"line"`
	Description  string `json:"description"`
	Suggestion   string `json:"suggestion"`
	Mitigation   string `json:"mitigation"`
	Optimization string `json:"optimization"`
	Fix          string `json:"fix"`
}

// parseStructured extracts the substring between the first '{' and the last
// '}' and decodes it, applying safe defaults for anything missing.
func parseStructured(response string, task TaskKind) (Result, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return Result{}, false
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(response[start:end+1]), &payload); err != nil {
		return Result{}, false
	}

	res := Result{
		Metrics:    defaultMetrics(),
		Summary:    truncate(response, 200),
		Provenance: ProvenanceRemote,
	}

	for _, field := range issueFields[task] {
		raw, ok := payload[field]
		if !ok {
			continue
		}
		var rawIssues []rawIssue
		if err := json.Unmarshal(raw, &rawIssues); err != nil {
			continue
		}
		for _, ri := range rawIssues {
			res.Issues = append(res.Issues, canonicalIssue(ri, task))
		}
		break
	}

	if raw, ok := payload["metrics"]; ok {
		var m Metrics
		if err := json.Unmarshal(raw, &m); err == nil {
			res.Metrics = Metrics{
				ComplexityScore:      scoreOrDefault(m.ComplexityScore),
				MaintainabilityScore: scoreOrDefault(m.MaintainabilityScore),
				SecurityScore:        scoreOrDefault(m.SecurityScore),
				PerformanceScore:     scoreOrDefault(m.PerformanceScore),
			}
		}
	}

	if raw, ok := payload["summary"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			res.Summary = s
		}
	}

	return res, true
}

func canonicalIssue(ri rawIssue, task TaskKind) Issue {
	issue := Issue{
		Type:        canonicalType(ri.Type, task),
		Severity:    canonicalSeverity(ri.Severity),
		Line:        ri.Line,
		Description: ri.Description,
	}
	for _, s := range []string{ri.Suggestion, ri.Mitigation, ri.Optimization, ri.Fix} {
		if s != "" {
			issue.Suggestion = s
			break
		}
	}
	return issue
}

func canonicalType(t string, task TaskKind) IssueType {
	switch IssueType(strings.ToLower(t)) {
	case TypeSyntax, TypeSecurity, TypePerformance, TypeMaintainability, TypeReadability, TypeBestPractice:
		return IssueType(strings.ToLower(t))
	}
	switch task {
	case TaskSecurity:
		return TypeSecurity
	case TaskPerformance:
		return TypePerformance
	default:
		return TypeReadability
	}
}

func canonicalSeverity(s string) Severity {
	switch Severity(strings.ToLower(s)) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return Severity(strings.ToLower(s))
	default:
		return SeverityMedium
	}
}

// parsePlainText runs the line-oriented heuristic extractor when the response
// contains task-relevant keywords. Each keyword-bearing line starts a new
// issue; a following labeled line attaches as its suggestion.
func parsePlainText(response string, task TaskKind) (Result, bool) {
	keywords, ok := taskKeywords[task]
	if !ok {
		keywords = taskKeywords[TaskReview]
	}

	lower := strings.ToLower(response)
	found := false
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found = true
			break
		}
	}
	if !found {
		return Result{}, false
	}

	var issues []Issue
	var current *Issue

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lineLower := strings.ToLower(line)

		if containsAny(lineLower, keywords) {
			if current != nil {
				issues = append(issues, *current)
			}
			current = &Issue{
				Type:        classifyLine(lineLower, task),
				Severity:    SeverityMedium,
				Line:        1,
				Description: line,
			}
			continue
		}

		if current != nil {
			for _, label := range suggestionLabels {
				if strings.HasPrefix(lineLower, label) {
					current.Suggestion = strings.TrimSpace(line[len(label):])
					break
				}
			}
		}
	}
	if current != nil {
		issues = append(issues, *current)
	}

	if len(issues) == 0 {
		issues = []Issue{{
			Type:        TypeBestPractice,
			Severity:    SeverityInfo,
			Line:        1,
			Description: "Code analysis completed",
			Suggestion:  "Review the analysis results above",
		}}
	}

	return Result{
		Issues:     issues,
		Metrics:    defaultMetrics(),
		Summary:    truncate(response, 200),
		Provenance: ProvenanceRemotePlainText,
	}, true
}

var securityLineMarkers = []string{"security", "vulnerability", "injection", "xss", "csrf", "authentication", "authorization", "encryption"}
var performanceLineMarkers = []string{"performance", "slow", "inefficient", "bottleneck", "memory", "cpu"}

func classifyLine(lineLower string, task TaskKind) IssueType {
	switch task {
	case TaskSecurity:
		return TypeSecurity
	case TaskPerformance:
		return TypePerformance
	}
	if containsAny(lineLower, securityLineMarkers) {
		return TypeSecurity
	}
	if containsAny(lineLower, performanceLineMarkers) {
		return TypePerformance
	}
	return TypeReadability
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truncate cuts on a rune boundary so multi-byte characters survive intact.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
