package analysis

import (
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
	"regexp"
	"strings"
)

const maxLineLength = 120

type staticPattern struct {
	re          *regexp.Regexp
	description string
}

// Pattern-table matches report line 1. The analyzer does not track true line
// numbers for table matches; only the long-line check and the syntax check
// carry real positions.
var securityPatterns = []staticPattern{
	{regexp.MustCompile(`(?i)eval\(`), "Code injection vulnerability"},
	{regexp.MustCompile(`(?i)exec\(`), "Code execution vulnerability"},
	{regexp.MustCompile(`(?i)system\(`), "Command injection vulnerability"},
	{regexp.MustCompile(`(?i)shell=True`), "Shell injection risk"},
	{regexp.MustCompile(`(?i)subprocess\.`), "Subprocess usage - potential security risk"},
	{regexp.MustCompile(`(?i)input\(`), "Unvalidated user input"},
	{regexp.MustCompile(`(?i)password\s*=`), "Hardcoded password detected"},
	{regexp.MustCompile(`(?i)api_key\s*=`), "Hardcoded API key detected"},
	{regexp.MustCompile(`(?i)secret\s*=\s*["']`), "Hardcoded secret detected"},
}

var performancePatterns = []staticPattern{
	{regexp.MustCompile(`(?i)result \+= str\(`), "Inefficient string concatenation"},
	{regexp.MustCompile(`(?i)for.*in range\(len\(`), "Use enumerate instead"},
	{regexp.MustCompile(`(?i)for.*for.*in.*range`), "Nested loops may be inefficient"},
	{regexp.MustCompile(`(?i)list\(range\(`), "Consider direct iteration"},
	{regexp.MustCompile(`(?i)while True:\s*\n\s*\w+\.append`), "Potential infinite loop with unbounded accumulation"},
}

var maintainabilityPatterns = []staticPattern{
	{regexp.MustCompile(`(?m)def [^(]*\([^)]*\):\s*$`), "Function missing docstring"},
	{regexp.MustCompile(`(?m)class [^(]*\([^)]*\):\s*$`), "Class missing docstring"},
	{regexp.MustCompile(`import \*`), "Wildcard import - specify imports explicitly"},
	{regexp.MustCompile(`(?m)except:`), "Bare except clause - specify exception type"},
	{regexp.MustCompile(`(?i)print\s*\(`), "Consider using logging instead of print"},
}

var bestPracticeIssues = []Issue{
	{
		Type:        TypeBestPractice,
		Severity:    SeverityMedium,
		Line:        0,
		Description: "Follow language-specific style guidelines",
		Suggestion:  "Use appropriate linters and formatters for your programming language. Follow established style guides and naming conventions.",
	},
	{
		Type:        TypeBestPractice,
		Severity:    SeverityMedium,
		Line:        0,
		Description: "Implement proper error handling patterns",
		Suggestion:  "Use language-specific exception handling patterns. Avoid catching all exceptions unless necessary.",
	},
}

// AnalyzeStatic runs the deterministic pattern-based analyzer. Pure function,
// no I/O, always succeeds.
func AnalyzeStatic(text, path string) Result {
	var issues []Issue

	issues = append(issues, checkSyntax(text, path)...)

	for _, p := range securityPatterns {
		if p.re.MatchString(text) {
			issues = append(issues, Issue{
				Type:        TypeSecurity,
				Severity:    SeverityHigh,
				Line:        1,
				Description: p.description,
				Suggestion:  "Review and fix " + strings.ToLower(p.description),
			})
		}
	}
	for _, p := range performancePatterns {
		if p.re.MatchString(text) {
			issues = append(issues, Issue{
				Type:        TypePerformance,
				Severity:    SeverityMedium,
				Line:        1,
				Description: p.description,
				Suggestion:  "Optimize " + strings.ToLower(p.description),
			})
		}
	}
	for _, p := range maintainabilityPatterns {
		if p.re.MatchString(text) {
			issues = append(issues, Issue{
				Type:        TypeMaintainability,
				Severity:    SeverityLow,
				Line:        1,
				Description: p.description,
				Suggestion:  "Improve " + strings.ToLower(p.description),
			})
		}
	}

	// The long-line check carries real line numbers.
	nonBlank := 0
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
		if len(line) > maxLineLength {
			issues = append(issues, Issue{
				Type:        TypeMaintainability,
				Severity:    SeverityLow,
				Line:        i + 1,
				Description: "Line too long - affects readability",
				Suggestion:  "Break long lines for better readability",
			})
		}
	}

	counts := map[IssueType]int{}
	for _, is := range issues {
		counts[is.Type]++
	}

	issues = append(issues, bestPracticeIssues...)

	return Result{
		Issues: issues,
		Metrics: Metrics{
			ComplexityScore:      clampScore(nonBlank / 10),
			MaintainabilityScore: floorScore(10 - counts[TypeMaintainability]),
			SecurityScore:        floorScore(10 - counts[TypeSecurity]),
			PerformanceScore:     floorScore(10 - counts[TypePerformance]),
		},
		Summary: fmt.Sprintf("Static analysis completed. Found %d issues: %d security, %d performance, %d maintainability.",
			len(issues), counts[TypeSecurity], counts[TypePerformance], counts[TypeMaintainability]),
		Provenance: ProvenanceStaticFallback,
	}
}

// checkSyntax parses Go sources and reports one critical issue on failure,
// with the parser's line number when available. Other languages are not
// parsed.
func checkSyntax(text, path string) []Issue {
	if !strings.HasSuffix(path, ".go") || strings.TrimSpace(text) == "" {
		return nil
	}

	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, path, text, 0)
	if err == nil {
		return nil
	}

	line := 1
	if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
		line = list[0].Pos.Line
	}
	return []Issue{{
		Type:        TypeSyntax,
		Severity:    SeverityCritical,
		Line:        line,
		Description: fmt.Sprintf("Syntax error: %v", err),
		Suggestion:  "Fix the syntax error in the code",
	}}
}

func clampScore(v int) float64 {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return float64(v)
}

func floorScore(v int) float64 {
	if v < 1 {
		return 1
	}
	return float64(v)
}
