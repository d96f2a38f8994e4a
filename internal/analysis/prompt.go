package analysis

import (
	"fmt"
	"strings"
)

const reviewContract = `Respond with a JSON object in this exact format:
{
  "issues": [
    {
      "type": "syntax|security|performance|maintainability|readability|best_practice",
      "severity": "critical|high|medium|low|info",
      "line": <line number>,
      "description": "<description of the issue>",
      "suggestion": "<how to fix it>"
    }
  ],
  "metrics": {
    "complexity_score": <1-10>,
    "maintainability_score": <1-10>,
    "security_score": <1-10>,
    "performance_score": <1-10>
  },
  "summary": "<brief summary of key findings and improvements>"
}`

const securityContract = `Respond with a JSON object in this exact format:
{
  "security_issues": [
    {
      "type": "security",
      "severity": "critical|high|medium|low|info",
      "line": <line number>,
      "description": "<description of the vulnerability>",
      "mitigation": "<how to mitigate it>"
    }
  ],
  "summary": "<brief summary of the security posture>"
}`

const performanceContract = `Respond with a JSON object in this exact format:
{
  "performance_issues": [
    {
      "type": "performance",
      "severity": "critical|high|medium|low|info",
      "line": <line number>,
      "description": "<description of the bottleneck>",
      "optimization": "<how to optimize it>"
    }
  ],
  "summary": "<brief summary of performance characteristics>"
}`

// BuildPrompt assembles the prompt for one chunk of one analysis task.
func BuildPrompt(task TaskKind, text, path, language string) string {
	var b strings.Builder

	switch task {
	case TaskSecurity:
		b.WriteString("You are an expert security engineer. Analyze the following code for security issues, including:\n")
		b.WriteString("1. Injection vulnerabilities\n2. Unsafe deserialization\n3. Hardcoded credentials\n4. Authentication and authorization issues\n5. Cryptographic weaknesses\n\n")
	case TaskPerformance:
		b.WriteString("You are an expert performance engineer. Analyze the following code for performance issues, including:\n")
		b.WriteString("1. Algorithmic complexity\n2. Memory usage patterns\n3. Inefficient data structures\n4. Redundant computation\n5. I/O inefficiencies\n\n")
	default:
		b.WriteString("You are an expert software engineer performing a thorough code review. Analyze the following code for correctness, security, performance, maintainability, and readability.\n\n")
	}

	if path != "" {
		fmt.Fprintf(&b, "File: %s\n", path)
	}
	if language != "" && language != "Unknown" {
		fmt.Fprintf(&b, "Language: %s\n", language)
	}

	b.WriteString("\nCode:\n```\n")
	b.WriteString(text)
	b.WriteString("\n```\n\n")

	switch task {
	case TaskSecurity:
		b.WriteString(securityContract)
	case TaskPerformance:
		b.WriteString(performanceContract)
	default:
		b.WriteString(reviewContract)
	}

	return b.String()
}

// BuildImprovePrompt asks for a rewritten version of the code that addresses
// the identified issues while preserving behavior.
func BuildImprovePrompt(text, path string, issues []Issue) string {
	var b strings.Builder
	b.WriteString("You are an expert software engineer tasked with improving code based on identified issues.\n\n")
	if path != "" {
		fmt.Fprintf(&b, "File: %s\n", path)
	}
	b.WriteString("\nOriginal code:\n```\n")
	b.WriteString(text)
	b.WriteString("\n```\n\nIdentified issues:\n")
	for _, is := range issues {
		fmt.Fprintf(&b, "- [%s/%s] line %d: %s\n", is.Type, is.Severity, is.Line, is.Description)
	}
	b.WriteString("\nProvide an improved version of the code that addresses all identified issues while maintaining the original functionality. Return the complete improved code in a fenced code block.\n")
	return b.String()
}

// BuildDocumentPrompt asks for the same code with documentation added.
func BuildDocumentPrompt(text, path, language string) string {
	var b strings.Builder
	b.WriteString("You are an expert technical writer. Add clear, idiomatic documentation comments to the following code without changing its behavior.\n\n")
	if path != "" {
		fmt.Fprintf(&b, "File: %s\n", path)
	}
	if language != "" && language != "Unknown" {
		fmt.Fprintf(&b, "Language: %s\n", language)
	}
	b.WriteString("\nCode:\n```\n")
	b.WriteString(text)
	b.WriteString("\n```\n\nReturn the complete documented code in a fenced code block.\n")
	return b.String()
}
