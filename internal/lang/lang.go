// Package lang maps file extensions to language names for prompt tagging
// and ingestion filtering.
package lang

import (
	"path/filepath"
	"strings"
)

var languageMap = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".jsx":   "React JSX",
	".tsx":   "React TSX",
	".html":  "HTML",
	".css":   "CSS",
	".scss":  "SCSS",
	".java":  "Java",
	".cpp":   "C++",
	".c":     "C",
	".h":     "C Header",
	".hpp":   "C++ Header",
	".cs":    "C#",
	".php":   "PHP",
	".rb":    "Ruby",
	".go":    "Go",
	".rs":    "Rust",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".clj":   "Clojure",
	".hs":    "Haskell",
	".ml":    "OCaml",
	".fs":    "F#",
	".sql":   "SQL",
	".sh":    "Shell",
	".bat":   "Batch",
	".ps1":   "PowerShell",
	".yaml":  "YAML",
	".yml":   "YAML",
	".json":  "JSON",
	".xml":   "XML",
	".md":    "Markdown",
	".txt":   "Text",
	".ini":   "INI",
	".cfg":   "Config",
	".conf":  "Config",
}

// FromPath returns the language name for a file path, or "Unknown" when the
// extension is not recognized.
func FromPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if name, ok := languageMap[ext]; ok {
		return name
	}
	return "Unknown"
}

// IsSupported reports whether a path has a recognized source extension.
func IsSupported(path string) bool {
	_, ok := languageMap[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the set of recognized extensions.
func Extensions() []string {
	exts := make([]string, 0, len(languageMap))
	for ext := range languageMap {
		exts = append(exts, ext)
	}
	return exts
}
