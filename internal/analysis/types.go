package analysis

// TaskKind selects the analysis task a request is asking for.
type TaskKind string

const (
	TaskReview      TaskKind = "review"
	TaskSecurity    TaskKind = "security"
	TaskPerformance TaskKind = "performance"
	TaskImprove     TaskKind = "improve"
	TaskDocument    TaskKind = "document"
)

// IssueType classifies what kind of problem an issue describes.
type IssueType string

const (
	TypeSyntax          IssueType = "syntax"
	TypeSecurity        IssueType = "security"
	TypePerformance     IssueType = "performance"
	TypeMaintainability IssueType = "maintainability"
	TypeReadability     IssueType = "readability"
	TypeBestPractice    IssueType = "best_practice"
)

// Severity levels for issues.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Provenance records which path produced a Result.
type Provenance string

const (
	// ProvenanceRemote means the result was parsed from structured backend output.
	ProvenanceRemote Provenance = "remote"
	// ProvenanceRemotePlainText means the result was heuristically extracted
	// from unstructured backend output.
	ProvenanceRemotePlainText Provenance = "remote_plain_text"
	// ProvenanceStaticFallback means the deterministic analyzer produced the result.
	ProvenanceStaticFallback Provenance = "static_fallback"
)

// Issue is a single problem found in the analyzed source.
type Issue struct {
	Type            IssueType `json:"type"`
	Severity        Severity  `json:"severity"`
	Line            int       `json:"line"`
	LineApproximate bool      `json:"line_approximate,omitempty"`
	Description     string    `json:"description"`
	Suggestion      string    `json:"suggestion,omitempty"`
}

// Metrics are quality scores on a 1-10 scale.
type Metrics struct {
	ComplexityScore      float64 `json:"complexity_score"`
	MaintainabilityScore float64 `json:"maintainability_score"`
	SecurityScore        float64 `json:"security_score"`
	PerformanceScore     float64 `json:"performance_score"`
}

// Result is the normalized output of analyzing one source unit.
type Result struct {
	Issues     []Issue    `json:"issues"`
	Metrics    Metrics    `json:"metrics"`
	Summary    string     `json:"summary"`
	Provenance Provenance `json:"provenance"`
}

// Request describes one source unit to analyze.
type Request struct {
	Path     string
	Language string
	Text     string
	Task     TaskKind
}

// Chunk is a contiguous slice of source produced by the chunker.
type Chunk struct {
	Index  int
	Text   string
	Tokens int
}

// FileResult pairs a source path with its analysis result.
type FileResult struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Result   Result `json:"result"`
}

// Timing captures wall-clock phases in milliseconds.
type Timing struct {
	ResolveMs int64 `json:"resolveMs"`
	LLMMs     int64 `json:"llmMs"`
	TotalMs   int64 `json:"totalMs"`
}

// Report is the full output of one analysis run.
type Report struct {
	Tool         string       `json:"tool"`
	Version      string       `json:"version"`
	Task         TaskKind     `json:"task"`
	Provider     string       `json:"provider"`
	Model        string       `json:"model,omitempty"`
	FallbackMode bool         `json:"fallbackMode"`
	Files        []FileResult `json:"files"`
	Timing       Timing       `json:"timing"`
}

// SeverityCounts tallies issues by severity across the report.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

// CountSeverities tallies issues by severity.
func CountSeverities(files []FileResult) SeverityCounts {
	var c SeverityCounts
	for _, fr := range files {
		for _, is := range fr.Result.Issues {
			switch is.Severity {
			case SeverityCritical:
				c.Critical++
			case SeverityHigh:
				c.High++
			case SeverityMedium:
				c.Medium++
			case SeverityLow:
				c.Low++
			case SeverityInfo:
				c.Info++
			}
		}
	}
	return c
}

// Total returns the sum of all severity buckets.
func (c SeverityCounts) Total() int {
	return c.Critical + c.High + c.Medium + c.Low + c.Info
}

// MeetsThreshold reports whether a severity is at or above the given threshold.
func MeetsThreshold(sev Severity, threshold string) bool {
	return SeverityRank(sev) >= SeverityRank(Severity(threshold))
}
