package analysis

import (
	"fmt"
	"strings"
)

// estimateTokens approximates a line's token cost as one token per four
// characters. Not an exact tokenizer; the whole pipeline uses this one
// estimate so chunk boundaries and line reconciliation agree.
func estimateTokens(line string) int {
	return len(line) / 4
}

// SplitChunks splits text into token-bounded chunks, walking line by line.
// When adding a line would exceed maxTokens, the current chunk closes and
// the next chunk is seeded with a trailing-line suffix whose cumulative cost
// stays within overlapTokens. Always returns at least one chunk; empty input
// yields a single empty-text chunk. Deterministic for identical arguments.
func SplitChunks(text string, maxTokens, overlapTokens int) []Chunk {
	lines := strings.Split(text, "\n")
	var chunks []Chunk
	var current []string
	currentTokens := 0

	flush := func() {
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Text:   strings.Join(current, "\n"),
			Tokens: currentTokens,
		})
	}

	for _, line := range lines {
		lineTokens := estimateTokens(line)

		if currentTokens+lineTokens > maxTokens && len(current) > 0 {
			flush()

			// Seed the next chunk with trailing lines within the overlap budget.
			var overlap []string
			overlapTokensUsed := 0
			for i := len(current) - 1; i >= 0; i-- {
				cost := estimateTokens(current[i])
				if overlapTokensUsed+cost > overlapTokens {
					break
				}
				overlap = append([]string{current[i]}, overlap...)
				overlapTokensUsed += cost
			}

			current = append(overlap, line)
			currentTokens = overlapTokensUsed + lineTokens
		} else {
			current = append(current, line)
			currentTokens += lineTokens
		}
	}

	if len(current) > 0 {
		flush()
	}
	if len(chunks) == 0 {
		chunks = []Chunk{{Index: 0, Text: text}}
	}
	return chunks
}

// MergeChunkResults reconciles per-chunk results into one. Issue lines from
// chunk i are offset by i*maxTokens and flagged approximate, since the
// chunker counts tokens rather than lines. Metrics are arithmetic-averaged
// per field; a missing (zero) field counts as the neutral score 5.
func MergeChunkResults(results []Result, maxTokens int) Result {
	var merged Result
	var sums Metrics

	for i, res := range results {
		for _, issue := range res.Issues {
			if i > 0 {
				issue.Line += i * maxTokens
				issue.LineApproximate = true
			}
			merged.Issues = append(merged.Issues, issue)
		}
		sums.ComplexityScore += scoreOrDefault(res.Metrics.ComplexityScore)
		sums.MaintainabilityScore += scoreOrDefault(res.Metrics.MaintainabilityScore)
		sums.SecurityScore += scoreOrDefault(res.Metrics.SecurityScore)
		sums.PerformanceScore += scoreOrDefault(res.Metrics.PerformanceScore)
	}

	n := float64(len(results))
	if n == 0 {
		merged.Metrics = defaultMetrics()
	} else {
		merged.Metrics = Metrics{
			ComplexityScore:      sums.ComplexityScore / n,
			MaintainabilityScore: sums.MaintainabilityScore / n,
			SecurityScore:        sums.SecurityScore / n,
			PerformanceScore:     sums.PerformanceScore / n,
		}
	}

	merged.Summary = mergeSummary(len(results), len(merged.Issues))
	merged.Provenance = mergeProvenance(results)
	return merged
}

// scoreOrDefault treats a zero score as unreported. Scores live on a 1-10
// scale, so zero can only mean the backend omitted the field.
func scoreOrDefault(v float64) float64 {
	if v == 0 {
		return 5
	}
	return v
}

func defaultMetrics() Metrics {
	return Metrics{
		ComplexityScore:      5,
		MaintainabilityScore: 5,
		SecurityScore:        5,
		PerformanceScore:     5,
	}
}

func mergeSummary(chunks, issues int) string {
	return fmt.Sprintf("Analyzed %d chunks, found %d total issues", chunks, issues)
}

// mergeProvenance keeps the merged tag truthful: remote only when every chunk
// came back remote, and static_fallback as soon as any chunk degraded to the
// static analyzer. Anything between (remote mixed with plain-text extraction)
// is remote_plain_text, since both producers are remote paths.
func mergeProvenance(results []Result) Provenance {
	if len(results) == 0 {
		return ProvenanceStaticFallback
	}
	allRemote := true
	for _, r := range results {
		if r.Provenance == ProvenanceStaticFallback {
			return ProvenanceStaticFallback
		}
		if r.Provenance != ProvenanceRemote {
			allRemote = false
		}
	}
	if allRemote {
		return ProvenanceRemote
	}
	return ProvenanceRemotePlainText
}
