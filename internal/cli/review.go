package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/critic/internal/analysis"
	"github.com/dshills/critic/internal/config"
	"github.com/dshills/critic/internal/ingest"
	"github.com/dshills/critic/internal/logging"
	"github.com/dshills/critic/internal/output"
	"github.com/dshills/critic/internal/providers"
)

// Shared analysis flags
var (
	flagModel        string
	flagTemperature  float64
	flagChunkSize    int
	flagChunkOverlap int
	flagFormat       string
	flagOut          string
	flagFailOn       string
	flagNoRedact     bool
)

func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().Float64Var(&flagTemperature, "temperature", 0, "Sampling temperature (0-2)")
	cmd.Flags().IntVar(&flagChunkSize, "chunk-size", 0, "Chunk size in estimated tokens")
	cmd.Flags().IntVar(&flagChunkOverlap, "chunk-overlap", 0, "Chunk overlap in estimated tokens")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, low, medium, high, critical)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagTemperature > 0 {
		m["temperature"] = fmt.Sprintf("%g", flagTemperature)
	}
	if flagChunkSize > 0 {
		m["chunkSize"] = fmt.Sprintf("%d", flagChunkSize)
	}
	if flagChunkOverlap > 0 {
		m["chunkOverlap"] = fmt.Sprintf("%d", flagChunkOverlap)
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	return m
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// loadEngine builds the shared pipeline front half: effective config,
// logging, ingested source units, and an engine bound to a backend.
func loadEngine(ctx context.Context, path string) (config.Config, []ingest.Unit, *analysis.Engine, int64, bool) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return cfg, nil, nil, 0, false
	}
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	logging.Init(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	units, err := ingest.Load(path, ingest.Options{MaxFileSizeMB: cfg.MaxFileSizeMB})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return cfg, nil, nil, 0, false
	}
	if len(units) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no analyzable source files found")
		exitCode = ExitRuntimeError
		return cfg, nil, nil, 0, false
	}

	pool, err := providers.NewPool(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return cfg, nil, nil, 0, false
	}

	resolveStart := time.Now()
	eng := analysis.New(ctx, cfg, pool)
	return cfg, units, eng, time.Since(resolveStart).Milliseconds(), true
}

func runAnalysis(task analysis.TaskKind, path string) {
	startTime := time.Now()
	ctx := context.Background()

	cfg, units, eng, resolveMs, ok := loadEngine(ctx, path)
	if !ok {
		return
	}

	llmStart := time.Now()
	files := make([]analysis.FileResult, 0, len(units))
	for _, u := range units {
		result := eng.Analyze(ctx, analysis.Request{
			Path:     u.Path,
			Language: u.Language,
			Text:     u.Content,
			Task:     task,
		})
		files = append(files, analysis.FileResult{
			Path:     u.Path,
			Language: u.Language,
			Result:   result,
		})
	}
	llmMs := time.Since(llmStart).Milliseconds()

	backend := eng.Backend()
	report := &analysis.Report{
		Tool:         "critic",
		Version:      version,
		Task:         task,
		Provider:     backend.Provider,
		Model:        backend.Model,
		FallbackMode: backend.FallbackMode,
		Files:        files,
		Timing: analysis.Timing{
			ResolveMs: resolveMs,
			LLMMs:     llmMs,
			TotalMs:   time.Since(startTime).Milliseconds(),
		},
	}

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if cfg.FailOn != "none" && cfg.FailOn != "" {
		for _, fr := range report.Files {
			for _, is := range fr.Result.Issues {
				if analysis.MeetsThreshold(is.Severity, cfg.FailOn) {
					exitCode = ExitFindings
					return
				}
			}
		}
	}
}

// runRewrite handles the improve and document tasks, which emit rewritten
// source instead of a report.
func runRewrite(task analysis.TaskKind, path string) {
	ctx := context.Background()

	_, units, eng, _, ok := loadEngine(ctx, path)
	if !ok {
		return
	}

	var out *os.File
	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		defer f.Close()
		out = f
	} else {
		out = os.Stdout
	}

	for i, u := range units {
		req := analysis.Request{
			Path:     u.Path,
			Language: u.Language,
			Text:     u.Content,
			Task:     task,
		}

		var rewritten string
		if task == analysis.TaskImprove {
			// Improvement is driven by the issues a review finds.
			result := eng.Analyze(ctx, analysis.Request{
				Path:     u.Path,
				Language: u.Language,
				Text:     u.Content,
				Task:     analysis.TaskReview,
			})
			rewritten = eng.Improve(ctx, req, result.Issues)
		} else {
			rewritten = eng.Document(ctx, req)
		}

		if len(units) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "=== %s ===\n", u.Path)
		}
		fmt.Fprintln(out, rewritten)
	}
}

var reviewCmd = &cobra.Command{
	Use:   "review <path>",
	Short: "Run a general code review",
	Long:  "Review source code for security, performance, and maintainability issues. The path may be a file, a directory, a .zip archive, or a git URL.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAnalysis(analysis.TaskReview, args[0])
	},
}

var securityCmd = &cobra.Command{
	Use:   "security <path>",
	Short: "Run a security-focused analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAnalysis(analysis.TaskSecurity, args[0])
	},
}

var performanceCmd = &cobra.Command{
	Use:   "performance <path>",
	Short: "Run a performance-focused analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAnalysis(analysis.TaskPerformance, args[0])
	},
}

var improveCmd = &cobra.Command{
	Use:   "improve <path>",
	Short: "Rewrite code addressing review findings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRewrite(analysis.TaskImprove, args[0])
	},
}

var documentCmd = &cobra.Command{
	Use:   "document <path>",
	Short: "Add documentation comments to code",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRewrite(analysis.TaskDocument, args[0])
	},
}

func init() {
	for _, cmd := range []*cobra.Command{
		reviewCmd,
		securityCmd,
		performanceCmd,
		improveCmd,
		documentCmd,
	} {
		addAnalysisFlags(cmd)
	}
}
