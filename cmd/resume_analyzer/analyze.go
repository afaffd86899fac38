package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/export"
	"github.com/jonathan/resume-analyzer/internal/ingest"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score one resume against one job description",
	Long: `Extracts skills from both documents, resolves them against the taxonomy, computes semantic fit and role-mismatch penalties, runs the checker suite, and prints or writes the composite report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJob        string
	analyzeJobURL     string
	analyzeTaxonomy   string
	analyzeOutput     string
	analyzeProvider   string
	analyzeThreshold  float64
	analyzeExternal   string
	analyzeBrowser    bool
	analyzeNarrative  bool
	analyzeVerbose    bool
	analyzeJSONLogs   bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to analyzer.config.json (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume text file")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	analyzeCmd.Flags().StringVarP(&analyzeTaxonomy, "taxonomy", "t", "", "Path to skill taxonomy JSONL")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Report destination: .json or .xlsx file, '-' for JSON on stdout (default: human summary)")
	analyzeCmd.Flags().StringVar(&analyzeProvider, "provider", "", "Embedding provider: gemini, openai, local or none (default: detected from API keys)")
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0, "Minimum cosine similarity for embedding-based skill matches")
	analyzeCmd.Flags().StringVar(&analyzeExternal, "external", "", "Path to JSON file with externally computed dimension results")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	analyzeCmd.Flags().BoolVar(&analyzeNarrative, "narrative", false, "Generate an LLM narrative summary")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print stage-by-stage detail")
	analyzeCmd.Flags().BoolVar(&analyzeJSONLogs, "json-logs", false, "JSON log encoding instead of console")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCommandConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	// CLI overrides apply only for flags that were explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = analyzeResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = analyzeJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = analyzeJobURL
	}
	if cmd.Flags().Changed("taxonomy") {
		cfg.Taxonomy = analyzeTaxonomy
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = analyzeOutput
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = analyzeProvider
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = analyzeThreshold
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = analyzeBrowser
	}
	if cmd.Flags().Changed("narrative") {
		cfg.Narrative = analyzeNarrative
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = analyzeJSONLogs
	}

	cfg = cfg.MergeWithDefaults(analyzerDefaults())
	cfg.FromEnv()

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	return analyzeOnce(context.Background(), cfg, analyzeExternal, os.Stdout)
}

// analyzeOnce runs a single analysis per the resolved config and renders the
// report to out.
func analyzeOnce(ctx context.Context, cfg config.Config, externalPath string, out io.Writer) error {
	logger, err := logging.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	resumeText, err := ingest.ReadDocument(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	index, closeIndex, err := openIndex(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeIndex()

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	if provider != nil {
		defer func() { _ = provider.Close() }()
	}

	engine, err := analyzer.New(index, provider, logger, engineOptions(ctx, cfg, logger))
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	input := types.AnalysisInput{ResumeText: resumeText}
	if cfg.JobURL != "" {
		jobText, err := newIngestor(cfg, logger).JobText(ctx, cfg.JobURL)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		input.JobText = jobText
		input.JobURL = cfg.JobURL
	} else {
		jobText, err := ingest.ReadDocument(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to read job posting: %w", err)
		}
		input.JobText = jobText
	}

	if externalPath != "" {
		external, err := loadExternalResults(externalPath)
		if err != nil {
			return err
		}
		input.External = external
	}

	result, err := engine.Analyze(ctx, input)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return writeReport(result, cfg, out)
}

// writeReport renders a finished report according to cfg.Output: a human
// summary when unset, JSON on stdout for "-", and a .json or .xlsx file
// otherwise.
func writeReport(result types.AnalysisReport, cfg config.Config, out io.Writer) error {
	printer := observability.NewPrinter(out)
	if cfg.Verbose {
		printer.PrintReport(&result)
	}

	switch {
	case cfg.Output == "":
		if !cfg.Verbose {
			printer.PrintComposite(result.Composite)
			printer.PrintFindings(result.Results)
		}
		if result.Narrative != "" {
			fmt.Fprintf(out, "\n%s\n", result.Narrative)
		}
		return nil

	case cfg.Output == "-":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil

	case strings.EqualFold(filepath.Ext(cfg.Output), ".xlsx"):
		rows := []export.Row{{Label: filepath.Base(cfg.Resume), Report: result}}
		if err := export.WriteWorkbook(rows, cfg.Output); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Fprintf(out, "Workbook written to %s\n", cfg.Output)
		return nil

	default:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if err := os.WriteFile(cfg.Output, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(out, "Report written to %s\n", cfg.Output)
		fmt.Fprintf(out, "Score: %.2f (%s)\n", result.Composite.Total, result.Composite.Grade)
		return nil
	}
}
