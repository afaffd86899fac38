package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/export"
	"github.com/jonathan/resume-analyzer/internal/ingest"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// defaultBatchWorkers bounds concurrent analyses when --workers is unset
const defaultBatchWorkers = 4

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score many documents and export a ranked workbook",
	Long: `Analyze one resume against a directory of job postings, or one job posting against a directory of resumes, in parallel. Results are ranked by composite score and written to an .xlsx workbook.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runBatch,
}

var (
	batchConfigPath string
	batchResume     string
	batchJob        string
	batchJobsDir    string
	batchResumesDir string
	batchTaxonomy   string
	batchOutput     string
	batchProvider   string
	batchThreshold  float64
	batchWorkers    int
	batchNarrative  bool
	batchVerbose    bool
	batchJSONLogs   bool
)

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to analyzer.config.json (values can be overridden by other flags)")
	batchCmd.Flags().StringVarP(&batchResume, "resume", "r", "", "Path to the resume scored against every job in --jobs-dir")
	batchCmd.Flags().StringVarP(&batchJob, "job", "j", "", "Path to the job posting scored against every resume in --resumes-dir")
	batchCmd.Flags().StringVar(&batchJobsDir, "jobs-dir", "", "Directory of job posting files (mutually exclusive with --resumes-dir)")
	batchCmd.Flags().StringVar(&batchResumesDir, "resumes-dir", "", "Directory of resume files (mutually exclusive with --jobs-dir)")
	batchCmd.Flags().StringVarP(&batchTaxonomy, "taxonomy", "t", "", "Path to skill taxonomy JSONL")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "analysis.xlsx", "Workbook output path")
	batchCmd.Flags().StringVar(&batchProvider, "provider", "", "Embedding provider: gemini, openai, local or none (default: detected from API keys)")
	batchCmd.Flags().Float64Var(&batchThreshold, "threshold", 0, "Minimum cosine similarity for embedding-based skill matches")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "n", defaultBatchWorkers, "Concurrent analyses")
	batchCmd.Flags().BoolVar(&batchNarrative, "narrative", false, "Generate an LLM narrative per document")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Debug-level logging")
	batchCmd.Flags().BoolVar(&batchJSONLogs, "json-logs", false, "JSON log encoding instead of console")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCommandConfig(batchConfigPath)
	if err != nil {
		return err
	}

	// CLI overrides apply only for flags that were explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = batchResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = batchJob
	}
	if cmd.Flags().Changed("taxonomy") {
		cfg.Taxonomy = batchTaxonomy
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = batchProvider
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = batchThreshold
	}
	if cmd.Flags().Changed("narrative") {
		cfg.Narrative = batchNarrative
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = batchVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = batchJSONLogs
	}

	cfg = cfg.MergeWithDefaults(analyzerDefaults())
	cfg.FromEnv()

	if (batchJobsDir == "") == (batchResumesDir == "") {
		return fmt.Errorf("provide exactly one of --jobs-dir or --resumes-dir")
	}
	spec := batchSpec{
		dir:     batchJobsDir,
		workers: batchWorkers,
		output:  batchOutput,
	}
	if batchResumesDir != "" {
		if cfg.Job == "" {
			return fmt.Errorf("--job is required with --resumes-dir (via flag or config)")
		}
		spec.dir = batchResumesDir
		spec.fixedPath = cfg.Job
		spec.varyResumes = true
	} else {
		if cfg.Resume == "" {
			return fmt.Errorf("--resume is required with --jobs-dir (via flag or config)")
		}
		spec.fixedPath = cfg.Resume
	}

	return executeBatch(context.Background(), cfg, spec, os.Stdout)
}

// batchSpec describes one batch run: a fixed document scored against every
// document in a directory.
type batchSpec struct {
	fixedPath   string
	dir         string
	varyResumes bool // the directory holds resumes rather than job postings
	workers     int
	output      string
}

// executeBatch scores the fixed document against every document in the
// directory in parallel and writes the ranked workbook.
func executeBatch(ctx context.Context, cfg config.Config, spec batchSpec, out io.Writer) error {
	logger, err := logging.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	docs, err := listDocuments(spec.dir)
	if err != nil {
		return err
	}

	fixedText, err := ingest.ReadDocument(spec.fixedPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", spec.fixedPath, err)
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

	workers := spec.workers
	if workers < 1 {
		workers = defaultBatchWorkers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	rows := make([]export.Row, 0, len(docs))
	failed := 0

	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			docLogger := logging.WithDocument(logger, filepath.Base(doc))

			text, err := ingest.ReadDocument(doc)
			if err != nil {
				docLogger.Warn("skipping unreadable document", zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			input := types.AnalysisInput{ResumeText: fixedText, JobText: text}
			if spec.varyResumes {
				input = types.AnalysisInput{ResumeText: text, JobText: fixedText}
			}

			result, err := engine.Analyze(gctx, input)
			if err != nil {
				// Context errors abort the whole batch; a per-document
				// failure just drops the row.
				if gctx.Err() != nil {
					return err
				}
				docLogger.Warn("analysis failed", zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			rows = append(rows, export.Row{Label: filepath.Base(doc), Report: result})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch aborted: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no documents in %s could be analyzed", spec.dir)
	}

	if err := export.WriteWorkbook(rows, spec.output); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	fmt.Fprintf(out, "Analyzed %d of %d documents\n", len(rows), len(docs))
	if failed > 0 {
		fmt.Fprintf(out, "Skipped %d documents, see log for details\n", failed)
	}
	fmt.Fprintf(out, "Workbook written to %s\n", spec.output)
	return nil
}

// listDocuments returns the analyzable document paths in dir, sorted by
// name. Only text-bearing extensions are picked up so stray artifacts in
// the directory do not poison the batch.
func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".md", ".html", ".htm":
			docs = append(docs, filepath.Join(dir, entry.Name()))
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no .txt, .md or .html documents found in %s", dir)
	}
	return docs, nil
}
