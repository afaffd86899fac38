package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing analysis and taxonomy endpoints.

The taxonomy loads from PostgreSQL when DATABASE_URL is set, otherwise from the JSONL file. Setting JWT_SECRET enables bearer-token authentication on the analysis endpoints.`,
	RunE: runServe,
}

var (
	serveConfigPath string
	serveAddr       string
	serveTaxonomy   string
	serveProvider   string
	serveThreshold  float64
	serveBrowser    bool
	serveNarrative  bool
	serveVerbose    bool
	serveJSONLogs   bool
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to analyzer.config.json (values can be overridden by other flags)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVarP(&serveTaxonomy, "taxonomy", "t", "", "Path to skill taxonomy JSONL")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "Embedding provider: gemini, openai, local or none (default: detected from API keys)")
	serveCmd.Flags().Float64Var(&serveThreshold, "threshold", 0, "Minimum cosine similarity for embedding-based skill matches")
	serveCmd.Flags().BoolVar(&serveBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	serveCmd.Flags().BoolVar(&serveNarrative, "narrative", false, "Generate LLM narratives on API reports")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Debug-level logging")
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "JSON log encoding instead of console")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCommandConfig(serveConfigPath)
	if err != nil {
		return err
	}

	// CLI overrides apply only for flags that were explicitly set
	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr = serveAddr
	}
	if cmd.Flags().Changed("taxonomy") {
		cfg.Taxonomy = serveTaxonomy
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = serveProvider
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = serveThreshold
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveBrowser
	}
	if cmd.Flags().Changed("narrative") {
		cfg.Narrative = serveNarrative
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = serveJSONLogs
	}

	cfg = cfg.MergeWithDefaults(analyzerDefaults())
	cfg.FromEnv()

	return serveAPI(context.Background(), cfg)
}

// serveAPI builds the engine stack and runs the HTTP server until a
// shutdown signal arrives.
func serveAPI(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

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

	jwtCfg, err := config.OptionalJWTConfig()
	if err != nil {
		return fmt.Errorf("invalid JWT configuration: %w", err)
	}
	if jwtCfg == nil {
		logger.Info("JWT_SECRET not set, API authentication disabled")
	}

	srv, err := server.New(server.Config{
		Addr: cfg.ListenAddr,
		JWT:  jwtCfg,
	}, engine, index, newIngestor(cfg, logger), logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
