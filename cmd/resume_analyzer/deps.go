package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/embedding"
	"github.com/jonathan/resume-analyzer/internal/ingest"
	"github.com/jonathan/resume-analyzer/internal/knowledge"
	"github.com/jonathan/resume-analyzer/internal/report"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// defaultTaxonomyPath is where the index commands look for the skill
// taxonomy when neither a flag, config value, nor DATABASE_URL names one.
const defaultTaxonomyPath = "data/skills.jsonl"

// analyzerDefaults returns the built-in defaults applied after config-file
// values and flag overrides have been merged.
func analyzerDefaults() config.Config {
	return config.Config{
		Taxonomy:   defaultTaxonomyPath,
		Provider:   detectProvider(),
		Threshold:  knowledge.DefaultSimilarityThreshold,
		ListenAddr: ":8080",
	}
}

// detectProvider picks an embedding provider from the API keys present in
// the environment. With no keys set, analysis degrades to lexical-only
// scoring instead of failing.
func detectProvider() string {
	if os.Getenv("GEMINI_API_KEY") != "" {
		return embedding.ProviderGemini
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return embedding.ProviderOpenAI
	}
	return "none"
}

// loadCommandConfig loads and validates a config file, or returns a zero
// config when no path was given.
func loadCommandConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}

	loaded, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return config.Config{}, err
	}
	return *loaded, nil
}

// openIndex loads the skill taxonomy, preferring PostgreSQL when a database
// URL is configured and reading the JSONL file otherwise. The returned
// closer releases the database pool in the former case.
func openIndex(ctx context.Context, cfg config.Config, logger *zap.Logger) (*knowledge.Index, func(), error) {
	if cfg.DatabaseURL != "" {
		store, err := knowledge.ConnectStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to taxonomy database: %w", err)
		}
		index, err := store.LoadIndex(ctx, logger)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to load taxonomy from database: %w", err)
		}
		return index, store.Close, nil
	}

	index, err := knowledge.LoadFile(cfg.Taxonomy, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	return index, func() {}, nil
}

// newProvider builds the embedding provider named in config. "none" returns
// nil, which the engine treats as a cue for lexical-only scoring.
func newProvider(ctx context.Context, cfg config.Config) (embedding.Provider, error) {
	if cfg.Provider == "" || cfg.Provider == "none" {
		return nil, nil
	}

	apiKey := cfg.GeminiAPIKey
	if cfg.Provider == embedding.ProviderOpenAI {
		apiKey = cfg.OpenAIAPIKey
	}

	provider, err := embedding.NewProvider(ctx, &embedding.Config{Provider: cfg.Provider}, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding provider: %w", err)
	}
	return provider, nil
}

// engineOptions assembles the engine configuration shared by the analyze,
// batch and serve commands. Band and penalty overrides from the config file
// replace the built-in tables wholesale.
func engineOptions(ctx context.Context, cfg config.Config, logger *zap.Logger) analyzer.Options {
	opts := analyzer.Options{
		MatchThreshold: cfg.Threshold,
		Weights:        cfg.Weights,
		Narrator:       newNarrator(ctx, cfg, logger),
	}
	if cfg.Bands != nil {
		opts.Bands = *cfg.Bands
	}
	if cfg.Penalty != nil {
		opts.Penalty = *cfg.Penalty
	}
	return opts
}

// newNarrator wires the Gemini-backed narrator when narrative mode is on.
// Without an API key the narrator runs on its template fallback, so a
// narrative is always produced.
func newNarrator(ctx context.Context, cfg config.Config, logger *zap.Logger) analyzer.Narrator {
	if !cfg.Narrative {
		return nil
	}

	var model report.Model
	if cfg.GeminiAPIKey != "" {
		gemini, err := report.NewGeminiModel(ctx, cfg.GeminiAPIKey, report.DefaultModelName)
		if err != nil {
			logger.Warn("narrative model unavailable, using template fallback", zap.Error(err))
		} else {
			model = gemini
		}
	}
	return report.NewNarrator(model, 0, logger)
}

// newIngestor builds the job-posting fetcher used for --job-url inputs.
func newIngestor(cfg config.Config, logger *zap.Logger) *ingest.Ingestor {
	return ingest.New(ingest.Options{Browser: cfg.UseBrowser}, logger)
}

// loadExternalResults reads externally computed dimension scores, such as
// layout checks from a rendering pipeline, for merging into the analysis.
func loadExternalResults(path string) ([]types.CheckerResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read external results: %w", err)
	}

	var results []types.CheckerResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse external results %s: %w", path, err)
	}
	return results, nil
}
