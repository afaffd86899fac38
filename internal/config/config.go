// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/scoring"
)

// DefaultFileName is the config file the CLI looks for in the working
// directory when no --config flag is given.
const DefaultFileName = "analyzer.config.json"

// Config represents the analyzer configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must
// be provided via CLI flags. Environment variables win over file values
// for secrets.
type Config struct {
	// Paths
	Resume   string `json:"resume,omitempty"`   // Path to resume text file
	Job      string `json:"job,omitempty"`      // Path to job posting text file
	JobURL   string `json:"job_url,omitempty" validate:"omitempty,url"` // URL to fetch job posting from
	Taxonomy string `json:"taxonomy,omitempty"` // Path to skill taxonomy JSONL
	Output   string `json:"output,omitempty"`   // Report output path (.json or .xlsx)

	// Matching
	Provider  string              `json:"provider,omitempty" validate:"omitempty,oneof=gemini openai local none"`
	Threshold float64             `json:"threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
	Weights   scoring.WeightTable `json:"weights,omitempty"` // Overrides the default dimension weights

	// Scoring policy; absent sections keep the built-in tables
	Bands   *scoring.BandThresholds `json:"bands,omitempty"`   // Semantic-fit band boundaries, all three together
	Penalty *scoring.PenaltyPolicy  `json:"penalty,omitempty"` // Role-mismatch tier policy

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA job boards
	Narrative  bool `json:"narrative,omitempty"`   // Generate an LLM narrative for the report
	Verbose    bool `json:"verbose,omitempty"`     // Debug-level logging
	JSONLogs   bool `json:"json_logs,omitempty"`   // JSON log encoding instead of console

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address for serve mode

	// Secrets; the matching environment variable wins when set
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // GEMINI_API_KEY
	OpenAIAPIKey string `json:"openai_api_key,omitempty"` // OPENAI_API_KEY
	DatabaseURL  string `json:"database_url,omitempty"`   // DATABASE_URL, PostgreSQL taxonomy source
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields
// are not enforced here; the CLI checks those after merging flags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Job source is either a file or a URL, never both
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	// Weight overrides must still describe a complete composite
	if len(c.Weights) > 0 {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: invalid weights: %w", err)
		}
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"resume":   c.Resume,
		"job":      c.Job,
		"taxonomy": c.Taxonomy,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Taxonomy == "" {
		result.Taxonomy = defaults.Taxonomy
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Float fields: use default if zero
	if result.Threshold == 0 {
		result.Threshold = defaults.Threshold
	}

	// Map and pointer sections: replace wholesale, never merge partially
	if len(result.Weights) == 0 {
		result.Weights = defaults.Weights
	}
	if result.Bands == nil {
		result.Bands = defaults.Bands
	}
	if result.Penalty == nil {
		result.Penalty = defaults.Penalty
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv overlays secret values from the environment onto the config.
// Environment variables always win over file values so deployments never
// depend on secrets written to disk.
func (c *Config) FromEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAIAPIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
}
