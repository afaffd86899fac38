// Package embedding provides text embedding providers and vector math for
// semantic similarity. Providers share one interface so the engine can run
// against Gemini, OpenAI, or a deterministic local encoder without caring
// which is behind it.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable signals that no embedding provider could be reached. Callers
// treat it as a cue to degrade to lexical-only scoring rather than fail.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Provider is an abstraction over embedding backends
type Provider interface {
	// Embed generates a vector representation of the given text
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch generates vectors for multiple texts in one call
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions returns the width of vectors this provider produces
	Dimensions() int
	// Name identifies the provider for logs and reports
	Name() string
	// Close releases any resources held by the provider
	Close() error
}

// Provider names accepted in configuration
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"
)

// Config selects and parameterizes an embedding provider
type Config struct {
	Provider   string `json:"provider"`
	Model      string `json:"model,omitempty"`
	Dimensions int    `json:"dimensions,omitempty"`
}

// DefaultConfig returns the provider configuration used when none is given:
// Gemini's 768-dimensional text embedding model, the same width the taxonomy
// build tool produces.
func DefaultConfig() *Config {
	return &Config{
		Provider:   ProviderGemini,
		Model:      geminiDefaultModel,
		Dimensions: 768,
	}
}

// NewProvider creates a provider based on configuration. API keys come from
// the environment, never from the config file.
func NewProvider(ctx context.Context, config *Config, apiKey string) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch strings.ToLower(config.Provider) {
	case ProviderGemini, "":
		return NewGeminiProvider(ctx, config, apiKey)
	case ProviderOpenAI:
		return NewOpenAIProvider(config, apiKey)
	case ProviderLocal:
		return NewLocalProvider(config.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", config.Provider)
	}
}
