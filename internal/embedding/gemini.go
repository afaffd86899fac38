package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiDefaultModel = "text-embedding-004"

// GeminiProvider implements Provider on Google's embedding models
type GeminiProvider struct {
	client *genai.Client
	model  string
	dims   int
}

// NewGeminiProvider creates a Gemini-backed embedding provider
func NewGeminiProvider(ctx context.Context, config *Config, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := geminiDefaultModel
	if config != nil && config.Model != "" {
		model = config.Model
	}
	dims := 768
	if config != nil && config.Dimensions > 0 {
		dims = config.Dimensions
	}

	return &GeminiProvider{client: client, model: model, dims: dims}, nil
}

// Embed generates a vector for a single text
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	em := p.client.EmbeddingModel(p.model)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	return resp.Embedding.Values, nil
}

// EmbedBatch generates vectors for multiple texts in one request
func (p *GeminiProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	em := p.client.EmbeddingModel(p.model)
	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("empty embedding at index %d", i)
		}
		vectors[i] = emb.Values
	}

	return vectors, nil
}

// Dimensions returns the vector width of the configured model
func (p *GeminiProvider) Dimensions() int {
	return p.dims
}

// Name identifies the provider
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// Close releases resources held by the provider
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
