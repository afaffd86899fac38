package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const openaiDefaultModel = openai.EmbeddingModelTextEmbedding3Small

// openaiModelDimensions maps OpenAI embedding models to their vector widths
var openaiModelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIProvider implements Provider on the OpenAI embeddings API
type OpenAIProvider struct {
	client *openai.Client
	model  string
	dims   int
}

// NewOpenAIProvider creates an OpenAI-backed embedding provider
func NewOpenAIProvider(config *Config, apiKey string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	model := string(openaiDefaultModel)
	if config != nil && config.Model != "" {
		model = config.Model
	}
	dims, ok := openaiModelDimensions[model]
	if !ok {
		if config == nil || config.Dimensions <= 0 {
			return nil, fmt.Errorf("unknown model %q: dimensions must be configured", model)
		}
		dims = config.Dimensions
	}

	return &OpenAIProvider{client: &client, model: model, dims: dims}, nil
}

// Embed generates a vector for a single text
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates vectors for multiple texts in one request
func (p *OpenAIProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// API returns float64; the index stores float32
	vectors := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}

	return vectors, nil
}

// Dimensions returns the vector width of the configured model
func (p *OpenAIProvider) Dimensions() int {
	return p.dims
}

// Name identifies the provider
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// Close releases resources held by the provider
func (p *OpenAIProvider) Close() error {
	return nil
}
