package embedding

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/blake2b"
)

const localDefaultDims = 768

// LocalProvider is a deterministic feature-hashing encoder. It projects token
// unigrams and bigrams into a fixed-width vector via blake2b, so cosine
// similarity approximates lexical overlap. It needs no network or API key,
// which makes it the offline and test-time stand-in for a real model.
type LocalProvider struct {
	dims int
}

// NewLocalProvider creates a local provider with the given vector width
func NewLocalProvider(dims int) *LocalProvider {
	if dims <= 0 {
		dims = localDefaultDims
	}
	return &LocalProvider{dims: dims}
}

// Embed generates a deterministic vector for the text
func (p *LocalProvider) Embed(_ context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	tokens := hashTokens(text)
	vec := make([]float32, p.dims)
	for i, tok := range tokens {
		p.accumulate(vec, tok, 1.0)
		if i+1 < len(tokens) {
			p.accumulate(vec, tok+" "+tokens[i+1], 0.5)
		}
	}

	return Normalize(vec), nil
}

// EmbedBatch generates deterministic vectors for multiple texts
func (p *LocalProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := p.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Dimensions returns the configured vector width
func (p *LocalProvider) Dimensions() int {
	return p.dims
}

// Name identifies the provider
func (p *LocalProvider) Name() string {
	return ProviderLocal
}

// Close is a no-op for the local provider
func (p *LocalProvider) Close() error {
	return nil
}

// accumulate adds one hashed feature to the vector. The digest's first eight
// bytes pick the slot, the ninth picks the sign.
func (p *LocalProvider) accumulate(vec []float32, feature string, weight float32) {
	sum := blake2b.Sum256([]byte(feature))
	idx := binary.BigEndian.Uint64(sum[:8]) % uint64(p.dims)
	if sum[8]&1 == 1 {
		weight = -weight
	}
	vec[idx] += weight
}

// hashTokens lowercases and splits text, keeping +, #, and interior dots so
// tokens like c++, c#, and node.js survive intact
func hashTokens(text string) []string {
	isSep := func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '.'
	}

	fields := strings.FieldsFunc(strings.ToLower(text), isSep)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		// sentence periods split off; a leading dot as in .net stays
		f = strings.TrimRight(f, ".")
		if f == "" {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
