package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider_Deterministic(t *testing.T) {
	p := NewLocalProvider(128)
	ctx := context.Background()

	a, err := p.Embed(ctx, "Python developer with Django and PostgreSQL experience")
	require.NoError(t, err)
	b, err := p.Embed(ctx, "Python developer with Django and PostgreSQL experience")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 128)
	assert.InDelta(t, 1.0, Norm(a), 1e-4)
}

func TestLocalProvider_SimilarTextsScoreHigher(t *testing.T) {
	p := NewLocalProvider(768)
	ctx := context.Background()

	resume, err := p.Embed(ctx, "Senior Python engineer building Django services on PostgreSQL and AWS")
	require.NoError(t, err)
	closeJob, err := p.Embed(ctx, "Python engineer role working with Django and PostgreSQL on AWS")
	require.NoError(t, err)
	farJob, err := p.Embed(ctx, "Pastry chef preparing croissants and managing bakery inventory")
	require.NoError(t, err)

	assert.Greater(t, Cosine(resume, closeJob), Cosine(resume, farJob))
}

func TestLocalProvider_EmptyText(t *testing.T) {
	p := NewLocalProvider(0)
	_, err := p.Embed(context.Background(), "   ")
	assert.Error(t, err)
}

func TestLocalProvider_Defaults(t *testing.T) {
	p := NewLocalProvider(0)
	assert.Equal(t, 768, p.Dimensions())
	assert.Equal(t, ProviderLocal, p.Name())
	assert.NoError(t, p.Close())
}

func TestLocalProvider_EmbedBatch(t *testing.T) {
	p := NewLocalProvider(64)
	ctx := context.Background()

	vectors, err := p.EmbedBatch(ctx, []string{"go", "rust", "terraform"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	for _, v := range vectors {
		assert.Len(t, v, 64)
	}

	_, err = p.EmbedBatch(ctx, nil)
	assert.Error(t, err)

	_, err = p.EmbedBatch(ctx, []string{"go", ""})
	assert.Error(t, err)
}

func TestHashTokens_PreservesLanguagePunctuation(t *testing.T) {
	tokens := hashTokens("C++ and C# plus .NET on Node.js.")
	assert.Equal(t, []string{"c++", "and", "c#", "plus", ".net", "on", "node.js"}, tokens)
}
