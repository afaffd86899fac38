package checkers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func TestSemanticFit_ReportsUpstreamResult(t *testing.T) {
	in := testInput(t)

	result := NewSemanticFit().Evaluate(in)

	assert.InDelta(t, 19.7, result.Score, 1e-9)
	assert.InDelta(t, 20.0, result.MaxPoints, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "strong semantic fit")
	assert.Contains(t, result.Findings[0], "100%")
}

func TestSemanticFit_MismatchAndDegraded(t *testing.T) {
	in := testInput(t)
	in.Fit = types.SemanticFitResult{
		Similarity:   0.2,
		OverlapRatio: 0.2,
		Band:         types.BandMismatch,
		Score:        2.0,
		MaxPoints:    20,
		Degraded:     true,
	}

	result := NewSemanticFit().Evaluate(in)

	assert.InDelta(t, 2.0, result.Score, 1e-9)
	require.Len(t, result.Findings, 2)
	assert.Contains(t, result.Findings[0], "role mismatch")
	assert.Contains(t, result.Findings[1], "without embeddings")
}

func TestSemanticFit_ZeroValueFitUsesDefaultScale(t *testing.T) {
	in := testInput(t)
	in.Fit = types.SemanticFitResult{}

	result := NewSemanticFit().Evaluate(in)

	assert.InDelta(t, 0.0, result.Score, 1e-9)
	assert.InDelta(t, 20.0, result.MaxPoints, 1e-9)
}
