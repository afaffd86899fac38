package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// fullMarks builds one result per default dimension at its maximum
func fullMarks() []types.CheckerResult {
	var out []types.CheckerResult
	for name, entry := range DefaultWeights() {
		out = append(out, types.CheckerResult{
			Dimension: name,
			Score:     entry.MaxPoints,
			MaxPoints: entry.MaxPoints,
		})
	}
	return out
}

func noPenalty() types.MismatchPenalty {
	return types.MismatchPenalty{Ratio: 1, Tier: types.TierNone, Multiplier: 1}
}

func TestAggregate_PerfectScores(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	got := agg.Aggregate(fullMarks(), noPenalty())

	assert.InDelta(t, 100.0, got.Total, 1e-9)
	assert.Equal(t, "A", got.Grade)
	assert.Empty(t, got.Missing)
	assert.Len(t, got.Dimensions, len(DefaultWeights()))
}

func TestAggregate_MissingDimensionsContributeZero(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	got := agg.Aggregate([]types.CheckerResult{
		{Dimension: DimKeywordAlignment, Score: 15, MaxPoints: 15},
		{Dimension: DimSemanticFit, Score: 10, MaxPoints: 20},
	}, noPenalty())

	// 15/15*15 + 10/20*20 = 25
	assert.InDelta(t, 25.0, got.Total, 1e-9)
	assert.Equal(t, "F", got.Grade)
	assert.Len(t, got.Missing, len(DefaultWeights())-2)
	assert.Contains(t, got.Missing, DimReadability)
	assert.NotContains(t, got.Missing, DimKeywordAlignment)
}

func TestAggregate_PenaltyHitsListedDimensionsOnly(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)
	penalty := types.MismatchPenalty{
		Ratio:      0.2,
		Tier:       types.TierSevere,
		Multiplier: 0.20,
		Dimensions: []string{DimKeywordAlignment},
	}

	got := agg.Aggregate([]types.CheckerResult{
		{Dimension: DimKeywordAlignment, Score: 12, MaxPoints: 15},
		{Dimension: DimSemanticFit, Score: 18, MaxPoints: 20},
	}, penalty)

	keyword, ok := got.Dimension(DimKeywordAlignment)
	require.True(t, ok)
	assert.True(t, keyword.Penalized)
	assert.InDelta(t, 2.4, keyword.Raw, 1e-9)
	assert.InDelta(t, 2.4, keyword.Contribution, 1e-9)

	semantic, ok := got.Dimension(DimSemanticFit)
	require.True(t, ok)
	assert.False(t, semantic.Penalized)
	assert.InDelta(t, 18.0, semantic.Contribution, 1e-9)
}

func TestAggregate_ClampsRawScores(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	got := agg.Aggregate([]types.CheckerResult{
		{Dimension: DimKeywordAlignment, Score: 40, MaxPoints: 15},
		{Dimension: DimReadability, Score: -3, MaxPoints: 10},
	}, noPenalty())

	keyword, _ := got.Dimension(DimKeywordAlignment)
	assert.InDelta(t, 15.0, keyword.Raw, 1e-9)
	readability, _ := got.Dimension(DimReadability)
	assert.InDelta(t, 0.0, readability.Raw, 1e-9)
}

func TestAggregate_UnknownDimensionDropped(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	got := agg.Aggregate([]types.CheckerResult{
		{Dimension: "astrology_alignment", Score: 10, MaxPoints: 10},
	}, noPenalty())

	_, ok := got.Dimension("astrology_alignment")
	assert.False(t, ok)
	assert.InDelta(t, 0.0, got.Total, 1e-9)
}

func TestAggregate_DuplicateKeepsFirst(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	got := agg.Aggregate([]types.CheckerResult{
		{Dimension: DimReadability, Score: 8, MaxPoints: 10},
		{Dimension: DimReadability, Score: 2, MaxPoints: 10},
	}, noPenalty())

	readability, ok := got.Dimension(DimReadability)
	require.True(t, ok)
	assert.InDelta(t, 8.0, readability.Raw, 1e-9)
}

func TestAggregate_DimensionsSortedByName(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	got := agg.Aggregate(fullMarks(), noPenalty())

	for i := 1; i < len(got.Dimensions); i++ {
		assert.Less(t, got.Dimensions[i-1].Dimension, got.Dimensions[i].Dimension)
	}
}

// marksWith returns full marks with one dimension's score replaced
func marksWith(dimension string, score float64) []types.CheckerResult {
	out := fullMarks()
	for i := range out {
		if out[i].Dimension == dimension {
			out[i].Score = score
		}
	}
	return out
}

func TestAggregate_CriticalSemanticFitCapsTotal(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	// Everything else is perfect, but semantic fit sits deep in the
	// mismatch band. 2 of 20 is below a fifth of the scale.
	got := agg.Aggregate(marksWith(DimSemanticFit, 2), noPenalty())

	assert.InDelta(t, 30.0, got.Total, 1e-9)
	assert.True(t, got.Capped)
	assert.Equal(t, "F", got.Grade)
}

func TestAggregate_SignificantSemanticFitCapsTotal(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	got := agg.Aggregate(marksWith(DimSemanticFit, 6), noPenalty())

	assert.InDelta(t, 50.0, got.Total, 1e-9)
	assert.True(t, got.Capped)
	assert.Equal(t, "F", got.Grade)
}

func TestAggregate_NoCapAtOrAboveFitFloor(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	// 7 of 20 is exactly 0.35 of the scale, the first uncapped fraction.
	got := agg.Aggregate(marksWith(DimSemanticFit, 7), noPenalty())

	assert.InDelta(t, 87.0, got.Total, 1e-9)
	assert.False(t, got.Capped)
	assert.Equal(t, "B", got.Grade)
}

func TestAggregate_CapOnlyLowersTotals(t *testing.T) {
	agg, err := NewAggregator(nil, zap.NewNop())
	require.NoError(t, err)

	// A total already under the ceiling is left alone.
	got := agg.Aggregate([]types.CheckerResult{
		{Dimension: DimSemanticFit, Score: 2, MaxPoints: 20},
	}, noPenalty())

	assert.InDelta(t, 2.0, got.Total, 1e-9)
	assert.False(t, got.Capped)
}

func TestNewAggregator_RejectsBadTables(t *testing.T) {
	_, err := NewAggregator(WeightTable{
		DimKeywordAlignment: {Weight: 50, MaxPoints: 15},
	}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum")

	_, err = NewAggregator(WeightTable{
		DimKeywordAlignment: {Weight: 100, MaxPoints: 0},
	}, zap.NewNop())
	require.Error(t, err)
}

func TestDefaultWeights_Valid(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
}

func TestGrade(t *testing.T) {
	assert.Equal(t, "A", Grade(95))
	assert.Equal(t, "A", Grade(90))
	assert.Equal(t, "B", Grade(89.99))
	assert.Equal(t, "B", Grade(80))
	assert.Equal(t, "C", Grade(70))
	assert.Equal(t, "D", Grade(60))
	assert.Equal(t, "F", Grade(59.99))
	assert.Equal(t, "F", Grade(0))
}
