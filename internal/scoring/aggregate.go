package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Composite ceilings applied when semantic fit lands in or near the
// mismatch band. Without them a wrong-role resume with otherwise clean
// formatting and writing could still grade out near passing.
const (
	criticalFitFraction    = 0.20
	criticalFitCeiling     = 30.0
	significantFitFraction = 0.35
	significantFitCeiling  = 50.0
)

// Aggregator merges per-dimension checker results into one composite score
// using a validated weight table.
type Aggregator struct {
	weights WeightTable
	order   []string
	logger  *zap.Logger
}

// NewAggregator builds an aggregator over a weight table. The table is
// validated once here so aggregation itself cannot fail.
func NewAggregator(weights WeightTable, logger *zap.Logger) (*Aggregator, error) {
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weight table: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		weights: weights,
		order:   weights.names(),
		logger:  logger,
	}, nil
}

// Aggregate computes the composite score. Each raw score is clamped to
// [0, max] on the weight table's scale, multiplied by the mismatch penalty
// when its dimension is on the penalty list, then normalized and weighted.
// Dimensions in the table with no result contribute zero and are reported
// in Missing; results for unknown dimensions are dropped with a warning.
// Output order follows sorted dimension names. A semantic-fit score below
// a fifth of its scale caps the total at 30, below 0.35 of its scale at
// 50, whatever the other dimensions earned.
func (a *Aggregator) Aggregate(results []types.CheckerResult, penalty types.MismatchPenalty) types.CompositeScore {
	penalized := make(map[string]struct{})
	if penalty.Multiplier > 0 && penalty.Multiplier < 1 {
		for _, name := range penalty.Dimensions {
			penalized[name] = struct{}{}
		}
	}

	byDimension := make(map[string]types.CheckerResult, len(results))
	for _, res := range results {
		if _, known := a.weights[res.Dimension]; !known {
			a.logger.Warn("dropping checker result with no weight entry",
				zap.String("dimension", res.Dimension))
			continue
		}
		if _, dup := byDimension[res.Dimension]; dup {
			a.logger.Warn("duplicate checker result, keeping the first",
				zap.String("dimension", res.Dimension))
			continue
		}
		byDimension[res.Dimension] = res
	}

	composite := types.CompositeScore{
		Dimensions: make([]types.DimensionScore, 0, len(a.order)),
	}
	total := 0.0
	for _, name := range a.order {
		entry := a.weights[name]
		dim := types.DimensionScore{
			Dimension: name,
			MaxPoints: entry.MaxPoints,
			Weight:    entry.Weight,
		}

		res, present := byDimension[name]
		if !present {
			composite.Missing = append(composite.Missing, name)
			composite.Dimensions = append(composite.Dimensions, dim)
			continue
		}

		raw := clamp(res.Score, 0, entry.MaxPoints)
		if _, hit := penalized[name]; hit {
			raw *= penalty.Multiplier
			dim.Penalized = true
		}
		dim.Raw = raw
		dim.Contribution = raw / entry.MaxPoints * entry.Weight
		total += dim.Contribution
		composite.Dimensions = append(composite.Dimensions, dim)
	}

	composite.Total = clamp(total, 0, 100)
	if ceiling, capped := a.fitCeiling(byDimension); capped && composite.Total > ceiling {
		a.logger.Info("capping composite score on low semantic fit",
			zap.Float64("total", composite.Total),
			zap.Float64("ceiling", ceiling))
		composite.Total = ceiling
		composite.Capped = true
	}
	composite.Grade = Grade(composite.Total)
	return composite
}

// fitCeiling returns the composite ceiling implied by the semantic-fit
// result, when one was reported.
func (a *Aggregator) fitCeiling(byDimension map[string]types.CheckerResult) (float64, bool) {
	res, ok := byDimension[DimSemanticFit]
	if !ok {
		return 0, false
	}
	entry := a.weights[DimSemanticFit]
	fraction := clamp(res.Score, 0, entry.MaxPoints) / entry.MaxPoints
	switch {
	case fraction < criticalFitFraction:
		return criticalFitCeiling, true
	case fraction < significantFitFraction:
		return significantFitCeiling, true
	default:
		return 0, false
	}
}

// Weights exposes the table the aggregator was built with, primarily so
// checkers can read their own point scales.
func (a *Aggregator) Weights() WeightTable {
	out := make(WeightTable, len(a.weights))
	for name, entry := range a.weights {
		out[name] = entry
	}
	return out
}
