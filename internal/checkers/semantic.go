package checkers

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// SemanticFit reports the upstream semantic-fit computation as a checker
// result so the dimension aggregates like any other. The computation
// itself happens before the checker pass because it needs the embedding
// provider.
type SemanticFit struct{}

// NewSemanticFit returns the adapter checker.
func NewSemanticFit() *SemanticFit { return &SemanticFit{} }

// Dimension implements Checker.
func (c *SemanticFit) Dimension() string { return scoring.DimSemanticFit }

// Evaluate implements Checker.
func (c *SemanticFit) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{
		Dimension: c.Dimension(),
		Score:     in.Fit.Score,
		MaxPoints: in.Fit.MaxPoints,
	}
	if result.MaxPoints <= 0 {
		result.MaxPoints = scoring.DefaultSemanticMaxPoints
	}

	switch in.Fit.Band {
	case types.BandStrong:
		result.Findings = append(result.Findings,
			fmt.Sprintf("strong semantic fit: %.0f%% of the required stack present", in.Fit.OverlapRatio*100))
	case types.BandWeak:
		result.Findings = append(result.Findings,
			"weak stack overlap limits the semantic fit score")
	case types.BandMismatch:
		result.Findings = append(result.Findings,
			fmt.Sprintf("role mismatch: only %.0f%% of the required stack present", in.Fit.OverlapRatio*100))
	}
	if in.Fit.Degraded {
		result.Findings = append(result.Findings,
			"semantic similarity estimated without embeddings")
	}
	return result
}
