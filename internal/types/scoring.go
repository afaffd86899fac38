// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// FitBand names the keyword-overlap band applied to a semantic-fit score
type FitBand string

const (
	// BandStrong boosts the similarity score for high keyword overlap
	BandStrong FitBand = "strong"
	// BandAligned leaves the similarity score close to its raw value
	BandAligned FitBand = "aligned"
	// BandWeak halves the similarity score for marginal overlap
	BandWeak FitBand = "weak"
	// BandMismatch caps the score near zero regardless of similarity
	BandMismatch FitBand = "mismatch"
)

// SemanticFitResult is the outcome of the semantic-fit computation
type SemanticFitResult struct {
	Similarity   float64 `json:"similarity"`
	OverlapRatio float64 `json:"overlap_ratio"`
	Band         FitBand `json:"band"`
	Score        float64 `json:"score"`
	MaxPoints    float64 `json:"max_points"`
	Degraded     bool    `json:"degraded,omitempty"`
}

// PenaltyTier names the role-mismatch severity applied to checker scores
type PenaltyTier string

const (
	// TierSevere is applied when almost none of the required stack matches
	TierSevere PenaltyTier = "severe"
	// TierMajor is applied when under half of the required stack matches
	TierMajor PenaltyTier = "major"
	// TierModerate is applied for partial stack coverage
	TierModerate PenaltyTier = "moderate"
	// TierNone means no role-mismatch penalty applies
	TierNone PenaltyTier = "none"
)

// MismatchPenalty describes the multiplicative penalty derived from the
// technical-match ratio and the dimensions it was applied to
type MismatchPenalty struct {
	Ratio      float64     `json:"ratio"`
	Tier       PenaltyTier `json:"tier"`
	Multiplier float64     `json:"multiplier"`
	Dimensions []string    `json:"dimensions,omitempty"`
}

// CheckerResult is one scoring dimension's raw outcome
type CheckerResult struct {
	Dimension string   `json:"dimension"`
	Score     float64  `json:"score"`
	MaxPoints float64  `json:"max_points"`
	Findings  []string `json:"findings,omitempty"`
}

// DimensionScore is one dimension's weighted contribution to the composite
type DimensionScore struct {
	Dimension    string  `json:"dimension"`
	Raw          float64 `json:"raw"`
	MaxPoints    float64 `json:"max_points"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Penalized    bool    `json:"penalized,omitempty"`
}

// CompositeScore is the aggregated 0-100 result with its letter grade.
// Capped marks a total that was lowered to a ceiling because the
// semantic-fit dimension signalled a role mismatch.
type CompositeScore struct {
	Dimensions []DimensionScore `json:"dimensions"`
	Missing    []string         `json:"missing,omitempty"`
	Total      float64          `json:"total"`
	Grade      string           `json:"grade"`
	Capped     bool             `json:"capped,omitempty"`
	Degraded   bool             `json:"degraded,omitempty"`
}

// Dimension returns the entry for the named dimension, if present
func (c CompositeScore) Dimension(name string) (DimensionScore, bool) {
	for _, d := range c.Dimensions {
		if d.Dimension == name {
			return d, true
		}
	}
	return DimensionScore{}, false
}
