package scoring

import (
	"math"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultSemanticMaxPoints is the point scale of the semantic_fit dimension
const DefaultSemanticMaxPoints = 20.0

// BandThresholds externalizes the overlap-ratio boundaries of the band
// table. A ratio at or above Strong is a strong overlap, at or above
// Aligned an aligned one, at or above Weak a weak one, and anything
// below Weak is a mismatch.
type BandThresholds struct {
	Strong  float64 `json:"strong" validate:"gt=0,lte=1"`
	Aligned float64 `json:"aligned" validate:"gt=0,ltefield=Strong"`
	Weak    float64 `json:"weak" validate:"gt=0,ltefield=Aligned"`
}

// DefaultBandThresholds returns the standard band boundaries.
func DefaultBandThresholds() BandThresholds {
	return BandThresholds{Strong: 0.60, Aligned: 0.35, Weak: 0.25}
}

// SemanticFitScorer turns document-level similarity and technical-term
// overlap into the semantic_fit score. The overlap ratio gates the
// similarity: strong keyword presence boosts it, weak presence caps the
// score no matter how similar the prose reads, because high embedding
// similarity occurs between adjacent-but-wrong-role documents.
type SemanticFitScorer struct {
	maxPoints float64
	bands     BandThresholds
}

// NewSemanticFitScorer builds a scorer on the given point scale. A
// non-positive scale selects the default, and zero-value thresholds
// select the standard band table.
func NewSemanticFitScorer(maxPoints float64, bands BandThresholds) *SemanticFitScorer {
	if maxPoints <= 0 {
		maxPoints = DefaultSemanticMaxPoints
	}
	if bands == (BandThresholds{}) {
		bands = DefaultBandThresholds()
	}
	return &SemanticFitScorer{maxPoints: maxPoints, bands: bands}
}

// OverlapRatio computes the share of the job description's technical terms
// present in the resume profile. An empty JD technical set yields 1.0:
// with no required stack there is nothing to miss, and no penalty should
// follow.
func OverlapRatio(jd, resume types.SkillProfile) float64 {
	if len(jd.Technical) == 0 {
		return 1.0
	}
	resumeSet := resume.TechnicalSet()
	matched := 0
	for _, m := range jd.Technical {
		if _, ok := resumeSet[m.Name]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(jd.Technical))
}

// Score applies the band table to a raw similarity and an overlap ratio.
// Similarity outside [0,1] is clamped first. In degraded mode callers pass
// the overlap ratio itself as the similarity.
func (s *SemanticFitScorer) Score(similarity, ratio float64, degraded bool) types.SemanticFitResult {
	similarity = clamp(similarity, 0, 1)
	result := types.SemanticFitResult{
		Similarity:   similarity,
		OverlapRatio: ratio,
		MaxPoints:    s.maxPoints,
		Degraded:     degraded,
	}

	switch {
	case ratio >= s.bands.Strong:
		result.Band = types.BandStrong
		boost := math.Min(1.2, 0.8+ratio*0.4)
		result.Score = math.Min(similarity*s.maxPoints*boost, s.maxPoints)
	case ratio >= s.bands.Aligned:
		result.Band = types.BandAligned
		result.Score = similarity * s.maxPoints * math.Max(0.7, ratio+0.3)
	case ratio >= s.bands.Weak:
		result.Band = types.BandWeak
		result.Score = similarity * s.maxPoints * 0.5
	default:
		// similarity is ignored entirely below the mismatch threshold,
		// capping the dimension at maxPoints/8
		result.Band = types.BandMismatch
		result.Score = ratio * s.maxPoints / 2
	}

	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
