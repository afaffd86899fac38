// Package scoring implements the adaptive scoring policy: the semantic-fit
// band table, the role-mismatch penalty tiers, and the weighted aggregation
// of per-dimension checker results into one composite score.
package scoring

import (
	"fmt"
	"math"
	"sort"
)

// Dimension names shared by checkers, the weight table, and reports
const (
	DimKeywordAlignment     = "keyword_alignment"
	DimSemanticFit          = "semantic_fit"
	DimQuantifiedImpact     = "quantified_impact"
	DimFileLayout           = "file_layout"
	DimFontConsistency      = "font_consistency"
	DimReadability          = "readability"
	DimProfessionalLanguage = "professional_language"
	DimDateConsistency      = "date_consistency"
	DimEmploymentGaps       = "employment_gaps"
	DimCareerProgression    = "career_progression"
	DimSkillContext         = "skill_context"
	DimOnlinePresence       = "online_presence"
	DimSectionStructure     = "section_structure"
	DimCompleteness         = "completeness"
)

// DimensionWeight sets how much a dimension contributes to the composite
// and the raw point scale its checker reports on.
type DimensionWeight struct {
	Weight    float64 `json:"weight" validate:"gt=0"`
	MaxPoints float64 `json:"max_points" validate:"gt=0"`
}

// WeightTable maps dimension names to their weights. Weights must sum to
// 100 so that contributions are already composite points.
type WeightTable map[string]DimensionWeight

// DefaultWeights returns the standard weight table. The file_layout and
// font_consistency dimensions are scored by external document-rendering
// tooling and enter through AnalysisInput; everything else ships in-repo.
func DefaultWeights() WeightTable {
	return WeightTable{
		DimKeywordAlignment:     {Weight: 15, MaxPoints: 15},
		DimSemanticFit:          {Weight: 20, MaxPoints: 20},
		DimQuantifiedImpact:     {Weight: 10, MaxPoints: 10},
		DimFileLayout:           {Weight: 8, MaxPoints: 20},
		DimFontConsistency:      {Weight: 4, MaxPoints: 10},
		DimReadability:          {Weight: 5, MaxPoints: 10},
		DimProfessionalLanguage: {Weight: 5, MaxPoints: 10},
		DimDateConsistency:      {Weight: 4, MaxPoints: 5},
		DimEmploymentGaps:       {Weight: 5, MaxPoints: 10},
		DimCareerProgression:    {Weight: 4, MaxPoints: 5},
		DimSkillContext:         {Weight: 5, MaxPoints: 5},
		DimOnlinePresence:       {Weight: 4, MaxPoints: 5},
		DimSectionStructure:     {Weight: 6, MaxPoints: 10},
		DimCompleteness:         {Weight: 5, MaxPoints: 10},
	}
}

// Validate checks that every entry is positive and the weights sum to 100
func (w WeightTable) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("weight table is empty")
	}
	sum := 0.0
	for name, entry := range w {
		if entry.Weight <= 0 {
			return fmt.Errorf("dimension %q has non-positive weight %v", name, entry.Weight)
		}
		if entry.MaxPoints <= 0 {
			return fmt.Errorf("dimension %q has non-positive max points %v", name, entry.MaxPoints)
		}
		sum += entry.Weight
	}
	if math.Abs(sum-100) > 1e-6 {
		return fmt.Errorf("dimension weights sum to %v, want 100", sum)
	}
	return nil
}

// names returns the dimension names in sorted order for deterministic output
func (w WeightTable) names() []string {
	out := make([]string, 0, len(w))
	for name := range w {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Grade maps a composite total to its letter grade
func Grade(total float64) string {
	switch {
	case total >= 90:
		return "A"
	case total >= 80:
		return "B"
	case total >= 70:
		return "C"
	case total >= 60:
		return "D"
	default:
		return "F"
	}
}
