// Package checkers implements the per-dimension resume checks that feed the
// composite score. Each checker scores one dimension on its own point scale
// and reports findings the narrative layer can surface.
package checkers

import (
	"sort"
	"time"

	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Input carries everything one evaluation pass may need. Fit is computed
// upstream because it needs the embedding provider; Now anchors duration
// math and defaults to the wall clock.
type Input struct {
	ResumeText string
	JobText    string
	Entities   types.ResumeEntities
	Resume     types.SkillProfile
	Job        types.SkillProfile
	Fit        types.SemanticFitResult
	Now        time.Time
}

func (in Input) now() time.Time {
	if in.Now.IsZero() {
		return time.Now()
	}
	return in.Now
}

// Checker scores a single dimension of a resume against a job description.
type Checker interface {
	Dimension() string
	Evaluate(in Input) types.CheckerResult
}

// Registry maps each in-repo dimension to its checker constructor. The
// file_layout and font_consistency dimensions are absent on purpose: they
// come from external document tooling through AnalysisInput.
var Registry = map[string]func() Checker{
	scoring.DimKeywordAlignment:     func() Checker { return NewKeywordAlignment() },
	scoring.DimSemanticFit:          func() Checker { return NewSemanticFit() },
	scoring.DimSkillContext:         func() Checker { return NewSkillContext() },
	scoring.DimQuantifiedImpact:     func() Checker { return NewQuantifiedImpact() },
	scoring.DimOnlinePresence:       func() Checker { return NewOnlinePresence() },
	scoring.DimReadability:          func() Checker { return NewReadability() },
	scoring.DimProfessionalLanguage: func() Checker { return NewProfessionalLanguage() },
	scoring.DimDateConsistency:      func() Checker { return NewDateConsistency() },
	scoring.DimEmploymentGaps:       func() Checker { return NewEmploymentGaps() },
	scoring.DimCareerProgression:    func() Checker { return NewCareerProgression() },
	scoring.DimSectionStructure:     func() Checker { return NewSectionStructure() },
	scoring.DimCompleteness:         func() Checker { return NewCompleteness() },
}

// All returns one instance of every registered checker in dimension order.
func All() []Checker {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Checker, 0, len(names))
	for _, name := range names {
		out = append(out, Registry[name]())
	}
	return out
}
