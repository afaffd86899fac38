package checkers

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Display caps for breakdown lists
const (
	maxMatchedTechnical = 15
	maxMissingTechnical = 10
	maxMatchedSoft      = 10
	maxMissingSoft      = 5
)

// KeywordAlignment scores how many of the job description's terms the
// resume covers. The score is the raw match rate on the dimension scale;
// the role-mismatch penalty is applied by the aggregator, not here.
type KeywordAlignment struct {
	maxPoints float64
}

// NewKeywordAlignment returns the checker on its standard 15-point scale.
func NewKeywordAlignment() *KeywordAlignment {
	return &KeywordAlignment{maxPoints: 15}
}

// Dimension implements Checker.
func (c *KeywordAlignment) Dimension() string { return scoring.DimKeywordAlignment }

// Evaluate implements Checker. A blank job description or resume leaves
// nothing to align and scores neutral full marks.
func (c *KeywordAlignment) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints}

	if strings.TrimSpace(in.JobText) == "" || strings.TrimSpace(in.ResumeText) == "" {
		result.Score = c.maxPoints
		return result
	}

	breakdown := Breakdown(in.Job, in.Resume, in.ResumeText)
	result.Score = breakdown.MatchRate * c.maxPoints

	switch {
	case len(in.Job.Technical)+len(in.Job.Soft) == 0:
		// nothing demanded, nothing to miss
	case breakdown.MatchRate >= 0.8:
		result.Findings = append(result.Findings,
			fmt.Sprintf("strong keyword match: %d technical terms covered", len(breakdown.TechnicalMatched)))
	case len(breakdown.TechnicalMissing) > 0:
		result.Findings = append(result.Findings,
			fmt.Sprintf("missing %d technical terms from the job description", len(breakdown.TechnicalMissing)))
	}
	return result
}

// Breakdown reports which job-description terms appear in the resume,
// matched on canonical profile names first and raw resume text second.
// Lists are capped for display; MatchRate covers every term. An empty job
// profile yields a neutral rate of 1.
func Breakdown(jd, resume types.SkillProfile, resumeText string) types.MatchBreakdown {
	resumeTech := resume.TechnicalSet()
	resumeSoft := make(map[string]struct{}, len(resume.Soft))
	for _, s := range resume.Soft {
		resumeSoft[s.Name] = struct{}{}
	}
	resumeLower := strings.ToLower(resumeText)

	var b types.MatchBreakdown
	total, matched := 0, 0
	for _, term := range jd.Technical {
		total++
		if covered(term.Name, resumeTech, resumeLower) {
			matched++
			b.TechnicalMatched = appendCapped(b.TechnicalMatched, term.Name, maxMatchedTechnical)
		} else {
			b.TechnicalMissing = appendCapped(b.TechnicalMissing, term.Name, maxMissingTechnical)
		}
	}
	for _, term := range jd.Soft {
		total++
		if covered(term.Name, resumeSoft, resumeLower) {
			matched++
			b.SoftMatched = appendCapped(b.SoftMatched, term.Name, maxMatchedSoft)
		} else {
			b.SoftMissing = appendCapped(b.SoftMissing, term.Name, maxMissingSoft)
		}
	}

	if total == 0 {
		b.MatchRate = 1.0
		return b
	}
	b.MatchRate = float64(matched) / float64(total)
	return b
}

func covered(name string, set map[string]struct{}, resumeLower string) bool {
	if _, ok := set[name]; ok {
		return true
	}
	return strings.Contains(resumeLower, strings.ToLower(name))
}

func appendCapped(list []string, item string, limit int) []string {
	if len(list) >= limit {
		return list
	}
	return append(list, item)
}
