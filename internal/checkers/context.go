package checkers

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Skill-context rate bands and their scores
const (
	contextExcellentRate = 0.7
	contextGoodRate      = 0.5
	contextFairRate      = 0.3

	contextExcellentScore = 5.0
	contextGoodScore      = 4.0
	contextFairScore      = 3.5
	contextBaseScore      = 2.5
)

// SkillContext checks whether the skills a resume lists are demonstrated
// in its experience narrative rather than only enumerated under a skills
// heading. Listing alone still earns base credit.
type SkillContext struct {
	maxPoints float64
}

// NewSkillContext returns the checker on its standard 5-point scale.
func NewSkillContext() *SkillContext { return &SkillContext{maxPoints: 5} }

// Dimension implements Checker.
func (c *SkillContext) Dimension() string { return scoring.DimSkillContext }

// Evaluate implements Checker.
func (c *SkillContext) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints}

	names := profileNames(in.Resume)
	if len(names) == 0 {
		result.Findings = append(result.Findings, "no skills listed")
		return result
	}

	experience := strings.ToLower(extraction.SectionText(in.ResumeText, extraction.SectionExperience))
	shown := 0
	for _, name := range names {
		if demonstrated(strings.ToLower(name), experience) {
			shown++
		}
	}

	rate := float64(shown) / float64(len(names))
	switch {
	case rate >= contextExcellentRate:
		result.Score = contextExcellentScore
	case rate >= contextGoodRate:
		result.Score = contextGoodScore
	case rate >= contextFairRate:
		result.Score = contextFairScore
	default:
		result.Score = contextBaseScore
	}

	switch {
	case rate < contextFairRate:
		result.Findings = append(result.Findings,
			fmt.Sprintf("only %d of %d skills demonstrated in experience", shown, len(names)))
	case rate < 0.6:
		result.Findings = append(result.Findings,
			fmt.Sprintf("fair skill context: %d of %d skills shown in experience", shown, len(names)))
	default:
		result.Findings = append(result.Findings,
			fmt.Sprintf("strong skill context: %d of %d skills demonstrated", shown, len(names)))
	}
	return result
}

// demonstrated reports whether a skill name, or any word of it, occurs in
// the experience narrative
func demonstrated(nameLower, experienceLower string) bool {
	if experienceLower == "" {
		return false
	}
	if strings.Contains(experienceLower, nameLower) {
		return true
	}
	for _, word := range strings.Fields(nameLower) {
		if strings.Contains(experienceLower, word) {
			return true
		}
	}
	return false
}

func profileNames(p types.SkillProfile) []string {
	names := make([]string, 0, len(p.Technical)+len(p.Soft))
	for _, m := range p.Technical {
		names = append(names, m.Name)
	}
	for _, m := range p.Soft {
		names = append(names, m.Name)
	}
	return names
}
