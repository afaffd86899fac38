package checkers

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// actionVerbs are the verbs a strong bullet opens with
var actionVerbs = map[string]struct{}{
	"led": {}, "managed": {}, "developed": {}, "created": {}, "implemented": {},
	"designed": {}, "built": {}, "launched": {}, "increased": {}, "improved": {},
	"reduced": {}, "achieved": {}, "delivered": {}, "executed": {}, "established": {},
	"optimized": {}, "streamlined": {}, "coordinated": {}, "directed": {},
	"spearheaded": {}, "initiated": {}, "drove": {},
}

// buzzwords are filler phrases that add no information
var buzzwords = []string{
	"team player", "hardworking", "go-getter", "synergy", "leverage",
	"think outside the box", "results-driven", "detail-oriented",
	"self-starter", "motivated", "passionate", "dynamic",
}

// Action-verb share bands and scores
const (
	verbExcellentShare = 0.8
	verbGoodShare      = 0.5
	verbFairShare      = 0.3

	languageExcellentScore = 10.0
	languageGoodScore      = 8.0
	languageFairScore      = 7.0
	languageBaseScore      = 6.0
	languageNeutralScore   = 7.0

	buzzwordAllowance = 3
	buzzwordPenalty   = 1.0
)

// ProfessionalLanguage rewards bullets that open with action verbs and
// docks filler phrasing.
type ProfessionalLanguage struct {
	maxPoints float64
}

// NewProfessionalLanguage returns the checker on its standard 10-point
// scale.
func NewProfessionalLanguage() *ProfessionalLanguage {
	return &ProfessionalLanguage{maxPoints: 10}
}

// Dimension implements Checker.
func (c *ProfessionalLanguage) Dimension() string { return scoring.DimProfessionalLanguage }

// Evaluate implements Checker. A resume with no bullets scores neutral on
// the verb check.
func (c *ProfessionalLanguage) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints}

	score := languageNeutralScore
	if len(in.Entities.Bullets) > 0 {
		withVerb := 0
		for _, bullet := range in.Entities.Bullets {
			fields := strings.Fields(bullet)
			if len(fields) == 0 {
				continue
			}
			if _, ok := actionVerbs[strings.ToLower(fields[0])]; ok {
				withVerb++
			}
		}
		share := float64(withVerb) / float64(len(in.Entities.Bullets))
		switch {
		case share >= verbExcellentShare:
			score = languageExcellentScore
		case share >= verbGoodShare:
			score = languageGoodScore
		case share >= verbFairShare:
			score = languageFairScore
		default:
			score = languageBaseScore
			result.Findings = append(result.Findings,
				fmt.Sprintf("only %.0f%% of bullets open with an action verb", share*100))
		}
	}

	lower := strings.ToLower(in.ResumeText)
	var found []string
	for _, phrase := range buzzwords {
		if strings.Contains(lower, phrase) {
			found = append(found, phrase)
		}
	}
	if len(found) > buzzwordAllowance {
		score -= buzzwordPenalty
		result.Findings = append(result.Findings,
			"reduce buzzwords such as: "+strings.Join(found[:2], ", "))
	}

	result.Score = math.Max(0, score)
	return result
}
