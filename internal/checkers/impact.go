package checkers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Quantified-metric shapes: percentages, dollar amounts, scale figures
var (
	percentRe = regexp.MustCompile(`\d+%`)
	moneyRe   = regexp.MustCompile(`(?i)\$\d+[KMB]?`)
	scaleRe   = regexp.MustCompile(`(?i)\d+\+?\s+(?:users|customers|clients|employees|projects)`)
)

// experienceVerbs mark a narrative as real work history even without
// metrics
var experienceVerbs = []string{
	"developed", "created", "implemented", "managed", "led",
	"designed", "built", "worked", "responsible",
}

// Metric-count bands and scores
const (
	metricsExcellent = 5
	metricsGood      = 3

	impactExcellentScore = 10.0
	impactGoodScore      = 8.0
	impactSomeScore      = 6.0
	impactNarrativeScore = 5.0

	minNarrativeLen = 100
)

// QuantifiedImpact counts concrete result metrics in the experience
// narrative. Roles that quantify little still earn narrative credit.
type QuantifiedImpact struct {
	maxPoints float64
}

// NewQuantifiedImpact returns the checker on its standard 10-point scale.
func NewQuantifiedImpact() *QuantifiedImpact { return &QuantifiedImpact{maxPoints: 10} }

// Dimension implements Checker.
func (c *QuantifiedImpact) Dimension() string { return scoring.DimQuantifiedImpact }

// Evaluate implements Checker. When no experience section is detected the
// whole resume is scanned, since achievements often sit in a summary.
func (c *QuantifiedImpact) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints}

	text := extraction.SectionText(in.ResumeText, extraction.SectionExperience)
	if text == "" {
		text = in.ResumeText
	}
	if strings.TrimSpace(text) == "" {
		result.Findings = append(result.Findings, "no experience narrative to analyze")
		return result
	}

	metrics := len(percentRe.FindAllString(text, -1)) +
		len(moneyRe.FindAllString(text, -1)) +
		len(scaleRe.FindAllString(text, -1))

	lower := strings.ToLower(text)
	hasNarrative := len(text) > minNarrativeLen && containsAny(lower, experienceVerbs)

	switch {
	case metrics >= metricsExcellent:
		result.Score = impactExcellentScore
	case metrics >= metricsGood:
		result.Score = impactGoodScore
	case metrics >= 1:
		result.Score = impactSomeScore
	case hasNarrative:
		result.Score = impactNarrativeScore
	}

	switch {
	case metrics == 0:
		result.Findings = append(result.Findings, "add quantified achievements (%, $, counts)")
	case metrics < metricsGood:
		result.Findings = append(result.Findings,
			fmt.Sprintf("%d metric(s) found, add more for stronger impact", metrics))
	default:
		result.Findings = append(result.Findings,
			fmt.Sprintf("strong quantification: %d metrics found", metrics))
	}
	return result
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// Presence points per link kind
const (
	linkedinPoints  = 2.0
	githubPoints    = 3.0
	portfolioPoints = 2.0
)

var portfolioRe = regexp.MustCompile(`(?i)\b(?:portfolio|website|blog)\b`)

// OnlinePresence rewards professional links: LinkedIn, GitHub, or a
// personal site.
type OnlinePresence struct {
	maxPoints float64
}

// NewOnlinePresence returns the checker on its standard 5-point scale.
func NewOnlinePresence() *OnlinePresence { return &OnlinePresence{maxPoints: 5} }

// Dimension implements Checker.
func (c *OnlinePresence) Dimension() string { return scoring.DimOnlinePresence }

// Evaluate implements Checker.
func (c *OnlinePresence) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints}

	lower := strings.ToLower(in.ResumeText)
	if strings.Contains(lower, "linkedin.com") {
		result.Score += linkedinPoints
	} else {
		result.Findings = append(result.Findings, "add a LinkedIn profile URL")
	}

	switch {
	case strings.Contains(lower, "github.com"):
		result.Score += githubPoints
	case portfolioRe.MatchString(lower):
		result.Score += portfolioPoints
	default:
		result.Findings = append(result.Findings, "consider adding a GitHub or portfolio link")
	}
	return result
}
