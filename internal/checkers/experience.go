package checkers

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// dateFormatPatterns are the recognized date spellings, in matching order:
// "01/2020", "Jan 2020", "January 2020", "2020". The first pattern
// matching the first date governs the rest of the history.
var dateFormatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{2}/\d{4}$`),
	regexp.MustCompile(`^[A-Za-z]{3} \d{4}$`),
	regexp.MustCompile(`^[A-Za-z]+ \d{4}$`),
	regexp.MustCompile(`^\d{4}$`),
}

const dateInconsistencyPenalty = 3.0

// DateConsistency checks that every date in the work history is written
// in one format.
type DateConsistency struct {
	maxPoints float64
}

// NewDateConsistency returns the checker on its standard 5-point scale.
func NewDateConsistency() *DateConsistency { return &DateConsistency{maxPoints: 5} }

// Dimension implements Checker.
func (c *DateConsistency) Dimension() string { return scoring.DimDateConsistency }

// Evaluate implements Checker. Open-ended markers like "Present" are not
// dates and are skipped.
func (c *DateConsistency) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints, Score: c.maxPoints}

	var dates []string
	for _, exp := range in.Entities.WorkExperiences() {
		if exp.StartRaw != "" {
			dates = append(dates, exp.StartRaw)
		}
		if exp.EndRaw != "" && !exp.Current {
			dates = append(dates, exp.EndRaw)
		}
	}
	if len(dates) < 2 {
		return result
	}

	var governing *regexp.Regexp
	for _, pattern := range dateFormatPatterns {
		if pattern.MatchString(dates[0]) {
			governing = pattern
			break
		}
	}
	if governing == nil {
		return result
	}

	for _, date := range dates[1:] {
		if !governing.MatchString(date) {
			result.Score = math.Max(0, result.Score-dateInconsistencyPenalty)
			result.Findings = append(result.Findings,
				"inconsistent date formats, use one format throughout")
			break
		}
	}
	return result
}

// Employment-gap policy
const (
	gapThresholdMonths = 6
	gapPenalty         = 3.0
	maxGapPenalty      = 10.0
)

// EmploymentGaps penalizes gaps longer than six months between
// consecutive roles.
type EmploymentGaps struct {
	maxPoints float64
}

// NewEmploymentGaps returns the checker on its standard 10-point scale.
func NewEmploymentGaps() *EmploymentGaps { return &EmploymentGaps{maxPoints: 10} }

// Dimension implements Checker.
func (c *EmploymentGaps) Dimension() string { return scoring.DimEmploymentGaps }

// Evaluate implements Checker.
func (c *EmploymentGaps) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints, Score: c.maxPoints}

	work := in.Entities.WorkExperiences()
	if len(work) < 2 {
		return result
	}

	ordered := append([]types.Experience(nil), work...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start.Before(ordered[j].Start) })

	now := in.now()
	gaps := 0
	for i := 0; i < len(ordered)-1; i++ {
		end := ordered[i].End
		if ordered[i].Current || end.IsZero() {
			end = now
		}
		next := ordered[i+1].Start
		months := (next.Year()-end.Year())*12 + int(next.Month()) - int(end.Month())
		if months > gapThresholdMonths {
			gaps++
		}
	}

	if gaps > 0 {
		result.Score = math.Max(0, result.Score-math.Min(maxGapPenalty, float64(gaps)*gapPenalty))
		result.Findings = append(result.Findings,
			fmt.Sprintf("%d employment gap(s) longer than six months", gaps))
	}
	return result
}

// seniorityKeywords signal title progression when present in headings
var seniorityKeywords = []string{"junior", "senior", "lead", "principal", "manager", "director"}

// Career-progression adjustments
const (
	minCareerYears       = 2.0
	shortCareerPenalty   = 2.0
	promotionBonus       = 2.0
	noProgressionPenalty = 1.0
)

// CareerProgression looks for growth signals: enough total tenure, repeat
// companies with changing titles, seniority words in role headings.
type CareerProgression struct {
	maxPoints float64
}

// NewCareerProgression returns the checker on its standard 5-point scale.
func NewCareerProgression() *CareerProgression { return &CareerProgression{maxPoints: 5} }

// Dimension implements Checker.
func (c *CareerProgression) Dimension() string { return scoring.DimCareerProgression }

// Evaluate implements Checker. The promotion bonus can offset penalties
// but the score stays on the dimension scale.
func (c *CareerProgression) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints}

	work := in.Entities.WorkExperiences()
	if len(work) == 0 {
		result.Findings = append(result.Findings, "no work experience found")
		return result
	}

	score := c.maxPoints
	now := in.now()
	totalMonths := 0
	for _, exp := range work {
		totalMonths += exp.Months(now)
	}
	if years := float64(totalMonths) / 12; years < minCareerYears {
		score -= shortCareerPenalty
		result.Findings = append(result.Findings,
			fmt.Sprintf("limited experience (%.1f years)", years))
	}

	byCompany := make(map[string][]string)
	for _, exp := range work {
		title, company := splitHeading(exp.Heading)
		if company != "" {
			byCompany[company] = append(byCompany[company], title)
		}
	}
	promotions := 0
	for _, titles := range byCompany {
		if len(titles) > 1 {
			promotions++
		}
	}
	if promotions > 0 {
		score += promotionBonus
		result.Findings = append(result.Findings,
			fmt.Sprintf("%d promotion signal(s) detected", promotions))
	}

	if !anyHeadingContains(work, seniorityKeywords) && len(work) > 2 {
		score -= noProgressionPenalty
		result.Findings = append(result.Findings,
			"no seniority progression in role titles")
	}

	result.Score = math.Min(c.maxPoints, math.Max(0, score))
	return result
}

func anyHeadingContains(work []types.Experience, keywords []string) bool {
	for _, exp := range work {
		lower := strings.ToLower(exp.Heading)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// splitHeading separates "Title, Company", "Title at Company", and
// "Title - Company" headings
func splitHeading(heading string) (title, company string) {
	if i := strings.LastIndex(heading, ","); i >= 0 {
		return strings.TrimSpace(heading[:i]), strings.TrimSpace(heading[i+1:])
	}
	if i := strings.Index(heading, " at "); i >= 0 {
		return strings.TrimSpace(heading[:i]), strings.TrimSpace(heading[i+4:])
	}
	if i := strings.Index(heading, " - "); i >= 0 {
		return strings.TrimSpace(heading[:i]), strings.TrimSpace(heading[i+3:])
	}
	return strings.TrimSpace(heading), ""
}
