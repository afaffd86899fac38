package checkers

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Layout adjustments. Bonuses only offset penalties; the score is clamped
// to the dimension scale.
const (
	tablePenalty          = 2.0
	specialCharPenalty    = 0.1
	maxSpecialCharPenalty = 2.0
	sectionBonus          = 0.5
	contactBonus          = 1.0
)

var (
	specialCharRe = regexp.MustCompile(`[★●◆■▪]`)
	tableGlyphs   = []string{"│", "┌", "├"}

	standardSections = []string{
		extraction.SectionExperience,
		extraction.SectionEducation,
		extraction.SectionSkills,
		extraction.SectionSummary,
	}
)

// SectionStructure scores machine-parseable layout: standard headings
// present, contact lines detectable, no box-drawing or decorative glyphs
// that trip text extraction.
type SectionStructure struct {
	maxPoints float64
}

// NewSectionStructure returns the checker on its standard 10-point scale.
func NewSectionStructure() *SectionStructure { return &SectionStructure{maxPoints: 10} }

// Dimension implements Checker.
func (c *SectionStructure) Dimension() string { return scoring.DimSectionStructure }

// Evaluate implements Checker.
func (c *SectionStructure) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints}

	score := c.maxPoints
	for _, glyph := range tableGlyphs {
		if strings.Contains(in.ResumeText, glyph) {
			score -= tablePenalty
			result.Findings = append(result.Findings,
				"box-drawing characters found, replace table layout with plain text")
			break
		}
	}
	if n := len(specialCharRe.FindAllString(in.ResumeText, -1)); n > 0 {
		score -= math.Min(float64(n)*specialCharPenalty, maxSpecialCharPenalty)
		result.Findings = append(result.Findings,
			"decorative glyphs found, use plain bullet characters")
	}

	var missing []string
	for _, section := range standardSections {
		if in.Entities.HasSection(section) {
			score += sectionBonus
		} else {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		result.Findings = append(result.Findings,
			"missing standard sections: "+strings.Join(missing, ", "))
	}

	if in.Entities.HasEmail {
		score += contactBonus
	}
	if in.Entities.HasPhone {
		score += contactBonus
	}

	result.Score = math.Min(c.maxPoints, math.Max(0, score))
	return result
}

// Completeness point values per profile element
const (
	namePoints       = 2.0
	emailPoints      = 1.5
	phonePoints      = 1.5
	experiencePoints = 2.0
	educationPoints  = 1.5
	skillsPoints     = 1.5
)

// Completeness totals the profile elements a recruiter expects to find.
type Completeness struct {
	maxPoints float64
}

// NewCompleteness returns the checker on its standard 10-point scale.
func NewCompleteness() *Completeness { return &Completeness{maxPoints: 10} }

// Dimension implements Checker.
func (c *Completeness) Dimension() string { return scoring.DimCompleteness }

// Evaluate implements Checker.
func (c *Completeness) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints}

	var missing []string
	credit := func(present bool, points float64, label string) {
		if present {
			result.Score += points
		} else {
			missing = append(missing, label)
		}
	}

	credit(in.Entities.Name != "", namePoints, "name")
	credit(in.Entities.HasEmail, emailPoints, "email")
	credit(in.Entities.HasPhone, phonePoints, "phone")
	credit(len(in.Entities.WorkExperiences()) > 0, experiencePoints, "work history")
	credit(in.Entities.HasSection(extraction.SectionEducation), educationPoints, "education")
	credit(in.Entities.HasSection(extraction.SectionSkills) || !in.Resume.Empty(), skillsPoints, "skills")

	if len(missing) > 0 {
		result.Findings = append(result.Findings,
			"missing profile elements: "+strings.Join(missing, ", "))
	}
	return result
}
