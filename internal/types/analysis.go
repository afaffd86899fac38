// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// AnalysisInput carries everything one analysis run needs. External results
// cover dimensions this system does not compute itself, such as document
// layout scores produced by a rendering pipeline.
type AnalysisInput struct {
	ResumeText string          `json:"resume_text"`
	JobText    string          `json:"job_text"`
	JobURL     string          `json:"job_url,omitempty"`
	External   []CheckerResult `json:"external,omitempty"`
}

// AnalysisReport is the full result of scoring one resume against one job
// description
type AnalysisReport struct {
	ID            string            `json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	ResumeProfile SkillProfile      `json:"resume_profile"`
	JobProfile    SkillProfile      `json:"job_profile"`
	Breakdown     MatchBreakdown    `json:"breakdown"`
	SemanticFit   SemanticFitResult `json:"semantic_fit"`
	Penalty       MismatchPenalty   `json:"penalty"`
	Composite     CompositeScore    `json:"composite"`
	Results       []CheckerResult   `json:"results"`
	Narrative     string            `json:"narrative,omitempty"`
	Degraded      bool              `json:"degraded,omitempty"`
}

// MatchBreakdown lists which job-description terms the resume covered,
// split by category. The lists are capped for display; MatchRate is
// computed over all terms before capping.
type MatchBreakdown struct {
	TechnicalMatched []string `json:"technical_matched,omitempty"`
	TechnicalMissing []string `json:"technical_missing,omitempty"`
	SoftMatched      []string `json:"soft_matched,omitempty"`
	SoftMissing      []string `json:"soft_missing,omitempty"`
	MatchRate        float64  `json:"match_rate"`
}

// Experience is one dated entry recovered from resume text. Section names
// the resume section the entry was found under, when one was recognized.
// StartRaw and EndRaw keep the date tokens as written for format checks.
type Experience struct {
	Heading  string    `json:"heading"`
	Section  string    `json:"section,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end,omitzero"`
	Current  bool      `json:"current,omitempty"`
	Raw      string    `json:"raw"`
	StartRaw string    `json:"-"`
	EndRaw   string    `json:"-"`
}

// Months returns the entry duration in whole months, using now for entries
// still marked current
func (e Experience) Months(now time.Time) int {
	end := e.End
	if e.Current || end.IsZero() {
		end = now
	}
	if end.Before(e.Start) {
		return 0
	}
	years := end.Year() - e.Start.Year()
	months := int(end.Month()) - int(e.Start.Month())
	return years*12 + months
}

// ResumeEntities is the lightweight structural view of a resume used by the
// experience and structure checkers
type ResumeEntities struct {
	Name        string       `json:"name,omitempty"`
	Sections    []string     `json:"sections"`
	Experiences []Experience `json:"experiences"`
	HasEmail    bool         `json:"has_email"`
	HasPhone    bool         `json:"has_phone"`
	Links       []string     `json:"links,omitempty"`
	WordCount   int          `json:"word_count"`
	BulletCount int          `json:"bullet_count"`
	Bullets     []string     `json:"-"`
}

// WorkExperiences returns the entries found under an experience section.
// Entries with no recognized section count as work when the resume had no
// experience heading at all, so unlabeled layouts still get gap analysis.
func (r ResumeEntities) WorkExperiences() []Experience {
	var work, unlabeled []Experience
	for _, e := range r.Experiences {
		switch e.Section {
		case "experience":
			work = append(work, e)
		case "":
			unlabeled = append(unlabeled, e)
		}
	}
	if len(work) > 0 {
		return work
	}
	return unlabeled
}

// HasSection reports whether a canonical section name was detected
func (r ResumeEntities) HasSection(name string) bool {
	for _, s := range r.Sections {
		if s == name {
			return true
		}
	}
	return false
}
