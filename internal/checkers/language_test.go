package checkers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/extraction"
)

func languageInput(resume string) Input {
	return Input{
		ResumeText: resume,
		Entities:   extraction.ParseEntities(resume),
	}
}

func TestProfessionalLanguage_AllBulletsOpenWithVerbs(t *testing.T) {
	in := languageInput(`Experience
- Led the migration program
- Built the reporting stack
- Improved query latency
- Managed two analysts
`)

	result := NewProfessionalLanguage().Evaluate(in)

	assert.InDelta(t, languageExcellentScore, result.Score, 1e-9)
	assert.Empty(t, result.Findings)
}

func TestProfessionalLanguage_HalfVerbShare(t *testing.T) {
	in := languageInput(`Experience
- Led the migration program
- Built the reporting stack
- Responsible for query latency
- Tasked with analyst onboarding
`)

	result := NewProfessionalLanguage().Evaluate(in)

	assert.InDelta(t, languageGoodScore, result.Score, 1e-9)
}

func TestProfessionalLanguage_WeakVerbShare(t *testing.T) {
	in := languageInput(`Experience
- Led the migration program
- Responsible for query latency
- Tasked with analyst onboarding
- Worked on various projects
- Helped with reporting
`)

	result := NewProfessionalLanguage().Evaluate(in)

	// 1 of 5 bullets opens with an action verb
	assert.InDelta(t, languageBaseScore, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "20% of bullets")
}

func TestProfessionalLanguage_NoBulletsIsNeutral(t *testing.T) {
	in := languageInput("A short paragraph resume with no bullet lines at all.")

	result := NewProfessionalLanguage().Evaluate(in)

	assert.InDelta(t, languageNeutralScore, result.Score, 1e-9)
}

func TestProfessionalLanguage_BuzzwordPenalty(t *testing.T) {
	in := languageInput(`Summary
A motivated, passionate, dynamic team player and self-starter.
`)

	result := NewProfessionalLanguage().Evaluate(in)

	// 5 buzzwords exceed the allowance; no bullets, so 7 - 1
	assert.InDelta(t, languageNeutralScore-buzzwordPenalty, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "reduce buzzwords")
}

func TestProfessionalLanguage_AllowedBuzzwordCount(t *testing.T) {
	in := languageInput("A motivated and passionate engineer with dynamic range.")

	result := NewProfessionalLanguage().Evaluate(in)

	// 3 buzzwords sit exactly at the allowance
	assert.InDelta(t, languageNeutralScore, result.Score, 1e-9)
	assert.Empty(t, result.Findings)
}
