package checkers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/extraction"
)

func TestSectionStructure_CleanLayout(t *testing.T) {
	result := NewSectionStructure().Evaluate(testInput(t))

	assert.InDelta(t, 10.0, result.Score, 1e-9)
	assert.Empty(t, result.Findings)
}

func TestSectionStructure_DecorativeGlyphs(t *testing.T) {
	in := Input{ResumeText: strings.Repeat("★", 25) + "\nJava Expert"}
	in.Entities = extraction.ParseEntities(in.ResumeText)

	result := NewSectionStructure().Evaluate(in)

	assert.InDelta(t, 8.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "decorative glyphs")
}

func TestSectionStructure_TableLayout(t *testing.T) {
	in := Input{ResumeText: "│ Skills │ Years │\n┌───────┬───────┐"}
	in.Entities = extraction.ParseEntities(in.ResumeText)

	result := NewSectionStructure().Evaluate(in)

	assert.InDelta(t, 8.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "box-drawing characters")
}

func TestSectionStructure_BonusesOffsetPenalties(t *testing.T) {
	// glyph penalty is absorbed by section and contact bonuses
	in := Input{ResumeText: testResume + "\n" + strings.Repeat("★", 25)}
	in.Entities = extraction.ParseEntities(in.ResumeText)

	result := NewSectionStructure().Evaluate(in)

	assert.InDelta(t, 10.0, result.Score, 1e-9)
	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0], "decorative glyphs")
}

func TestSectionStructure_MissingSectionsReported(t *testing.T) {
	in := Input{ResumeText: "Just prose with no headings."}
	in.Entities = extraction.ParseEntities(in.ResumeText)

	result := NewSectionStructure().Evaluate(in)

	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "missing standard sections")
	assert.Contains(t, result.Findings[0], "experience")
}

func TestCompleteness_FullProfile(t *testing.T) {
	result := NewCompleteness().Evaluate(testInput(t))

	assert.InDelta(t, 10.0, result.Score, 1e-9)
	assert.Empty(t, result.Findings)
}

func TestCompleteness_MissingElements(t *testing.T) {
	resume := `John Doe
john@example.com

Experience

Engineer, Acme
Jan 2020 - Present

Skills
Python
`
	in := Input{ResumeText: resume, Entities: extraction.ParseEntities(resume)}

	result := NewCompleteness().Evaluate(in)

	assert.InDelta(t, 7.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Equal(t, "missing profile elements: phone, education", result.Findings[0])
}

func TestCompleteness_EmptyInput(t *testing.T) {
	result := NewCompleteness().Evaluate(Input{})

	assert.InDelta(t, 0.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "name")
	assert.Contains(t, result.Findings[0], "skills")
}
