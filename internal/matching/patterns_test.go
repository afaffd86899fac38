package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/knowledge"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// testTerm builds an ExtractedTerm the way the extractor would
func testTerm(text string) types.ExtractedTerm {
	normalized := knowledge.NormalizeTerm(text)
	return types.ExtractedTerm{
		Text:       text,
		Normalized: normalized,
		Tokens:     len(strings.Fields(normalized)),
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		text string
		want types.SkillCategory
		ok   bool
	}{
		{text: "python", want: types.CategoryTechnical, ok: true},
		{text: "power bi", want: types.CategoryTechnical, ok: true},
		{text: "data warehouse", want: types.CategoryTechnical, ok: true},
		{text: "postgresql", want: types.CategoryTechnical, ok: true},
		{text: "SSIS", want: types.CategoryTechnical, ok: true},
		{text: "es6", want: types.CategoryTechnical, ok: true},
		{text: "d3.js", want: types.CategoryTechnical, ok: true},
		{text: "communication", want: types.CategorySoft, ok: true},
		{text: "problem solving", want: types.CategorySoft, ok: true},
		{text: "stakeholder management", want: types.CategorySoft, ok: true},
		{text: "experience", ok: false}, // generic filler
		{text: "team", ok: false},       // generic filler
		{text: "r", ok: false},          // below minimum length
		{text: "synergy", ok: false},    // matches nothing
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Categorize(testTerm(tt.text))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCategorize_SoftBeatsTech(t *testing.T) {
	// "management" is a soft keyword even when paired with a technical
	// word, matching how postings phrase things like "database management"
	got, ok := Categorize(testTerm("database management"))

	assert.True(t, ok)
	assert.Equal(t, types.CategorySoft, got)
}

func TestCategorize_ShortPatternsNeedWholeTokens(t *testing.T) {
	// "ai" must not fire inside words like "maintain"
	_, ok := Categorize(testTerm("maintain"))
	assert.False(t, ok)

	got, ok := Categorize(testTerm("ai"))
	assert.True(t, ok)
	assert.Equal(t, types.CategoryTechnical, got)
}

func TestCategorize_AcronymRuleSingleTokenOnly(t *testing.T) {
	// an all-caps surface form only counts for single tokens
	got, ok := Categorize(testTerm("DAX"))
	assert.True(t, ok)
	assert.Equal(t, types.CategoryTechnical, got)

	_, ok = Categorize(testTerm("VERY IMPORTANT"))
	assert.False(t, ok)
}

func TestIsGeneric(t *testing.T) {
	assert.True(t, IsGeneric("experience"))
	assert.True(t, IsGeneric("monitoring"))
	assert.False(t, IsGeneric("kafka"))
	assert.False(t, IsGeneric("data warehouse"))
}
