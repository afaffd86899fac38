package checkers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyllableCount(t *testing.T) {
	cases := map[string]int{
		"cat":    1,
		"data":   2,
		"many":   2,
		"line":   1, // silent e dropped
		"table":  2, // -le endings keep their syllable
		"rhythm": 1,
		"io":     1,
	}
	for word, want := range cases {
		assert.Equal(t, want, syllableCount(word), word)
	}
}

func TestSentenceCount(t *testing.T) {
	assert.Equal(t, 2, sentenceCount("The cat sat. The dog ran."))
	assert.Equal(t, 1, sentenceCount("No terminator here"))
	assert.Equal(t, 2, sentenceCount("Wait... what happened?"))
	assert.Equal(t, 1, sentenceCount(""))
}

func TestFleschReadingEase(t *testing.T) {
	// 6 one-syllable words over 2 sentences
	score, ok := fleschReadingEase("The cat sat. The dog ran.")
	require.True(t, ok)
	assert.InDelta(t, 119.19, score, 0.01)

	_, ok = fleschReadingEase("   \n 42% 2021 --- ")
	assert.False(t, ok)
}

func TestReadability_Bands(t *testing.T) {
	checker := NewReadability()

	optimal := "Our team builds many data systems that send daily reports."
	in := Input{ResumeText: optimal}
	result := checker.Evaluate(in)
	assert.InDelta(t, readabilityOptimalScore, result.Score, 1e-9)
	assert.Empty(t, result.Findings)

	in = Input{ResumeText: "The cat sat. The dog ran."}
	result = checker.Evaluate(in)
	assert.InDelta(t, readabilitySimpleScore, result.Score, 1e-9)

	complex := strings.Repeat("Orchestrated multidimensional organizational transformation initiatives demonstrating extraordinary analytical capabilities ", 3) + "."
	in = Input{ResumeText: complex}
	result = checker.Evaluate(in)
	assert.InDelta(t, readabilityComplexScore, result.Score, 1e-9)
	assert.Contains(t, result.Findings, "consider simplifying complex sentences")

	in = Input{ResumeText: ""}
	result = checker.Evaluate(in)
	assert.InDelta(t, readabilityNeutralScore, result.Score, 1e-9)
}
