package checkers

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Flesch reading-ease target band. Resume prose in the 60-80 range reads
// cleanly without being choppy.
const (
	readabilityFloor   = 60.0
	readabilityCeiling = 80.0

	readabilityOptimalScore = 10.0
	readabilitySimpleScore  = 8.0
	readabilityComplexScore = 6.0
	readabilityNeutralScore = 7.0
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Readability scores prose clarity with the Flesch reading-ease formula.
type Readability struct {
	maxPoints float64
}

// NewReadability returns the checker on its standard 10-point scale.
func NewReadability() *Readability { return &Readability{maxPoints: 10} }

// Dimension implements Checker.
func (c *Readability) Dimension() string { return scoring.DimReadability }

// Evaluate implements Checker. Text too short to measure scores neutral.
func (c *Readability) Evaluate(in Input) types.CheckerResult {
	result := types.CheckerResult{Dimension: c.Dimension(), MaxPoints: c.maxPoints}

	flesch, ok := fleschReadingEase(in.ResumeText)
	switch {
	case !ok:
		result.Score = readabilityNeutralScore
	case flesch >= readabilityFloor && flesch <= readabilityCeiling:
		result.Score = readabilityOptimalScore
	case flesch < readabilityFloor:
		result.Score = readabilityComplexScore
		result.Findings = append(result.Findings, "consider simplifying complex sentences")
	default:
		result.Score = readabilitySimpleScore
	}
	return result
}

// fleschReadingEase computes 206.835 - 1.015*(words/sentences) -
// 84.6*(syllables/words). ok is false when the text holds no words.
func fleschReadingEase(text string) (float64, bool) {
	words, syllables := 0, 0
	for _, field := range strings.Fields(text) {
		word := lettersOnly(field)
		if word == "" {
			continue
		}
		words++
		syllables += syllableCount(word)
	}
	if words == 0 {
		return 0, false
	}
	sentences := sentenceCount(text)
	score := 206.835 -
		1.015*float64(words)/float64(sentences) -
		84.6*float64(syllables)/float64(words)
	return score, true
}

func sentenceCount(text string) int {
	count := 0
	for _, part := range sentenceSplitRe.Split(text, -1) {
		if strings.ContainsFunc(part, unicode.IsLetter) {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// syllableCount approximates syllables by counting vowel groups, with the
// usual silent-e adjustment. Every word counts at least one.
func syllableCount(word string) int {
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if count > 1 && strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		count--
	}
	if count == 0 {
		return 1
	}
	return count
}

func lettersOnly(field string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, field))
}
