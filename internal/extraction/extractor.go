// Package extraction pulls weighted candidate terms and lightweight document
// structure out of free resume and job-description text. No network calls,
// no models: tokenizing, TF-IDF weighting against a built-in background
// table, and regex-level entity recovery.
package extraction

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Defaults for term extraction
const (
	DefaultTopK         = 100
	DefaultMaxPhraseLen = 3
)

// Config parameterizes the extractor
type Config struct {
	TopK         int `json:"top_k" validate:"omitempty,gt=0"`
	MaxPhraseLen int `json:"max_phrase_len" validate:"omitempty,gte=1,lte=4"`
}

// Extractor produces deterministic, weighted term lists from text
type Extractor struct {
	topK         int
	maxPhraseLen int
}

// NewExtractor creates an extractor, filling in defaults for zero fields
func NewExtractor(config *Config) *Extractor {
	e := &Extractor{topK: DefaultTopK, maxPhraseLen: DefaultMaxPhraseLen}
	if config != nil {
		if config.TopK > 0 {
			e.topK = config.TopK
		}
		if config.MaxPhraseLen > 0 {
			e.maxPhraseLen = config.MaxPhraseLen
		}
	}
	return e
}

// candidate accumulates one term's occurrences during extraction
type candidate struct {
	surface string
	key     string
	tokens  []string
	tf      int
	first   int
}

// Extract returns the top-K weighted terms of the text. Multi-word phrases
// are generated first and suppress their component tokens; ties break by
// first occurrence, then alphabetically, so output order is deterministic.
// Empty input yields an empty result, not an error.
func (e *Extractor) Extract(text string) []types.ExtractedTerm {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	candidates := make(map[string]*candidate)
	note := func(key, surface string, parts []string, pos int) {
		if c, ok := candidates[key]; ok {
			c.tf++
			if pos < c.first {
				c.first = pos
			}
			return
		}
		candidates[key] = &candidate{surface: surface, key: key, tokens: parts, tf: 1, first: pos}
	}

	// phrase windows: edges must not be stopwords; interior stopwords are
	// allowed only as connectives (internet of things, time to market);
	// windows never span a clause boundary
	for i := range tokens {
		if isStopword(tokens[i].lower) {
			continue
		}
		for n := 2; n <= e.maxPhraseLen && i+n <= len(tokens); n++ {
			if tokens[i+n-1].boundary {
				break
			}
			if isStopword(tokens[i+n-1].lower) {
				continue
			}
			ok := true
			for j := 1; j < n-1; j++ {
				if w := tokens[i+j].lower; isStopword(w) && !isConnective(w) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			parts := make([]string, n)
			surfaces := make([]string, n)
			for j := 0; j < n; j++ {
				parts[j] = tokens[i+j].lower
				surfaces[j] = tokens[i+j].text
			}
			note(strings.Join(parts, " "), strings.Join(surfaces, " "), parts, i)
		}
	}

	// single tokens
	for i, tok := range tokens {
		if isStopword(tok.lower) {
			continue
		}
		note(tok.lower, tok.text, []string{tok.lower}, i)
	}

	type scored struct {
		*candidate
		weight float64
	}
	all := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		w := float64(c.tf)
		if len(c.tokens) == 1 {
			w *= tokenIDF(c.key)
		} else {
			w *= phraseIDF(c.tokens) * phraseLengthBonus(len(c.tokens))
		}
		all = append(all, scored{candidate: c, weight: w})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].weight != all[j].weight {
			return all[i].weight > all[j].weight
		}
		if all[i].first != all[j].first {
			return all[i].first < all[j].first
		}
		return all[i].key < all[j].key
	})

	covered := make(map[string]struct{})
	out := make([]types.ExtractedTerm, 0, e.topK)
	for _, s := range all {
		if len(out) == e.topK {
			break
		}
		if len(s.tokens) == 1 {
			if _, dup := covered[s.key]; dup {
				continue
			}
		} else {
			for _, part := range s.tokens {
				if !isStopword(part) {
					covered[part] = struct{}{}
				}
			}
		}
		out = append(out, types.ExtractedTerm{
			Text:       s.surface,
			Normalized: s.key,
			Weight:     s.weight,
			FirstIndex: s.first,
			Tokens:     len(s.tokens),
		})
	}

	return out
}

// phraseLengthBonus nudges phrases above their component tokens at equal
// frequency
func phraseLengthBonus(n int) float64 {
	switch {
	case n >= 3:
		return 1.25
	case n == 2:
		return 1.15
	default:
		return 1.0
	}
}

// token is one surface token. boundary marks a token preceded by a clause
// break; phrase windows do not span it.
type token struct {
	text     string
	lower    string
	boundary bool
}

// tokenize splits text into tokens that keep the characters skill names rely
// on: c++, c#, .net, node.js. Tokens must contain a letter; bare numbers and
// punctuation runs are discarded. Sentence punctuation and line breaks mark
// the following token as a clause boundary.
func tokenize(text string) []token {
	allowed := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.'
	}

	var out []token
	var run []rune
	pendingBreak := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		raw := string(run)
		run = run[:0]
		t := cleanToken(raw)
		if t == "" {
			return
		}
		out = append(out, token{text: t, lower: strings.ToLower(t), boundary: pendingBreak})
		// a trailing dot is a sentence end the run swallowed
		pendingBreak = strings.HasSuffix(raw, ".")
	}

	for _, r := range text {
		if allowed(r) {
			run = append(run, r)
			continue
		}
		flush()
		if clauseBreak(r) {
			pendingBreak = true
		}
	}
	flush()
	return out
}

// clauseBreak reports separators that end a phrase context. Spaces and
// hyphens do not, so compounds like data-driven still form phrases.
func clauseBreak(r rune) bool {
	switch r {
	case '\n', '\r', ',', ';', ':', '!', '?', '(', ')', '[', ']', '{', '}', '|', '"', '•', '·':
		return true
	}
	return false
}

// cleanToken trims a raw character run into a usable token, or "" to discard
func cleanToken(raw string) string {
	// leading + and # belong to nothing; trailing dots are sentence ends
	raw = strings.TrimLeft(raw, "+#")
	raw = strings.TrimRight(raw, ".")
	if raw == "" {
		return ""
	}

	hasLetter := false
	for _, r := range raw {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return ""
	}

	// tokens start with a letter, or a dot glued to a letter as in .net
	first := []rune(raw)[0]
	if unicode.IsLetter(first) {
		return raw
	}
	if first == '.' {
		rest := strings.TrimLeft(raw, ".")
		if rest == "" {
			return ""
		}
		if unicode.IsLetter([]rune(rest)[0]) {
			return "." + rest
		}
		return cleanToken(rest)
	}
	return cleanToken(strings.TrimFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
}
