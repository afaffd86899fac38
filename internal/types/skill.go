// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillCategory classifies a taxonomy entry or categorized term
type SkillCategory string

const (
	// CategoryTechnical marks hard skills: languages, tools, platforms, methods
	CategoryTechnical SkillCategory = "technical"
	// CategorySoft marks interpersonal and organizational skills
	CategorySoft SkillCategory = "soft"
)

// Valid reports whether the category is one of the known values
func (c SkillCategory) Valid() bool {
	return c == CategoryTechnical || c == CategorySoft
}

// Skill represents a single taxonomy entry
type Skill struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Category  SkillCategory  `json:"category"`
	Aliases   []string       `json:"aliases,omitempty"`
	Embedding []float32      `json:"embedding,omitempty"`
	Related   []RelatedSkill `json:"related,omitempty"`
}

// RelatedSkill is a weighted edge from one taxonomy entry to another
type RelatedSkill struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
}

// MatchSource records how a term was resolved to a skill or category
type MatchSource string

const (
	// MatchExact means the normalized term equaled a canonical skill name
	MatchExact MatchSource = "exact"
	// MatchAlias means the normalized term equaled a known alias
	MatchAlias MatchSource = "alias"
	// MatchEmbedding means the term resolved through nearest-embedding lookup
	MatchEmbedding MatchSource = "embedding"
	// MatchPattern means an unresolved term was classified by pattern rules
	MatchPattern MatchSource = "pattern"
)
