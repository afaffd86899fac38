// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExtractedTerm is a candidate keyword pulled from free text with its
// TF-IDF-style weight and position metadata used for deterministic ordering
type ExtractedTerm struct {
	Text       string  `json:"text"`
	Normalized string  `json:"normalized"`
	Weight     float64 `json:"weight"`
	FirstIndex int     `json:"first_index"`
	Tokens     int     `json:"tokens"`
}

// SkillMatch represents one term that landed in a category, with provenance
type SkillMatch struct {
	Term       string        `json:"term"`
	SkillID    string        `json:"skill_id,omitempty"`
	Name       string        `json:"name"`
	Category   SkillCategory `json:"category"`
	Source     MatchSource   `json:"source"`
	Similarity float64       `json:"similarity,omitempty"`
}

// SkillProfile is the categorized view of one document's extracted terms
type SkillProfile struct {
	Technical  []SkillMatch `json:"technical"`
	Soft       []SkillMatch `json:"soft"`
	Unresolved []string     `json:"unresolved,omitempty"`
}

// TechnicalSet returns the technical skill names as a lookup set, keyed by
// canonical name
func (p SkillProfile) TechnicalSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Technical))
	for _, m := range p.Technical {
		set[m.Name] = struct{}{}
	}
	return set
}

// TechnicalNames returns the technical skill names in profile order
func (p SkillProfile) TechnicalNames() []string {
	names := make([]string, 0, len(p.Technical))
	for _, m := range p.Technical {
		names = append(names, m.Name)
	}
	return names
}

// Empty reports whether nothing at all was extracted or categorized
func (p SkillProfile) Empty() bool {
	return len(p.Technical) == 0 && len(p.Soft) == 0 && len(p.Unresolved) == 0
}
