// Package matching resolves extracted terms against the skill taxonomy and
// classifies the terms the taxonomy does not know.
package matching

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/embedding"
	"github.com/jonathan/resume-analyzer/internal/knowledge"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultMinEmbedLen is the minimum normalized term length eligible for
// embedding lookup. Shorter terms are too ambiguous for nearest-neighbor
// resolution.
const DefaultMinEmbedLen = 3

// Resolver maps extracted terms to taxonomy skills. Resolution per term is
// exact or alias match on the index, then the synonym table, then
// nearest-embedding lookup, then the pattern categorizer.
type Resolver struct {
	index       *knowledge.Index
	provider    embedding.Provider
	threshold   float64
	minEmbedLen int
	logger      *zap.Logger
}

// NewResolver builds a resolver over a loaded skill index. The embedding
// provider may be nil, in which case resolution is lexical-only and
// profiles are flagged degraded whenever a nearest-neighbor lookup would
// have run. A non-positive threshold selects the index default.
func NewResolver(index *knowledge.Index, provider embedding.Provider, threshold float64, logger *zap.Logger) *Resolver {
	if threshold <= 0 {
		threshold = knowledge.DefaultSimilarityThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		index:       index,
		provider:    provider,
		threshold:   threshold,
		minEmbedLen: DefaultMinEmbedLen,
		logger:      logger,
	}
}

// ResolveProfile resolves extracted terms into a categorized skill profile.
// Matches are deduplicated by category and canonical name, keeping the
// first (highest-weighted) occurrence. The degraded return is true when
// embedding lookups were wanted but no provider was available or the
// provider failed; the profile then carries lexical and pattern matches
// only. The same input always yields the same profile.
func (r *Resolver) ResolveProfile(ctx context.Context, terms []types.ExtractedTerm) (profile types.SkillProfile, degraded bool, err error) {
	seen := make(map[string]struct{})
	add := func(m types.SkillMatch) {
		key := string(m.Category) + "\x00" + m.Name
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		if m.Category == types.CategoryTechnical {
			profile.Technical = append(profile.Technical, m)
		} else {
			profile.Soft = append(profile.Soft, m)
		}
	}

	var embedTerms, classify []types.ExtractedTerm
	for _, term := range terms {
		if match, ok := r.lexical(term); ok {
			add(match)
			continue
		}
		if len(term.Normalized) >= r.minEmbedLen {
			embedTerms = append(embedTerms, term)
		} else {
			classify = append(classify, term)
		}
	}

	if len(embedTerms) > 0 {
		if r.provider == nil {
			degraded = true
			classify = append(classify, embedTerms...)
		} else {
			texts := make([]string, len(embedTerms))
			for i, term := range embedTerms {
				texts[i] = term.Normalized
			}
			vectors, embedErr := r.provider.EmbedBatch(ctx, texts)
			switch {
			case embedErr == nil:
				for i, term := range embedTerms {
					skill, similarity, ok := r.index.Nearest(vectors[i], r.threshold)
					if !ok {
						classify = append(classify, term)
						continue
					}
					add(types.SkillMatch{
						Term:       term.Text,
						SkillID:    skill.ID,
						Name:       skill.Name,
						Category:   skill.Category,
						Source:     types.MatchEmbedding,
						Similarity: similarity,
					})
				}
			case ctx.Err() != nil:
				return types.SkillProfile{}, false, ctx.Err()
			default:
				degraded = true
				r.logger.Warn("embedding lookup unavailable, falling back to pattern matching",
					zap.Int("terms", len(embedTerms)),
					zap.Error(embedErr))
				classify = append(classify, embedTerms...)
			}
		}
	}

	for _, term := range classify {
		category, ok := Categorize(term)
		if !ok {
			if !IsGeneric(term.Normalized) {
				profile.Unresolved = append(profile.Unresolved, term.Normalized)
			}
			continue
		}
		add(types.SkillMatch{
			Term:     term.Text,
			Name:     term.Normalized,
			Category: category,
			Source:   types.MatchPattern,
		})
	}

	return profile, degraded, nil
}

// ClassifyTerm reports the category a single term falls into without
// consulting the embedding provider. Checkers use it to label terms
// extracted from another document.
func (r *Resolver) ClassifyTerm(term types.ExtractedTerm) (types.SkillCategory, bool) {
	if match, ok := r.lexical(term); ok {
		return match.Category, true
	}
	return Categorize(term)
}

// lexical tries exact, alias, and synonym-table resolution
func (r *Resolver) lexical(term types.ExtractedTerm) (types.SkillMatch, bool) {
	if skill, source, ok := r.index.Resolve(term.Normalized); ok {
		return types.SkillMatch{
			Term:     term.Text,
			SkillID:  skill.ID,
			Name:     skill.Name,
			Category: skill.Category,
			Source:   source,
		}, true
	}
	for _, variant := range ExpandTerm(term.Normalized) {
		if skill, _, ok := r.index.Resolve(variant); ok {
			return types.SkillMatch{
				Term:     term.Text,
				SkillID:  skill.ID,
				Name:     skill.Name,
				Category: skill.Category,
				Source:   types.MatchAlias,
			}, true
		}
	}
	return types.SkillMatch{}, false
}
