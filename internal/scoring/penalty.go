package scoring

import (
	"sort"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultMinTechnicalTerms guards the harshest tiers: with fewer technical
// terms than this in the job description, the overlap ratio is too thin a
// signal to call a role mismatch, and only the mildest tier can apply.
const DefaultMinTechnicalTerms = 3

// TierRule maps a ratio ceiling to a penalty tier. A rule applies when the
// technical-match ratio is strictly below its ceiling.
type TierRule struct {
	Below      float64           `json:"below" validate:"gt=0,lte=1"`
	Tier       types.PenaltyTier `json:"tier" validate:"required"`
	Multiplier float64           `json:"multiplier" validate:"gt=0,lte=1"`
}

// PenaltyPolicy externalizes the role-mismatch thresholds so the policy can
// be tuned and tested apart from the code that applies it.
type PenaltyPolicy struct {
	Tiers             []TierRule `json:"tiers" validate:"omitempty,dive"`
	MinTechnicalTerms int        `json:"min_technical_terms" validate:"gte=0"`
	Dimensions        []string   `json:"dimensions"`
}

// DefaultPenaltyPolicy returns the standard tier table. Coarse and severe
// at the low end on purpose: the policy trades smoothness for a legible
// failure signal on wrong-role candidates.
func DefaultPenaltyPolicy() PenaltyPolicy {
	return PenaltyPolicy{
		Tiers: []TierRule{
			{Below: 0.40, Tier: types.TierSevere, Multiplier: 0.20},
			{Below: 0.60, Tier: types.TierMajor, Multiplier: 0.40},
			{Below: 0.80, Tier: types.TierModerate, Multiplier: 0.70},
		},
		MinTechnicalTerms: DefaultMinTechnicalTerms,
		Dimensions:        []string{DimKeywordAlignment},
	}
}

// RoleMismatchPenalizer derives a multiplicative penalty from how much of
// the job description's technical stack the resume covers.
type RoleMismatchPenalizer struct {
	policy PenaltyPolicy
}

// NewRoleMismatchPenalizer builds a penalizer from a policy; zero-value
// fields fall back to the defaults. Tier rules are ordered by ceiling so
// the harshest applicable tier wins.
func NewRoleMismatchPenalizer(policy PenaltyPolicy) *RoleMismatchPenalizer {
	defaults := DefaultPenaltyPolicy()
	if len(policy.Tiers) == 0 {
		policy.Tiers = defaults.Tiers
	} else {
		policy.Tiers = append([]TierRule(nil), policy.Tiers...)
		sort.Slice(policy.Tiers, func(i, j int) bool {
			return policy.Tiers[i].Below < policy.Tiers[j].Below
		})
	}
	if policy.MinTechnicalTerms <= 0 {
		policy.MinTechnicalTerms = defaults.MinTechnicalTerms
	}
	if len(policy.Dimensions) == 0 {
		policy.Dimensions = defaults.Dimensions
	} else {
		policy.Dimensions = append([]string(nil), policy.Dimensions...)
	}
	return &RoleMismatchPenalizer{policy: policy}
}

// Assess computes the penalty for a resume profile against a job profile.
// The ratio is the same technical overlap the semantic scorer uses, so the
// two mechanisms always agree on how mismatched a pair is. When the job
// description carries fewer than MinTechnicalTerms technical terms, only
// the mildest tier can apply.
func (p *RoleMismatchPenalizer) Assess(jd, resume types.SkillProfile) types.MismatchPenalty {
	ratio := OverlapRatio(jd, resume)
	penalty := types.MismatchPenalty{
		Ratio:      ratio,
		Tier:       types.TierNone,
		Multiplier: 1.0,
		Dimensions: append([]string(nil), p.policy.Dimensions...),
	}

	tiers := p.policy.Tiers
	if len(jd.Technical) < p.policy.MinTechnicalTerms {
		tiers = tiers[len(tiers)-1:]
	}
	for _, rule := range tiers {
		if ratio < rule.Below {
			penalty.Tier = rule.Tier
			penalty.Multiplier = rule.Multiplier
			break
		}
	}

	return penalty
}
