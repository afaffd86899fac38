package checkers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantifiedImpact_StrongQuantification(t *testing.T) {
	in := Input{ResumeText: `Experience

Sales Engineer, Acme
Jan 2020 - Present
- Cut onboarding time by 30%
- Grew pipeline revenue 15%
- Saved $500K in vendor spend
- Closed $2M in new deals
- Supported 300 users across two regions
`}

	result := NewQuantifiedImpact().Evaluate(in)

	assert.InDelta(t, 10.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "strong quantification: 5 metrics")
}

func TestQuantifiedImpact_SharedFixtureCountsThreeMetrics(t *testing.T) {
	result := NewQuantifiedImpact().Evaluate(testInput(t))

	assert.InDelta(t, 8.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "3 metrics")
}

func TestQuantifiedImpact_FewMetrics(t *testing.T) {
	in := Input{ResumeText: `Experience

Analyst, Initech
Jan 2020 - Present
- Improved dashboard load time by 25%
- Maintained the reporting stack
`}

	result := NewQuantifiedImpact().Evaluate(in)

	assert.InDelta(t, 6.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "1 metric(s) found")
}

func TestQuantifiedImpact_NarrativeCreditWithoutMetrics(t *testing.T) {
	// no experience heading, so the whole text is scanned
	in := Input{ResumeText: "Seasoned analytics professional who developed dashboards " +
		"and reporting pipelines for retail planning teams across multiple seasons."}

	result := NewQuantifiedImpact().Evaluate(in)

	assert.InDelta(t, 5.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "add quantified achievements")
}

func TestQuantifiedImpact_ThinTextScoresZero(t *testing.T) {
	in := Input{ResumeText: "Experience\n\nStaff member at a company."}

	result := NewQuantifiedImpact().Evaluate(in)

	assert.InDelta(t, 0.0, result.Score, 1e-9)
	assert.Contains(t, result.Findings[0], "add quantified achievements")
}

func TestQuantifiedImpact_BlankResume(t *testing.T) {
	result := NewQuantifiedImpact().Evaluate(Input{})

	assert.InDelta(t, 0.0, result.Score, 1e-9)
	assert.Contains(t, result.Findings, "no experience narrative to analyze")
}

func TestOnlinePresence_LinkedInAndGitHub(t *testing.T) {
	result := NewOnlinePresence().Evaluate(testInput(t))

	assert.InDelta(t, 5.0, result.Score, 1e-9)
	assert.Empty(t, result.Findings)
}

func TestOnlinePresence_LinkedInOnly(t *testing.T) {
	in := Input{ResumeText: "Reach me on linkedin.com/in/jdoe"}

	result := NewOnlinePresence().Evaluate(in)

	assert.InDelta(t, 2.0, result.Score, 1e-9)
	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0], "GitHub or portfolio")
}

func TestOnlinePresence_PortfolioMention(t *testing.T) {
	in := Input{ResumeText: "See my portfolio at example.dev"}

	result := NewOnlinePresence().Evaluate(in)

	assert.InDelta(t, 2.0, result.Score, 1e-9)
	require.Len(t, result.Findings, 1)
	assert.Contains(t, result.Findings[0], "LinkedIn")
}

func TestOnlinePresence_NoLinks(t *testing.T) {
	result := NewOnlinePresence().Evaluate(Input{ResumeText: "Plain text resume"})

	assert.InDelta(t, 0.0, result.Score, 1e-9)
	assert.Len(t, result.Findings, 2)
}
