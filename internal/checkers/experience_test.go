package checkers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func historyInput(resume string) Input {
	return Input{
		ResumeText: resume,
		Entities:   extraction.ParseEntities(resume),
		Now:        testNow,
	}
}

func TestDateConsistency_MixedFormats(t *testing.T) {
	in := historyInput(`Experience

Senior Engineer, Acme
Jan 2021 - Present

Engineer, Initech
03/2018 - 12/2020
`)

	result := NewDateConsistency().Evaluate(in)

	assert.InDelta(t, 2.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "inconsistent date formats")
}

func TestDateConsistency_UniformFormats(t *testing.T) {
	in := historyInput(`Experience

Senior Engineer, Acme
Jan 2021 - Present

Engineer, Initech
Mar 2018 - Dec 2020
`)

	result := NewDateConsistency().Evaluate(in)

	assert.InDelta(t, 5.0, result.Score, 1e-9)
	assert.Empty(t, result.Findings)
}

func TestDateConsistency_SingleEntryPasses(t *testing.T) {
	in := historyInput(`Experience

Engineer, Acme
Jan 2021 - Present
`)

	result := NewDateConsistency().Evaluate(in)
	assert.InDelta(t, 5.0, result.Score, 1e-9)
}

func TestDateConsistency_UnrecognizedFirstFormatPasses(t *testing.T) {
	in := historyInput(`Experience

Engineer, Acme
Mar. 2022 - Present

Engineer, Initech
01/2020 - 12/2020
`)

	result := NewDateConsistency().Evaluate(in)
	assert.InDelta(t, 5.0, result.Score, 1e-9)
}

func TestEmploymentGaps_SingleGap(t *testing.T) {
	in := historyInput(`Experience

Engineer, Alpha
Jan 2015 - Dec 2016

Engineer, Beta
Feb 2018 - Present
`)

	result := NewEmploymentGaps().Evaluate(in)

	assert.InDelta(t, 7.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "1 employment gap(s)")
}

func TestEmploymentGaps_ContiguousHistory(t *testing.T) {
	in := historyInput(`Experience

Engineer, Alpha
Jan 2015 - Dec 2016

Engineer, Beta
Feb 2017 - Present
`)

	result := NewEmploymentGaps().Evaluate(in)

	assert.InDelta(t, 10.0, result.Score, 1e-9)
	assert.Empty(t, result.Findings)
}

func TestEmploymentGaps_PenaltyIsCapped(t *testing.T) {
	in := historyInput(`Experience

Engineer, A
Jan 2008 - Jun 2008

Engineer, B
Jan 2010 - Jun 2010

Engineer, C
Jan 2012 - Jun 2012

Engineer, D
Jan 2014 - Jun 2014

Engineer, E
Jan 2016 - Present
`)

	result := NewEmploymentGaps().Evaluate(in)

	// four 18-month gaps, penalty capped at the full scale
	assert.InDelta(t, 0.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "4 employment gap(s)")
}

func TestCareerProgression_PromotionBonusOffsetsNothingToLose(t *testing.T) {
	in := historyInput(`Experience

Senior Data Analyst, Acme Corp
Jan 2021 - Present

Data Analyst, Acme Corp
Mar 2018 - Dec 2020
`)

	result := NewCareerProgression().Evaluate(in)

	// bonus cannot push the score past the scale
	assert.InDelta(t, 5.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "1 promotion signal(s)")
}

func TestCareerProgression_ShortCareer(t *testing.T) {
	in := historyInput(`Experience

Intern, StartupCo
Jan 2025 - Present
`)

	result := NewCareerProgression().Evaluate(in)

	assert.InDelta(t, 3.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "limited experience (1.6 years)")
}

func TestCareerProgression_FlatTitles(t *testing.T) {
	in := historyInput(`Experience

Developer, Alpha
Jan 2015 - Dec 2016

Developer, Beta
Jan 2017 - Dec 2018

Developer, Gamma
Jan 2019 - Present
`)

	result := NewCareerProgression().Evaluate(in)

	assert.InDelta(t, 4.0, result.Score, 1e-9)
	require.NotEmpty(t, result.Findings)
	assert.Contains(t, result.Findings[0], "no seniority progression")
}

func TestCareerProgression_NoHistory(t *testing.T) {
	in := Input{Entities: types.ResumeEntities{}, Now: testNow}

	result := NewCareerProgression().Evaluate(in)

	assert.InDelta(t, 0.0, result.Score, 1e-9)
	assert.Contains(t, result.Findings, "no work experience found")
}

func TestSplitHeading(t *testing.T) {
	cases := []struct {
		heading string
		title   string
		company string
	}{
		{"Senior Engineer, Acme Corp", "Senior Engineer", "Acme Corp"},
		{"Engineer at Initech", "Engineer", "Initech"},
		{"Engineer - Globex", "Engineer", "Globex"},
		{"Consultant", "Consultant", ""},
	}
	for _, tc := range cases {
		title, company := splitHeading(tc.heading)
		assert.Equal(t, tc.title, title, tc.heading)
		assert.Equal(t, tc.company, company, tc.heading)
	}
}
