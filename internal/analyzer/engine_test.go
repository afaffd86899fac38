package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/embedding"
	"github.com/jonathan/resume-analyzer/internal/knowledge"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// docProvider embeds every text to the same vector, so document cosine
// similarity is 1.0. err fails every call instead.
type docProvider struct {
	err error
}

func (p *docProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (p *docProvider) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0, 0, 0, 1}
	}
	return out, nil
}

func (p *docProvider) Dimensions() int { return 4 }
func (p *docProvider) Name() string    { return "doc" }
func (p *docProvider) Close() error    { return nil }

type stubNarrator struct {
	text string
	err  error
}

func (s stubNarrator) Narrate(context.Context, types.AnalysisReport) (string, error) {
	return s.text, s.err
}

func engineIndex(t *testing.T) *knowledge.Index {
	t.Helper()
	idx, err := knowledge.NewIndex([]types.Skill{
		{ID: "s_dotnet", Name: ".NET", Category: types.CategoryTechnical},
		{ID: "s_csharp", Name: "C#", Category: types.CategoryTechnical},
		{ID: "s_sqlserver", Name: "SQL Server", Category: types.CategoryTechnical, Aliases: []string{"mssql"}},
		{ID: "s_ef", Name: "Entity Framework", Category: types.CategoryTechnical},
		{ID: "s_powerbi", Name: "Power BI", Category: types.CategoryTechnical, Aliases: []string{"bi"}},
		{ID: "s_dax", Name: "DAX", Category: types.CategoryTechnical},
		{ID: "s_powerquery", Name: "Power Query", Category: types.CategoryTechnical},
		{ID: "s_ssas", Name: "SSAS", Category: types.CategoryTechnical},
		{ID: "s_python", Name: "Python", Category: types.CategoryTechnical},
		{ID: "s_django", Name: "Django", Category: types.CategoryTechnical},
		{ID: "s_postgresql", Name: "PostgreSQL", Category: types.CategoryTechnical, Aliases: []string{"postgres"}},
		{ID: "s_docker", Name: "Docker", Category: types.CategoryTechnical},
		{ID: "s_redis", Name: "Redis", Category: types.CategoryTechnical},
		{ID: "s_communication", Name: "Communication", Category: types.CategorySoft},
	}, 0)
	require.NoError(t, err)
	return idx
}

var engineNow = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, provider embedding.Provider, opts Options) *Engine {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return engineNow }
	}
	e, err := New(engineIndex(t), provider, zap.NewNop(), opts)
	require.NoError(t, err)
	return e
}

const dotnetResume = `.NET Developer

Experience

.NET Developer, Fabrikam
Jan 2019 - Present
- Built C# billing services with Entity Framework on SQL Server
`

const biJob = `BI Developer

Requirements
- Power BI
- DAX
- Power Query
- SQL Server
- SSAS
`

const pythonResume = `Backend Engineer

Skills
Python, Django, PostgreSQL, Docker
`

const pythonJob = `Backend Engineer

Requirements
- Python
- Django
- PostgreSQL
- Docker
- Redis
`

func TestAnalyze_StackMismatchGradesF(t *testing.T) {
	e := newTestEngine(t, nil, Options{})

	report, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText: dotnetResume,
		JobText:    biJob,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"Power BI", "DAX", "Power Query", "SQL Server", "SSAS"},
		report.JobProfile.TechnicalNames())
	assert.Subset(t, report.ResumeProfile.TechnicalNames(),
		[]string{".NET", "SQL Server", "Entity Framework"})

	assert.InDelta(t, 0.20, report.SemanticFit.OverlapRatio, 1e-9)
	assert.Equal(t, types.BandMismatch, report.SemanticFit.Band)
	assert.InDelta(t, 2.0, report.SemanticFit.Score, 1e-9)

	assert.Equal(t, types.TierSevere, report.Penalty.Tier)
	assert.InDelta(t, 0.20, report.Penalty.Multiplier, 1e-9)

	assert.True(t, report.Composite.Capped)
	assert.InDelta(t, 30.0, report.Composite.Total, 1e-9)
	assert.Equal(t, "F", report.Composite.Grade)

	assert.InDelta(t, 0.20, report.Breakdown.MatchRate, 1e-9)
	assert.Equal(t, []string{"SQL Server"}, report.Breakdown.TechnicalMatched)
	assert.Len(t, report.Breakdown.TechnicalMissing, 4)

	// no provider, so resolution ran lexical-only
	assert.True(t, report.Degraded)
}

func TestAnalyze_MatchedStackScoresClean(t *testing.T) {
	e := newTestEngine(t, &docProvider{}, Options{})

	report, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText: pythonResume,
		JobText:    pythonJob,
	})
	require.NoError(t, err)

	require.Len(t, report.JobProfile.Technical, 5)
	require.Len(t, report.ResumeProfile.Technical, 4)

	assert.InDelta(t, 0.80, report.SemanticFit.OverlapRatio, 1e-9)
	assert.Equal(t, types.BandStrong, report.SemanticFit.Band)
	// boost runs past the scale and is capped there
	assert.InDelta(t, 20.0, report.SemanticFit.Score, 1e-9)

	assert.Equal(t, types.TierNone, report.Penalty.Tier)
	assert.InDelta(t, 1.0, report.Penalty.Multiplier, 1e-9)

	assert.False(t, report.Degraded)
	assert.False(t, report.Composite.Capped)

	assert.Equal(t, engineNow, report.CreatedAt)
	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)
}

func TestAnalyze_EmptyJobIsNeutral(t *testing.T) {
	e := newTestEngine(t, &docProvider{}, Options{})

	report, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText: pythonResume,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, report.SemanticFit.OverlapRatio, 1e-9)
	assert.InDelta(t, 20.0, report.SemanticFit.Score, 1e-9)
	assert.Equal(t, types.TierNone, report.Penalty.Tier)
	assert.False(t, report.Degraded)

	keyword, ok := report.Composite.Dimension(scoring.DimKeywordAlignment)
	require.True(t, ok)
	assert.InDelta(t, 15.0, keyword.Raw, 1e-9)
}

func TestAnalyze_ProviderFailureDegrades(t *testing.T) {
	e := newTestEngine(t, &docProvider{err: embedding.ErrUnavailable}, Options{})

	report, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText: pythonResume,
		JobText:    pythonJob,
	})
	require.NoError(t, err)

	assert.True(t, report.Degraded)
	assert.True(t, report.SemanticFit.Degraded)
	assert.True(t, report.Composite.Degraded)

	// overlap ratio stands in for similarity
	assert.InDelta(t, 0.80, report.SemanticFit.Similarity, 1e-9)
	assert.Equal(t, types.BandStrong, report.SemanticFit.Band)
	assert.InDelta(t, 17.92, report.SemanticFit.Score, 1e-9)
	assert.Equal(t, types.TierNone, report.Penalty.Tier)
}

func TestAnalyze_BlankResumeStillComposes(t *testing.T) {
	e := newTestEngine(t, nil, Options{})

	report, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText: "   \n\t",
		JobText:    biJob,
	})
	require.NoError(t, err)

	assert.True(t, report.ResumeProfile.Empty())
	assert.InDelta(t, 0.0, report.SemanticFit.Score, 1e-9)
	assert.Equal(t, types.TierSevere, report.Penalty.Tier)
	assert.Equal(t, "F", report.Composite.Grade)
	assert.NotEmpty(t, report.ID)
	assert.Len(t, report.Composite.Dimensions, 14)
}

func TestAnalyze_ExternalResultsFillRenderingDimensions(t *testing.T) {
	e := newTestEngine(t, &docProvider{}, Options{})

	report, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText: pythonResume,
		JobText:    pythonJob,
		External: []types.CheckerResult{
			{Dimension: scoring.DimFileLayout, Score: 15, MaxPoints: 20},
			{Dimension: scoring.DimFontConsistency, Score: 8, MaxPoints: 10},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, report.Composite.Missing)
	layout, ok := report.Composite.Dimension(scoring.DimFileLayout)
	require.True(t, ok)
	assert.InDelta(t, 6.0, layout.Contribution, 1e-9)
}

func TestAnalyze_WithoutExternalResultsListsMissing(t *testing.T) {
	e := newTestEngine(t, &docProvider{}, Options{})

	report, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText: pythonResume,
		JobText:    pythonJob,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{scoring.DimFileLayout, scoring.DimFontConsistency},
		report.Composite.Missing)
}

func TestAnalyze_NarratorAttachesProse(t *testing.T) {
	e := newTestEngine(t, &docProvider{}, Options{Narrator: stubNarrator{text: "Solid match."}})

	report, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText: pythonResume,
		JobText:    pythonJob,
	})
	require.NoError(t, err)
	assert.Equal(t, "Solid match.", report.Narrative)
}

func TestAnalyze_NarratorFailureIsSoft(t *testing.T) {
	e := newTestEngine(t, &docProvider{}, Options{Narrator: stubNarrator{err: errors.New("llm down")}})

	report, err := e.Analyze(context.Background(), types.AnalysisInput{
		ResumeText: pythonResume,
		JobText:    pythonJob,
	})
	require.NoError(t, err)
	assert.Empty(t, report.Narrative)
}

func TestAnalyze_CanceledContext(t *testing.T) {
	e := newTestEngine(t, &docProvider{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Analyze(ctx, types.AnalysisInput{
		ResumeText: pythonResume,
		JobText:    pythonJob,
	})
	assert.Error(t, err)
}

func TestComposeScore_AppliesPenalty(t *testing.T) {
	e := newTestEngine(t, nil, Options{})

	jd := types.SkillProfile{Technical: []types.SkillMatch{
		{Name: "Python", Category: types.CategoryTechnical},
		{Name: "Django", Category: types.CategoryTechnical},
		{Name: "PostgreSQL", Category: types.CategoryTechnical},
	}}
	results := []types.CheckerResult{
		{Dimension: scoring.DimKeywordAlignment, Score: 15, MaxPoints: 15},
	}

	composite := e.ComposeScore(results, jd, types.SkillProfile{})

	// zero overlap puts keyword alignment under the severe multiplier
	keyword, ok := composite.Dimension(scoring.DimKeywordAlignment)
	require.True(t, ok)
	assert.True(t, keyword.Penalized)
	assert.InDelta(t, 3.0, keyword.Raw, 1e-9)
	assert.InDelta(t, 3.0, composite.Total, 1e-9)
	assert.Len(t, composite.Missing, 13)
}

func TestNew_RejectsBadWeights(t *testing.T) {
	_, err := New(engineIndex(t), nil, zap.NewNop(), Options{
		Weights: scoring.WeightTable{"half": {Weight: 50, MaxPoints: 10}},
	})
	assert.Error(t, err)
}
