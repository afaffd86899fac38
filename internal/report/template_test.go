package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/types"
)

func mismatchReport() types.AnalysisReport {
	return types.AnalysisReport{
		SemanticFit: types.SemanticFitResult{
			Band:         types.BandMismatch,
			OverlapRatio: 0.2,
			Score:        2,
			MaxPoints:    20,
		},
		Penalty: types.MismatchPenalty{Ratio: 0.2, Tier: types.TierSevere, Multiplier: 0.2},
		Breakdown: types.MatchBreakdown{
			TechnicalMatched: []string{"SQL Server"},
			TechnicalMissing: []string{"Power BI", "DAX", "Power Query", "SSAS"},
			MatchRate:        0.2,
		},
		Composite: types.CompositeScore{Total: 30, Grade: "F", Capped: true},
		Results: []types.CheckerResult{
			{Dimension: "skill_context", Score: 5, MaxPoints: 5,
				Findings: []string{"strong skill context: 8 of 8 skills demonstrated"}},
			{Dimension: "readability", Score: 6, MaxPoints: 10,
				Findings: []string{"consider simplifying complex sentences"}},
			{Dimension: "online_presence", Score: 0, MaxPoints: 5,
				Findings: []string{"add a LinkedIn profile URL"}},
		},
		Degraded: true,
	}
}

func TestTemplate_MismatchReport(t *testing.T) {
	text := Template(mismatchReport())

	assert.Contains(t, text, "30.0 out of 100, grade F")
	assert.Contains(t, text, "little overlap")
	assert.Contains(t, text, "covering 20% of the job's technical terms")
	assert.Contains(t, text, "severe role-mismatch penalty")
	assert.Contains(t, text, "Most important gaps: Power BI, DAX, Power Query, SSAS.")
	assert.Contains(t, text, "Already covered: SQL Server.")
	assert.Contains(t, text, "estimated lexically")
}

func TestTemplate_FindingsOrderedWorstFirst(t *testing.T) {
	text := Template(mismatchReport())

	presence := strings.Index(text, "add a LinkedIn profile URL")
	readability := strings.Index(text, "consider simplifying complex sentences")
	require.GreaterOrEqual(t, presence, 0)
	require.GreaterOrEqual(t, readability, 0)
	assert.Less(t, presence, readability)
}

func TestTemplate_GapListIsCapped(t *testing.T) {
	report := mismatchReport()
	report.Breakdown.TechnicalMissing = []string{"A", "B", "C", "D", "E", "F", "G"}

	text := Template(report)
	assert.Contains(t, text, "Most important gaps: A, B, C, D, E.")
	assert.NotContains(t, text, "F, G")
}

func TestTemplate_CleanReportSkipsPenaltySentence(t *testing.T) {
	report := types.AnalysisReport{
		SemanticFit: types.SemanticFitResult{
			Band: types.BandStrong, OverlapRatio: 0.8, Score: 20, MaxPoints: 20,
		},
		Penalty:   types.MismatchPenalty{Ratio: 0.8, Tier: types.TierNone, Multiplier: 1},
		Composite: types.CompositeScore{Total: 92.5, Grade: "A"},
	}
	text := Template(report)

	assert.Contains(t, text, "92.5 out of 100, grade A")
	assert.Contains(t, text, "a strong overlap")
	assert.NotContains(t, text, "penalty")
	assert.NotContains(t, text, "estimated lexically")
}

func TestTemplate_Deterministic(t *testing.T) {
	report := mismatchReport()
	assert.Equal(t, Template(report), Template(report))
}
