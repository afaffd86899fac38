package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// maxTemplateTerms caps the term lists quoted in the template prose
const maxTemplateTerms = 5

// bandPhrases render the fit band as plain language
var bandPhrases = map[types.FitBand]string{
	types.BandStrong:   "a strong overlap with the required stack",
	types.BandAligned:  "an aligned but partial overlap with the required stack",
	types.BandWeak:     "a weak overlap with the required stack",
	types.BandMismatch: "little overlap with the required stack",
}

// Template renders a deterministic narrative with no model involved. The
// same report always renders the same prose.
func Template(report types.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall compatibility is %.1f out of 100, grade %s.",
		report.Composite.Total, report.Composite.Grade)

	if phrase, ok := bandPhrases[report.SemanticFit.Band]; ok {
		fmt.Fprintf(&b, " The resume shows %s, covering %.0f%% of the job's technical terms.",
			phrase, report.SemanticFit.OverlapRatio*100)
	}

	if report.Penalty.Tier != "" && report.Penalty.Tier != types.TierNone {
		fmt.Fprintf(&b, " A %s role-mismatch penalty was applied to keyword scoring.",
			report.Penalty.Tier)
	}

	if len(report.Breakdown.TechnicalMissing) > 0 {
		fmt.Fprintf(&b, " Most important gaps: %s.",
			joinCapped(report.Breakdown.TechnicalMissing, maxTemplateTerms))
	}
	if len(report.Breakdown.TechnicalMatched) > 0 {
		fmt.Fprintf(&b, " Already covered: %s.",
			joinCapped(report.Breakdown.TechnicalMatched, maxTemplateTerms))
	}

	if findings := topFindings(report.Results, 3); len(findings) > 0 {
		fmt.Fprintf(&b, " Also noted: %s.", strings.Join(findings, "; "))
	}

	if report.Degraded {
		b.WriteString(" Semantic similarity was estimated lexically because no embedding provider was reachable.")
	}

	return b.String()
}

// topFindings collects the first finding of each dimension, lowest-scoring
// dimensions first
func topFindings(results []types.CheckerResult, limit int) []string {
	ordered := append([]types.CheckerResult(nil), results...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return scoreFraction(ordered[i]) < scoreFraction(ordered[j])
	})

	var findings []string
	for _, res := range ordered {
		if len(findings) == limit {
			break
		}
		if len(res.Findings) > 0 {
			findings = append(findings, res.Findings[0])
		}
	}
	return findings
}

func scoreFraction(r types.CheckerResult) float64 {
	if r.MaxPoints <= 0 {
		return 1
	}
	return r.Score / r.MaxPoints
}

func joinCapped(items []string, limit int) string {
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}
