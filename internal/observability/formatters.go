// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printFlag prints a single-line box used for all-clear states
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printFlag(message string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, message)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// PrintResumeProfile outputs the categorized skills extracted from the resume.
func (p *Printer) PrintResumeProfile(profile types.SkillProfile) {
	p.printProfile("RESUME SKILL PROFILE", profile)
}

// PrintJobProfile outputs the categorized skills extracted from the job description.
func (p *Printer) PrintJobProfile(profile types.SkillProfile) {
	p.printProfile("JOB SKILL PROFILE", profile)
}

func (p *Printer) printProfile(title string, profile types.SkillProfile) {
	if profile.Empty() {
		return
	}

	var sb strings.Builder

	if len(profile.Technical) > 0 {
		sb.WriteString(fmt.Sprintf("Technical (%d):\n", len(profile.Technical)))
		count := min(len(profile.Technical), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := profile.Technical[i]
			sb.WriteString(fmt.Sprintf("  • %s", m.Name))
			if m.Source == types.MatchEmbedding {
				sb.WriteString(fmt.Sprintf(" (~%.2f)", m.Similarity))
			}
			sb.WriteString("\n")
		}
		if len(profile.Technical) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Technical)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Soft) > 0 {
		sb.WriteString(fmt.Sprintf("Soft (%d):\n", len(profile.Soft)))
		count := min(len(profile.Soft), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Soft[i].Name))
		}
		if len(profile.Soft) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Soft)-3))
		}
		sb.WriteString("\n")
	}

	if len(profile.Unresolved) > 0 {
		sb.WriteString(fmt.Sprintf("Unresolved terms: %d\n", len(profile.Unresolved)))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBreakdown outputs which job-description terms the resume covered.
func (p *Printer) PrintBreakdown(breakdown types.MatchBreakdown) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Match rate: %.0f%%\n\n", breakdown.MatchRate*100))

	if len(breakdown.TechnicalMatched) > 0 {
		sb.WriteString("Matched:\n")
		count := min(len(breakdown.TechnicalMatched), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", breakdown.TechnicalMatched[i]))
		}
		if len(breakdown.TechnicalMatched) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(breakdown.TechnicalMatched)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(breakdown.TechnicalMissing) > 0 {
		sb.WriteString("Missing:\n")
		count := min(len(breakdown.TechnicalMissing), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", breakdown.TechnicalMissing[i]))
		}
		if len(breakdown.TechnicalMissing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(breakdown.TechnicalMissing)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(breakdown.SoftMatched) > 0 || len(breakdown.SoftMissing) > 0 {
		sb.WriteString(fmt.Sprintf("Soft skills: %d matched, %d missing\n", len(breakdown.SoftMatched), len(breakdown.SoftMissing)))
	}

	p.printBox("KEYWORD COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSemanticFit outputs the embedding similarity and the band it landed in.
func (p *Printer) PrintSemanticFit(fit types.SemanticFitResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Similarity:  %.3f\n", fit.Similarity))
	sb.WriteString(fmt.Sprintf("Overlap:     %.0f%%\n", fit.OverlapRatio*100))
	sb.WriteString(fmt.Sprintf("Band:        %s\n", fit.Band))
	sb.WriteString(fmt.Sprintf("Score:       %.1f / %.0f", fit.Score, fit.MaxPoints))
	if fit.Degraded {
		sb.WriteString("\n\n⚠ embeddings unavailable, keyword fallback used")
	}

	p.printBox("SEMANTIC FIT", sb.String())
}

// PrintPenalty outputs the role-mismatch penalty, if one applies.
func (p *Printer) PrintPenalty(penalty types.MismatchPenalty) {
	if penalty.Tier == types.TierNone || penalty.Tier == "" {
		p.printFlag("✅ NO ROLE-MISMATCH PENALTY")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tier:        %s\n", penalty.Tier))
	sb.WriteString(fmt.Sprintf("Match ratio: %.0f%%\n", penalty.Ratio*100))
	sb.WriteString(fmt.Sprintf("Multiplier:  %.2f\n", penalty.Multiplier))

	if len(penalty.Dimensions) > 0 {
		sb.WriteString("\nApplied to:\n")
		for _, dim := range penalty.Dimensions {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", dim))
		}
	}

	p.printBox("ROLE-MISMATCH PENALTY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComposite outputs the weighted dimension table and the final grade.
func (p *Printer) PrintComposite(score types.CompositeScore) {
	var sb strings.Builder

	for _, d := range score.Dimensions {
		marker := ""
		if d.Penalized {
			marker = "  ⚠"
		}
		sb.WriteString(fmt.Sprintf("%-20s %5.1f/%-4.0f +%6.2f%s\n", d.Dimension, d.Raw, d.MaxPoints, d.Contribution, marker))
	}

	if len(score.Missing) > 0 {
		missing := strings.Join(score.Missing, ", ")
		if len(missing) > 40 {
			missing = missing[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nMissing dimensions: %s\n", missing))
	}

	sb.WriteString(fmt.Sprintf("\nTotal: %.2f   Grade: %s", score.Total, score.Grade))
	if score.Capped {
		sb.WriteString("  (capped)")
	}
	if score.Degraded {
		sb.WriteString("  [degraded]")
	}

	p.printBox("COMPOSITE SCORE", sb.String())
}

// PrintFindings outputs checker advisories grouped under their dimension.
func (p *Printer) PrintFindings(results []types.CheckerResult) {
	var sb strings.Builder
	total := 0

	for _, r := range results {
		if len(r.Findings) == 0 {
			continue
		}
		total += len(r.Findings)

		sb.WriteString(fmt.Sprintf("%s:\n", r.Dimension))
		count := min(len(r.Findings), 3)
		for i := 0; i < count; i++ {
			finding := r.Findings[i]
			if len(finding) > 50 {
				finding = finding[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", finding))
		}
		if len(r.Findings) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Findings)-3))
		}
		sb.WriteString("\n")
	}

	if total == 0 {
		p.printFlag("✅ NO FINDINGS")
		return
	}

	p.printBox("CHECKER FINDINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs every stage of an analysis in reading order.
func (p *Printer) PrintReport(report *types.AnalysisReport) {
	if report == nil {
		return
	}

	p.PrintResumeProfile(report.ResumeProfile)
	p.PrintJobProfile(report.JobProfile)
	p.PrintBreakdown(report.Breakdown)
	p.PrintSemanticFit(report.SemanticFit)
	p.PrintPenalty(report.Penalty)
	p.PrintComposite(report.Composite)
	p.PrintFindings(report.Results)
}
