package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultTimeout bounds one narrative generation call
const DefaultTimeout = 15 * time.Second

// maxPromptFindings caps the findings handed to the model so the prompt
// stays focused on what moved the score
const maxPromptFindings = 8

// Narrator writes the report prose. With no model it renders the template
// directly; with one it prompts the model and falls back to the template
// on any failure, so narration never fails an analysis.
type Narrator struct {
	model   Model
	timeout time.Duration
	logger  *zap.Logger
}

// NewNarrator builds a narrator. The model may be nil for template-only
// operation; a non-positive timeout selects the default.
func NewNarrator(model Model, timeout time.Duration, logger *zap.Logger) *Narrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Narrator{model: model, timeout: timeout, logger: logger}
}

// Narrate returns prose for the report.
func (n *Narrator) Narrate(ctx context.Context, report types.AnalysisReport) (string, error) {
	if n.model == nil {
		return Template(report), nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	text, err := n.model.Generate(ctx, buildPrompt(report))
	if err != nil {
		n.logger.Warn("narrative model failed, rendering template", zap.Error(err))
		return Template(report), nil
	}
	if text = strings.TrimSpace(text); text == "" {
		n.logger.Warn("narrative model returned empty text, rendering template")
		return Template(report), nil
	}
	return text, nil
}

// buildPrompt fills the narrative prompt with report facts
func buildPrompt(report types.AnalysisReport) string {
	return prompts.Format(prompts.MustGet("narrative.json", "fit-summary"), map[string]string{
		"Total":    fmt.Sprintf("%.1f", report.Composite.Total),
		"Grade":    report.Composite.Grade,
		"Band":     string(report.SemanticFit.Band),
		"Overlap":  fmt.Sprintf("%.0f%%", report.SemanticFit.OverlapRatio*100),
		"Penalty":  string(report.Penalty.Tier),
		"Matched":  joinOrNone(report.Breakdown.TechnicalMatched),
		"Missing":  joinOrNone(report.Breakdown.TechnicalMissing),
		"Findings": joinOrNone(topFindings(report.Results, maxPromptFindings)),
	})
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
