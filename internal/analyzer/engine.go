// Package analyzer composes extraction, skill resolution, fit scoring and
// the checker suite into one analysis pass over a resume and a job
// description.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/checkers"
	"github.com/jonathan/resume-analyzer/internal/embedding"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/knowledge"
	"github.com/jonathan/resume-analyzer/internal/matching"
	"github.com/jonathan/resume-analyzer/internal/scoring"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Narrator writes the prose summary of a finished report. Implementations
// are expected to fall back to a deterministic rendering when their
// backing service is unavailable.
type Narrator interface {
	Narrate(ctx context.Context, report types.AnalysisReport) (string, error)
}

// Options tune an Engine beyond its hard dependencies. Zero fields fall
// back to package defaults.
type Options struct {
	Extraction     *extraction.Config
	MatchThreshold float64
	FitMaxPoints   float64
	Bands          scoring.BandThresholds
	Penalty        scoring.PenaltyPolicy
	Weights        scoring.WeightTable
	Narrator       Narrator
	Clock          func() time.Time
}

// Engine runs the full analysis pass. It holds no per-request state and
// is safe for concurrent use once constructed.
type Engine struct {
	extractor  *extraction.Extractor
	resolver   *matching.Resolver
	provider   embedding.Provider
	scorer     *scoring.SemanticFitScorer
	penalizer  *scoring.RoleMismatchPenalizer
	aggregator *scoring.Aggregator
	checkers   []checkers.Checker
	narrator   Narrator
	clock      func() time.Time
	logger     *zap.Logger
}

// New builds an Engine over a loaded skill index. provider may be nil, in
// which case every analysis runs in degraded lexical-only mode.
func New(index *knowledge.Index, provider embedding.Provider, logger *zap.Logger, opts Options) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	weights := opts.Weights
	if weights == nil {
		weights = scoring.DefaultWeights()
	}
	aggregator, err := scoring.NewAggregator(weights, logger)
	if err != nil {
		return nil, fmt.Errorf("building aggregator: %w", err)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		extractor:  extraction.NewExtractor(opts.Extraction),
		resolver:   matching.NewResolver(index, provider, opts.MatchThreshold, logger),
		provider:   provider,
		scorer:     scoring.NewSemanticFitScorer(opts.FitMaxPoints, opts.Bands),
		penalizer:  scoring.NewRoleMismatchPenalizer(opts.Penalty),
		aggregator: aggregator,
		checkers:   checkers.All(),
		narrator:   opts.Narrator,
		clock:      clock,
		logger:     logger,
	}, nil
}

// Analyze scores one resume against one job description and returns the
// full report. Embedding failures degrade the pass to lexical-only
// scoring; only context cancellation aborts it.
func (e *Engine) Analyze(ctx context.Context, in types.AnalysisInput) (types.AnalysisReport, error) {
	resumeProfile, resumeDegraded, err := e.profile(ctx, in.ResumeText)
	if err != nil {
		return types.AnalysisReport{}, fmt.Errorf("resolving resume profile: %w", err)
	}
	jobProfile, jobDegraded, err := e.profile(ctx, in.JobText)
	if err != nil {
		return types.AnalysisReport{}, fmt.Errorf("resolving job profile: %w", err)
	}

	fit, err := e.semanticFit(ctx, in.ResumeText, in.JobText, jobProfile, resumeProfile)
	if err != nil {
		return types.AnalysisReport{}, err
	}
	degraded := resumeDegraded || jobDegraded || fit.Degraded

	penalty := e.penalizer.Assess(jobProfile, resumeProfile)

	results, err := e.runCheckers(ctx, checkers.Input{
		ResumeText: in.ResumeText,
		JobText:    in.JobText,
		Entities:   extraction.ParseEntities(in.ResumeText),
		Resume:     resumeProfile,
		Job:        jobProfile,
		Fit:        fit,
		Now:        e.clock(),
	})
	if err != nil {
		return types.AnalysisReport{}, err
	}
	results = append(results, in.External...)

	composite := e.aggregator.Aggregate(results, penalty)
	composite.Degraded = degraded

	report := types.AnalysisReport{
		ID:            uuid.NewString(),
		CreatedAt:     e.clock().UTC(),
		ResumeProfile: resumeProfile,
		JobProfile:    jobProfile,
		Breakdown:     checkers.Breakdown(jobProfile, resumeProfile, in.ResumeText),
		SemanticFit:   fit,
		Penalty:       penalty,
		Composite:     composite,
		Results:       results,
		Degraded:      degraded,
	}
	if e.narrator != nil {
		narrative, narrateErr := e.narrator.Narrate(ctx, report)
		if narrateErr != nil {
			e.logger.Warn("narrative generation failed", zap.Error(narrateErr))
		} else {
			report.Narrative = narrative
		}
	}
	return report, nil
}

// ComposeScore reweights externally produced checker results under the
// engine's weight table and penalty policy, without running the text
// pipeline. Callers that run their own checkers use this to reach the
// same composite a full Analyze would produce.
func (e *Engine) ComposeScore(results []types.CheckerResult, jd, resume types.SkillProfile) types.CompositeScore {
	return e.aggregator.Aggregate(results, e.penalizer.Assess(jd, resume))
}

// Weights exposes the active weight table for reporting layers.
func (e *Engine) Weights() scoring.WeightTable {
	return e.aggregator.Weights()
}

// profile extracts terms from text and resolves them into a skill
// profile. Blank text yields an empty profile without touching the
// resolver.
func (e *Engine) profile(ctx context.Context, text string) (types.SkillProfile, bool, error) {
	if strings.TrimSpace(text) == "" {
		return types.SkillProfile{}, false, nil
	}
	return e.resolver.ResolveProfile(ctx, e.extractor.Extract(text))
}

// semanticFit computes the document-level fit. A blank job description is
// neutral, a blank resume scores zero.
func (e *Engine) semanticFit(ctx context.Context, resumeText, jobText string, jd, resume types.SkillProfile) (types.SemanticFitResult, error) {
	ratio := scoring.OverlapRatio(jd, resume)
	if strings.TrimSpace(resumeText) == "" {
		return e.scorer.Score(0, 0, false), nil
	}
	if strings.TrimSpace(jobText) == "" {
		return e.scorer.Score(ratio, ratio, false), nil
	}
	similarity, degraded, err := e.documentSimilarity(ctx, resumeText, jobText, ratio)
	if err != nil {
		return types.SemanticFitResult{}, err
	}
	return e.scorer.Score(similarity, ratio, degraded), nil
}

// documentSimilarity embeds both documents and takes their cosine.
// Without a provider, or when embedding fails, the keyword-overlap ratio
// stands in and the result is flagged degraded.
func (e *Engine) documentSimilarity(ctx context.Context, resumeText, jobText string, fallback float64) (float64, bool, error) {
	if e.provider == nil {
		return fallback, true, nil
	}
	vectors, err := e.provider.EmbedBatch(ctx, []string{resumeText, jobText})
	switch {
	case err == nil && len(vectors) == 2:
		return embedding.Cosine(vectors[0], vectors[1]), false, nil
	case ctx.Err() != nil:
		return 0, false, ctx.Err()
	case err != nil:
		e.logger.Warn("document embedding failed, scoring lexically", zap.Error(err))
	default:
		e.logger.Warn("document embedding returned a short batch", zap.Int("vectors", len(vectors)))
	}
	return fallback, true, nil
}

// runCheckers evaluates every registered checker in parallel. Results
// land in a slice slot per checker, so no locking is needed.
func (e *Engine) runCheckers(ctx context.Context, in checkers.Input) ([]types.CheckerResult, error) {
	results := make([]types.CheckerResult, len(e.checkers), len(e.checkers)+2)
	g, gctx := errgroup.WithContext(ctx)
	for i, chk := range e.checkers {
		i, chk := i, chk
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = chk.Evaluate(in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running checkers: %w", err)
	}
	return results, nil
}
