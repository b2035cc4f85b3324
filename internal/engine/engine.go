package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ai-bridge/backend/internal/engine/answers"
	"github.com/ai-bridge/backend/internal/engine/estimate"
	"github.com/ai-bridge/backend/internal/engine/match"
	"github.com/ai-bridge/backend/internal/engine/spec"
	"github.com/ai-bridge/backend/internal/engine/textsignal"
	"github.com/ai-bridge/backend/internal/metrics"
	"github.com/ai-bridge/backend/internal/storage/models"
	"github.com/ai-bridge/backend/pkg/logger"
)

// CatalogProvider supplies the read-only vendor catalog for a scoring run.
type CatalogProvider interface {
	ListVendors(ctx context.Context) ([]models.VendorRecord, error)
}

// Engine orchestrates the three pure leaves: cost estimation, vendor
// matching and completion tracking. Every snapshot is recomputed from
// scratch; the leaves hold no state between calls.
type Engine struct {
	rates    *estimate.RateTable
	sections []spec.SectionDef
	catalog  CatalogProvider
}

type Snapshot struct {
	Estimate  estimate.CostEstimate `json:"estimate"`
	Matches   []match.VendorMatch   `json:"matches"`
	Document  spec.Document         `json:"document"`
	LatencyMS int                   `json:"latency_ms"`
}

func NewEngine(rates *estimate.RateTable, sections []spec.SectionDef, catalog CatalogProvider) *Engine {
	return &Engine{
		rates:    rates,
		sections: sections,
		catalog:  catalog,
	}
}

// Snapshot recomputes the estimate, vendor ranking and completion document
// for the current answer set.
func (e *Engine) Snapshot(ctx context.Context, set answers.Set) (*Snapshot, error) {
	startTime := time.Now()

	vendors, err := e.catalog.ListVendors(ctx)
	if err != nil {
		metrics.SnapshotTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	// When no use cases are selected yet, fall back to tags extracted
	// from the problem description so early rankings are still useful.
	var fallbackTags []string
	if len(set.Categories(answers.QUseCases)) == 0 {
		if problem := set.Text(answers.QProblem); problem != "" {
			fallbackTags = textsignal.SuggestUseCases(problem)
			if len(fallbackTags) > 0 {
				logger.Debug("Use cases suggested from problem description",
					zap.Strings("tags", fallbackTags),
				)
			}
		}
	}

	est := estimate.Estimate(set, e.rates)
	matches := match.RankWithFallbackTags(set, fallbackTags, vendors)
	doc := spec.Track(set, e.sections)

	latency := int(time.Since(startTime).Milliseconds())

	metrics.SnapshotTotal.WithLabelValues("success").Inc()
	metrics.SnapshotDuration.Observe(time.Since(startTime).Seconds())
	metrics.ConfidenceLevel.Observe(float64(est.ConfidenceLevel))
	for _, m := range matches {
		metrics.MatchScore.Observe(float64(m.MatchScore))
	}

	logger.Debug("Snapshot computed",
		zap.Int("answered", set.AnsweredCount()),
		zap.Int("vendors", len(vendors)),
		zap.Int("confidence", est.ConfidenceLevel),
		zap.Int("completion_rate", doc.CompletionRate),
		zap.Int("latency_ms", latency),
	)

	return &Snapshot{
		Estimate:  est,
		Matches:   matches,
		Document:  doc,
		LatencyMS: latency,
	}, nil
}

// Sections exposes the configured document layout for the questions
// endpoint.
func (e *Engine) Sections() []spec.SectionDef {
	out := make([]spec.SectionDef, len(e.sections))
	copy(out, e.sections)
	return out
}
