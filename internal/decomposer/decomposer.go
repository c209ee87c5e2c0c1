// Package decomposer splits composite treatment terms into their constituent
// canonical names. Resolution order: static compound dictionary, curated
// store rows, then a structural heuristic that only registers candidates.
package decomposer

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/growthdesk/clinic-intel/internal/dictionary"
	"github.com/growthdesk/clinic-intel/internal/model"
	"github.com/growthdesk/clinic-intel/internal/normalizer"
	"github.com/growthdesk/clinic-intel/internal/outcome"
)

// CandidateRegistry records compound candidates for later curation. A first
// sighting inserts a row with discovery count 1; repeat sightings increment
// the existing row. Implementations must make the upsert atomic.
type CandidateRegistry interface {
	RecordCandidate(ctx context.Context, rawText, originEntityID string) error
}

// Decomposer resolves composite terms through the dictionary chain and flags
// unresolved compound-like strings as candidates.
type Decomposer struct {
	chain    *dictionary.Chain
	registry CandidateRegistry // nil disables candidate registration
}

// New builds a Decomposer. registry may be nil when no store is configured.
func New(chain *dictionary.Chain, registry CandidateRegistry) *Decomposer {
	return &Decomposer{chain: chain, registry: registry}
}

// Decompose resolves one raw term. Storage faults never fail the call: the
// dynamic lookup degrades to a miss and candidate registration failures are
// swallowed, both reflected in the returned outcome.
func (d *Decomposer) Decompose(ctx context.Context, text, originEntityID string) (model.DecompositionResult, outcome.Outcome) {
	res := model.DecompositionResult{Original: text}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return res, outcome.Ok()
	}
	corrected := normalizer.Correct(trimmed)

	entry, source, out := d.chain.Resolve(ctx, corrected)
	if entry != nil {
		res.Decomposed = entry.DecomposedTo
		res.Source = source
		res.Confidence = 1
		res.ScoringNote = entry.ScoringNote
		return res, out
	}

	if looksCompound(corrected) {
		res.Source = model.DecompSourceCandidate
		if d.registry != nil {
			if err := d.registry.RecordCandidate(ctx, corrected, originEntityID); err != nil {
				zap.L().Warn("decomposer: candidate registration degraded",
					zap.String("raw_text", corrected),
					zap.Error(err),
				)
				out = outcome.Merge(out, outcome.Degraded(err))
			}
		}
		return res, out
	}

	return res, out
}

// BatchResult aggregates a DecomposeAll run. Results is sized to the input;
// NewCandidates lists the distinct raw texts flagged this run, in input order.
type BatchResult struct {
	Results       []model.DecompositionResult `json:"results"`
	NewCandidates []string                    `json:"new_candidates,omitempty"`
}

// DecomposeAll resolves a batch of terms. Per-item storage faults degrade
// silently; the batch never aborts and the result set is sized to the input.
func (d *Decomposer) DecomposeAll(ctx context.Context, texts []string, originEntityID string, workers int) (BatchResult, outcome.Outcome) {
	results := make([]model.DecompositionResult, len(texts))
	if len(texts) == 0 {
		return BatchResult{Results: results}, outcome.Ok()
	}
	if workers < 1 {
		workers = 1
	}

	outs := make([]outcome.Outcome, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, t := range texts {
		g.Go(func() error {
			results[i], outs[i] = d.Decompose(gctx, t, originEntityID)
			return nil
		})
	}
	_ = g.Wait() // per-item faults are carried in outs, never as errors

	out := outcome.Ok()
	seen := make(map[string]bool)
	var candidates []string
	for i, r := range results {
		out = outcome.Merge(out, outs[i])
		if r.Source == model.DecompSourceCandidate && !seen[r.Original] {
			seen[r.Original] = true
			candidates = append(candidates, r.Original)
		}
	}
	return BatchResult{Results: results, NewCandidates: candidates}, out
}
