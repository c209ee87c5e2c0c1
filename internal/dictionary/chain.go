package dictionary

import (
	"context"

	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/model"
	"github.com/growthdesk/clinic-intel/internal/outcome"
)

// Chain resolves compound terms against an ordered list of resolvers,
// first hit wins. A resolver error is downgraded to a miss so that offline
// resolvers further down the chain keep the pipeline moving.
type Chain struct {
	resolvers []CompoundResolver
}

// NewChain builds a chain over the given resolvers, tried in order.
func NewChain(resolvers ...CompoundResolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Resolve returns the first matching compound entry along with the source of
// the resolver that produced it. The outcome is Degraded when any resolver
// failed before a match was found.
func (c *Chain) Resolve(ctx context.Context, text string) (*model.CompoundEntry, model.DecompositionSource, outcome.Outcome) {
	out := outcome.Ok()
	for _, r := range c.resolvers {
		entry, err := r.FindCompound(ctx, text)
		if err != nil {
			zap.L().Warn("dictionary: compound lookup degraded",
				zap.String("source", string(r.Source())),
				zap.Error(err),
			)
			out = outcome.Merge(out, outcome.Degraded(err))
			continue
		}
		if entry != nil {
			return entry, r.Source(), out
		}
	}
	return nil, "", out
}
