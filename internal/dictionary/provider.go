// Package dictionary supplies canonical keyword and compound-word data to the
// normalization pipeline. Two provider implementations exist: a static
// in-memory table and the database-backed store, composed via a fallback
// chain so the consumers stay agnostic to where a mapping lives.
package dictionary

import (
	"context"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// Provider supplies the canonical keyword dictionary. Entries are read-mostly
// and treated as immutable per invocation.
type Provider interface {
	Entries(ctx context.Context) ([]model.DictionaryEntry, error)
	CompoundEntries(ctx context.Context) ([]model.CompoundEntry, error)
}

// CompoundResolver finds a compound-word decomposition for a raw term.
// A (nil, nil) return means "no match"; implementations backed by remote
// storage may also return an error, which the chain treats as a miss.
type CompoundResolver interface {
	FindCompound(ctx context.Context, text string) (*model.CompoundEntry, error)
	Source() model.DecompositionSource
}
