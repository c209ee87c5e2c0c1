package dictionary

import (
	"context"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// CompoundStore is the storage surface the dynamic resolver depends on.
// Satisfied by the store package.
type CompoundStore interface {
	FindCompoundByText(ctx context.Context, text string) (*model.CompoundEntry, error)
}

// EntryStore is the storage surface the store-backed provider depends on.
type EntryStore interface {
	GetDictionaryEntries(ctx context.Context) ([]model.DictionaryEntry, error)
	GetCompoundEntries(ctx context.Context) ([]model.CompoundEntry, error)
}

// StoreProvider adapts the store to the Provider interface.
type StoreProvider struct {
	store EntryStore
}

// NewStoreProvider wraps a store as a dictionary provider.
func NewStoreProvider(store EntryStore) *StoreProvider {
	return &StoreProvider{store: store}
}

// Entries returns the active dictionary entries from the store.
func (p *StoreProvider) Entries(ctx context.Context) ([]model.DictionaryEntry, error) {
	return p.store.GetDictionaryEntries(ctx)
}

// CompoundEntries returns the curated compound decompositions.
func (p *StoreProvider) CompoundEntries(ctx context.Context) ([]model.CompoundEntry, error) {
	return p.store.GetCompoundEntries(ctx)
}

// StoreBacked resolves compounds against previously curated rows in the
// store. Lookups may fail when storage is unreachable; the chain treats that
// as a miss.
type StoreBacked struct {
	store CompoundStore
}

// NewStoreBacked wraps a compound store as a chain resolver.
func NewStoreBacked(store CompoundStore) *StoreBacked {
	return &StoreBacked{store: store}
}

// FindCompound delegates to the store's fuzzy lookup.
func (s *StoreBacked) FindCompound(ctx context.Context, text string) (*model.CompoundEntry, error) {
	return s.store.FindCompoundByText(ctx, text)
}

// Source identifies store matches as curated db hits.
func (s *StoreBacked) Source() model.DecompositionSource {
	return model.DecompSourceDB
}
