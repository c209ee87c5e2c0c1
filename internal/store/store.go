// Package store persists dictionaries, entities, scores, signals, and leads.
// Two drivers exist: postgres (pgx) and sqlite (modernc) for local use.
package store

import (
	"context"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// Store defines the persistence interface for the intelligence pipeline.
type Store interface {
	// Dictionary
	GetDictionaryEntries(ctx context.Context) ([]model.DictionaryEntry, error)
	GetCompoundEntries(ctx context.Context) ([]model.CompoundEntry, error)
	// FindCompoundByText returns a curated compound matching the text by
	// containment, or (nil, nil) when none matches.
	FindCompoundByText(ctx context.Context, text string) (*model.CompoundEntry, error)
	UpsertDictionaryEntries(ctx context.Context, entries []model.DictionaryEntry) (int, error)
	UpsertCompoundEntries(ctx context.Context, entries []model.CompoundEntry) (int, error)

	// Compound candidates. RecordCandidate is an atomic
	// increment-on-conflict upsert keyed by raw text.
	RecordCandidate(ctx context.Context, rawText, originEntityID string) error
	GetCandidate(ctx context.Context, rawText string) (*model.CompoundCandidate, error)

	// Entities
	GetEntityLocation(ctx context.Context, entityID string) (*model.EntityLocation, error)
	ListActiveInDistrict(ctx context.Context, district, excludeID string) ([]model.EntityLocation, error)
	GetTrackedEquipment(ctx context.Context, entityIDs []string, category string) ([]model.Equipment, error)
	GetMenuCounts(ctx context.Context, entityIDs []string) (map[string]int, error)
	GetContactEmail(ctx context.Context, entityID string) (string, error)
	GetDataQuality(ctx context.Context, entityID string) (int, error)

	// Weight configuration. GetActiveWeights falls back to the fixed
	// default set when none is active.
	GetActiveWeights(ctx context.Context) (model.WeightSet, string, error)
	ActivateWeights(ctx context.Context, w model.WeightSet, version string) error

	// Scores
	SaveMatchScore(ctx context.Context, ms *model.MatchScore) error
	// GetMatchScores returns an entity's saved scores, newest first.
	GetMatchScores(ctx context.Context, entityID string) ([]model.MatchScore, error)

	// Signals
	InsertSignals(ctx context.Context, signals []model.SalesSignal) error

	// Leads
	FindLead(ctx context.Context, entityID, productID string) (*model.Lead, error)
	InsertLead(ctx context.Context, lead *model.Lead) error
	InsertActivity(ctx context.Context, activity *model.LeadActivity) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
