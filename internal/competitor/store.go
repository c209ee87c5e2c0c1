package competitor

import (
	"context"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// Store defines the entity reads the analyzer depends on. The equipment and
// menu lookups are batched by candidate-id set; implementations must not do
// per-candidate round trips.
type Store interface {
	// GetEntityLocation returns the location record for an entity, or
	// (nil, nil) when the entity or its coordinates are unknown.
	GetEntityLocation(ctx context.Context, entityID string) (*model.EntityLocation, error)

	// ListActiveInDistrict returns active entities in a district,
	// excluding the given entity id.
	ListActiveInDistrict(ctx context.Context, district, excludeID string) ([]model.EntityLocation, error)

	// GetTrackedEquipment returns equipment rows of the tracked category
	// for the given entity ids.
	GetTrackedEquipment(ctx context.Context, entityIDs []string, category string) ([]model.Equipment, error)

	// GetMenuCounts returns treatment-menu row counts keyed by entity id.
	// Entities with no menu rows may be absent from the map.
	GetMenuCounts(ctx context.Context, entityIDs []string) (map[string]int, error)
}
