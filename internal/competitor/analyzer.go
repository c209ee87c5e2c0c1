// Package competitor analyzes same-district competitor density around a
// clinic entity, feeding the competitive-edge scoring axis.
package competitor

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// DefaultRadiusKm is the analysis radius when the caller passes none.
const DefaultRadiusKm = 1.0

// Analyzer finds nearby competitors and summarizes their equipment recency
// and treatment-menu size.
type Analyzer struct {
	store           Store
	trackedCategory string
	recencyYears    int
}

// NewAnalyzer builds an Analyzer. recencyYears is the window within the
// current calendar year for equipment to count as modern.
func NewAnalyzer(store Store, trackedCategory string, recencyYears int) *Analyzer {
	return &Analyzer{store: store, trackedCategory: trackedCategory, recencyYears: recencyYears}
}

// FindCompetitorsByID resolves the target entity's location and runs the
// analysis. An entity with unknown location yields an empty list, not an
// error.
func (a *Analyzer) FindCompetitorsByID(ctx context.Context, entityID string, radiusKm float64, now time.Time) ([]model.CompetitorData, error) {
	loc, err := a.store.GetEntityLocation(ctx, entityID)
	if err != nil {
		return nil, eris.Wrapf(err, "competitor: load entity %s", entityID)
	}
	if loc == nil {
		return nil, nil
	}
	return a.FindCompetitors(ctx, *loc, radiusKm, now)
}

// FindCompetitors returns active same-district entities within radiusKm of
// the target, sorted ascending by distance. Targets without known
// coordinates or district return an empty list.
func (a *Analyzer) FindCompetitors(ctx context.Context, entity model.EntityLocation, radiusKm float64, now time.Time) ([]model.CompetitorData, error) {
	if entity.District == "" || !entity.HasCoordinates() {
		return nil, nil
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	candidates, err := a.store.ListActiveInDistrict(ctx, entity.District, entity.EntityID)
	if err != nil {
		return nil, eris.Wrapf(err, "competitor: list district %s", entity.District)
	}

	type kept struct {
		loc  model.EntityLocation
		dist float64
	}
	var within []kept
	maxMeters := radiusKm * 1000
	for _, c := range candidates {
		if !c.HasCoordinates() {
			continue
		}
		d := haversineMeters(entity.Lat, entity.Lon, c.Lat, c.Lon)
		if d <= maxMeters {
			within = append(within, kept{loc: c, dist: d})
		}
	}
	if len(within) == 0 {
		return nil, nil
	}

	ids := make([]string, len(within))
	for i, k := range within {
		ids[i] = k.loc.EntityID
	}

	equipment, err := a.store.GetTrackedEquipment(ctx, ids, a.trackedCategory)
	if err != nil {
		return nil, eris.Wrap(err, "competitor: load tracked equipment")
	}
	modernByEntity := a.modernEquipment(equipment, now)

	menuCounts, err := a.store.GetMenuCounts(ctx, ids)
	if err != nil {
		return nil, eris.Wrap(err, "competitor: load menu counts")
	}

	results := make([]model.CompetitorData, len(within))
	for i, k := range within {
		cd := model.CompetitorData{
			EntityID:       k.loc.EntityID,
			Name:           k.loc.Name,
			DistanceMeters: int(math.Round(k.dist)),
			MenuItemCount:  menuCounts[k.loc.EntityID],
		}
		if name, ok := modernByEntity[k.loc.EntityID]; ok {
			cd.HasModernEquipment = true
			cd.ModernEquipmentName = name
		}
		results[i] = cd
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	zap.L().Debug("competitor: analysis complete",
		zap.String("entity_id", entity.EntityID),
		zap.Float64("radius_km", radiusKm),
		zap.Int("candidates", len(candidates)),
		zap.Int("within_radius", len(results)),
	)
	return results, nil
}

// modernEquipment returns the first modern equipment name per entity.
// Equipment is modern when its installation year falls within the recency
// window of the current calendar year; an unknown year is never modern.
func (a *Analyzer) modernEquipment(equipment []model.Equipment, now time.Time) map[string]string {
	cutoff := now.Year() - a.recencyYears
	modern := make(map[string]string)
	for _, eq := range equipment {
		if eq.InstallYear == 0 || eq.InstallYear < cutoff {
			continue
		}
		if _, ok := modern[eq.EntityID]; !ok {
			modern[eq.EntityID] = eq.Name
		}
	}
	return modern
}
