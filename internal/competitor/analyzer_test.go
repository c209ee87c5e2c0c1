package competitor

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthdesk/clinic-intel/internal/model"
)

type fakeStore struct {
	locations  map[string]*model.EntityLocation
	inDistrict []model.EntityLocation
	equipment  []model.Equipment
	menuCounts map[string]int

	listErr error
}

func (f *fakeStore) GetEntityLocation(_ context.Context, entityID string) (*model.EntityLocation, error) {
	return f.locations[entityID], nil
}

func (f *fakeStore) ListActiveInDistrict(_ context.Context, _, excludeID string) ([]model.EntityLocation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.EntityLocation
	for _, loc := range f.inDistrict {
		if loc.EntityID != excludeID {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (f *fakeStore) GetTrackedEquipment(_ context.Context, entityIDs []string, category string) ([]model.Equipment, error) {
	ids := make(map[string]bool, len(entityIDs))
	for _, id := range entityIDs {
		ids[id] = true
	}
	var out []model.Equipment
	for _, eq := range f.equipment {
		if ids[eq.EntityID] && eq.Category == category {
			out = append(out, eq)
		}
	}
	return out, nil
}

func (f *fakeStore) GetMenuCounts(_ context.Context, _ []string) (map[string]int, error) {
	return f.menuCounts, nil
}

// Gangnam-area coordinates. Roughly 111m per 0.001 degree of latitude.
var target = model.EntityLocation{
	EntityID: "clinic-target",
	Name:     "타겟의원",
	District: "강남구",
	Lat:      37.4979,
	Lon:      127.0276,
}

func now() time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
}

func TestHaversine_ZeroDistance(t *testing.T) {
	assert.Zero(t, haversineMeters(target.Lat, target.Lon, target.Lat, target.Lon))
}

func TestHaversine_Symmetric(t *testing.T) {
	d1 := haversineMeters(37.4979, 127.0276, 37.5172, 127.0473)
	d2 := haversineMeters(37.5172, 127.0473, 37.4979, 127.0276)
	assert.InDelta(t, d1, d2, 1e-6)
	assert.Greater(t, d1, 0.0)
}

func TestHaversine_KnownDistance(t *testing.T) {
	// One degree of latitude is ~111.2km on a 6371km sphere.
	d := haversineMeters(37.0, 127.0, 38.0, 127.0)
	assert.InDelta(t, 111195, d, 100)
}

func TestFindCompetitors_SortsByDistance(t *testing.T) {
	st := &fakeStore{
		inDistrict: []model.EntityLocation{
			{EntityID: "far", Name: "멀리의원", District: "강남구", Lat: 37.5039, Lon: 127.0276},  // ~667m
			{EntityID: "near", Name: "가까이의원", District: "강남구", Lat: 37.4989, Lon: 127.0276}, // ~111m
		},
		menuCounts: map[string]int{"near": 12, "far": 30},
	}
	a := NewAnalyzer(st, "HIFU_RF", 3)

	result, err := a.FindCompetitors(context.Background(), target, 1.0, now())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "near", result[0].EntityID)
	assert.Equal(t, "far", result[1].EntityID)
	assert.Less(t, result[0].DistanceMeters, result[1].DistanceMeters)
	assert.Equal(t, 12, result[0].MenuItemCount)
}

func TestFindCompetitors_RadiusBoundary(t *testing.T) {
	st := &fakeStore{
		inDistrict: []model.EntityLocation{
			{EntityID: "inside", District: "강남구", Lat: 37.5039, Lon: 127.0276},  // ~667m
			{EntityID: "outside", District: "강남구", Lat: 37.5159, Lon: 127.0276}, // ~2km
		},
		menuCounts: map[string]int{},
	}
	a := NewAnalyzer(st, "HIFU_RF", 3)

	result, err := a.FindCompetitors(context.Background(), target, 1.0, now())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "inside", result[0].EntityID)
}

func TestFindCompetitors_ModernEquipment(t *testing.T) {
	st := &fakeStore{
		inDistrict: []model.EntityLocation{
			{EntityID: "modern", District: "강남구", Lat: 37.4989, Lon: 127.0276},
			{EntityID: "legacy", District: "강남구", Lat: 37.4969, Lon: 127.0276},
			{EntityID: "unknown-year", District: "강남구", Lat: 37.4999, Lon: 127.0276},
		},
		equipment: []model.Equipment{
			{EntityID: "modern", Name: "울쎄라", Category: "HIFU_RF", InstallYear: 2024},
			{EntityID: "legacy", Name: "슈링크", Category: "HIFU_RF", InstallYear: 2019},
			{EntityID: "unknown-year", Name: "리프테라", Category: "HIFU_RF", InstallYear: 0},
		},
		menuCounts: map[string]int{},
	}
	a := NewAnalyzer(st, "HIFU_RF", 3)

	result, err := a.FindCompetitors(context.Background(), target, 1.0, now())
	require.NoError(t, err)
	require.Len(t, result, 3)

	byID := make(map[string]model.CompetitorData)
	for _, cd := range result {
		byID[cd.EntityID] = cd
	}
	assert.True(t, byID["modern"].HasModernEquipment)
	assert.Equal(t, "울쎄라", byID["modern"].ModernEquipmentName)
	assert.False(t, byID["legacy"].HasModernEquipment, "2019 install is outside the 3 year window in 2026")
	assert.False(t, byID["unknown-year"].HasModernEquipment, "unknown install year is never modern")
}

func TestFindCompetitors_RecencyCutoffBoundary(t *testing.T) {
	st := &fakeStore{
		inDistrict: []model.EntityLocation{
			{EntityID: "edge", District: "강남구", Lat: 37.4989, Lon: 127.0276},
		},
		equipment: []model.Equipment{
			{EntityID: "edge", Name: "써마지", Category: "HIFU_RF", InstallYear: 2023},
		},
		menuCounts: map[string]int{},
	}
	a := NewAnalyzer(st, "HIFU_RF", 3)

	// In 2026 with a 3 year window the cutoff year is 2023 inclusive.
	result, err := a.FindCompetitors(context.Background(), target, 1.0, now())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].HasModernEquipment)
}

func TestFindCompetitors_NoDistrict(t *testing.T) {
	a := NewAnalyzer(&fakeStore{}, "HIFU_RF", 3)

	entity := target
	entity.District = ""
	result, err := a.FindCompetitors(context.Background(), entity, 1.0, now())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestFindCompetitors_NoCoordinates(t *testing.T) {
	a := NewAnalyzer(&fakeStore{}, "HIFU_RF", 3)

	entity := target
	entity.Lat, entity.Lon = 0, 0
	result, err := a.FindCompetitors(context.Background(), entity, 1.0, now())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestFindCompetitors_SkipsCandidatesWithoutCoordinates(t *testing.T) {
	st := &fakeStore{
		inDistrict: []model.EntityLocation{
			{EntityID: "no-coords", District: "강남구"},
		},
	}
	a := NewAnalyzer(st, "HIFU_RF", 3)

	result, err := a.FindCompetitors(context.Background(), target, 1.0, now())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestFindCompetitors_StoreError(t *testing.T) {
	st := &fakeStore{listErr: eris.New("db down")}
	a := NewAnalyzer(st, "HIFU_RF", 3)

	_, err := a.FindCompetitors(context.Background(), target, 1.0, now())
	assert.Error(t, err)
}

func TestFindCompetitorsByID_UnknownEntity(t *testing.T) {
	a := NewAnalyzer(&fakeStore{locations: map[string]*model.EntityLocation{}}, "HIFU_RF", 3)

	result, err := a.FindCompetitorsByID(context.Background(), "missing", 1.0, now())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestFindCompetitorsByID(t *testing.T) {
	st := &fakeStore{
		locations: map[string]*model.EntityLocation{"clinic-target": &target},
		inDistrict: []model.EntityLocation{
			target, // excluded by id
			{EntityID: "other", District: "강남구", Lat: 37.4989, Lon: 127.0276},
		},
		menuCounts: map[string]int{"other": 5},
	}
	a := NewAnalyzer(st, "HIFU_RF", 3)

	result, err := a.FindCompetitorsByID(context.Background(), "clinic-target", 0, now())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "other", result[0].EntityID)
}
