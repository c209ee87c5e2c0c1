package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/config"
	"github.com/growthdesk/clinic-intel/internal/model"
	"github.com/growthdesk/clinic-intel/internal/normalizer"
	"github.com/growthdesk/clinic-intel/internal/store"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// stubStore overrides only the methods the handlers reach. Anything else
// panics through the embedded nil interface, which would flag an untested
// code path immediately.
type stubStore struct {
	store.Store

	scores    []model.MatchScore
	scoresErr error

	loc       *model.EntityLocation
	neighbors []model.EntityLocation
	equipment []model.Equipment
	menus     map[string]int

	inserted []model.SalesSignal
}

func (s *stubStore) GetMatchScores(_ context.Context, _ string) ([]model.MatchScore, error) {
	return s.scores, s.scoresErr
}

func (s *stubStore) GetEntityLocation(_ context.Context, _ string) (*model.EntityLocation, error) {
	return s.loc, nil
}

func (s *stubStore) ListActiveInDistrict(_ context.Context, _, _ string) ([]model.EntityLocation, error) {
	return s.neighbors, nil
}

func (s *stubStore) GetTrackedEquipment(_ context.Context, _ []string, _ string) ([]model.Equipment, error) {
	return s.equipment, nil
}

func (s *stubStore) GetMenuCounts(_ context.Context, _ []string) (map[string]int, error) {
	return s.menus, nil
}

func (s *stubStore) InsertSignals(_ context.Context, signals []model.SalesSignal) error {
	s.inserted = append(s.inserted, signals...)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Normalizer: config.NormalizerConfig{Workers: 2},
		Competitor: config.CompetitorConfig{RadiusKm: 1.0, RecencyYears: 3, TrackedCategory: "HIFU_RF"},
		Server:     config.ServerConfig{Port: 8080, RatePerSecond: 1000, RateBurst: 1000},
	}
}

func newTestServer(st *stubStore) http.Handler {
	norm := normalizer.New([]model.DictionaryEntry{
		{ID: "d1", StandardName: "써마지", Category: "RF", BaseUnitType: "샷", Aliases: []string{"thermage", "써마지FLX"}},
		{ID: "d2", StandardName: "울쎄라", Category: "HIFU", BaseUnitType: "샷", Aliases: []string{"ulthera"}},
	})
	return New(st, norm, testConfig()).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestHealth(t *testing.T) {
	h := newTestServer(&stubStore{})

	var resp map[string]string
	rec := doJSON(t, h, http.MethodGet, "/health", "", &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestNormalize(t *testing.T) {
	h := newTestServer(&stubStore{})

	var resp normalizer.BatchResult
	rec := doJSON(t, h, http.MethodPost, "/normalize", `{"texts":["thermage","없는시술"]}`, &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "써마지", resp.Items[0].StandardName)
	assert.Empty(t, resp.Items[1].StandardName)
	assert.InDelta(t, 0.5, resp.MatchRate, 1e-9)
	assert.Len(t, resp.Unmatched, 1)
}

func TestNormalize_BadRequest(t *testing.T) {
	h := newTestServer(&stubStore{})

	rec := doJSON(t, h, http.MethodPost, "/normalize", `{"texts":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/normalize", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScores(t *testing.T) {
	st := &stubStore{scores: []model.MatchScore{
		{ID: "ms-1", EntityID: "ent-1", ProductID: "prod-1", TotalScore: 82, Grade: model.GradeS},
	}}
	h := newTestServer(st)

	var resp []model.MatchScore
	rec := doJSON(t, h, http.MethodGet, "/entities/ent-1/score", "", &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp, 1)
	assert.Equal(t, 82, resp[0].TotalScore)
	assert.Equal(t, model.GradeS, resp[0].Grade)
}

func TestScores_NotFound(t *testing.T) {
	h := newTestServer(&stubStore{})

	rec := doJSON(t, h, http.MethodGet, "/entities/ent-none/score", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompetitors(t *testing.T) {
	st := &stubStore{
		loc: &model.EntityLocation{EntityID: "ent-1", Name: "강남클리닉", District: "강남구", Lat: 37.4979, Lon: 127.0276},
		neighbors: []model.EntityLocation{
			{EntityID: "ent-2", Name: "신사의원", District: "강남구", Lat: 37.4989, Lon: 127.0276},
		},
		equipment: []model.Equipment{{EntityID: "ent-2", Name: "울쎄라", Category: "HIFU_RF", InstallYear: 2025}},
		menus:     map[string]int{"ent-2": 12},
	}
	h := newTestServer(st)

	var resp []model.CompetitorData
	rec := doJSON(t, h, http.MethodGet, "/entities/ent-1/competitors", "", &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp, 1)
	assert.Equal(t, "ent-2", resp[0].EntityID)
}

func TestCompetitors_NoLocation(t *testing.T) {
	h := newTestServer(&stubStore{})

	var resp []model.CompetitorData
	rec := doJSON(t, h, http.MethodGet, "/entities/ent-1/competitors", "", &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp)
}

func TestCompetitors_InvalidRadius(t *testing.T) {
	h := newTestServer(&stubStore{})

	rec := doJSON(t, h, http.MethodGet, "/entities/ent-1/competitors?radius=-2", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/entities/ent-1/competitors?radius=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassify(t *testing.T) {
	st := &stubStore{}
	h := newTestServer(st)

	body := `{
		"product_id": "prod-1",
		"rules": [{
			"trigger": "equipment_added",
			"match_keywords": ["울쎄라"],
			"priority": 90,
			"title_template": "{{item_name}} 신규 도입",
			"description_template": "{{item_name}} 도입 감지"
		}],
		"changes": [{
			"id": "chg-1",
			"entity_id": "ent-1",
			"item_type": "EQUIPMENT",
			"change_type": "ADDED",
			"item_name": "울쎄라"
		}]
	}`

	var resp struct {
		Signals  []model.SalesSignal `json:"signals"`
		Degraded bool                `json:"degraded"`
	}
	rec := doJSON(t, h, http.MethodPost, "/signals/classify", body, &resp)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Signals, 1)
	assert.Equal(t, "EQUIPMENT_ADDED", resp.Signals[0].SignalType)
	assert.Equal(t, "울쎄라 신규 도입", resp.Signals[0].Title)
	assert.False(t, resp.Degraded)
	assert.Len(t, st.inserted, 1)
}

func TestClassify_MissingProduct(t *testing.T) {
	h := newTestServer(&stubStore{})

	rec := doJSON(t, h, http.MethodPost, "/signals/classify", `{"rules":[],"changes":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RatePerSecond = 1
	cfg.Server.RateBurst = 2
	h := New(&stubStore{}, normalizer.New(nil), cfg).Router()

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Contains(t, codes[2:], http.StatusTooManyRequests)
}
