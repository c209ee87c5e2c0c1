package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/grading"
	"github.com/growthdesk/clinic-intel/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewPostgresFromPool(pool), pool
}

func TestGetDictionaryEntries(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectQuery("SELECT id, standard_name, category, base_unit_type, aliases").
		WillReturnRows(pgxmock.NewRows([]string{"id", "standard_name", "category", "base_unit_type", "aliases"}).
			AddRow("id-1", "써마지", "RF_LIFTING", "shot", []string{"thermage"}).
			AddRow("id-2", "울쎄라", "HIFU_RF", "line", []string{"ulthera"}))

	entries, err := st.GetDictionaryEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "써마지", entries[0].StandardName)
	assert.Equal(t, []string{"ulthera"}, entries[1].Aliases)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestFindCompoundByText_NoMatch(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectQuery("FROM compound_entries").
		WithArgs("모르는말").
		WillReturnError(pgx.ErrNoRows)

	entry, err := st.FindCompoundByText(context.Background(), "모르는말")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestFindCompoundByText_Match(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectQuery("FROM compound_entries").
		WithArgs("울써마 이벤트").
		WillReturnRows(pgxmock.NewRows([]string{"id", "compound_name", "decomposed_to", "scoring_note"}).
			AddRow("id-1", "울써마", []string{"울쎄라", "써마지"}, ""))

	entry, err := st.FindCompoundByText(context.Background(), "울써마 이벤트")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, []string{"울쎄라", "써마지"}, entry.DecomposedTo)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRecordCandidate_UpsertIncrements(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectExec("INSERT INTO compound_candidates").
		WithArgs(pgxmock.AnyArg(), "슈링리쥬", "clinic-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := st.RecordCandidate(context.Background(), "슈링리쥬", "clinic-1")
	require.NoError(t, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestRecordCandidate_SQLHasAtomicIncrement(t *testing.T) {
	// The increment must live inside the upsert statement itself so
	// concurrent sightings never lose counts.
	st, pool := newMockStore(t)

	pool.ExpectExec(`ON CONFLICT \(raw_text\) DO UPDATE SET\s+discovery_count = compound_candidates.discovery_count \+ 1`).
		WithArgs(pgxmock.AnyArg(), "울써링", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, st.RecordCandidate(context.Background(), "울써링", ""))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestGetActiveWeights_FallsBackToDefault(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectQuery("FROM weight_sets").WillReturnError(pgx.ErrNoRows)

	w, version, err := st.GetActiveWeights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, grading.DefaultWeights(), w)
	assert.Equal(t, "default", version)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestGetActiveWeights_ActiveRow(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectQuery("FROM weight_sets").
		WillReturnRows(pgxmock.NewRows([]string{"version", "equipment_synergy", "equipment_age", "revenue_impact", "competitive_edge", "purchase_readiness"}).
			AddRow("q3-aggressive", 30, 15, 30, 15, 10))

	w, version, err := st.GetActiveWeights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "q3-aggressive", version)
	assert.Equal(t, 30, w.EquipmentSynergy)
	assert.Equal(t, 100, w.Sum())
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestActivateWeights_RejectsInvalidSum(t *testing.T) {
	st, pool := newMockStore(t)

	// No pool expectations: validation must reject before touching storage.
	err := st.ActivateWeights(context.Background(), model.WeightSet{EquipmentSynergy: 99}, "bad")
	assert.Error(t, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestActivateWeights_DeactivatesThenInserts(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectBegin()
	pool.ExpectExec("UPDATE weight_sets SET active = FALSE").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectExec("INSERT INTO weight_sets").
		WithArgs(pgxmock.AnyArg(), "v2", 25, 20, 30, 15, 10, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	err := st.ActivateWeights(context.Background(), grading.DefaultWeights(), "v2")
	require.NoError(t, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestSaveMatchScore_AssignsID(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectExec("INSERT INTO match_scores").
		WithArgs(pgxmock.AnyArg(), "clinic-1", "thermage-flx", 67, "A", []string(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ms := &model.MatchScore{EntityID: "clinic-1", ProductID: "thermage-flx", TotalScore: 67, Grade: model.GradeA}
	require.NoError(t, st.SaveMatchScore(context.Background(), ms))
	assert.NotEmpty(t, ms.ID)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestGetContactEmail_NoRow(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectQuery("SELECT contact_email FROM entities").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	email, err := st.GetContactEmail(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, email)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestFindLead_NoRow(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectQuery("FROM leads").
		WithArgs("clinic-1", "thermage-flx").
		WillReturnError(pgx.ErrNoRows)

	l, err := st.FindLead(context.Background(), "clinic-1", "thermage-flx")
	require.NoError(t, err)
	assert.Nil(t, l)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestInsertSignals_Transactional(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectBegin()
	pool.ExpectExec("INSERT INTO sales_signals").
		WithArgs("sig-1", "clinic-1", "thermage-flx", "EQUIPMENT_ADDED", 90,
			"title", "desc", "", "chg-1", "NEW", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	err := st.InsertSignals(context.Background(), []model.SalesSignal{{
		ID: "sig-1", EntityID: "clinic-1", ProductID: "thermage-flx",
		SignalType: "EQUIPMENT_ADDED", Priority: 90, Title: "title", Description: "desc",
		SourceChangeID: "chg-1", Status: model.SignalStatusNew, DetectedAt: time.Now(),
	}})
	require.NoError(t, err)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestInsertSignals_EmptyBatchIsNoOp(t *testing.T) {
	st, pool := newMockStore(t)

	require.NoError(t, st.InsertSignals(context.Background(), nil))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestGetTrackedEquipment_EmptyIDs(t *testing.T) {
	st, pool := newMockStore(t)

	equipment, err := st.GetTrackedEquipment(context.Background(), nil, "HIFU_RF")
	require.NoError(t, err)
	assert.Nil(t, equipment)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestUpsertDictionaryEntries(t *testing.T) {
	st, pool := newMockStore(t)

	pool.ExpectBegin()
	pool.ExpectExec("INSERT INTO dictionary_entries").
		WithArgs(pgxmock.AnyArg(), "써마지", "RF_LIFTING", "shot", []string{"thermage"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	n, err := st.UpsertDictionaryEntries(context.Background(), []model.DictionaryEntry{
		{StandardName: "써마지", Category: "RF_LIFTING", BaseUnitType: "shot", Aliases: []string{"thermage"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestMigrationCoversAllTables(t *testing.T) {
	for _, table := range []string{
		"dictionary_entries", "compound_entries", "compound_candidates",
		"entities", "equipment", "menu_items", "weight_sets",
		"match_scores", "sales_signals", "leads", "lead_activities",
	} {
		assert.Contains(t, postgresMigration, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, postgresMigration, "UNIQUE (entity_id, product_id)")
}
