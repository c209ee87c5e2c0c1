package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/db"
	"github.com/growthdesk/clinic-intel/internal/grading"
	"github.com/growthdesk/clinic-intel/internal/model"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool  db.Pool
	close func()
}

// NewPostgres connects to the given database URL.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, close: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, close: func() {}}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS dictionary_entries (
	id             UUID PRIMARY KEY,
	standard_name  TEXT NOT NULL UNIQUE,
	category       TEXT NOT NULL DEFAULT '',
	base_unit_type TEXT NOT NULL DEFAULT '',
	aliases        TEXT[] NOT NULL DEFAULT '{}',
	active         BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS compound_entries (
	id            UUID PRIMARY KEY,
	compound_name TEXT NOT NULL UNIQUE,
	decomposed_to TEXT[] NOT NULL DEFAULT '{}',
	scoring_note  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS compound_candidates (
	id              UUID PRIMARY KEY,
	raw_text        TEXT NOT NULL UNIQUE,
	inferred        TEXT[],
	confidence      DOUBLE PRECISION NOT NULL DEFAULT 0,
	discovery_count INTEGER NOT NULL DEFAULT 1,
	first_entity_id TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT 'pending',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS entities (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	district      TEXT NOT NULL DEFAULT '',
	lat           DOUBLE PRECISION NOT NULL DEFAULT 0,
	lon           DOUBLE PRECISION NOT NULL DEFAULT 0,
	contact_email TEXT NOT NULL DEFAULT '',
	data_quality  INTEGER NOT NULL DEFAULT 0,
	active        BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS equipment (
	entity_id    TEXT NOT NULL REFERENCES entities(id),
	name         TEXT NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	install_year INTEGER
);

CREATE TABLE IF NOT EXISTS menu_items (
	entity_id TEXT NOT NULL REFERENCES entities(id),
	name      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS weight_sets (
	id                 UUID PRIMARY KEY,
	version            TEXT NOT NULL,
	equipment_synergy  INTEGER NOT NULL,
	equipment_age      INTEGER NOT NULL,
	revenue_impact     INTEGER NOT NULL,
	competitive_edge   INTEGER NOT NULL,
	purchase_readiness INTEGER NOT NULL,
	active             BOOLEAN NOT NULL DEFAULT FALSE,
	activated_at       TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS match_scores (
	id          UUID PRIMARY KEY,
	entity_id   TEXT NOT NULL,
	product_id  TEXT NOT NULL,
	total_score INTEGER NOT NULL,
	grade       TEXT NOT NULL,
	pitch_points TEXT[],
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sales_signals (
	id               UUID PRIMARY KEY,
	entity_id        TEXT NOT NULL,
	product_id       TEXT NOT NULL,
	signal_type      TEXT NOT NULL,
	priority         INTEGER NOT NULL DEFAULT 0,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	related_angle    TEXT NOT NULL DEFAULT '',
	source_change_id TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'NEW',
	detected_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS leads (
	id             UUID PRIMARY KEY,
	entity_id      TEXT NOT NULL,
	product_id     TEXT NOT NULL,
	match_score_id TEXT NOT NULL DEFAULT '',
	grade          TEXT NOT NULL,
	priority       INTEGER NOT NULL,
	contact_email  TEXT NOT NULL,
	interest_level TEXT NOT NULL DEFAULT 'cold',
	stage          TEXT NOT NULL DEFAULT 'new',
	note           TEXT NOT NULL DEFAULT '',
	emails_sent    INTEGER NOT NULL DEFAULT 0,
	emails_opened  INTEGER NOT NULL DEFAULT 0,
	replies        INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (entity_id, product_id)
);

CREATE TABLE IF NOT EXISTS lead_activities (
	id         UUID PRIMARY KEY,
	lead_id    UUID NOT NULL REFERENCES leads(id),
	kind       TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_entities_district ON entities(district) WHERE active;
CREATE INDEX IF NOT EXISTS idx_equipment_entity ON equipment(entity_id);
CREATE INDEX IF NOT EXISTS idx_menu_items_entity ON menu_items(entity_id);
CREATE INDEX IF NOT EXISTS idx_signals_entity ON sales_signals(entity_id);
CREATE INDEX IF NOT EXISTS idx_leads_entity_product ON leads(entity_id, product_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.close()
	return nil
}

func (s *PostgresStore) GetDictionaryEntries(ctx context.Context) ([]model.DictionaryEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, standard_name, category, base_unit_type, aliases
		FROM dictionary_entries
		WHERE active
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query dictionary entries")
	}
	defer rows.Close()

	var entries []model.DictionaryEntry
	for rows.Next() {
		var e model.DictionaryEntry
		if err := rows.Scan(&e.ID, &e.StandardName, &e.Category, &e.BaseUnitType, &e.Aliases); err != nil {
			return nil, eris.Wrap(err, "postgres: scan dictionary entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate dictionary entries")
	}
	return entries, nil
}

func (s *PostgresStore) GetCompoundEntries(ctx context.Context) ([]model.CompoundEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, compound_name, decomposed_to, scoring_note
		FROM compound_entries
		ORDER BY compound_name
	`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query compound entries")
	}
	defer rows.Close()

	var entries []model.CompoundEntry
	for rows.Next() {
		var e model.CompoundEntry
		if err := rows.Scan(&e.ID, &e.CompoundName, &e.DecomposedTo, &e.ScoringNote); err != nil {
			return nil, eris.Wrap(err, "postgres: scan compound entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate compound entries")
	}
	return entries, nil
}

func (s *PostgresStore) FindCompoundByText(ctx context.Context, text string) (*model.CompoundEntry, error) {
	var e model.CompoundEntry
	err := s.pool.QueryRow(ctx, `
		SELECT id, compound_name, decomposed_to, scoring_note
		FROM compound_entries
		WHERE $1 ILIKE '%' || compound_name || '%'
		   OR compound_name ILIKE '%' || $1 || '%'
		ORDER BY length(compound_name) DESC
		LIMIT 1
	`, text).Scan(&e.ID, &e.CompoundName, &e.DecomposedTo, &e.ScoringNote)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: find compound by text")
	}
	return &e, nil
}

func (s *PostgresStore) UpsertDictionaryEntries(ctx context.Context, entries []model.DictionaryEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: begin dictionary upsert")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var n int
	for _, e := range entries {
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO dictionary_entries (id, standard_name, category, base_unit_type, aliases)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (standard_name) DO UPDATE SET
				category = EXCLUDED.category,
				base_unit_type = EXCLUDED.base_unit_type,
				aliases = EXCLUDED.aliases,
				active = TRUE
		`, id, e.StandardName, e.Category, e.BaseUnitType, e.Aliases)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: upsert dictionary entry %s", e.StandardName)
		}
		n++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "postgres: commit dictionary upsert")
	}
	return n, nil
}

func (s *PostgresStore) UpsertCompoundEntries(ctx context.Context, entries []model.CompoundEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: begin compound upsert")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var n int
	for _, e := range entries {
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO compound_entries (id, compound_name, decomposed_to, scoring_note)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (compound_name) DO UPDATE SET
				decomposed_to = EXCLUDED.decomposed_to,
				scoring_note = EXCLUDED.scoring_note
		`, id, e.CompoundName, e.DecomposedTo, e.ScoringNote)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: upsert compound entry %s", e.CompoundName)
		}
		n++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "postgres: commit compound upsert")
	}
	return n, nil
}

// RecordCandidate upserts a compound candidate. The increment happens inside
// a single ON CONFLICT statement so concurrent workers never lose updates.
func (s *PostgresStore) RecordCandidate(ctx context.Context, rawText, originEntityID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO compound_candidates (id, raw_text, first_entity_id, status, discovery_count)
		VALUES ($1, $2, $3, 'pending', 1)
		ON CONFLICT (raw_text) DO UPDATE SET
			discovery_count = compound_candidates.discovery_count + 1
	`, uuid.New().String(), rawText, originEntityID)
	if err != nil {
		return eris.Wrapf(err, "postgres: record candidate %s", rawText)
	}
	return nil
}

func (s *PostgresStore) GetCandidate(ctx context.Context, rawText string) (*model.CompoundCandidate, error) {
	var c model.CompoundCandidate
	err := s.pool.QueryRow(ctx, `
		SELECT id, raw_text, inferred, confidence, discovery_count, first_entity_id, status, created_at
		FROM compound_candidates
		WHERE raw_text = $1
	`, rawText).Scan(&c.ID, &c.RawText, &c.Inferred, &c.Confidence, &c.DiscoveryCount, &c.FirstEntityID, &c.Status, &c.CreatedAt)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get candidate %s", rawText)
	}
	return &c, nil
}

func (s *PostgresStore) GetEntityLocation(ctx context.Context, entityID string) (*model.EntityLocation, error) {
	var e model.EntityLocation
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, district, lat, lon
		FROM entities
		WHERE id = $1 AND active
	`, entityID).Scan(&e.EntityID, &e.Name, &e.District, &e.Lat, &e.Lon)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get entity location %s", entityID)
	}
	return &e, nil
}

func (s *PostgresStore) ListActiveInDistrict(ctx context.Context, district, excludeID string) ([]model.EntityLocation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, district, lat, lon
		FROM entities
		WHERE district = $1 AND id <> $2 AND active
	`, district, excludeID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list district %s", district)
	}
	defer rows.Close()

	var entities []model.EntityLocation
	for rows.Next() {
		var e model.EntityLocation
		if err := rows.Scan(&e.EntityID, &e.Name, &e.District, &e.Lat, &e.Lon); err != nil {
			return nil, eris.Wrap(err, "postgres: scan entity")
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate entities")
	}
	return entities, nil
}

func (s *PostgresStore) GetTrackedEquipment(ctx context.Context, entityIDs []string, category string) ([]model.Equipment, error) {
	if len(entityIDs) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT entity_id, name, category, COALESCE(install_year, 0)
		FROM equipment
		WHERE entity_id = ANY($1) AND category = $2
	`, entityIDs, category)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query tracked equipment")
	}
	defer rows.Close()

	var equipment []model.Equipment
	for rows.Next() {
		var eq model.Equipment
		if err := rows.Scan(&eq.EntityID, &eq.Name, &eq.Category, &eq.InstallYear); err != nil {
			return nil, eris.Wrap(err, "postgres: scan equipment")
		}
		equipment = append(equipment, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate equipment")
	}
	return equipment, nil
}

func (s *PostgresStore) GetMenuCounts(ctx context.Context, entityIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(entityIDs) == 0 {
		return counts, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT entity_id, COUNT(*)
		FROM menu_items
		WHERE entity_id = ANY($1)
		GROUP BY entity_id
	`, entityIDs)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query menu counts")
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, eris.Wrap(err, "postgres: scan menu count")
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate menu counts")
	}
	return counts, nil
}

func (s *PostgresStore) GetContactEmail(ctx context.Context, entityID string) (string, error) {
	var email string
	err := s.pool.QueryRow(ctx, `SELECT contact_email FROM entities WHERE id = $1`, entityID).Scan(&email)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", eris.Wrapf(err, "postgres: get contact email %s", entityID)
	}
	return email, nil
}

func (s *PostgresStore) GetDataQuality(ctx context.Context, entityID string) (int, error) {
	var dq int
	err := s.pool.QueryRow(ctx, `SELECT data_quality FROM entities WHERE id = $1`, entityID).Scan(&dq)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, eris.Wrapf(err, "postgres: get data quality %s", entityID)
	}
	return dq, nil
}

// GetActiveWeights returns the active weight set, or the fixed default set
// (version "default") when none is active.
func (s *PostgresStore) GetActiveWeights(ctx context.Context) (model.WeightSet, string, error) {
	var w model.WeightSet
	var version string
	err := s.pool.QueryRow(ctx, `
		SELECT version, equipment_synergy, equipment_age, revenue_impact, competitive_edge, purchase_readiness
		FROM weight_sets
		WHERE active
		ORDER BY activated_at DESC
		LIMIT 1
	`).Scan(&version, &w.EquipmentSynergy, &w.EquipmentAge, &w.RevenueImpact, &w.CompetitiveEdge, &w.PurchaseReadiness)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return grading.DefaultWeights(), "default", nil
		}
		return model.WeightSet{}, "", eris.Wrap(err, "postgres: get active weights")
	}
	return w, version, nil
}

// ActivateWeights validates and activates a weight set, deactivating any
// previous one. Weight sets that do not sum to 100 are rejected outright.
func (s *PostgresStore) ActivateWeights(ctx context.Context, w model.WeightSet, version string) error {
	if err := grading.ValidateWeights(w); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin weight activation")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `UPDATE weight_sets SET active = FALSE WHERE active`); err != nil {
		return eris.Wrap(err, "postgres: deactivate weights")
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO weight_sets (id, version, equipment_synergy, equipment_age, revenue_impact, competitive_edge, purchase_readiness, active, activated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
	`, uuid.New().String(), version, w.EquipmentSynergy, w.EquipmentAge, w.RevenueImpact, w.CompetitiveEdge, w.PurchaseReadiness, time.Now().UTC())
	if err != nil {
		return eris.Wrapf(err, "postgres: insert weight set %s", version)
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: commit weight activation")
	}

	zap.L().Info("postgres: weight set activated", zap.String("version", version))
	return nil
}

func (s *PostgresStore) SaveMatchScore(ctx context.Context, ms *model.MatchScore) error {
	if ms.ID == "" {
		ms.ID = uuid.New().String()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO match_scores (id, entity_id, product_id, total_score, grade, pitch_points)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ms.ID, ms.EntityID, ms.ProductID, ms.TotalScore, string(ms.Grade), ms.TopPitchPoints)
	if err != nil {
		return eris.Wrapf(err, "postgres: save match score for entity %s", ms.EntityID)
	}
	return nil
}

func (s *PostgresStore) GetMatchScores(ctx context.Context, entityID string) ([]model.MatchScore, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, entity_id, product_id, total_score, grade, pitch_points
		FROM match_scores
		WHERE entity_id = $1
		ORDER BY created_at DESC
	`, entityID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query match scores for entity %s", entityID)
	}
	defer rows.Close()

	var scores []model.MatchScore
	for rows.Next() {
		var ms model.MatchScore
		var grade string
		if err := rows.Scan(&ms.ID, &ms.EntityID, &ms.ProductID, &ms.TotalScore, &grade, &ms.TopPitchPoints); err != nil {
			return nil, eris.Wrap(err, "postgres: scan match score")
		}
		ms.Grade = model.Grade(grade)
		scores = append(scores, ms)
	}
	return scores, rows.Err()
}

func (s *PostgresStore) InsertSignals(ctx context.Context, signals []model.SalesSignal) error {
	if len(signals) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin signal insert")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, sig := range signals {
		_, err := tx.Exec(ctx, `
			INSERT INTO sales_signals (id, entity_id, product_id, signal_type, priority, title, description, related_angle, source_change_id, status, detected_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, sig.ID, sig.EntityID, sig.ProductID, sig.SignalType, sig.Priority, sig.Title,
			sig.Description, sig.RelatedAngle, sig.SourceChangeID, string(sig.Status), sig.DetectedAt)
		if err != nil {
			return eris.Wrapf(err, "postgres: insert signal %s", sig.ID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: commit signal insert")
	}
	return nil
}

func (s *PostgresStore) FindLead(ctx context.Context, entityID, productID string) (*model.Lead, error) {
	var l model.Lead
	var grade string
	err := s.pool.QueryRow(ctx, `
		SELECT id, entity_id, product_id, match_score_id, grade, priority, contact_email,
		       interest_level, stage, note, emails_sent, emails_opened, replies, created_at
		FROM leads
		WHERE entity_id = $1 AND product_id = $2
	`, entityID, productID).Scan(
		&l.ID, &l.EntityID, &l.ProductID, &l.MatchScoreID, &grade, &l.Priority, &l.ContactEmail,
		&l.InterestLevel, &l.Stage, &l.Note, &l.EmailsSent, &l.EmailsOpened, &l.Replies, &l.CreatedAt,
	)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: find lead (%s, %s)", entityID, productID)
	}
	l.Grade = model.Grade(grade)
	return &l, nil
}

func (s *PostgresStore) InsertLead(ctx context.Context, lead *model.Lead) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO leads (id, entity_id, product_id, match_score_id, grade, priority, contact_email,
		                   interest_level, stage, note, emails_sent, emails_opened, replies, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, lead.ID, lead.EntityID, lead.ProductID, lead.MatchScoreID, string(lead.Grade), lead.Priority,
		lead.ContactEmail, lead.InterestLevel, lead.Stage, lead.Note,
		lead.EmailsSent, lead.EmailsOpened, lead.Replies, lead.CreatedAt)
	if err != nil {
		return eris.Wrapf(err, "postgres: insert lead (%s, %s)", lead.EntityID, lead.ProductID)
	}
	return nil
}

func (s *PostgresStore) InsertActivity(ctx context.Context, activity *model.LeadActivity) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO lead_activities (id, lead_id, kind, detail, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, activity.ID, activity.LeadID, activity.Kind, activity.Detail, activity.CreatedAt)
	if err != nil {
		return eris.Wrapf(err, "postgres: insert activity for lead %s", activity.LeadID)
	}
	return nil
}
