package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/growthdesk/clinic-intel/internal/grading"
	"github.com/growthdesk/clinic-intel/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. String slices are
// stored as JSON text.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS dictionary_entries (
	id             TEXT PRIMARY KEY,
	standard_name  TEXT NOT NULL UNIQUE,
	category       TEXT NOT NULL DEFAULT '',
	base_unit_type TEXT NOT NULL DEFAULT '',
	aliases        TEXT NOT NULL DEFAULT '[]',
	active         INTEGER NOT NULL DEFAULT 1,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS compound_entries (
	id            TEXT PRIMARY KEY,
	compound_name TEXT NOT NULL UNIQUE,
	decomposed_to TEXT NOT NULL DEFAULT '[]',
	scoring_note  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS compound_candidates (
	id              TEXT PRIMARY KEY,
	raw_text        TEXT NOT NULL UNIQUE,
	inferred        TEXT,
	confidence      REAL NOT NULL DEFAULT 0,
	discovery_count INTEGER NOT NULL DEFAULT 1,
	first_entity_id TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT 'pending',
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS entities (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	district      TEXT NOT NULL DEFAULT '',
	lat           REAL NOT NULL DEFAULT 0,
	lon           REAL NOT NULL DEFAULT 0,
	contact_email TEXT NOT NULL DEFAULT '',
	data_quality  INTEGER NOT NULL DEFAULT 0,
	active        INTEGER NOT NULL DEFAULT 1
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
	id                 TEXT PRIMARY KEY,
	version            TEXT NOT NULL,
	equipment_synergy  INTEGER NOT NULL,
	equipment_age      INTEGER NOT NULL,
	revenue_impact     INTEGER NOT NULL,
	competitive_edge   INTEGER NOT NULL,
	purchase_readiness INTEGER NOT NULL,
	active             INTEGER NOT NULL DEFAULT 0,
	activated_at       DATETIME
);

CREATE TABLE IF NOT EXISTS match_scores (
	id           TEXT PRIMARY KEY,
	entity_id    TEXT NOT NULL,
	product_id   TEXT NOT NULL,
	total_score  INTEGER NOT NULL,
	grade        TEXT NOT NULL,
	pitch_points TEXT,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS sales_signals (
	id               TEXT PRIMARY KEY,
	entity_id        TEXT NOT NULL,
	product_id       TEXT NOT NULL,
	signal_type      TEXT NOT NULL,
	priority         INTEGER NOT NULL DEFAULT 0,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	related_angle    TEXT NOT NULL DEFAULT '',
	source_change_id TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'NEW',
	detected_at      DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS leads (
	id             TEXT PRIMARY KEY,
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
	created_at     DATETIME NOT NULL,
	UNIQUE (entity_id, product_id)
);

CREATE TABLE IF NOT EXISTS lead_activities (
	id         TEXT PRIMARY KEY,
	lead_id    TEXT NOT NULL REFERENCES leads(id),
	kind       TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entities_district ON entities(district);
CREATE INDEX IF NOT EXISTS idx_equipment_entity ON equipment(entity_id);
CREATE INDEX IF NOT EXISTS idx_menu_items_entity ON menu_items(entity_id);
CREATE INDEX IF NOT EXISTS idx_signals_entity ON sales_signals(entity_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func marshalStrings(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal string list")
	}
	return string(b), nil
}

func unmarshalStrings(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var ss []string
	if err := json.Unmarshal([]byte(raw), &ss); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal string list")
	}
	if len(ss) == 0 {
		return nil, nil
	}
	return ss, nil
}

func (s *SQLiteStore) GetDictionaryEntries(ctx context.Context) ([]model.DictionaryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, standard_name, category, base_unit_type, aliases
		FROM dictionary_entries
		WHERE active = 1
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query dictionary entries")
	}
	defer rows.Close()

	var entries []model.DictionaryEntry
	for rows.Next() {
		var e model.DictionaryEntry
		var aliases string
		if err := rows.Scan(&e.ID, &e.StandardName, &e.Category, &e.BaseUnitType, &aliases); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan dictionary entry")
		}
		if e.Aliases, err = unmarshalStrings(aliases); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: iterate dictionary entries")
}

func (s *SQLiteStore) GetCompoundEntries(ctx context.Context) ([]model.CompoundEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, compound_name, decomposed_to, scoring_note
		FROM compound_entries
		ORDER BY compound_name
	`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query compound entries")
	}
	defer rows.Close()

	var entries []model.CompoundEntry
	for rows.Next() {
		var e model.CompoundEntry
		var decomposed string
		if err := rows.Scan(&e.ID, &e.CompoundName, &decomposed, &e.ScoringNote); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan compound entry")
		}
		if e.DecomposedTo, err = unmarshalStrings(decomposed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: iterate compound entries")
}

func (s *SQLiteStore) FindCompoundByText(ctx context.Context, text string) (*model.CompoundEntry, error) {
	var e model.CompoundEntry
	var decomposed string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, compound_name, decomposed_to, scoring_note
		FROM compound_entries
		WHERE instr(lower(?), lower(compound_name)) > 0
		   OR instr(lower(compound_name), lower(?)) > 0
		ORDER BY length(compound_name) DESC
		LIMIT 1
	`, text, text).Scan(&e.ID, &e.CompoundName, &decomposed, &e.ScoringNote)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "sqlite: find compound by text")
	}
	if e.DecomposedTo, err = unmarshalStrings(decomposed); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) UpsertDictionaryEntries(ctx context.Context, entries []model.DictionaryEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin dictionary upsert")
	}
	defer tx.Rollback() //nolint:errcheck

	var n int
	for _, e := range entries {
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}
		aliases, err := marshalStrings(e.Aliases)
		if err != nil {
			return 0, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO dictionary_entries (id, standard_name, category, base_unit_type, aliases)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (standard_name) DO UPDATE SET
				category = excluded.category,
				base_unit_type = excluded.base_unit_type,
				aliases = excluded.aliases,
				active = 1
		`, id, e.StandardName, e.Category, e.BaseUnitType, aliases)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert dictionary entry %s", e.StandardName)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit dictionary upsert")
	}
	return n, nil
}

func (s *SQLiteStore) UpsertCompoundEntries(ctx context.Context, entries []model.CompoundEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin compound upsert")
	}
	defer tx.Rollback() //nolint:errcheck

	var n int
	for _, e := range entries {
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}
		decomposed, err := marshalStrings(e.DecomposedTo)
		if err != nil {
			return 0, err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO compound_entries (id, compound_name, decomposed_to, scoring_note)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (compound_name) DO UPDATE SET
				decomposed_to = excluded.decomposed_to,
				scoring_note = excluded.scoring_note
		`, id, e.CompoundName, decomposed, e.ScoringNote)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert compound entry %s", e.CompoundName)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit compound upsert")
	}
	return n, nil
}

func (s *SQLiteStore) RecordCandidate(ctx context.Context, rawText, originEntityID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compound_candidates (id, raw_text, first_entity_id, status, discovery_count)
		VALUES (?, ?, ?, 'pending', 1)
		ON CONFLICT (raw_text) DO UPDATE SET
			discovery_count = discovery_count + 1
	`, uuid.New().String(), rawText, originEntityID)
	if err != nil {
		return eris.Wrapf(err, "sqlite: record candidate %s", rawText)
	}
	return nil
}

func (s *SQLiteStore) GetCandidate(ctx context.Context, rawText string) (*model.CompoundCandidate, error) {
	var c model.CompoundCandidate
	var inferred sql.NullString
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, raw_text, inferred, confidence, discovery_count, first_entity_id, status, created_at
		FROM compound_candidates
		WHERE raw_text = ?
	`, rawText).Scan(&c.ID, &c.RawText, &inferred, &c.Confidence, &c.DiscoveryCount, &c.FirstEntityID, &status, &c.CreatedAt)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get candidate %s", rawText)
	}
	c.Status = model.CandidateStatus(status)
	if inferred.Valid {
		if c.Inferred, err = unmarshalStrings(inferred.String); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (s *SQLiteStore) GetEntityLocation(ctx context.Context, entityID string) (*model.EntityLocation, error) {
	var e model.EntityLocation
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, district, lat, lon
		FROM entities
		WHERE id = ? AND active = 1
	`, entityID).Scan(&e.EntityID, &e.Name, &e.District, &e.Lat, &e.Lon)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: get entity location %s", entityID)
	}
	return &e, nil
}

func (s *SQLiteStore) ListActiveInDistrict(ctx context.Context, district, excludeID string) ([]model.EntityLocation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, district, lat, lon
		FROM entities
		WHERE district = ? AND id <> ? AND active = 1
	`, district, excludeID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list district %s", district)
	}
	defer rows.Close()

	var entities []model.EntityLocation
	for rows.Next() {
		var e model.EntityLocation
		if err := rows.Scan(&e.EntityID, &e.Name, &e.District, &e.Lat, &e.Lon); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan entity")
		}
		entities = append(entities, e)
	}
	return entities, eris.Wrap(rows.Err(), "sqlite: iterate entities")
}

// placeholders returns a comma-separated list of n "?" markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(entityIDs []string, extra ...any) []any {
	args := make([]any, 0, len(entityIDs)+len(extra))
	for _, id := range entityIDs {
		args = append(args, id)
	}
	return append(args, extra...)
}

func (s *SQLiteStore) GetTrackedEquipment(ctx context.Context, entityIDs []string, category string) ([]model.Equipment, error) {
	if len(entityIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT entity_id, name, category, COALESCE(install_year, 0)
		FROM equipment
		WHERE entity_id IN (` + placeholders(len(entityIDs)) + `) AND category = ?`
	rows, err := s.db.QueryContext(ctx, query, idArgs(entityIDs, category)...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query tracked equipment")
	}
	defer rows.Close()

	var equipment []model.Equipment
	for rows.Next() {
		var eq model.Equipment
		if err := rows.Scan(&eq.EntityID, &eq.Name, &eq.Category, &eq.InstallYear); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan equipment")
		}
		equipment = append(equipment, eq)
	}
	return equipment, eris.Wrap(rows.Err(), "sqlite: iterate equipment")
}

func (s *SQLiteStore) GetMenuCounts(ctx context.Context, entityIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(entityIDs) == 0 {
		return counts, nil
	}
	query := `
		SELECT entity_id, COUNT(*)
		FROM menu_items
		WHERE entity_id IN (` + placeholders(len(entityIDs)) + `)
		GROUP BY entity_id`
	rows, err := s.db.QueryContext(ctx, query, idArgs(entityIDs)...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query menu counts")
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan menu count")
		}
		counts[id] = count
	}
	return counts, eris.Wrap(rows.Err(), "sqlite: iterate menu counts")
}

func (s *SQLiteStore) GetContactEmail(ctx context.Context, entityID string) (string, error) {
	var email string
	err := s.db.QueryRowContext(ctx, `SELECT contact_email FROM entities WHERE id = ?`, entityID).Scan(&email)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", eris.Wrapf(err, "sqlite: get contact email %s", entityID)
	}
	return email, nil
}

func (s *SQLiteStore) GetDataQuality(ctx context.Context, entityID string) (int, error) {
	var dq int
	err := s.db.QueryRowContext(ctx, `SELECT data_quality FROM entities WHERE id = ?`, entityID).Scan(&dq)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, eris.Wrapf(err, "sqlite: get data quality %s", entityID)
	}
	return dq, nil
}

func (s *SQLiteStore) GetActiveWeights(ctx context.Context) (model.WeightSet, string, error) {
	var w model.WeightSet
	var version string
	err := s.db.QueryRowContext(ctx, `
		SELECT version, equipment_synergy, equipment_age, revenue_impact, competitive_edge, purchase_readiness
		FROM weight_sets
		WHERE active = 1
		ORDER BY activated_at DESC
		LIMIT 1
	`).Scan(&version, &w.EquipmentSynergy, &w.EquipmentAge, &w.RevenueImpact, &w.CompetitiveEdge, &w.PurchaseReadiness)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return grading.DefaultWeights(), "default", nil
		}
		return model.WeightSet{}, "", eris.Wrap(err, "sqlite: get active weights")
	}
	return w, version, nil
}

func (s *SQLiteStore) ActivateWeights(ctx context.Context, w model.WeightSet, version string) error {
	if err := grading.ValidateWeights(w); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin weight activation")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `UPDATE weight_sets SET active = 0 WHERE active = 1`); err != nil {
		return eris.Wrap(err, "sqlite: deactivate weights")
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO weight_sets (id, version, equipment_synergy, equipment_age, revenue_impact, competitive_edge, purchase_readiness, active, activated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)
	`, uuid.New().String(), version, w.EquipmentSynergy, w.EquipmentAge, w.RevenueImpact, w.CompetitiveEdge, w.PurchaseReadiness, time.Now().UTC())
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert weight set %s", version)
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit weight activation")
}

func (s *SQLiteStore) SaveMatchScore(ctx context.Context, ms *model.MatchScore) error {
	if ms.ID == "" {
		ms.ID = uuid.New().String()
	}
	pitch, err := marshalStrings(ms.TopPitchPoints)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_scores (id, entity_id, product_id, total_score, grade, pitch_points)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ms.ID, ms.EntityID, ms.ProductID, ms.TotalScore, string(ms.Grade), pitch)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save match score for entity %s", ms.EntityID)
	}
	return nil
}

func (s *SQLiteStore) GetMatchScores(ctx context.Context, entityID string) ([]model.MatchScore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entity_id, product_id, total_score, grade, pitch_points
		FROM match_scores
		WHERE entity_id = ?
		ORDER BY created_at DESC
	`, entityID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query match scores for entity %s", entityID)
	}
	defer rows.Close()

	var scores []model.MatchScore
	for rows.Next() {
		var ms model.MatchScore
		var grade, pitch string
		if err := rows.Scan(&ms.ID, &ms.EntityID, &ms.ProductID, &ms.TotalScore, &grade, &pitch); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan match score")
		}
		ms.Grade = model.Grade(grade)
		if ms.TopPitchPoints, err = unmarshalStrings(pitch); err != nil {
			return nil, err
		}
		scores = append(scores, ms)
	}
	return scores, rows.Err()
}

func (s *SQLiteStore) InsertSignals(ctx context.Context, signals []model.SalesSignal) error {
	if len(signals) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin signal insert")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, sig := range signals {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sales_signals (id, entity_id, product_id, signal_type, priority, title, description, related_angle, source_change_id, status, detected_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, sig.ID, sig.EntityID, sig.ProductID, sig.SignalType, sig.Priority, sig.Title,
			sig.Description, sig.RelatedAngle, sig.SourceChangeID, string(sig.Status), sig.DetectedAt)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert signal %s", sig.ID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit signal insert")
}

func (s *SQLiteStore) FindLead(ctx context.Context, entityID, productID string) (*model.Lead, error) {
	var l model.Lead
	var grade string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, entity_id, product_id, match_score_id, grade, priority, contact_email,
		       interest_level, stage, note, emails_sent, emails_opened, replies, created_at
		FROM leads
		WHERE entity_id = ? AND product_id = ?
	`, entityID, productID).Scan(
		&l.ID, &l.EntityID, &l.ProductID, &l.MatchScoreID, &grade, &l.Priority, &l.ContactEmail,
		&l.InterestLevel, &l.Stage, &l.Note, &l.EmailsSent, &l.EmailsOpened, &l.Replies, &l.CreatedAt,
	)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: find lead (%s, %s)", entityID, productID)
	}
	l.Grade = model.Grade(grade)
	return &l, nil
}

func (s *SQLiteStore) InsertLead(ctx context.Context, lead *model.Lead) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (id, entity_id, product_id, match_score_id, grade, priority, contact_email,
		                   interest_level, stage, note, emails_sent, emails_opened, replies, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, lead.ID, lead.EntityID, lead.ProductID, lead.MatchScoreID, string(lead.Grade), lead.Priority,
		lead.ContactEmail, lead.InterestLevel, lead.Stage, lead.Note,
		lead.EmailsSent, lead.EmailsOpened, lead.Replies, lead.CreatedAt)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert lead (%s, %s)", lead.EntityID, lead.ProductID)
	}
	return nil
}

func (s *SQLiteStore) InsertActivity(ctx context.Context, activity *model.LeadActivity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lead_activities (id, lead_id, kind, detail, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, activity.ID, activity.LeadID, activity.Kind, activity.Detail, activity.CreatedAt)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert activity for lead %s", activity.LeadID)
	}
	return nil
}
