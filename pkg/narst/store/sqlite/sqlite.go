package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/memory"
	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Id and timestamp assignment happens in one transaction; a single
	// connection keeps writers serialized.
	db.SetMaxOpenConns(1)

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS beliefs (
	id INTEGER PRIMARY KEY,
	timestamp INTEGER NOT NULL,
	term TEXT NOT NULL,
	strength REAL NOT NULL,
	confidence REAL NOT NULL,
	usage_count INTEGER NOT NULL DEFAULT 0,
	embed_id INTEGER
);

CREATE INDEX IF NOT EXISTS beliefs_term ON beliefs(term);

CREATE TABLE IF NOT EXISTS counters (
	name TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);

INSERT OR IGNORE INTO counters (name, value) VALUES ('last_id', 0), ('current_timestamp', 0);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddBelief inserts a belief and advances the id and timestamp counters
func (s *sqliteStore) AddBelief(ctx context.Context, term string, tv nal.TruthValue, embedID *uint64) (store.Belief, error) {
	if term == "" {
		return store.Belief{}, fmt.Errorf("empty term: %w", internalerr.ErrInvalidInput)
	}

	if embedID != nil && *embedID > math.MaxInt64 {
		return store.Belief{}, fmt.Errorf("embed id %d exceeds sqlite integer range: %w", *embedID, internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Belief{}, err
	}
	defer tx.Rollback()

	id, err := readCounter(ctx, tx, "last_id")
	if err != nil {
		return store.Belief{}, err
	}
	ts, err := readCounter(ctx, tx, "current_timestamp")
	if err != nil {
		return store.Belief{}, err
	}

	var embed sql.NullInt64
	if embedID != nil {
		embed = sql.NullInt64{Int64: int64(*embedID), Valid: true}
	}

	const stmt = `
INSERT INTO beliefs (id, timestamp, term, strength, confidence, usage_count, embed_id)
VALUES (?, ?, ?, ?, ?, 0, ?);
`
	if _, err := tx.ExecContext(ctx, stmt, int64(id), int64(ts), term, tv.Strength(), tv.Confidence(), embed); err != nil {
		return store.Belief{}, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE counters SET value = value + 1 WHERE name IN ('last_id', 'current_timestamp')`); err != nil {
		return store.Belief{}, err
	}

	if err := tx.Commit(); err != nil {
		return store.Belief{}, err
	}

	b := store.Belief{ID: id, Timestamp: ts, Term: term, TV: tv}
	if embedID != nil {
		v := *embedID
		b.EmbedID = &v
	}
	return b, nil
}

// GetBelief returns a belief by id
func (s *sqliteStore) GetBelief(ctx context.Context, id uint64) (store.Belief, error) {
	row := s.db.QueryRowContext(ctx, selectBelief+` WHERE id = ?`, int64(id))
	b, err := scanBelief(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Belief{}, fmt.Errorf("belief %d: %w", id, internalerr.ErrNotFound)
	}
	return b, err
}

// FindBelief returns the most recent belief about term
func (s *sqliteStore) FindBelief(ctx context.Context, term string) (store.Belief, bool, error) {
	row := s.db.QueryRowContext(ctx, selectBelief+` WHERE term = ? ORDER BY id DESC LIMIT 1`, term)
	b, err := scanBelief(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Belief{}, false, nil
	}
	if err != nil {
		return store.Belief{}, false, err
	}
	return b, true, nil
}

// ListBeliefs returns beliefs in id order
func (s *sqliteStore) ListBeliefs(ctx context.Context, limit int) ([]store.Belief, error) {
	return listBeliefs(ctx, s.db, limit)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listBeliefs(ctx context.Context, q querier, limit int) ([]store.Belief, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := q.QueryContext(ctx, selectBelief+` ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Belief
	for rows.Next() {
		b, err := scanBelief(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// TouchBelief increments a belief's usage count
func (s *sqliteStore) TouchBelief(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE beliefs SET usage_count = usage_count + 1 WHERE id = ?`, int64(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("belief %d: %w", id, internalerr.ErrNotFound)
	}
	return nil
}

// Snapshot exports the database as a memory document
func (s *sqliteStore) Snapshot(ctx context.Context) (*memory.Memory, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	items, err := listBeliefs(ctx, tx, 0)
	if err != nil {
		return nil, err
	}
	lastID, err := readCounter(ctx, tx, "last_id")
	if err != nil {
		return nil, err
	}
	ts, err := readCounter(ctx, tx, "current_timestamp")
	if err != nil {
		return nil, err
	}

	mem := memory.New()
	mem.Items = append(mem.Items, items...)
	mem.LastID = lastID
	mem.CurrentTimestamp = ts
	return mem, nil
}

const selectBelief = `SELECT id, timestamp, term, strength, confidence, usage_count, embed_id FROM beliefs`

type scanner interface {
	Scan(dest ...any) error
}

func scanBelief(sc scanner) (store.Belief, error) {
	var (
		id, ts, usage        int64
		term                 string
		strength, confidence float64
		embed                sql.NullInt64
	)
	if err := sc.Scan(&id, &ts, &term, &strength, &confidence, &usage, &embed); err != nil {
		return store.Belief{}, err
	}

	tv, err := nal.NewTruthValue(strength, confidence)
	if err != nil {
		return store.Belief{}, fmt.Errorf("belief %d: %w", id, err)
	}

	b := store.Belief{
		ID:         uint64(id),
		Timestamp:  uint64(ts),
		Term:       term,
		TV:         tv,
		UsageCount: uint64(usage),
	}
	if embed.Valid {
		v := uint64(embed.Int64)
		b.EmbedID = &v
	}
	return b, nil
}

func readCounter(ctx context.Context, tx *sql.Tx, name string) (uint64, error) {
	var v int64
	if err := tx.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, name).Scan(&v); err != nil {
		return 0, fmt.Errorf("read counter %s: %w", name, err)
	}
	return uint64(v), nil
}
