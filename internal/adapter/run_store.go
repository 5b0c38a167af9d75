package adapter

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

const runsTable = "runs"

// ErrStoreClosed is returned by a store used after Close.
var ErrStoreClosed = errors.New("run store is closed")

// RunStore persists the runs played against a level so coverage can be
// re-aggregated across sessions.
type RunStore interface {
	SaveRun(ctx context.Context, entry m.RunEntry) (m.RunEntry, error)
	// LoadRuns returns the runs for levelKey, oldest first.
	LoadRuns(ctx context.Context, levelKey string) ([]m.RunEntry, error)
	ClearRuns(ctx context.Context, levelKey string) error
	Close() error
}

// SQLiteRunStore keeps run history in a sqlite database.
type SQLiteRunStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteRunStore opens (creating when needed) the database at path and
// ensures the schema exists. The parent directory is created too.
func OpenSQLiteRunStore(path string) (*SQLiteRunStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// A single connection keeps :memory: databases shared across calls.
	db.SetMaxOpenConns(1)

	store := &SQLiteRunStore{db: db, now: time.Now}
	if err := store.createTable(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteRunStore) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + runsTable + ` (
		id TEXT PRIMARY KEY,
		level_key TEXT NOT NULL,
		function TEXT NOT NULL,
		stubs TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		coverage TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS runs_level_key ON ` + runsTable + ` (level_key, created_at);`

	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}

	return nil
}

// SaveRun stores entry, assigning an id and timestamp when missing, and
// returns the stored entry.
func (s *SQLiteRunStore) SaveRun(ctx context.Context, entry m.RunEntry) (m.RunEntry, error) {
	if s.db == nil {
		return m.RunEntry{}, ErrStoreClosed
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	stubs, err := json.Marshal(entry.Stubs)
	if err != nil {
		return m.RunEntry{}, fmt.Errorf("failed to encode stubs: %w", err)
	}

	coverage, err := json.Marshal(entry.Coverage)
	if err != nil {
		return m.RunEntry{}, fmt.Errorf("failed to encode coverage: %w", err)
	}

	const insertSQL = `
	INSERT INTO ` + runsTable + ` (id, level_key, function, stubs, error, coverage, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);`

	_, err = s.db.ExecContext(ctx, insertSQL,
		entry.ID, entry.LevelKey, entry.Function, string(stubs), entry.Error, string(coverage),
		entry.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return m.RunEntry{}, fmt.Errorf("failed to insert run for %s: %w", entry.LevelKey, err)
	}

	return entry, nil
}

// LoadRuns implements RunStore.
func (s *SQLiteRunStore) LoadRuns(ctx context.Context, levelKey string) ([]m.RunEntry, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	const selectSQL = `
	SELECT id, level_key, function, stubs, error, coverage, created_at
	FROM ` + runsTable + `
	WHERE level_key = ?
	ORDER BY created_at ASC, rowid ASC;`

	rows, err := s.db.QueryContext(ctx, selectSQL, levelKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var entries []m.RunEntry

	for rows.Next() {
		var (
			entry     m.RunEntry
			stubs     string
			coverage  string
			createdAt string
		)

		if err := rows.Scan(&entry.ID, &entry.LevelKey, &entry.Function, &stubs, &entry.Error, &coverage, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if err := json.Unmarshal([]byte(stubs), &entry.Stubs); err != nil {
			return nil, fmt.Errorf("failed to decode stubs of run %s: %w", entry.ID, err)
		}

		if err := json.Unmarshal([]byte(coverage), &entry.Coverage); err != nil {
			return nil, fmt.Errorf("failed to decode coverage of run %s: %w", entry.ID, err)
		}

		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			entry.CreatedAt = ts
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return entries, nil
}

// ClearRuns deletes the history of one level.
func (s *SQLiteRunStore) ClearRuns(ctx context.Context, levelKey string) error {
	if s.db == nil {
		return ErrStoreClosed
	}

	const deleteSQL = `DELETE FROM ` + runsTable + ` WHERE level_key = ?;`

	if _, err := s.db.ExecContext(ctx, deleteSQL, levelKey); err != nil {
		return fmt.Errorf("failed to clear runs for %s: %w", levelKey, err)
	}

	return nil
}

// Close releases the database.
func (s *SQLiteRunStore) Close() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil

	return err
}

type nopRunStore struct{}

// NewNopRunStore returns a RunStore that remembers nothing, used when
// history is disabled.
func NewNopRunStore() RunStore {
	return nopRunStore{}
}

func (nopRunStore) SaveRun(_ context.Context, entry m.RunEntry) (m.RunEntry, error) {
	return entry, nil
}

func (nopRunStore) LoadRuns(context.Context, string) ([]m.RunEntry, error) {
	return nil, nil
}

func (nopRunStore) ClearRuns(context.Context, string) error {
	return nil
}

func (nopRunStore) Close() error {
	return nil
}
