package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"

	"github.com/ZanzyTHEbar/assert-lib"
	"github.com/google/uuid"
	_ "github.com/tursodatabase/go-libsql"
)

// PathSet is a named, persisted collection of normalized path values.
type PathSet struct {
	ID        uuid.UUID
	Name      string
	Timestamp time.Time
	Values    []paths.LocalPath
}

// SnapshotStore persists path sets so an indexed population can be rebuilt
// across runs. It stores only normalized values; re-normalization on load
// keeps the invariant even if the database was edited by hand.
type SnapshotStore struct {
	db            *sql.DB
	AssertHandler *assert.AssertHandler
}

// ConnectToDB opens a libsql database at the given DSN. A bare filesystem
// path is accepted and converted to a file: URL.
func ConnectToDB(dsn string) (*sql.DB, error) {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dsn, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", dsn, err)
	}
	return db, nil
}

// NewSnapshotStore opens or initializes the snapshot database at dsn.
func NewSnapshotStore(dsn string, assertHandler *assert.AssertHandler) (*SnapshotStore, error) {
	db, err := ConnectToDB(dsn)
	if err != nil {
		return nil, err
	}

	store := &SnapshotStore{db: db, AssertHandler: assertHandler}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// init sets up the snapshot tables.
func (s *SnapshotStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS path_sets (
		id TEXT PRIMARY KEY UNIQUE,
		name TEXT,
		time_stamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create path_sets table: %w", err)
	}

	_, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS path_set_members (
		set_id TEXT NOT NULL,
		value TEXT NOT NULL,
		is_abs INTEGER NOT NULL,
		PRIMARY KEY (set_id, value)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create path_set_members table: %w", err)
	}

	return nil
}

// SavePathSet persists the given values under a new set ID. Duplicate
// normalized values collapse into one member.
func (s *SnapshotStore) SavePathSet(name string, values []paths.LocalPath) (*PathSet, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be a no-op if transaction is committed

	set := PathSet{
		ID:        uuid.New(),
		Name:      name,
		Timestamp: time.Now(),
	}

	result, err := tx.Exec("INSERT INTO path_sets (id, name, time_stamp) VALUES (?, ?, ?)", set.ID, set.Name, set.Timestamp.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to insert path set: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected != 1 {
		return nil, fmt.Errorf("expected 1 row affected, got %d", rowsAffected)
	}

	seen := make(map[paths.LocalPath]struct{}, len(values))
	for _, p := range values {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		isAbs := 0
		if p.IsAbs() {
			isAbs = 1
		}
		if _, err := tx.Exec("INSERT INTO path_set_members (set_id, value, is_abs) VALUES (?, ?, ?)", set.ID, p.String(), isAbs); err != nil {
			return nil, fmt.Errorf("failed to insert path set member %s: %w", p, err)
		}
		set.Values = append(set.Values, p)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("Successfully saved path set", "id", set.ID, "name", set.Name, "members", len(set.Values))

	return &set, nil
}

// GetPathSet loads a path set with its members.
func (s *SnapshotStore) GetPathSet(id uuid.UUID) (*PathSet, error) {
	var set PathSet
	var stamp string
	err := s.db.QueryRow("SELECT id, name, time_stamp FROM path_sets WHERE id = ?", id).Scan(&set.ID, &set.Name, &stamp)
	if err != nil {
		return nil, fmt.Errorf("failed to load path set %s: %w", id, err)
	}
	if set.Timestamp, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
		return nil, fmt.Errorf("failed to parse path set timestamp: %w", err)
	}

	rows, err := s.db.Query("SELECT value FROM path_set_members WHERE set_id = ? ORDER BY value", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load path set members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan path set member: %w", err)
		}
		// Stored values are normalized; constructing through New keeps the
		// invariant even for rows edited outside this process.
		set.Values = append(set.Values, paths.New(value))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate path set members: %w", err)
	}

	return &set, nil
}

// LatestPathSet returns the most recently saved path set.
func (s *SnapshotStore) LatestPathSet() (*PathSet, error) {
	var id uuid.UUID
	err := s.db.QueryRow("SELECT id FROM path_sets ORDER BY time_stamp DESC LIMIT 1").Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest path set: %w", err)
	}
	return s.GetPathSet(id)
}

// ListPathSets returns all saved sets without their members.
func (s *SnapshotStore) ListPathSets() ([]PathSet, error) {
	rows, err := s.db.Query("SELECT id, name, time_stamp FROM path_sets ORDER BY time_stamp DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list path sets: %w", err)
	}
	defer rows.Close()

	var sets []PathSet
	for rows.Next() {
		var set PathSet
		var stamp string
		if err := rows.Scan(&set.ID, &set.Name, &stamp); err != nil {
			return nil, fmt.Errorf("failed to scan path set: %w", err)
		}
		if set.Timestamp, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
			return nil, fmt.Errorf("failed to parse path set timestamp: %w", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate path sets: %w", err)
	}

	return sets, nil
}

// DeletePathSet removes a set and its members.
func (s *SnapshotStore) DeletePathSet(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM path_set_members WHERE set_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete path set members: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM path_sets WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete path set: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("Deleted path set", "id", id)

	return nil
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
