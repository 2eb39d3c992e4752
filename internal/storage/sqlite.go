package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

const createGamesTable = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	snapshot   TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps snapshots as JSON text in an SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates an SQLite database file at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(createGamesTable); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(snap Snapshot) error {
	if err := validateID(snap.ID); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO games (id, snapshot, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		snap.ID, string(data), snap.UpdatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// Load implements Store.
func (s *SQLiteStore) Load(id string) (Snapshot, error) {
	var data string
	err := s.db.QueryRow("SELECT snapshot FROM games WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return Snapshot{}, errors.Wrapf(errors.ErrGameNotFound, "%q", id)
	}
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return Snapshot{}, errors.Wrapf(err, "decode game %q", id)
	}
	return snap, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(errors.ErrGameNotFound, "%q", id)
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query("SELECT id FROM games ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
