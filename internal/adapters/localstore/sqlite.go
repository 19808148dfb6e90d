package localstore

import (
	"database/sql"
	"errors"
	"fmt"
)

// SqliteSlot is a SQL-backed key-value slot used as the session's
// durable local storage. One row per key, last writer wins.
type SqliteSlot struct {
	DB *sql.DB
}

func NewSqliteSlot(db *sql.DB) (*SqliteSlot, error) {
	if db == nil {
		return nil, errors.New("local slot: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS slot (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return nil, fmt.Errorf("local slot: init schema: %w", err)
	}

	return &SqliteSlot{DB: db}, nil
}

func (s *SqliteSlot) Get(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.New("get slot: key must not be empty")
	}

	var value []byte
	err := s.DB.QueryRow(`SELECT value FROM slot WHERE key = $1;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot: query key %q: %w", key, err)
	}

	return value, true, nil
}

func (s *SqliteSlot) Put(key string, value []byte) error {
	if key == "" {
		return errors.New("put slot: key must not be empty")
	}

	q := `
	INSERT INTO slot (key, value) VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
	`
	if _, err := s.DB.Exec(q, key, value); err != nil {
		return fmt.Errorf("put slot: upsert key %q: %w", key, err)
	}

	return nil
}

func (s *SqliteSlot) Delete(key string) error {
	if key == "" {
		return errors.New("delete slot: key must not be empty")
	}

	if _, err := s.DB.Exec(`DELETE FROM slot WHERE key = $1;`, key); err != nil {
		return fmt.Errorf("delete slot: key %q: %w", key, err)
	}

	return nil
}
