// Package sqlite backs the profile store with a single key-value table in a
// local SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// KVStore is a SQLite-backed key-value store.
type KVStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath and ensures the kv
// table exists.
func Open(dbPath string) (*KVStore, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &KVStore{db: db}, nil
}

// NewKVStore wraps an existing connection. The caller owns the connection's
// lifecycle.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{db: db}
}

// Load returns the value stored under key and whether it exists.
func (s *KVStore) Load(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load key %q: %w", key, err)
	}
	return value, true, nil
}

// Save writes value under key, replacing any previous value.
func (s *KVStore) Save(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv_store (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *KVStore) Close() error {
	return s.db.Close()
}
