// Package pg backs the profile store with a key-value table in PostgreSQL,
// for deployments that already run one.
package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// KVStore is a PostgreSQL-backed key-value store.
type KVStore struct {
	db *sql.DB
}

// Open connects with the given DSN and ensures the kv table exists.
func Open(dsn string) (*KVStore, error) {
	db, err := sql.Open("postgres", dsn)
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
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = $1", key).Scan(&value)
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
		"INSERT INTO kv_store (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
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
