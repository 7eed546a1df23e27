// Package app assembles the application's components from configuration.
package app

import (
	"io"

	"xcribe/internal/app/api/gemini"
	"xcribe/internal/app/repository"
	"xcribe/internal/app/repository/pg"
	"xcribe/internal/app/repository/sqlite"
	"xcribe/internal/config"

	apperrors "xcribe/internal/app/errors"
)

// ProvideTranscriber builds the Gemini client from the environment. Fails
// fast with a configuration error when the credential is missing.
func ProvideTranscriber() (*gemini.Client, error) {
	key, err := config.RequireGeminiAPIKey()
	if err != nil {
		return nil, err
	}
	return gemini.NewClient(gemini.Config{APIKey: key}), nil
}

// ProvideStore opens the configured profile store backend. The returned
// closer owns the underlying database connection.
func ProvideStore(cfg config.StoreConfig) (*repository.Store, io.Closer, error) {
	var (
		kv     repository.KV
		closer io.Closer
	)

	switch cfg.Backend {
	case "postgres":
		pgStore, err := pg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		kv, closer = pgStore, pgStore
	default:
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		kv, closer = sqliteStore, sqliteStore
	}

	store, err := repository.NewStore(kv)
	if err != nil {
		closer.Close()
		return nil, nil, apperrors.Wrap(err, "failed to initialize profile store")
	}
	return store, closer, nil
}
