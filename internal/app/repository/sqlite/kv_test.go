package sqlite

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*KVStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewKVStore(db), mock
}

func TestLoadHit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT value FROM kv_store WHERE key = ?").
		WithArgs("xcribe_profiles_v2").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"p1"}]`))

	value, ok, err := store.Load("xcribe_profiles_v2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"p1"}]`, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadMiss(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT value FROM kv_store WHERE key = ?").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := store.Load("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUpserts(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO kv_store (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		WithArgs("xcribe_profiles_v2", "[]").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save("xcribe_profiles_v2", "[]"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePropagatesError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO kv_store (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		WithArgs("k", "v").
		WillReturnError(assert.AnError)

	err := store.Save("k", "v")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
