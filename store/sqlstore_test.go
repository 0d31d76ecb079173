package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLStore(db, DialectSQLite)

	mock.ExpectQuery("SELECT data, timestamp, version FROM drafts WHERE key = \\?").
		WithArgs("draft_manual-note-editor").
		WillReturnRows(sqlmock.NewRows([]string{"data", "timestamp", "version"}).
			AddRow(`{"title":"Binary Search","body":""}`, int64(1700000000000), 1))

	d, err := s.Get("draft_manual-note-editor")
	require.NoError(t, err)
	assert.Equal(t, "Binary Search", d.Data["title"])
	assert.Equal(t, int64(1700000000000), d.Timestamp)
	assert.Equal(t, 1, d.Version)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLStore(db, DialectSQLite)

	mock.ExpectQuery("SELECT data, timestamp, version FROM drafts WHERE key = \\?").
		WithArgs("draft_ai-generate").
		WillReturnRows(sqlmock.NewRows([]string{"data", "timestamp", "version"}))

	_, err = s.Get("draft_ai-generate")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSetUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLStore(db, DialectSQLite)

	mock.ExpectExec("INSERT INTO drafts .* ON CONFLICT \\(key\\) DO UPDATE SET").
		WithArgs("draft_code-runner", `{"code":"print(1)"}`, int64(42), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.Set("draft_code-runner", &Draft{
		Data:      map[string]any{"code": "print(1)"},
		Timestamp: 42,
		Version:   1,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStorePurgeOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLStore(db, DialectSQLite)

	mock.ExpectExec("DELETE FROM drafts WHERE timestamp < \\?").
		WithArgs(int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.PurgeOlderThan(123)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreRebindPostgres(t *testing.T) {
	s := NewSQLStore(nil, DialectPostgres)
	assert.Equal(t,
		"INSERT INTO drafts (key, data, timestamp, version) VALUES ($1, $2, $3, $4)",
		s.rebind("INSERT INTO drafts (key, data, timestamp, version) VALUES (?, ?, ?, ?)"))

	lite := NewSQLStore(nil, DialectSQLite)
	assert.Equal(t, "SELECT key FROM drafts WHERE key = ?", lite.rebind("SELECT key FROM drafts WHERE key = ?"))
}

func TestSQLStoreKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLStore(db, DialectSQLite)

	mock.ExpectQuery("SELECT key FROM drafts ORDER BY key").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).
			AddRow("draft_ai-improve").
			AddRow("draft_manual-note-editor"))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"draft_ai-improve", "draft_manual-note-editor"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}
