package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"draftkeep/pkg/logger"
)

// Dialect selects placeholder syntax for the SQL store.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// SQLStore keeps drafts in a single table, one row per key, upserted in
// place. It works against PostgreSQL and embedded SQLite; queries are
// written with ? placeholders and rebound for postgres.
type SQLStore struct {
	DB      *sql.DB
	dialect Dialect
}

func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{DB: db, dialect: dialect}
}

// EnsureSchema creates the drafts table when it does not exist yet.
func (s *SQLStore) EnsureSchema() error {
	_, err := s.DB.Exec(`CREATE TABLE IF NOT EXISTS drafts (
		key TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		timestamp BIGINT NOT NULL,
		version INTEGER NOT NULL
	)`)
	if err != nil {
		logger.Sugar.Errorf("Failed to ensure drafts schema: %v", err)
	}
	return err
}

func (s *SQLStore) Get(key string) (*Draft, error) {
	var raw string
	d := &Draft{}
	err := s.DB.QueryRow(s.rebind("SELECT data, timestamp, version FROM drafts WHERE key = ?"), key).
		Scan(&raw, &d.Timestamp, &d.Version)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to load draft %s: %v", key, err)
		return nil, err
	}

	if err := json.Unmarshal([]byte(raw), &d.Data); err != nil {
		return nil, fmt.Errorf("corrupt draft %s: %w", key, err)
	}
	return d, nil
}

func (s *SQLStore) Set(key string, d *Draft) error {
	raw, err := json.Marshal(d.Data)
	if err != nil {
		return err
	}

	_, err = s.DB.Exec(s.rebind(`INSERT INTO drafts (key, data, timestamp, version) VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET data = excluded.data, timestamp = excluded.timestamp, version = excluded.version`),
		key, string(raw), d.Timestamp, d.Version)
	if err != nil {
		logger.Sugar.Errorf("Failed to save draft %s: %v", key, err)
	}
	return err
}

func (s *SQLStore) Remove(key string) error {
	_, err := s.DB.Exec(s.rebind("DELETE FROM drafts WHERE key = ?"), key)
	if err != nil {
		logger.Sugar.Errorf("Failed to remove draft %s: %v", key, err)
	}
	return err
}

func (s *SQLStore) Keys() ([]string, error) {
	rows, err := s.DB.Query("SELECT key FROM drafts ORDER BY key")
	if err != nil {
		logger.Sugar.Errorf("Failed to list draft keys: %v", err)
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// PurgeOlderThan deletes every draft written before cutoffMillis in one
// statement. Implements the Purger fast path used by the retention sweep.
func (s *SQLStore) PurgeOlderThan(cutoffMillis int64) (int, error) {
	result, err := s.DB.Exec(s.rebind("DELETE FROM drafts WHERE timestamp < ?"), cutoffMillis)
	if err != nil {
		logger.Sugar.Errorf("Failed to purge expired drafts: %v", err)
		return 0, err
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// rebind rewrites ? placeholders to $1..$n for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
