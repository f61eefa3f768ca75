package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	"github.com/contre95/soulkeep/src/history"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore is a SQLite implementation of the history.Store interface.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens (and if needed creates) the import record database.
// Failure here is fatal for the whole plugin; there is no degraded mode.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SqliteStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS import_records (
			identifier TEXT PRIMARY KEY,
			origin_path TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_import_records_origin ON import_records(origin_path);
	`)
	return err
}

// Close closes the underlying database handle.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// Upsert inserts a record or replaces the existing one for the identifier.
func (s *SqliteStore) Upsert(ctx context.Context, identifier, originPath string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO import_records (identifier, origin_path)
		VALUES (?, ?)
	`, identifier, originPath)
	return err
}

// Lookup returns the recorded origin path for the identifier.
func (s *SqliteStore) Lookup(ctx context.Context, identifier string) (string, bool, error) {
	var origin string
	err := s.db.QueryRowContext(ctx, `
		SELECT origin_path FROM import_records WHERE identifier = ?
	`, identifier).Scan(&origin)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	// An empty path is equivalent to no record.
	if origin == "" {
		return "", false, nil
	}
	return origin, true, nil
}

// Remove deletes the record for the identifier, if present.
func (s *SqliteStore) Remove(ctx context.Context, identifier string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM import_records WHERE identifier = ?`, identifier)
	return err
}

// ListAll returns every record ordered by identifier.
func (s *SqliteStore) ListAll(ctx context.Context) ([]history.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, origin_path FROM import_records ORDER BY identifier
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []history.Record{}
	for rows.Next() {
		var r history.Record
		if err := rows.Scan(&r.Identifier, &r.OriginPath); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FindByPathPrefix returns every record whose origin path lies under the
// given directory. LIKE wildcards in the prefix are escaped exactly once.
func (s *SqliteStore) FindByPathPrefix(ctx context.Context, prefix string) ([]history.Record, error) {
	pattern := escapeLike(filepath.Clean(prefix)) + string(filepath.Separator) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, origin_path FROM import_records
		WHERE origin_path LIKE ? ESCAPE '\'
		ORDER BY identifier
	`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []history.Record{}
	for rows.Next() {
		var r history.Record
		if err := rows.Scan(&r.Identifier, &r.OriginPath); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count returns the number of records.
func (s *SqliteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM import_records`).Scan(&count)
	return count, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
