package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// HostLibrary answers identifier and path-prefix queries against the host
// manager's own library database. Soulkeep only ever reads it; the schema
// (albums, tracks, track_albums) belongs to the host.
type HostLibrary struct {
	db *sql.DB
}

// NewHostLibrary opens the host library database read-only.
func NewHostLibrary(path string) (*HostLibrary, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, err
	}
	return &HostLibrary{db: db}, nil
}

// Close closes the underlying database handle.
func (h *HostLibrary) Close() error {
	return h.db.Close()
}

// CountAlbums returns how many albums in the host library carry the identifier.
func (h *HostLibrary) CountAlbums(ctx context.Context, identifier string) (int, error) {
	var count int
	err := h.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM albums WHERE id = ?
	`, identifier).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("host library query failed: %w", err)
	}
	return count, nil
}

// TracksUnderPath returns the library paths of every track below the given directory.
func (h *HostLibrary) TracksUnderPath(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeLike(filepath.Clean(prefix)) + string(filepath.Separator) + "%"
	rows, err := h.db.QueryContext(ctx, `
		SELECT path FROM tracks
		WHERE path LIKE ? ESCAPE '\'
		ORDER BY path
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("host library query failed: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
