package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is a SQLite implementation of driven.BlobStore. Every blob
// lives in one `blobs` table keyed by storage location, so a whole store
// is a single database file instead of a directory of JSON files.
type BlobStore struct {
	db   *sql.DB
	path string
}

// NewBlobStore opens (or creates) the blob database at dbPath.
func NewBlobStore(dbPath string) (*BlobStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// WAL mode for better concurrency between bindings.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS blobs (
			location   TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating blobs table: %w", err)
	}

	return &BlobStore{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *BlobStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *BlobStore) Path() string {
	return s.path
}

// Write serializes value and upserts it at location.
func (s *BlobStore) Write(ctx context.Context, location string, value any) error {
	data, err := encode(value)
	if err != nil {
		return fmt.Errorf("encoding value for %s: %w", location, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO blobs (location, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(location) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, location, data)
	if err != nil {
		return fmt.Errorf("writing %s: %w", location, err)
	}
	return nil
}

// Read loads and decodes the value stored at location.
func (s *BlobStore) Read(ctx context.Context, location string) (any, error) {
	var data string
	row := s.db.QueryRowContext(ctx, "SELECT data FROM blobs WHERE location = ?", location)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, location)
		}
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}

	value, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, location, err)
	}
	return value, nil
}

// Exists reports whether a value is stored at location.
func (s *BlobStore) Exists(ctx context.Context, location string) (bool, error) {
	var n int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM blobs WHERE location = ?", location)
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("checking %s: %w", location, err)
	}
	return n > 0, nil
}

// Delete removes the value stored at location.
func (s *BlobStore) Delete(ctx context.Context, location string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM blobs WHERE location = ?", location)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", location, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", location, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, location)
	}
	return nil
}

// DeleteAll removes every value under dir. Nothing stored under dir is
// not an error.
func (s *BlobStore) DeleteAll(ctx context.Context, dir string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM blobs WHERE location LIKE ? ESCAPE '\'`, likePrefix(dir))
	if err != nil {
		return fmt.Errorf("clearing %s: %w", dir, err)
	}
	return nil
}

// List returns the locations stored under dir, sorted.
func (s *BlobStore) List(ctx context.Context, dir string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT location FROM blobs WHERE location LIKE ? ESCAPE '\' ORDER BY location`, likePrefix(dir))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var location string
		if err := rows.Scan(&location); err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return locations, nil
}

// likePrefix builds a LIKE pattern matching locations under dir, with
// LIKE metacharacters in the directory path escaped.
func likePrefix(dir string) string {
	prefix := dir
	sep := string(filepath.Separator)
	if !strings.HasSuffix(prefix, sep) {
		prefix += sep
	}
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix) + "%"
}
