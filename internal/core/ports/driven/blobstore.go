package driven

import "context"

// BlobStore persists one structured value per storage location.
// Values are the decoded-JSON family: map[string]any, []any, string,
// float64, bool, nil, nested arbitrarily. Implementations serialize to a
// self-describing text encoding that round-trips those types.
type BlobStore interface {
	// Write serializes value and persists it at location, creating the
	// parent directory (or equivalent) lazily if the first attempt fails
	// because it is missing.
	Write(ctx context.Context, location string, value any) error

	// Read loads and decodes the value at location.
	// Returns domain.ErrNotFound if nothing is stored there and
	// domain.ErrDecode if the stored content cannot be decoded.
	Read(ctx context.Context, location string) (any, error)

	// Exists reports whether a value is stored at location.
	Exists(ctx context.Context, location string) (bool, error)

	// Delete removes the value at location.
	// Returns domain.ErrNotFound if nothing is stored there.
	Delete(ctx context.Context, location string) error

	// DeleteAll removes every value under the storage directory,
	// recursively. A missing directory is not an error: deleting
	// nothing is success.
	DeleteAll(ctx context.Context, dir string) error

	// List returns the locations of all values under the storage
	// directory, sorted. A missing directory yields an empty list.
	List(ctx context.Context, dir string) ([]string, error)
}
