package driving

import "context"

// Maintenance exposes the storage housekeeping operations consumed by the
// CLI. These act directly on a storage directory and do not require a
// registry: they are the escape hatch for state written by earlier
// processes.
type Maintenance interface {
	// ClearAll removes the entire storage directory recursively.
	// A missing directory is not an error.
	ClearAll(ctx context.Context, dir string) error

	// ClearKey removes the stored value for exactly one key.
	// Fails with domain.ErrInvalidKey for a malformed key and
	// domain.ErrNotFound if nothing is stored for it.
	ClearKey(ctx context.Context, key, dir string) error

	// StoredKeys returns the keys with a stored value under dir, sorted.
	StoredKeys(ctx context.Context, dir string) ([]string, error)

	// Stored returns the decoded stored value for one key.
	// Fails with domain.ErrNotFound if nothing is stored for it.
	Stored(ctx context.Context, key, dir string) (any, error)
}
