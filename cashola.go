// Package cashola transparently persists in-memory structured values to
// local durable storage, keyed by a string identifier. Bind a value once
// and every mutation made through the returned live binding is written
// back automatically - no explicit save or load code.
//
//	store := cashola.New()
//	counter, err := store.Bind(ctx, "counter", map[string]any{"count": 0})
//	if err != nil {
//		// ...
//	}
//	err = counter.Set(ctx, "count", 1) // .cashola/counter.json now holds {"count":1}
//
// A value already stored for a key wins over the starter value passed to
// Bind: the starter only seeds keys nothing is remembered for yet.
//
// Use BindAsync for fire-and-forget persistence: mutators return as soon
// as the in-memory change lands, and a per-binding background writer
// flushes to storage in issue order.
//
// Storage is one JSON file per key in a configurable directory (default
// ".cashola"). Setting the IGNORE_CASHOLA environment variable to "true"
// (or Settings.Ignore) disables all storage behaviour, which is useful in
// tests of embedding applications.
package cashola

import (
	storagefile "github.com/custodia-labs/cashola/internal/adapters/driven/storage/file"
	storagememory "github.com/custodia-labs/cashola/internal/adapters/driven/storage/memory"
	storagesqlite "github.com/custodia-labs/cashola/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
	"github.com/custodia-labs/cashola/internal/core/services"
)

// Core types, re-exported from the internal packages.
type (
	// Store is the binding orchestrator. Each Store owns an independent
	// key registry: a key can be bound at most once per Store lifetime.
	Store = services.Store

	// Live is a live binding returned by Bind: an in-memory value that
	// persists its own mutations.
	Live = services.Live

	// Maintenance provides clear/list operations over stored state.
	Maintenance = services.Maintenance

	// Settings configures a Store.
	Settings = domain.Settings

	// Shape is the structural class of a stored value.
	Shape = domain.Shape

	// BlobStore is the storage backend interface. The file backend is
	// the default; memory and sqlite backends ship in this module and
	// callers may bring their own.
	BlobStore = driven.BlobStore
)

// Shape values.
const (
	ShapeMapping  = domain.ShapeMapping
	ShapeSequence = domain.ShapeSequence
)

// Sentinel errors, matched with errors.Is.
var (
	ErrInvalidKey    = domain.ErrInvalidKey
	ErrDuplicateKey  = domain.ErrDuplicateKey
	ErrValueKind     = domain.ErrValueKind
	ErrShapeMismatch = domain.ErrShapeMismatch
	ErrNotFound      = domain.ErrNotFound
	ErrDecode        = domain.ErrDecode
	ErrIndexRange    = domain.ErrIndexRange
)

// New creates a store over the default file backend, configured from the
// environment (see SettingsFromEnv).
func New() *Store {
	return NewStore(SettingsFromEnv())
}

// NewStore creates a store over the default file backend with explicit
// settings.
func NewStore(settings Settings) *Store {
	return services.NewStore(settings, storagefile.NewBlobStore())
}

// NewStoreWithBackend creates a store over a caller-supplied backend.
func NewStoreWithBackend(settings Settings, backend BlobStore) *Store {
	return services.NewStore(settings, backend)
}

// NewMaintenance creates a maintenance service over backend. Pass
// NewFileBackend() to operate on the standard storage layout.
func NewMaintenance(backend BlobStore) *Maintenance {
	return services.NewMaintenance(backend)
}

// NewFileBackend returns the default backend: one JSON file per key.
func NewFileBackend() BlobStore {
	return storagefile.NewBlobStore()
}

// NewMemoryBackend returns an in-memory backend with file-backend
// semantics, intended for tests.
func NewMemoryBackend() BlobStore {
	return storagememory.NewBlobStore()
}

// NewSQLiteBackend returns a backend keeping every value in a single
// SQLite database file instead of a directory of JSON files.
func NewSQLiteBackend(dbPath string) (BlobStore, error) {
	return storagesqlite.NewBlobStore(dbPath)
}
