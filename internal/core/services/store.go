package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
	"github.com/custodia-labs/cashola/internal/logger"
)

// Store is the binding orchestrator: it validates input, resolves or
// creates the stored value for a key, installs the mutation-observing
// wrapper, and returns the live binding. One Store owns one Registry, so
// each Store is an independent "process lifetime" for the duplicate-key
// rule - tests create a fresh Store to simulate a fresh process.
//
// The Store keeps no reference to the live bindings it returns; it only
// remembers key-to-location associations. Ownership of a Live rests
// entirely with the caller.
type Store struct {
	settings domain.Settings
	backend  driven.BlobStore
	registry *Registry
}

// NewStore creates a store persisting through backend with the given
// settings. Zero-valued settings fields fall back to defaults.
func NewStore(settings domain.Settings, backend driven.BlobStore) *Store {
	settings = settings.Normalized()
	return &Store{
		settings: settings,
		backend:  backend,
		registry: NewRegistry(settings.StorageDir),
	}
}

// Bind associates key with a storage location and returns the live,
// auto-persisting value. Mutations on the returned binding block until
// durably written and surface write errors.
//
// If a value is already stored for key, it wins wholesale over initial -
// initial is only the starter for a key nothing is remembered for yet.
// The stored value's shape must match initial's shape or Bind fails with
// domain.ErrShapeMismatch, leaving storage untouched.
//
// Under ignore-state the returned binding is detached: it wraps initial
// as-is, touches no storage, and creates no registry entry. Key and value
// validation still apply.
func (s *Store) Bind(ctx context.Context, key string, initial any) (*Live, error) {
	return s.bind(ctx, key, initial, true)
}

// BindAsync is Bind with fire-and-forget mutation writes: mutators on the
// returned binding return as soon as the in-memory change is applied, and
// durability proceeds on a background writer that serializes writes in
// issue order. Write failures are logged and swallowed. The initial
// resolve-or-create is still performed synchronously, so no mutation can
// race the initial load.
func (s *Store) BindAsync(ctx context.Context, key string, initial any) (*Live, error) {
	return s.bind(ctx, key, initial, false)
}

func (s *Store) bind(ctx context.Context, key string, initial any, blocking bool) (*Live, error) {
	// Key validity is checked before ignore-state: an invalid key fails
	// even when storage is being ignored.
	if err := domain.ValidateKey(key); err != nil {
		return nil, err
	}
	shape, err := domain.ShapeOf(initial)
	if err != nil {
		return nil, err
	}

	if s.settings.Ignored() {
		logger.Debug("ignore-state active, %q bound detached", key)
		return newDetachedLive(key, shape, initial), nil
	}

	// The registry entry persists even if a later step fails: a key that
	// was ever bound in this store's lifetime stays claimed.
	location, err := s.registry.Register(key)
	if err != nil {
		return nil, err
	}

	resolved := initial
	stored, err := s.backend.Read(ctx, location)
	switch {
	case err == nil:
		storedShape, shapeErr := domain.ShapeOf(stored)
		if shapeErr != nil {
			return nil, fmt.Errorf("%w: key %q holds a scalar value", domain.ErrShapeMismatch, key)
		}
		if err := domain.CheckShape(shape, storedShape, key); err != nil {
			return nil, err
		}
		// Remembering semantics: the stored value supersedes the
		// starter entirely.
		resolved = stored
		logger.Debug("%q resolved from %s", key, location)
	case errors.Is(err, domain.ErrNotFound):
		if err := s.backend.Write(ctx, location, initial); err != nil {
			return nil, fmt.Errorf("persisting initial value for %q: %w", key, err)
		}
		logger.Debug("%q created at %s", key, location)
	default:
		return nil, fmt.Errorf("reading stored value for %q: %w", key, err)
	}

	return newLive(key, location, shape, resolved, s.backend, blocking), nil
}

// Keys returns the keys bound through this store, in bind order.
func (s *Store) Keys() []string {
	return s.registry.Keys()
}

// Location returns the storage location recorded for key, if it was
// bound through this store.
func (s *Store) Location(key string) (string, bool) {
	return s.registry.Location(key)
}

// Settings returns the store's configuration.
func (s *Store) Settings() domain.Settings {
	return s.settings
}
