package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
	"github.com/custodia-labs/cashola/internal/core/ports/driving"
)

// Ensure Maintenance implements the interface.
var _ driving.Maintenance = (*Maintenance)(nil)

// Maintenance implements storage housekeeping over a blob store. It is
// registry-independent: clearing removes stored state but never registry
// entries, so a cleared key stays claimed for the rest of the store's
// lifetime.
type Maintenance struct {
	backend driven.BlobStore
}

// NewMaintenance creates a maintenance service over backend.
func NewMaintenance(backend driven.BlobStore) *Maintenance {
	return &Maintenance{backend: backend}
}

// ClearAll removes the entire storage directory recursively. A missing
// directory is not an error - deleting nothing is success.
func (m *Maintenance) ClearAll(ctx context.Context, dir string) error {
	if err := m.backend.DeleteAll(ctx, dir); err != nil {
		return fmt.Errorf("clearing %s: %w", dir, err)
	}
	return nil
}

// ClearKey removes the stored value for exactly one key. Fails with
// domain.ErrNotFound if nothing is stored for it.
func (m *Maintenance) ClearKey(ctx context.Context, key, dir string) error {
	if err := domain.ValidateKey(key); err != nil {
		return err
	}
	if err := m.backend.Delete(ctx, domain.Location(dir, key)); err != nil {
		return fmt.Errorf("clearing key %q: %w", key, err)
	}
	return nil
}

// StoredKeys returns the keys with a stored value under dir, sorted.
func (m *Maintenance) StoredKeys(ctx context.Context, dir string) ([]string, error) {
	locations, err := m.backend.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	keys := make([]string, 0, len(locations))
	for _, location := range locations {
		if key := domain.KeyFromLocation(location); key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Stored returns the decoded stored value for one key.
func (m *Maintenance) Stored(ctx context.Context, key, dir string) (any, error) {
	if err := domain.ValidateKey(key); err != nil {
		return nil, err
	}
	value, err := m.backend.Read(ctx, domain.Location(dir, key))
	if err != nil {
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}
