package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/cashola/internal/core/domain"
)

// Registry maps logical keys to storage locations for one store
// lifetime. Registration is deliberately not idempotent: a key that was
// ever registered - even by a bind that later failed - cannot be
// registered again, which prevents two independent live bindings from
// aliasing one file.
type Registry struct {
	mu        sync.Mutex
	dir       string
	locations map[string]string
	order     []string
}

// NewRegistry creates an empty registry resolving locations under dir.
func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:       dir,
		locations: make(map[string]string),
	}
}

// Register validates key, records it, and returns its storage location.
// Fails with domain.ErrInvalidKey or domain.ErrDuplicateKey before any
// storage side effect occurs.
func (r *Registry) Register(key string) (string, error) {
	if err := domain.ValidateKey(key); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.locations[key]; ok {
		return "", fmt.Errorf("%w: %q", domain.ErrDuplicateKey, key)
	}

	location := domain.Location(r.dir, key)
	r.locations[key] = location
	r.order = append(r.order, key)
	return location, nil
}

// Keys returns the registered keys in insertion order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Location returns the recorded storage location for key.
func (r *Registry) Location(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	location, ok := r.locations[key]
	return location, ok
}

// Dir returns the storage directory locations are resolved under.
func (r *Registry) Dir() string {
	return r.dir
}
