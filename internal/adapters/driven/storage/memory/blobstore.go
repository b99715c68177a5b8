// Package memory provides in-memory implementations of driven ports for
// tests and embedding scenarios that want persistence semantics without
// touching disk.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is an in-memory implementation of driven.BlobStore.
// Values round-trip through the JSON encoding on every Write/Read so the
// behaviour matches the file adapter exactly (numbers decode as float64,
// stored values never share memory with live ones).
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobStore creates an empty in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// Write serializes value and stores the encoding at location.
func (s *BlobStore) Write(_ context.Context, location string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value for %s: %w", location, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[location] = data
	return nil
}

// Read decodes the stored encoding at location.
func (s *BlobStore) Read(_ context.Context, location string) (any, error) {
	s.mu.RLock()
	data, ok := s.blobs[location]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, location)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, location, err)
	}
	return value, nil
}

// Exists reports whether a value is stored at location.
func (s *BlobStore) Exists(_ context.Context, location string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[location]
	return ok, nil
}

// Delete removes the value at location.
func (s *BlobStore) Delete(_ context.Context, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[location]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, location)
	}
	delete(s.blobs, location)
	return nil
}

// DeleteAll removes every value under dir. Nothing stored under dir is
// not an error.
func (s *BlobStore) DeleteAll(_ context.Context, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for location := range s.blobs {
		if strings.HasPrefix(location, withSep(dir)) {
			delete(s.blobs, location)
		}
	}
	return nil
}

// List returns the locations stored under dir, sorted.
func (s *BlobStore) List(_ context.Context, dir string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var locations []string
	for location := range s.blobs {
		if strings.HasPrefix(location, withSep(dir)) {
			locations = append(locations, location)
		}
	}
	sort.Strings(locations)
	return locations, nil
}

// Poison makes subsequent reads of location fail decoding. Test hook for
// exercising domain.ErrDecode paths.
func (s *BlobStore) Poison(location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[location] = []byte("{not json")
}

func withSep(dir string) string {
	sep := string(filepath.Separator)
	if strings.HasSuffix(dir, sep) {
		return dir
	}
	return dir + sep
}
