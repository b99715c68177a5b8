// Package file provides the default BlobStore adapter: one JSON file per
// key inside the storage directory. The format is deliberately
// transparent - files are plain JSON, readable and editable with any
// text tool.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is the filesystem implementation of driven.BlobStore.
// It is stateless; every call resolves against the paths it is given.
type BlobStore struct{}

// NewBlobStore creates a filesystem blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{}
}

// Write serializes value as JSON and persists it at location atomically:
// the encoding is written to a uniquely named temp file which is then
// renamed over the destination, so readers never observe a partial write.
//
// The parent directory is created lazily: only when the first write
// attempt fails because it is missing, and the write is retried exactly
// once. Most binds after the first are pure reads, so an unconditional
// mkdir on every bind would be wasted work.
func (s *BlobStore) Write(_ context.Context, location string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value for %s: %w", location, err)
	}

	tmp := location + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("writing %s: %w", location, err)
		}
		if err := os.MkdirAll(filepath.Dir(location), 0700); err != nil {
			return fmt.Errorf("creating storage directory for %s: %w", location, err)
		}
		if err := os.WriteFile(tmp, data, 0600); err != nil {
			return fmt.Errorf("writing %s: %w", location, err)
		}
	}

	if err := os.Rename(tmp, location); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", location, err)
	}
	return nil
}

// Read loads and decodes the JSON value at location.
func (s *BlobStore) Read(_ context.Context, location string) (any, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, location)
		}
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDecode, location, err)
	}
	return value, nil
}

// Exists reports whether a blob file exists at location.
func (s *BlobStore) Exists(_ context.Context, location string) (bool, error) {
	if _, err := os.Stat(location); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", location, err)
	}
	return true, nil
}

// Delete removes the blob file at location.
func (s *BlobStore) Delete(_ context.Context, location string) error {
	if err := os.Remove(location); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, location)
		}
		return fmt.Errorf("deleting %s: %w", location, err)
	}
	return nil
}

// DeleteAll removes the storage directory recursively. A missing
// directory is not an error.
func (s *BlobStore) DeleteAll(_ context.Context, dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	return nil
}

// List returns the locations of all blob files directly under dir,
// sorted. A missing directory yields an empty list.
func (s *BlobStore) List(_ context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var locations []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), domain.BlobExt) {
			continue
		}
		locations = append(locations, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(locations)
	return locations, nil
}
