package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BlobExt is the extension for per-key storage files.
const BlobExt = ".json"

// reservedChars are rejected in keys: path separators plus characters
// that are illegal in filenames on at least one supported platform.
const reservedChars = `/\:*?"<>|`

// ValidateKey reports whether key can name a storage file.
// Keys must be non-empty, must not be "." or "..", and must not contain
// path separators, reserved filename characters, or control characters.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key is empty", ErrInvalidKey)
	}
	if key == "." || key == ".." {
		return fmt.Errorf("%w: %q is a reserved name", ErrInvalidKey, key)
	}
	for _, r := range key {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: %q contains a control character", ErrInvalidKey, key)
		}
		if strings.ContainsRune(reservedChars, r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidKey, key, r)
		}
	}
	return nil
}

// Location resolves the storage location for a key inside a storage
// directory: <dir>/<key>.json.
func Location(dir, key string) string {
	return filepath.Join(dir, key+BlobExt)
}

// KeyFromLocation recovers the key from a storage location, or "" if the
// location does not name a blob file.
func KeyFromLocation(location string) string {
	base := filepath.Base(location)
	if !strings.HasSuffix(base, BlobExt) || base == BlobExt {
		return ""
	}
	return strings.TrimSuffix(base, BlobExt)
}
