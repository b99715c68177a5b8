package domain

import "errors"

// Domain errors represent persistence-contract failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidKey indicates a key is empty or not safe as a filename.
	ErrInvalidKey = errors.New("invalid key")

	// ErrDuplicateKey indicates a key was already bound in this registry.
	// Two live bindings aliasing one storage location would corrupt each
	// other, so re-registration always fails.
	ErrDuplicateKey = errors.New("key already bound")

	// ErrValueKind indicates a bind was attempted with a value that is
	// neither a keyed mapping nor an ordered sequence.
	ErrValueKind = errors.New("value must be a mapping or a sequence")

	// ErrShapeMismatch indicates the stored value's shape (mapping vs
	// sequence) disagrees with the shape being bound. The store is left
	// untouched; clear the key to change its shape.
	ErrShapeMismatch = errors.New("stored shape mismatch")

	// ErrNotFound indicates no stored value exists at a location.
	ErrNotFound = errors.New("not found")

	// ErrDecode indicates stored content could not be decoded.
	ErrDecode = errors.New("stored value undecodable")

	// ErrIndexRange indicates a sequence mutation outside the current bounds.
	ErrIndexRange = errors.New("index out of range")
)
