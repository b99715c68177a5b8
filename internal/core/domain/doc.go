// Package domain defines the core entities for cashola.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Shape: the structural class of a stored value (mapping or sequence)
//   - Settings: process-level configuration, including ignore-state
//   - Key validation and storage location derivation
//   - Sentinel errors for every persistence-contract failure
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
