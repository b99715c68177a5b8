// Package sqlite provides a SQLite-backed implementation of the BlobStore
// driven port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It keeps every
// stored value in a single `blobs` table keyed by storage location, for
// callers that prefer one database file over a directory of JSON files.
// The file adapter remains the default and defines the on-disk layout
// documented for the tool.
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on database-level
// locking provided by SQLite in WAL mode.
package sqlite
