package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/cashola/internal/core/domain"
	"github.com/custodia-labs/cashola/internal/core/ports/driven"
)

// Live is a live binding: an in-memory value whose mutations are
// automatically persisted to its storage location. It is the Go rendition
// of a mutation-observing proxy - reads pass straight through to the
// inner value, every successful mutation re-serializes the entire value
// and writes it out.
//
// Mutations always apply in memory first, so reads issued after a
// mutation observe it even before durability completes. A mutation the
// inner value rejects (wrong shape for the call, index out of bounds)
// returns an error and performs no write.
//
// In blocking mode the mutator returns once the write has completed or
// failed, and surfaces the write error. In async mode the mutator returns
// as soon as the in-memory change is applied; the write is handed to a
// per-binding background writer that serializes writes in issue order and
// swallows failures (logged at debug level - there is no caller to report
// to). Use Flush to wait for pending writes and Close when done with an
// async binding.
//
// Interception is shallow, matching simple property assignment: mutating
// a nested value obtained from Get does not trigger a write. Re-Set the
// top-level field to persist nested changes.
type Live struct {
	key      string
	location string
	shape    domain.Shape

	mu      sync.Mutex
	mapping map[string]any
	seq     []any

	backend driven.BlobStore // nil for detached (ignore-state) bindings
	writer  *blobWriter      // nil in blocking mode
}

// newLive wraps value, which must already match shape.
func newLive(key, location string, shape domain.Shape, value any, backend driven.BlobStore, blocking bool) *Live {
	l := &Live{
		key:      key,
		location: location,
		shape:    shape,
		backend:  backend,
	}
	switch shape {
	case domain.ShapeMapping:
		l.mapping = value.(map[string]any)
	case domain.ShapeSequence:
		l.seq = value.([]any)
	}
	if backend != nil && !blocking {
		l.writer = newBlobWriter(backend, location)
	}
	return l
}

// newDetachedLive wraps value without any storage association.
// Used under ignore-state: mutations apply in memory only.
func newDetachedLive(key string, shape domain.Shape, value any) *Live {
	return newLive(key, "", shape, value, nil, true)
}

// Key returns the key this binding was created under.
func (l *Live) Key() string { return l.key }

// Location returns the bound storage location, or "" for a detached
// binding.
func (l *Live) Location() string { return l.location }

// Shape returns the binding's structural shape.
func (l *Live) Shape() domain.Shape { return l.shape }

// Detached reports whether this binding has no storage association
// (created under ignore-state).
func (l *Live) Detached() bool { return l.backend == nil }

// Get reads a field of a mapping binding. The second result is false if
// the field is absent or the binding is a sequence.
func (l *Live) Get(field string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.shape != domain.ShapeMapping {
		return nil, false
	}
	v, ok := l.mapping[field]
	return v, ok
}

// Set assigns a field of a mapping binding and persists the full value.
func (l *Live) Set(ctx context.Context, field string, value any) error {
	l.mu.Lock()
	if l.shape != domain.ShapeMapping {
		l.mu.Unlock()
		return fmt.Errorf("%w: cannot set field %q on a sequence binding", domain.ErrShapeMismatch, field)
	}
	l.mapping[field] = value
	snap := domain.CloneValue(l.mapping)
	l.mu.Unlock()

	return l.persist(ctx, snap)
}

// Delete removes a field of a mapping binding and persists the reduced
// value. Deleting an absent field is a no-op that still persists.
func (l *Live) Delete(ctx context.Context, field string) error {
	l.mu.Lock()
	if l.shape != domain.ShapeMapping {
		l.mu.Unlock()
		return fmt.Errorf("%w: cannot delete field %q on a sequence binding", domain.ErrShapeMismatch, field)
	}
	delete(l.mapping, field)
	snap := domain.CloneValue(l.mapping)
	l.mu.Unlock()

	return l.persist(ctx, snap)
}

// Fields returns the field names of a mapping binding, sorted.
// Sequences have no fields.
func (l *Live) Fields() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.shape != domain.ShapeMapping {
		return nil
	}
	fields := make([]string, 0, len(l.mapping))
	for f := range l.mapping {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Index reads an element of a sequence binding. The second result is
// false if i is out of range or the binding is a mapping.
func (l *Live) Index(i int) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.shape != domain.ShapeSequence || i < 0 || i >= len(l.seq) {
		return nil, false
	}
	return l.seq[i], true
}

// SetIndex assigns an existing element of a sequence binding and persists
// the full value. Assigning outside the current bounds fails with
// domain.ErrIndexRange; use Append to grow.
func (l *Live) SetIndex(ctx context.Context, i int, value any) error {
	l.mu.Lock()
	if l.shape != domain.ShapeSequence {
		l.mu.Unlock()
		return fmt.Errorf("%w: cannot set index %d on a mapping binding", domain.ErrShapeMismatch, i)
	}
	if i < 0 || i >= len(l.seq) {
		l.mu.Unlock()
		return fmt.Errorf("%w: index %d, length %d", domain.ErrIndexRange, i, len(l.seq))
	}
	l.seq[i] = value
	snap := domain.CloneValue(l.seq)
	l.mu.Unlock()

	return l.persist(ctx, snap)
}

// Append adds an element to a sequence binding and persists the full
// value.
func (l *Live) Append(ctx context.Context, value any) error {
	l.mu.Lock()
	if l.shape != domain.ShapeSequence {
		l.mu.Unlock()
		return fmt.Errorf("%w: cannot append to a mapping binding", domain.ErrShapeMismatch)
	}
	l.seq = append(l.seq, value)
	snap := domain.CloneValue(l.seq)
	l.mu.Unlock()

	return l.persist(ctx, snap)
}

// Len returns the number of fields or elements.
func (l *Live) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.shape == domain.ShapeMapping {
		return len(l.mapping)
	}
	return len(l.seq)
}

// Value returns a deep copy of the current in-memory value.
func (l *Live) Value() any {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.shape == domain.ShapeMapping {
		return domain.CloneValue(l.mapping)
	}
	return domain.CloneValue(l.seq)
}

// Flush waits for all writes issued so far to complete. A no-op for
// blocking and detached bindings.
func (l *Live) Flush() {
	if l.writer != nil {
		l.writer.flush()
	}
}

// Close flushes pending writes and stops the background writer. Mutating
// an async binding after Close panics. A no-op for blocking and detached
// bindings.
func (l *Live) Close() {
	if l.writer != nil {
		l.writer.close()
	}
}

// persist writes snap to the bound location. Detached bindings skip
// persistence entirely; async bindings hand the snapshot to the writer
// and report success immediately.
func (l *Live) persist(ctx context.Context, snap any) error {
	switch {
	case l.backend == nil:
		return nil
	case l.writer != nil:
		l.writer.enqueue(snap)
		return nil
	default:
		if err := l.backend.Write(ctx, l.location, snap); err != nil {
			return fmt.Errorf("persisting %q: %w", l.key, err)
		}
		return nil
	}
}
