package domain

import "fmt"

// Shape classifies a stored value as a keyed mapping or an ordered
// sequence. A key's shape is fixed at first creation; later binds must
// match it or fail.
type Shape string

const (
	// ShapeMapping is a string-keyed record (map[string]any).
	ShapeMapping Shape = "mapping"

	// ShapeSequence is an ordered list ([]any).
	ShapeSequence Shape = "sequence"
)

// ShapeOf classifies value, or fails with ErrValueKind for anything that
// is neither a mapping nor a sequence. Classification is purely
// structural; element types are not inspected.
func ShapeOf(value any) (Shape, error) {
	switch value.(type) {
	case map[string]any:
		return ShapeMapping, nil
	case []any:
		return ShapeSequence, nil
	default:
		return "", fmt.Errorf("%w, got %T", ErrValueKind, value)
	}
}

// CheckShape verifies that the value stored under key has the shape the
// caller is binding. Switching shape silently would corrupt caller
// expectations, so a mismatch fails loudly and the caller must clear the
// key to change it.
func CheckShape(requested, stored Shape, key string) error {
	if requested != stored {
		return fmt.Errorf("%w: key %q holds a %s, bind requested a %s",
			ErrShapeMismatch, key, stored, requested)
	}
	return nil
}

// CloneValue deep-copies the data portion of a value: mappings,
// sequences, and scalars. Anything else is returned as-is.
func CloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = CloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = CloneValue(e)
		}
		return out
	default:
		return v
	}
}
