package value

import "strings"

// Equal reports whether a and b are structurally equal: same resolved tag
// and value for scalars (bool literals compare case-insensitively), same
// elements in order for sequences, and the same key/value pairs for
// mappings regardless of key order. Key order is preserved for rendering
// but never affects equality.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindEmpty:
		return true
	case KindScalar:
		if a.Tag != b.Tag {
			return false
		}

		if a.Tag == TagBool {
			return strings.EqualFold(a.Scalar, b.Scalar)
		}

		return a.Scalar == b.Scalar
	case KindSequence:
		if len(a.Sequence) != len(b.Sequence) {
			return false
		}

		for i := range a.Sequence {
			if !Equal(a.Sequence[i], b.Sequence[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		return mappingEqual(a, b)
	}

	return false
}

func mappingEqual(a, b Value) bool {
	if len(a.Mapping) != len(b.Mapping) {
		return false
	}

	bVals := make(map[string]Value, len(b.Mapping))
	for _, e := range b.Mapping {
		bVals[CanonicalKey(e.Key)] = e.Value
	}

	for _, e := range a.Mapping {
		bv, ok := bVals[CanonicalKey(e.Key)]
		if !ok || !Equal(e.Value, bv) {
			return false
		}
	}

	return true
}
