package differ

import (
	"github.com/felipesere/everdiff/internal/value"
	"github.com/felipesere/everdiff/internal/yamldoc"
)

// DefaultMaxDepth is the recursion guard applied when Options.MaxDepth is
// zero.
const DefaultMaxDepth = 256

// Options configures a Diff run.
type Options struct {
	// MaxDepth bounds recursive comparison depth. Zero means
	// [DefaultMaxDepth].
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}

	return o.MaxDepth
}

// Diff recursively compares left and right, returning every Change found.
// Diff is a pure function of its inputs: the same pair of documents always
// produces the same change list, in the same order.
func Diff(left, right *yamldoc.Document, opts Options) ([]Change, error) {
	var changes []Change

	err := diffValue(left.Root, right.Root, value.Path{}, opts.maxDepth(), 0, &changes)
	if err != nil {
		return nil, err
	}

	return changes, nil
}

func diffValue(l, r value.Value, path value.Path, maxDepth, depth int, out *[]Change) error {
	if depth > maxDepth {
		return &DepthExceededError{Path: path, MaxDepth: maxDepth}
	}

	switch {
	case l.Kind == value.KindEmpty && r.Kind == value.KindEmpty:
		return nil
	case l.Kind == value.KindEmpty:
		*out = append(*out, Change{Kind: Added, Path: path, Right: r})
		return nil
	case r.Kind == value.KindEmpty:
		*out = append(*out, Change{Kind: Removed, Path: path, Left: l})
		return nil
	case l.Kind != r.Kind:
		*out = append(*out, Change{Kind: Modified, Path: path, Left: l, Right: r})
		return nil
	}

	switch l.Kind {
	case value.KindScalar:
		if !value.Equal(l, r) {
			*out = append(*out, Change{Kind: Modified, Path: path, Left: l, Right: r})
		}

		return nil
	case value.KindMapping:
		return diffMapping(l, r, path, maxDepth, depth, out)
	case value.KindSequence:
		return diffSequence(l, r, path, maxDepth, depth, out)
	}

	return nil
}

// diffMapping recurses into shared keys and reports one-sided keys as
// Added/Removed. Keys are visited in left order first, then any new right
// keys in right order: this fixes emission order, not correctness (the set
// of changes is the same regardless of iteration order).
func diffMapping(l, r value.Value, path value.Path, maxDepth, depth int, out *[]Change) error {
	rByKey := make(map[string]value.Value, len(r.Mapping))
	for _, e := range r.Mapping {
		rByKey[value.CanonicalKey(e.Key)] = e.Value
	}

	visited := make(map[string]bool, len(l.Mapping))

	for _, e := range l.Mapping {
		k := value.CanonicalKey(e.Key)
		visited[k] = true

		fieldName := fieldLabel(e.Key)
		childPath := path.Field(fieldName)

		rv, ok := rByKey[k]
		if !ok {
			*out = append(*out, Change{Kind: Removed, Path: childPath, Left: e.Value})
			continue
		}

		if err := diffValue(e.Value, rv, childPath, maxDepth, depth+1, out); err != nil {
			return err
		}
	}

	for _, e := range r.Mapping {
		k := value.CanonicalKey(e.Key)
		if visited[k] {
			continue
		}

		childPath := path.Field(fieldLabel(e.Key))
		*out = append(*out, Change{Kind: Added, Path: childPath, Right: e.Value})
	}

	return nil
}

// fieldLabel renders a mapping key as the field name used in rendered
// paths. Non-string keys render their raw scalar text.
func fieldLabel(key value.Value) string {
	if key.Kind == value.KindScalar {
		return key.Scalar
	}

	return "?"
}

// diffSequence aligns l and r's elements by minimal distance, then for each
// aligned pair either emits Moved (equal scalar value, new index) or recurses at
// the right-hand index; unpaired left elements are Removed, unpaired right
// elements are Added.
func diffSequence(l, r value.Value, path value.Path, maxDepth, depth int, out *[]Change) error {
	a := align(l.Sequence, r.Sequence)

	for i := range l.Sequence {
		j, ok := a.leftToRight[i]
		if !ok {
			continue
		}

		if a.dist[i][j] == 0 {
			if i != j {
				*out = append(*out, Change{Kind: Moved, Path: path.Index(i), MoveFrom: i, MoveTo: j})
			}

			continue
		}

		if err := diffValue(l.Sequence[i], r.Sequence[j], path.Index(j), maxDepth, depth+1, out); err != nil {
			return err
		}
	}

	for i, e := range l.Sequence {
		if _, ok := a.leftToRight[i]; !ok {
			*out = append(*out, Change{Kind: Removed, Path: path.Index(i), Left: e})
		}
	}

	for j, e := range r.Sequence {
		if _, ok := a.rightToLeft[j]; !ok {
			*out = append(*out, Change{Kind: Added, Path: path.Index(j), Right: e})
		}
	}

	return nil
}
