// Package prepatch applies user-declared, document-shape-gated patches to a
// parsed document before identification and diffing.
package prepatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felipesere/everdiff/internal/value"
	"github.com/felipesere/everdiff/internal/yamldoc"
)

// Op is a JSONPatch-like operation kind. Only these two are supported.
type Op string

const (
	OpReplace Op = "replace"
	OpAdd     Op = "add"
)

// PatchOp is one patch step: replace or add newValue at a JSONPointer path.
type PatchOp struct {
	Op    Op
	Path  string
	Value value.Value
}

// Rule is one pre-patch declaration: a document-like shape to match against,
// and the patches to apply to documents that match it.
type Rule struct {
	Name         string
	DocumentLike value.Value
	Patches      []PatchOp
}

// Apply runs rules against doc in declaration order, applying each rule's
// patches to both the matched document and returning the result. Rules
// compose: a later rule matches against the state left by earlier ones.
// doc is left unmodified; Apply returns a new Document.
func Apply(doc *yamldoc.Document, rules []Rule) (*yamldoc.Document, error) {
	root := doc.Root

	for _, rule := range rules {
		if !matches(rule.DocumentLike, root) {
			continue
		}

		for _, op := range rule.Patches {
			patched, err := applyOp(root, op)
			if err != nil {
				return nil, &PrePatchError{
					RuleName:      rule.Name,
					SourceName:    doc.SourceName,
					DocumentIndex: doc.Index,
					Reason:        err.Error(),
				}
			}

			root = patched
		}
	}

	out := *doc
	out.Root = root

	return &out, nil
}

// matches reports whether pattern is a document-like subtree match of doc:
// every mapping key in pattern exists in doc with a matching value; every
// sequence element in pattern equals the element at the same position in
// doc; scalars must be equal. Extra fields in doc are allowed; extra fields
// in pattern are not (doc simply won't have them, so the lookup fails).
func matches(pattern, doc value.Value) bool {
	switch pattern.Kind {
	case value.KindEmpty:
		return doc.Kind == value.KindEmpty
	case value.KindScalar:
		return doc.Kind == value.KindScalar && value.Equal(pattern, doc)
	case value.KindSequence:
		if doc.Kind != value.KindSequence || len(pattern.Sequence) > len(doc.Sequence) {
			return false
		}

		for i, pe := range pattern.Sequence {
			if !value.Equal(pe, doc.Sequence[i]) {
				return false
			}
		}

		return true
	case value.KindMapping:
		if doc.Kind != value.KindMapping {
			return false
		}

		for _, pe := range pattern.Mapping {
			dv, ok := findEntry(doc, pe.Key)
			if !ok || !matches(pe.Value, dv) {
				return false
			}
		}

		return true
	}

	return false
}

func findEntry(v value.Value, key value.Value) (value.Value, bool) {
	want := value.CanonicalKey(key)

	for _, e := range v.Mapping {
		if value.CanonicalKey(e.Key) == want {
			return e.Value, true
		}
	}

	return value.Value{}, false
}

func applyOp(root value.Value, op PatchOp) (value.Value, error) {
	tokens, err := parsePointer(op.Path)
	if err != nil {
		return value.Value{}, err
	}

	switch op.Op {
	case OpReplace:
		return replaceAt(root, tokens, op.Value)
	case OpAdd:
		return addAt(root, tokens, op.Value)
	default:
		return value.Value{}, fmt.Errorf("unsupported patch op %q", op.Op)
	}
}

// parsePointer decodes an RFC 6901 JSONPointer into its tokens, undoing the
// ~1 -> / and ~0 -> ~ escapes.
func parsePointer(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("json pointer must start with '/': %q", path)
	}

	raw := strings.Split(path[1:], "/")
	tokens := make([]string, len(raw))

	for i, t := range raw {
		t = strings.ReplaceAll(t, "~1", "/")
		t = strings.ReplaceAll(t, "~0", "~")
		tokens[i] = t
	}

	return tokens, nil
}

func replaceAt(v value.Value, tokens []string, newValue value.Value) (value.Value, error) {
	if len(tokens) == 0 {
		newValue.Span = v.Span
		return newValue, nil
	}

	head, rest := tokens[0], tokens[1:]

	switch v.Kind {
	case value.KindMapping:
		idx, ok := findMappingIndex(v, head)
		if !ok {
			return value.Value{}, fmt.Errorf("replace target %q does not exist", head)
		}

		child, err := replaceAt(v.Mapping[idx].Value, rest, newValue)
		if err != nil {
			return value.Value{}, err
		}

		entries := append([]value.MappingEntry(nil), v.Mapping...)
		entries[idx] = value.MappingEntry{Key: entries[idx].Key, Value: child}

		return value.NewMapping(entries, v.Span), nil
	case value.KindSequence:
		idx, err := parseIndex(head, len(v.Sequence))
		if err != nil {
			return value.Value{}, err
		}

		child, err := replaceAt(v.Sequence[idx], rest, newValue)
		if err != nil {
			return value.Value{}, err
		}

		seq := append([]value.Value(nil), v.Sequence...)
		seq[idx] = child

		return value.NewSequence(seq, v.Span), nil
	default:
		return value.Value{}, fmt.Errorf("cannot descend into %s at %q", v.Kind, head)
	}
}

func addAt(v value.Value, tokens []string, newValue value.Value) (value.Value, error) {
	if len(tokens) == 0 {
		newValue.Span = v.Span
		return newValue, nil
	}

	if len(tokens) == 1 {
		return addChild(v, tokens[0], newValue)
	}

	head, rest := tokens[0], tokens[1:]

	switch v.Kind {
	case value.KindMapping:
		idx, ok := findMappingIndex(v, head)
		if !ok {
			return value.Value{}, fmt.Errorf("add target %q does not exist", head)
		}

		child, err := addAt(v.Mapping[idx].Value, rest, newValue)
		if err != nil {
			return value.Value{}, err
		}

		entries := append([]value.MappingEntry(nil), v.Mapping...)
		entries[idx] = value.MappingEntry{Key: entries[idx].Key, Value: child}

		return value.NewMapping(entries, v.Span), nil
	case value.KindSequence:
		idx, err := parseIndex(head, len(v.Sequence))
		if err != nil {
			return value.Value{}, err
		}

		child, err := addAt(v.Sequence[idx], rest, newValue)
		if err != nil {
			return value.Value{}, err
		}

		seq := append([]value.Value(nil), v.Sequence...)
		seq[idx] = child

		return value.NewSequence(seq, v.Span), nil
	default:
		return value.Value{}, fmt.Errorf("cannot descend into %s at %q", v.Kind, head)
	}
}

// addChild implements the "add" semantics for the final path segment:
// mapping add creates or overwrites a key; sequence add inserts before the
// given index, or appends when the token is "-". An overwritten entry
// inherits the span of the entry it replaced; a true insert inherits the
// span of its enclosing container (v), since it has no prior position in
// the source to speak of.
func addChild(v value.Value, token string, newValue value.Value) (value.Value, error) {
	switch v.Kind {
	case value.KindMapping:
		entries := append([]value.MappingEntry(nil), v.Mapping...)

		if idx, ok := findMappingIndex(v, token); ok {
			newValue.Span = entries[idx].Value.Span
			entries[idx] = value.MappingEntry{Key: entries[idx].Key, Value: newValue}

			return value.NewMapping(entries, v.Span), nil
		}

		newValue.Span = v.Span
		key := value.NewScalar(token, value.TagString, v.Span)
		entries = append(entries, value.MappingEntry{Key: key, Value: newValue})

		return value.NewMapping(entries, v.Span), nil
	case value.KindSequence:
		seq := append([]value.Value(nil), v.Sequence...)
		newValue.Span = v.Span

		if token == "-" {
			seq = append(seq, newValue)
			return value.NewSequence(seq, v.Span), nil
		}

		idx, err := parseIndex(token, len(seq)+1)
		if err != nil {
			return value.Value{}, err
		}

		seq = append(seq, value.Value{})
		copy(seq[idx+1:], seq[idx:])
		seq[idx] = newValue

		return value.NewSequence(seq, v.Span), nil
	default:
		return value.Value{}, fmt.Errorf("cannot add into %s", v.Kind)
	}
}

func findMappingIndex(v value.Value, rawKey string) (int, bool) {
	for i, e := range v.Mapping {
		if e.Key.Kind == value.KindScalar && e.Key.Scalar == rawKey {
			return i, true
		}
	}

	return 0, false
}

// parseIndex parses a JSONPointer array token, requiring 0 <= n < limit.
func parseIndex(token string, limit int) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("bad sequence index %q", token)
	}

	if n < 0 || n >= limit {
		return 0, fmt.Errorf("sequence index %d out of range [0,%d)", n, limit)
	}

	return n, nil
}
