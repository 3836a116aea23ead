// Package pairing joins two keyed document sets by identity.
package pairing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felipesere/everdiff/internal/yamldoc"
)

// ErrDuplicateKey is the sentinel wrapped by [DuplicateKeyError].
var ErrDuplicateKey = errors.New("duplicate identity key")

// DuplicateKeyError reports two documents on the same side sharing an
// identity key. This is always fatal: pairing cannot proceed.
type DuplicateKeyError struct {
	Side string
	Key  yamldoc.Key
}

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate identity key on %s side: %s", e.Side, strings.Join(e.Key.Render(), ", "))
}

// Unwrap allows errors.Is(err, ErrDuplicateKey) to succeed.
func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// Pair is one matched left/right document pair.
type Pair struct {
	Left  *yamldoc.Document
	Right *yamldoc.Document
}

// Result partitions two identified document sets by identity key.
type Result struct {
	// Matched holds pairs with equal keys, in left-appearance order.
	Matched []Pair
	// Missing holds left documents with no right counterpart, in left order.
	Missing []*yamldoc.Document
	// Extra holds right documents with no left counterpart, in right order.
	Extra []*yamldoc.Document
}

// Pair joins left and right by their Identity keys (set by package identity).
// Pairing is set-based: it never fuzzy-matches unequal keys.
func Pair(left, right []*yamldoc.Document) (Result, error) {
	rightByKey := make(map[yamldoc.Key]*yamldoc.Document, len(right))

	for _, d := range right {
		if _, dup := rightByKey[d.Identity]; dup {
			return Result{}, &DuplicateKeyError{Side: "right", Key: d.Identity}
		}

		rightByKey[d.Identity] = d
	}

	seenLeft := make(map[yamldoc.Key]bool, len(left))

	var (
		matched []Pair
		missing []*yamldoc.Document
	)

	for _, d := range left {
		if seenLeft[d.Identity] {
			return Result{}, &DuplicateKeyError{Side: "left", Key: d.Identity}
		}

		seenLeft[d.Identity] = true

		if rd, ok := rightByKey[d.Identity]; ok {
			matched = append(matched, Pair{Left: d, Right: rd})
		} else {
			missing = append(missing, d)
		}
	}

	var extra []*yamldoc.Document

	for _, d := range right {
		if !seenLeft[d.Identity] {
			extra = append(extra, d)
		}
	}

	return Result{Matched: matched, Missing: missing, Extra: extra}, nil
}
