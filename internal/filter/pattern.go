// Package filter drops Changes whose path matches a user ignore pattern, or
// drops Moved changes outright.
package filter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/felipesere/everdiff/internal/value"
)

// ErrPatternSyntax is the sentinel for a malformed ignore pattern, fatal at
// config load time.
var ErrPatternSyntax = errors.New("malformed ignore pattern")

// patternSegment is one step of a [Pattern]: a literal field, a literal
// index, or a `*` wildcard matching either.
type patternSegment struct {
	wildcard bool
	isIndex  bool
	field    string
	index    int
}

// Pattern is a parsed ignore-path expression using the same `.field`/`[n]`
// grammar as rendered Paths, plus `*` as a single-segment wildcard.
type Pattern []patternSegment

// ParsePattern parses an ignore pattern such as ".metadata.annotations" or
// ".spec.containers[*].image".
func ParsePattern(s string) (Pattern, error) {
	if len(s) == 0 || s[0] != '.' {
		return nil, fmt.Errorf("%w: pattern must start with '.': %q", ErrPatternSyntax, s)
	}

	var pat Pattern

	i := 1
	for i < len(s) {
		switch s[i] {
		case '.':
			i++
		case '[':
			end := indexByte(s, i, ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated '[' in %q", ErrPatternSyntax, s)
			}

			token := s[i+1 : end]
			i = end + 1

			if token == "*" {
				pat = append(pat, patternSegment{wildcard: true})
				continue
			}

			n, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("%w: bad index %q in %q", ErrPatternSyntax, token, s)
			}

			pat = append(pat, patternSegment{isIndex: true, index: n})
		default:
			start := i
			for i < len(s) && s[i] != '.' && s[i] != '[' {
				i++
			}

			token := s[start:i]
			if token == "*" {
				pat = append(pat, patternSegment{wildcard: true})
			} else {
				pat = append(pat, patternSegment{field: token})
			}
		}
	}

	return pat, nil
}

func indexByte(s string, from int, b byte) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}

	return -1
}

// Matches reports whether pat matches path: either pat equals path in full,
// or pat is a matching prefix of path (dropping the whole subtree below it).
func (pat Pattern) Matches(path value.Path) bool {
	if len(pat) > len(path) {
		return false
	}

	for i, seg := range pat {
		ps := path[i]

		if seg.wildcard {
			continue
		}

		if seg.isIndex {
			if ps.Kind != value.SegmentIndex || ps.Index != seg.index {
				return false
			}
		} else if ps.Kind != value.SegmentField || ps.Field != seg.field {
			return false
		}
	}

	return true
}
