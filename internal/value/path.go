package value

import (
	"strconv"
	"strings"
)

// SegmentKind distinguishes the two kinds of [Segment] a [Path] can hold.
type SegmentKind int

const (
	// SegmentField addresses a mapping entry by key.
	SegmentField SegmentKind = iota
	// SegmentIndex addresses a sequence element by position.
	SegmentIndex
)

// Segment is one step of a Path: a mapping field name or a sequence index.
type Segment struct {
	Kind  SegmentKind
	Field string
	Index int
}

// Field returns a field Segment.
func Field(name string) Segment {
	return Segment{Kind: SegmentField, Field: name}
}

// Index returns an index Segment.
func Index(i int) Segment {
	return Segment{Kind: SegmentIndex, Index: i}
}

// Path is a sequence of Segments from a document root to a subvalue. The
// empty Path denotes the root.
type Path []Segment

// Child returns a new Path with seg appended, leaving p unmodified.
func (p Path) Child(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg

	return out
}

// Field returns a new Path addressing field name under p.
func (p Path) Field(name string) Path {
	return p.Child(Field(name))
}

// Index returns a new Path addressing index i under p.
func (p Path) Index(i int) Path {
	return p.Child(Index(i))
}

// String renders p using `.field` and `[n]` syntax. The root is always
// rendered with a leading ".".
func (p Path) String() string {
	var sb strings.Builder

	sb.WriteByte('.')

	for i, seg := range p {
		switch seg.Kind {
		case SegmentField:
			if i > 0 {
				sb.WriteByte('.')
			}

			sb.WriteString(seg.Field)
		case SegmentIndex:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
		}
	}

	return sb.String()
}

// Equal reports whether p and other address the same path.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}
