package yamldoc

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel wrapped by every [ParseError].
var ErrParse = errors.New("parse error")

// ParseError reports malformed YAML input: a syntax error, an unresolvable
// alias, or a duplicate key within one mapping.
type ParseError struct {
	SourceName string
	Line       int
	Column     int
	Detail     string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.SourceName, e.Line, e.Column, e.Detail)
	}

	return fmt.Sprintf("%s: %s", e.SourceName, e.Detail)
}

// Unwrap allows errors.Is(err, ErrParse) to succeed for any *ParseError.
func (e *ParseError) Unwrap() error {
	return ErrParse
}
