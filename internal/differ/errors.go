package differ

import (
	"errors"
	"fmt"

	"github.com/felipesere/everdiff/internal/value"
)

// ErrDepthExceeded is the sentinel wrapped by [DepthExceededError].
var ErrDepthExceeded = errors.New("depth exceeded")

// DepthExceededError is returned when recursive comparison passes
// [Options.MaxDepth], guarding against stack overflow on pathological input.
type DepthExceededError struct {
	Path     value.Path
	MaxDepth int
}

// Error implements the error interface.
func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("depth exceeded at %s (max %d)", e.Path.String(), e.MaxDepth)
}

// Unwrap allows errors.Is(err, ErrDepthExceeded) to succeed.
func (e *DepthExceededError) Unwrap() error {
	return ErrDepthExceeded
}
