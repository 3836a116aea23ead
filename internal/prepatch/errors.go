package prepatch

import (
	"errors"
	"fmt"
)

// ErrPrePatch is the sentinel wrapped by [PrePatchError].
var ErrPrePatch = errors.New("pre-patch failed")

// PrePatchError reports a matched rule whose patch could not be applied: a
// missing target for replace, or a malformed JSONPointer.
// Pre-patching runs before identification, so documents are identified by
// their source name and stream position rather than a pairing key.
type PrePatchError struct {
	RuleName      string
	SourceName    string
	DocumentIndex int
	Reason        string
}

// Error implements the error interface.
func (e *PrePatchError) Error() string {
	return fmt.Sprintf("pre-patch %q on %s document %d: %s", e.RuleName, e.SourceName, e.DocumentIndex, e.Reason)
}

// Unwrap allows errors.Is(err, ErrPrePatch) to succeed.
func (e *PrePatchError) Unwrap() error {
	return ErrPrePatch
}
