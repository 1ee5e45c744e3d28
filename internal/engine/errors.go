package engine

import (
	"errors"
	"fmt"
)

// Fatal error classes. Everything else that can go wrong while processing
// a single stream is an outcome value, not an error: the original stream
// is kept and the document call carries on.
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrParseFailed     = errors.New("document parse failed")
	ErrSerializeFailed = errors.New("document serialization failed")
)

// DocumentError wraps a fatal failure with the step it occurred in.
type DocumentError struct {
	Step string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s failed: %v", e.Step, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

func newDocumentError(step string, class, cause error) *DocumentError {
	return &DocumentError{Step: step, Err: fmt.Errorf("%w: %v", class, cause)}
}
