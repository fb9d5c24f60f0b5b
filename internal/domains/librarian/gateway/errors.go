package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrCompletionFailed is matched by every gateway failure
	ErrCompletionFailed = errors.New("completion failed")

	// ErrNotConfigured is returned when no API key is set
	ErrNotConfigured = errors.New("completion service is not configured")

	// ErrEmptyReply is returned when the model answers with no text
	ErrEmptyReply = errors.New("completion service returned an empty reply")
)

// CompletionError describes a failed Recommend or Summarize call.
// errors.Is matches both ErrCompletionFailed and the underlying cause.
type CompletionError struct {
	Operation string
	Err       error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, ErrCompletionFailed, e.Err)
}

func (e *CompletionError) Unwrap() []error {
	return []error{ErrCompletionFailed, e.Err}
}
