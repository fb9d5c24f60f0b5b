package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUnauthenticated = "LIB001"
	ErrCodeBookNotFound    = "LIB002"
	ErrCodeNotBorrowed     = "LIB003"
	ErrCodeBookUnavailable = "LIB004"
	ErrCodeEmptyComment    = "LIB005"
	ErrCodeForbidden       = "LIB006"
	ErrCodeInvalidRequest  = "LIB007"
)

// Errors
var (
	ErrUnauthenticated = errors.New("no active user")
	ErrBookNotFound    = errors.New("book not found")
	ErrNotBorrowed     = errors.New("book is not borrowed by the active user")
	ErrBookUnavailable = errors.New("book is not available")
	ErrEmptyComment    = errors.New("review comment is empty")
	ErrForbidden       = errors.New("admin role required")
	ErrInvalidRequest  = errors.New("invalid request")
)

// LibraryError is the rejection reason of a library operation.
// A nil error means the operation was applied.
type LibraryError struct {
	Code    string
	Message string
	Err     error
}

func (e *LibraryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LibraryError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewUnauthenticatedError() *LibraryError {
	return &LibraryError{
		Code:    ErrCodeUnauthenticated,
		Message: "You must be logged in",
		Err:     ErrUnauthenticated,
	}
}

func NewBookNotFoundError(bookID string) *LibraryError {
	return &LibraryError{
		Code:    ErrCodeBookNotFound,
		Message: fmt.Sprintf("Book %q not found", bookID),
		Err:     ErrBookNotFound,
	}
}

func NewNotBorrowedError(bookID string) *LibraryError {
	return &LibraryError{
		Code:    ErrCodeNotBorrowed,
		Message: fmt.Sprintf("Book %q is not in your borrowed books", bookID),
		Err:     ErrNotBorrowed,
	}
}

func NewBookUnavailableError(bookID string, status BookStatus) *LibraryError {
	return &LibraryError{
		Code:    ErrCodeBookUnavailable,
		Message: fmt.Sprintf("Book %q is %s", bookID, status),
		Err:     ErrBookUnavailable,
	}
}

func NewEmptyCommentError() *LibraryError {
	return &LibraryError{
		Code:    ErrCodeEmptyComment,
		Message: "Review comment must not be empty",
		Err:     ErrEmptyComment,
	}
}

func NewForbiddenError() *LibraryError {
	return &LibraryError{
		Code:    ErrCodeForbidden,
		Message: "Access denied: admin role required",
		Err:     ErrForbidden,
	}
}

func NewValidationError(err error) *LibraryError {
	return &LibraryError{
		Code:    ErrCodeInvalidRequest,
		Message: "Validation failed",
		Err:     fmt.Errorf("%w: %v", ErrInvalidRequest, err),
	}
}

// CodeOf returns the LibraryError code carried by err, or "" if none
func CodeOf(err error) string {
	var libErr *LibraryError
	if errors.As(err, &libErr) {
		return libErr.Code
	}
	return ""
}
