package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InternalError is the rich error type carried through the service. It wraps
// an underlying cause and adds a user-presentable hint and optional
// structured details that are safe to report to the caller.
type InternalError struct {
	cause             error
	hint              string
	reportableDetails map[string]interface{}
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return e.cause.Error()
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *InternalError) Unwrap() error {
	return e.cause
}

// Hint returns the user-presentable hint, if any.
func (e *InternalError) Hint() string {
	return e.hint
}

// ReportableDetails returns structured details safe to surface to the caller.
func (e *InternalError) ReportableDetails() map[string]interface{} {
	return e.reportableDetails
}

// Builder provides a fluent API for constructing internal errors.
type Builder struct {
	err *InternalError
}

// NewError starts building an error from a message.
func NewError(msg string) *Builder {
	return &Builder{err: &InternalError{cause: errors.New(msg)}}
}

// NewErrorf starts building an error from a format string.
func NewErrorf(format string, args ...interface{}) *Builder {
	return &Builder{err: &InternalError{cause: errors.Newf(format, args...)}}
}

// WithError starts building an error that wraps an existing one.
func WithError(err error) *Builder {
	return &Builder{err: &InternalError{cause: err}}
}

// WithHint attaches a user-presentable hint.
func (b *Builder) WithHint(hint string) *Builder {
	b.err.hint = hint
	return b
}

// WithHintf attaches a formatted user-presentable hint.
func (b *Builder) WithHintf(format string, args ...interface{}) *Builder {
	b.err.hint = fmt.Sprintf(format, args...)
	return b
}

// WithReportableDetails attaches structured details that are safe to return
// to the caller in an error response.
func (b *Builder) WithReportableDetails(details map[string]interface{}) *Builder {
	b.err.reportableDetails = details
	return b
}

// Mark classifies the error with one of the sentinel markers and returns the
// finished error.
func (b *Builder) Mark(sentinel error) error {
	b.err.cause = errors.Mark(b.err.cause, sentinel)
	return b.err
}
