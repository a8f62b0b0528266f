package codegen

import (
	"github.com/pkg/errors"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// CodegenError is the single error type the codegen core ever returns. The
// caller discriminates failure modes by the message's prefix — there is
// deliberately no richer error type hierarchy to match against.
type CodegenError struct {
	Message string
	cause   error
}

// ---------------------
// ----- functions -----
// ---------------------

// Error implements the error interface.
func (e *CodegenError) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *CodegenError) Unwrap() error {
	return e.cause
}

// newErr builds a CodegenError with no underlying cause.
func newErr(format string, args ...interface{}) *CodegenError {
	return &CodegenError{Message: errors.Errorf(format, args...).Error()}
}

// wrapErr builds a CodegenError that wraps an underlying cause, keeping the
// spec's "<op> failed" message prefix while preserving the original error
// for anyone that wants to inspect it with errors.Unwrap.
func wrapErr(cause error, format string, args ...interface{}) *CodegenError {
	wrapped := errors.Wrapf(cause, format, args...)
	return &CodegenError{Message: wrapped.Error(), cause: cause}
}
