package callable

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/status"
)

// Error is a structured callable error: a kind plus a human-readable message.
//
// Handlers return it to report a specific kind to the caller. Any other error
// is converted with FromError.
type Error struct {
	Code    Code
	Message string
	Details any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}

	return false
}

// NewError creates an error of the given kind.
func NewError(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// FromError derives the callable error reported for err.
//
//   - an *Error anywhere in the chain is used as-is
//   - context cancellation and deadlines keep their meaning
//   - an error carrying a gRPC status keeps the status code and message
//   - anything else is reported as INTERNAL without leaking its text
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var callableErr *Error
	if errors.As(err, &callableErr) {
		return callableErr
	}

	switch {
	case errors.Is(err, context.Canceled):
		return NewError(CodeCancelled, "CANCELLED")
	case errors.Is(err, context.DeadlineExceeded):
		return NewError(CodeDeadlineExceeded, "DEADLINE_EXCEEDED")
	}

	var grpcErr interface{ GRPCStatus() *status.Status }
	if errors.As(err, &grpcErr) {
		st := grpcErr.GRPCStatus()
		return NewError(CodeFromGRPC(st.Code()), st.Message())
	}

	return NewError(CodeInternal, "INTERNAL")
}
