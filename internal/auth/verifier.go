// Package auth verifies caller credentials and carries the verified identity
// through the request context.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken is returned when a token fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is returned when a verified token names no subject.
	ErrMissingSubject = errors.New("token has no subject")
)

// Verifier turns a caller-supplied credential into a verified identity.
type Verifier interface {
	// Verify checks the token and returns the identity it asserts.
	//
	// Error is implementation-defined but wraps ErrInvalidToken
	// when the token itself is at fault.
	Verify(ctx context.Context, token string) (AuthData, error)
}
