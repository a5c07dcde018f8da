package auth

import (
	"context"
	"time"
)

type authContextKey string

const (
	userContextKey authContextKey = "user"
)

// AuthData is the verified identity of a caller.
type AuthData struct {
	// UID is the opaque subject identifier asserted by the verifier.
	UID string `json:"uid"`
	// Provider is the sign-in provider, when the verifier knows it.
	Provider string `json:"provider,omitempty"`
	// ExpiresAt is when the presented credential stops being valid.
	ExpiresAt time.Time `json:"expires_at"`
	// Claims are the decoded token claims.
	Claims map[string]any `json:"claims,omitempty"`
}

// WithUser adds the verified identity to the context.
//
// For any request with this context, you can use `GetUser`
// to get the identity back.
func WithUser(ctx context.Context, data AuthData) context.Context {
	return context.WithValue(ctx, userContextKey, data)
}

// GetUser returns the verified identity from the context.
//
// It returns the identity and a boolean indicating
// whether an identity is present.
func GetUser(ctx context.Context) (AuthData, bool) {
	data, ok := ctx.Value(userContextKey).(AuthData)
	return data, ok
}
