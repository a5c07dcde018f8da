package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	// ErrBadTokenFormat is returned when the Authorization header is not in the correct Bearer format.
	ErrBadTokenFormat = errors.New("bad token format")
)

// RejectFunc writes the response for a request whose credential was rejected.
type RejectFunc func(c *gin.Context, err error)

// Middleware verifies the bearer token and packs the identity into the request context.
//
// A request without an Authorization header passes through without identity.
// A request with a malformed or unverifiable token is handed to reject.
func Middleware(verifier Verifier, reject RejectFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		newCtx, err := ExtractToken(c.Request, verifier)
		if err != nil {
			reject(c, err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(newCtx)
		c.Next()
	}
}

// ExtractToken extracts the token from the Authorization header and returns
// a context carrying the verified identity.
//
// It adds nothing to the context if the token is not present.
func ExtractToken(r *http.Request, verifier Verifier) (context.Context, error) {
	authHeaderContent := r.Header.Get("Authorization")
	if authHeaderContent == "" {
		return r.Context(), nil
	}

	token, ok := strings.CutPrefix(authHeaderContent, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return nil, ErrBadTokenFormat
	}

	data, err := verifier.Verify(r.Context(), strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	return WithUser(r.Context(), data), nil
}
