package cli

import (
	"errors"
	"time"

	"github.com/database-playground/account-eraser/internal/auth"
)

// MintToken signs a development token for uid.
//
// The backend only accepts it when AUTH_VERIFIER is "hmac" and shares secret.
func MintToken(secret string, uid string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("AUTH_HMAC_SECRET is not set")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}

	return auth.SignHMACToken([]byte(secret), uid, ttl)
}
