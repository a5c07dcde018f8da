// Package authutil holds helpers shared by the token tooling.
package authutil

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateTokenID generates a random, URL-safe identifier for a minted token.
//
// Example:
//
//	q1q8bLQ3mEw0tF2nI9Qe7A
func GenerateTokenID() (string, error) {
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(idBytes), nil
}
