package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/database-playground/account-eraser/internal/authutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
)

// hmacClaims are the claims of a development token.
type hmacClaims struct {
	UID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// HMACVerifier verifies HS256 tokens signed with a shared secret.
//
// It stands in for Firebase Auth in local development and tests.
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier creates a HMACVerifier.
func NewHMACVerifier(secret []byte) *HMACVerifier {
	return &HMACVerifier{secret: secret}
}

func (v *HMACVerifier) Verify(_ context.Context, token string) (AuthData, error) {
	claims := &hmacClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return AuthData{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	uid := lo.Ternary(claims.UID != "", claims.UID, claims.Subject)
	if uid == "" {
		return AuthData{}, ErrMissingSubject
	}

	return AuthData{
		UID:       uid,
		Provider:  "custom",
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SignHMACToken signs a development token for uid that expires after ttl.
func SignHMACToken(secret []byte, uid string, ttl time.Duration) (string, error) {
	if uid == "" {
		return "", errors.New("uid is required")
	}

	tokenID, err := authutil.GenerateTokenID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &hmacClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

var _ Verifier = (*HMACVerifier)(nil)
