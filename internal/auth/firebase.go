package auth

import (
	"context"
	"fmt"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// IDTokenVerifier is the part of the Firebase Auth client used to verify ID tokens.
//
// *firebaseauth.Client satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client       IDTokenVerifier
	checkRevoked bool
}

// NewFirebaseVerifier creates a FirebaseVerifier.
//
// With checkRevoked, every verification also asks Firebase Auth whether the
// token was revoked or the user disabled.
func NewFirebaseVerifier(client IDTokenVerifier, checkRevoked bool) *FirebaseVerifier {
	return &FirebaseVerifier{
		client:       client,
		checkRevoked: checkRevoked,
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (AuthData, error) {
	ctx, span := tracer.Start(ctx, "FirebaseVerifier.Verify")
	defer span.End()

	verify := v.client.VerifyIDToken
	if v.checkRevoked {
		verify = v.client.VerifyIDTokenAndCheckRevoked
	}

	idToken, err := verify(ctx, token)
	if err != nil {
		span.RecordError(err)
		if isTokenRejection(err) {
			return AuthData{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}

		return AuthData{}, err
	}

	uid := idToken.UID
	if uid == "" {
		uid = idToken.Subject
	}
	if uid == "" {
		return AuthData{}, ErrMissingSubject
	}

	return AuthData{
		UID:       uid,
		Provider:  idToken.Firebase.SignInProvider,
		ExpiresAt: time.Unix(idToken.Expires, 0),
		Claims:    idToken.Claims,
	}, nil
}

func isTokenRejection(err error) bool {
	return firebaseauth.IsIDTokenInvalid(err) ||
		firebaseauth.IsIDTokenExpired(err) ||
		firebaseauth.IsIDTokenRevoked(err) ||
		firebaseauth.IsUserDisabled(err)
}

var _ Verifier = (*FirebaseVerifier)(nil)
