package auth_test

import (
	"context"
	"testing"

	"github.com/database-playground/account-eraser/internal/auth"
)

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	ctx = auth.WithUser(ctx, auth.AuthData{
		UID:      "abc123",
		Provider: "password",
	})

	user, ok := auth.GetUser(ctx)
	if !ok {
		t.Fatal("user not found")
	}

	if user.UID != "abc123" {
		t.Fatalf("uid is not correct: %v", user.UID)
	}

	if user.Provider != "password" {
		t.Fatalf("provider is not correct: %v", user.Provider)
	}
}

func TestUserContext_Absent(t *testing.T) {
	_, ok := auth.GetUser(context.Background())
	if ok {
		t.Fatal("expected no user in an empty context")
	}
}
