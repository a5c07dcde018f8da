package cli_test

import (
	"context"
	"testing"
	"time"

	"github.com/database-playground/account-eraser/cli"
	"github.com/database-playground/account-eraser/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestMintToken(t *testing.T) {
	t.Run("should mint a verifiable token", func(t *testing.T) {
		token, err := cli.MintToken(testSecret, "abc123", time.Hour)
		if err != nil {
			t.Fatalf("MintToken failed: %v", err)
		}

		data, err := auth.NewHMACVerifier([]byte(testSecret)).Verify(context.Background(), token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if data.UID != "abc123" {
			t.Errorf("expected uid %q, got %q", "abc123", data.UID)
		}
	})

	t.Run("should require a secret", func(t *testing.T) {
		if _, err := cli.MintToken("", "abc123", time.Hour); err == nil {
			t.Error("expected error without secret")
		}
	})

	t.Run("should require a positive ttl", func(t *testing.T) {
		if _, err := cli.MintToken(testSecret, "abc123", 0); err == nil {
			t.Error("expected error with zero ttl")
		}
	})

	t.Run("should require a uid", func(t *testing.T) {
		if _, err := cli.MintToken(testSecret, "", time.Hour); err == nil {
			t.Error("expected error without uid")
		}
	})
}
