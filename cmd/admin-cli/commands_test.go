package main

import (
	"context"
	"testing"

	"github.com/database-playground/account-eraser/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDeleteUserCommand_RequiresConfirmation(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Backend: config.StoreBackendMemory}}
	root := newRootCommand(newDeleteUserCommand(cfg))

	err := root.Run(context.Background(), []string{"admin-cli", "delete-user", "--uid", "abc123"})
	require.ErrorContains(t, err, "--yes")
}

func TestDeleteUserCommand_Memory(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Backend: config.StoreBackendMemory}}
	root := newRootCommand(newDeleteUserCommand(cfg))

	err := root.Run(context.Background(), []string{"admin-cli", "delete-user", "--uid", "abc123", "--yes"})
	require.NoError(t, err)
}

func TestMintTokenCommand(t *testing.T) {
	t.Run("requires the hmac verifier", func(t *testing.T) {
		root := newRootCommand(newMintTokenCommand(config.AuthConfig{Verifier: config.VerifierFirebase}))

		err := root.Run(context.Background(), []string{"admin-cli", "mint-token", "--uid", "abc123"})
		require.Error(t, err)
	})

	t.Run("mints with the hmac verifier", func(t *testing.T) {
		root := newRootCommand(newMintTokenCommand(config.AuthConfig{
			Verifier:   config.VerifierHMAC,
			HMACSecret: "0123456789abcdef0123456789abcdef",
		}))

		err := root.Run(context.Background(), []string{"admin-cli", "mint-token", "--uid", "abc123", "--ttl", "10m"})
		require.NoError(t, err)
	})
}
