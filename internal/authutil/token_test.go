package authutil_test

import (
	"testing"

	"github.com/database-playground/account-eraser/internal/authutil"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenID(t *testing.T) {
	first, err := authutil.GenerateTokenID()
	require.NoError(t, err)
	require.Len(t, first, 22)
	require.NotContains(t, first, "=")

	second, err := authutil.GenerateTokenID()
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
