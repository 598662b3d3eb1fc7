package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter2!", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "hunter2!", hash)

	require.NoError(t, ComparePassword(hash, "hunter2!"))
	require.Error(t, ComparePassword(hash, "hunter3!"))
}
