package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("sekret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "sekret", hash)

	require.True(t, VerifyPassword(hash, "sekret"))
	require.False(t, VerifyPassword(hash, "wrong"))
	require.False(t, VerifyPassword("not a hash", "sekret"))
}
