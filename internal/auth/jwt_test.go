package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tm := NewTokenManager("secret", "cribn-backend", time.Hour)

	tok, err := tm.Generate("user-1", "user")
	require.NoError(t, err)

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "cribn-backend", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret", "cribn-backend", time.Hour)
	other := NewTokenManager("other", "cribn-backend", time.Hour)

	tok, err := tm.Generate("user-1", "user")
	require.NoError(t, err)

	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", "cribn-backend", -time.Minute)
	tok, err := tm.Generate("user-1", "user")
	require.NoError(t, err)

	_, err = tm.Parse(tok)
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NoError(t, VerifyPassword("hunter22", hash))
	assert.Error(t, VerifyPassword("hunter23", hash))
}
