package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var svc = NewService(
	"test-signing-key",
	"test-issuer",
	"test-audience",
)

func Test_GenerateAndValidate(t *testing.T) {
	tok, err := svc.Generate("analyst-7", "admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "analyst-7", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func Test_Validate_InvalidToken(t *testing.T) {
	_, err := svc.Validate("invalid-token-string")
	require.ErrorIs(t, err, ErrInvalid)
}

func Test_Validate_ExpiredToken(t *testing.T) {
	tok, err := svc.Generate("analyst-7", "admin", -time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(tok)
	require.ErrorIs(t, err, ErrExpired)
}

func Test_Validate_WrongKey(t *testing.T) {
	other := NewService("other-key", "test-issuer", "test-audience")
	tok, err := other.Generate("analyst-7", "viewer", time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(tok)
	require.ErrorIs(t, err, ErrInvalid)
}
