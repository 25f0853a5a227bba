package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret", time.Minute)

	token, err := svc.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestValidate_Expired(t *testing.T) {
	svc := New("test-secret", -time.Minute)

	token, err := svc.Generate(42)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Minute).Generate(42)
	require.NoError(t, err)

	_, err = New("secret-b", time.Minute).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Garbage(t *testing.T) {
	svc := New("test-secret", time.Minute)

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Validate("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
