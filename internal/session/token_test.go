package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, jti, err := mintToken(secret, "amelia@duocuc.cl", "cliente", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	c, err := parseToken(secret, token, true)
	require.NoError(t, err)
	assert.Equal(t, "amelia@duocuc.cl", c.Email)
	assert.Equal(t, "cliente", c.Role)
	assert.Equal(t, jti, c.ID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, err := mintToken([]byte("secret-a"), "a@b.cl", "cliente", time.Hour)
	require.NoError(t, err)

	_, err = parseToken([]byte("secret-b"), token, true)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestTokenExpired(t *testing.T) {
	token, jti, err := mintToken([]byte("s"), "a@b.cl", "cliente", -time.Minute)
	require.NoError(t, err)

	_, err = parseToken([]byte("s"), token, true)
	assert.ErrorIs(t, err, ErrBadToken)

	// expired tokens still parse for Clear, which only needs the jti
	c, err := parseToken([]byte("s"), token, false)
	require.NoError(t, err)
	assert.Equal(t, jti, c.ID)
}

func TestTokenGarbage(t *testing.T) {
	_, err := parseToken([]byte("s"), "not-a-jwt", true)
	assert.ErrorIs(t, err, ErrBadToken)
}
