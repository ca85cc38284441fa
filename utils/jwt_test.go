package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)

	access, err := tm.GenerateAccessToken(42, "admin")
	require.NoError(t, err)

	claims, err := tm.ParseToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tokenIssuer, claims.Issuer)

	_, err = tm.ParseToken(access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	refresh, err := tm.GenerateRefreshToken(42, "admin")
	require.NoError(t, err)
	_, err = tm.ParseToken(refresh, TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestTokenRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)

	t.Run("expired", func(t *testing.T) {
		old := NewTokenManager("secret", time.Minute, time.Hour)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
		token, err := old.GenerateAccessToken(1, "customer")
		require.NoError(t, err)

		_, err = tm.ParseToken(token, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenManager("other", time.Minute, time.Hour).GenerateAccessToken(1, "customer")
		require.NoError(t, err)

		_, err = tm.ParseToken(token, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(0, "customer")
		require.NoError(t, err)

		_, err = tm.ParseToken(token, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		claims := &CustomClaims{
			UserID: 1,
			Role:   "admin",
			Type:   TokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
				Issuer:    "someone-else",
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = tm.ParseToken(token, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.ParseToken("not.a.token", TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
