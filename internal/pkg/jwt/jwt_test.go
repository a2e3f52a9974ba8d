//go:build unit

package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateToken(t *testing.T) {
	svc := NewService("secret", "booking-admin")

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateToken("host@example.com", RoleAdmin, time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "host@example.com", claims.Subject)
		assert.Equal(t, RoleAdmin, claims.Role)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := svc.GenerateToken("host@example.com", RoleAdmin, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		token, err := NewService("secret", "someone-else").GenerateToken("x", RoleAdmin, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewService("other", "booking-admin").GenerateToken("x", RoleAdmin, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
