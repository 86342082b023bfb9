package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camerpulse/camerpulse-sub015/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Run("should verify a freshly issued token", func(t *testing.T) {
		service := auth.NewService("test-secret")

		token, err := service.GenerateToken("ops@camerpulse", time.Hour)
		require.NoError(t, err)

		claims, err := service.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, "ops@camerpulse", claims.Operator)
	})

	t.Run("should accept the Bearer prefix", func(t *testing.T) {
		service := auth.NewService("test-secret")

		token, err := service.GenerateToken("ops", time.Hour)
		require.NoError(t, err)

		_, err = service.VerifyToken("Bearer " + token)
		assert.NoError(t, err)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		issuer := auth.NewService("secret-a")
		verifier := auth.NewService("secret-b")

		token, err := issuer.GenerateToken("ops", time.Hour)
		require.NoError(t, err)

		_, err = verifier.VerifyToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		service := auth.NewService("test-secret")

		token, err := service.GenerateToken("ops", -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		service := auth.NewService("test-secret")

		_, err := service.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
