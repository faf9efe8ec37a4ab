package http_test

import (
	"testing"
	"time"

	httpin "fulfillment/internal/adapters/in/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "test-secret"

func signToken(t *testing.T, secret, subject, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := httpin.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticator(t *testing.T) {
	auth, err := httpin.NewAuthenticator(jwtSecret)
	require.NoError(t, err)

	t.Run("should build the principal from a valid token", func(t *testing.T) {
		// Given
		token := signToken(t, jwtSecret, "user-9", "dispatcher", time.Hour)

		// When
		principal, err := auth.Authenticate("Bearer " + token)

		// Then
		require.NoError(t, err)
		assert.Equal(t, "user-9", principal.UserID)
		assert.Equal(t, "dispatcher", principal.Role)
		assert.Equal(t, token, principal.Token)
	})

	t.Run("should reject missing and malformed headers", func(t *testing.T) {
		for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer not-a-jwt"} {
			_, err := auth.Authenticate(header)
			assert.Error(t, err, header)
		}
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		token := signToken(t, "other-secret", "user-9", "dispatcher", time.Hour)

		_, err := auth.Authenticate("Bearer " + token)

		assert.Error(t, err)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		token := signToken(t, jwtSecret, "user-9", "dispatcher", -time.Minute)

		_, err := auth.Authenticate("Bearer " + token)

		assert.Error(t, err)
	})

	t.Run("should reject a token without subject", func(t *testing.T) {
		token := signToken(t, jwtSecret, "", "dispatcher", time.Hour)

		_, err := auth.Authenticate("Bearer " + token)

		assert.Error(t, err)
	})

	t.Run("should require a secret", func(t *testing.T) {
		_, err := httpin.NewAuthenticator("  ")
		assert.Error(t, err)
	})
}
