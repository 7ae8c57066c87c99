package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academia_backend/internals/configs"
)

func signRefresh(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestParseRefreshToken(t *testing.T) {
	configs.JWTRefreshSecret = "test-refresh-secret"
	userID := uuid.New()

	raw := signRefresh(t, configs.JWTRefreshSecret, jwt.MapClaims{
		"sub": userID.String(),
		"typ": "refresh",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	got, err := ParseRefreshToken(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	configs.JWTRefreshSecret = "test-refresh-secret"

	raw := signRefresh(t, configs.JWTRefreshSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"typ": "access",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ParseRefreshToken(raw)
	require.Error(t, err)
}

func TestParseRefreshTokenRejectsWrongSecret(t *testing.T) {
	configs.JWTRefreshSecret = "test-refresh-secret"

	raw := signRefresh(t, "another-secret", jwt.MapClaims{
		"sub": uuid.New().String(),
		"typ": "refresh",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ParseRefreshToken(raw)
	require.Error(t, err)
}

func TestParseRefreshTokenRejectsExpired(t *testing.T) {
	configs.JWTRefreshSecret = "test-refresh-secret"

	raw := signRefresh(t, configs.JWTRefreshSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"typ": "refresh",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := ParseRefreshToken(raw)
	require.Error(t, err)
}
