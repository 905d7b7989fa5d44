package authutils

import (
	"testing"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/models"

	"github.com/stretchr/testify/require"
)

func initTestConfig() {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	config.Conf.Auth.JWTRefreshExpireInSec = 3600
}

func TestTokens(t *testing.T) {
	initTestConfig()
	t.Run(`access token claims`, func(t *testing.T) {
		info, err := GetToken("user-1", "Ivan Petrov", models.ManagerRole)
		require.NoError(t, err)
		require.NotEmpty(t, info.JTI)

		claims, err := ParseToken(info.Token)
		require.NoError(t, err)
		require.Equal(t, "user-1", ClaimString(claims, "sub"))
		require.Equal(t, "MANAGER", ClaimString(claims, "role"))
		require.Equal(t, AccessTokenType, ClaimString(claims, "typ"))
		require.Equal(t, info.JTI, ClaimString(claims, "jti"))
		require.WithinDuration(t, info.ExpiresAt, ClaimExpiresAt(claims), time.Second)
	})
	t.Run(`refresh token type`, func(t *testing.T) {
		info, err := GetRefreshToken("user-1", "Ivan Petrov", models.EmployeeRole)
		require.NoError(t, err)
		claims, err := ParseToken(info.Token)
		require.NoError(t, err)
		require.Equal(t, RefreshTokenType, ClaimString(claims, "typ"))
	})
	t.Run(`foreign signature is rejected`, func(t *testing.T) {
		info, err := GetToken("user-1", "Ivan Petrov", models.EmployeeRole)
		require.NoError(t, err)
		config.Conf.Auth.JWTSecret = "other"
		defer initTestConfig()
		_, err = ParseToken(info.Token)
		require.Error(t, err)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.True(t, CheckPassword(hash, "s3cret-pass"))
	require.False(t, CheckPassword(hash, "wrong"))
}
