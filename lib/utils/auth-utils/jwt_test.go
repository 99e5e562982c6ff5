package authutils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"asset-tools-backend/config"
	"asset-tools-backend/models"
)

func initTestConfig() {
	conf := new(config.Configuration)
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 60
	conf.Auth.JWTRefreshExpireInSec = 120
	config.Conf = conf
}

func parseToken(t *testing.T, tokenString string) jwt.MapClaims {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Conf.Auth.JWTSecret), nil
	})
	require.Nil(t, err)
	require.True(t, token.Valid)
	return token.Claims.(jwt.MapClaims)
}

func TestGetToken(t *testing.T) {
	initTestConfig()

	t.Run(`токен несёт пользователя, компанию и роль`, func(t *testing.T) {
		tokenString, err := GetToken("user-1", "Иванов Иван", "acme", models.CompanyUserRole)
		require.Nil(t, err)

		claims := parseToken(t, tokenString)
		require.Equal(t, "user-1", claims["sub"])
		require.Equal(t, "Иванов Иван", claims["name"])
		require.Equal(t, "acme", claims["company"])
		require.Equal(t, string(models.CompanyUserRole), claims["role"])
	})

	t.Run(`refresh токен без компании и роли`, func(t *testing.T) {
		tokenString, err := GetRefreshToken("user-1", "Иванов Иван")
		require.Nil(t, err)

		claims := parseToken(t, tokenString)
		require.Equal(t, "user-1", claims["sub"])
		_, hasCompany := claims["company"]
		require.False(t, hasCompany)
	})
}
