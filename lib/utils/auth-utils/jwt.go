package authutils

import (
	"time"

	"employee-management-backend/config"
	"employee-management-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"
)

type TokenInfo struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

func GetToken(userID, name string, role models.UserRole) (TokenInfo, error) {
	return newToken(userID, name, role, AccessTokenType, config.Conf.Auth.JWTExpireInSec)
}

func GetRefreshToken(userID, name string, role models.UserRole) (TokenInfo, error) {
	return newToken(userID, name, role, RefreshTokenType, config.Conf.Auth.JWTRefreshExpireInSec)
}

func newToken(userID, name string, role models.UserRole, tokenType string, ttlSec int64) (TokenInfo, error) {
	now := time.Now()
	info := TokenInfo{
		JTI:       uuid.NewString(),
		ExpiresAt: now.Add(time.Second * time.Duration(ttlSec)),
	}
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"role": string(role),
		"jti":  info.JTI,
		"typ":  tokenType,
		"exp":  info.ExpiresAt.Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Conf.Auth.JWTSecret))
	if err != nil {
		return TokenInfo{}, errors.Wrap(err, "ошибка подписи токена")
	}
	info.Token = signed
	return info, nil
}

// ParseToken проверка подписи и срока действия
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Conf.Auth.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("некорректный формат токена")
	}
	return claims, nil
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}

func ClaimString(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}

func ClaimExpiresAt(claims jwt.MapClaims) time.Time {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
