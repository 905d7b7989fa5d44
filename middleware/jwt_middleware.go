package middleware

import (
	"employee-management-backend/config"
	tokenstore "employee-management-backend/lib/auth/token-store"
	authutils "employee-management-backend/lib/utils/auth-utils"
	apimodels "employee-management-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// AuthorizationRequired access токен из заголовка Authorization, для websocket также из query token
func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		TokenLookup:    "header:Authorization,query:token",
		SuccessHandler: checkToken,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}

func checkToken(ctx *fiber.Ctx) error {
	claims := authutils.GetClaims(ctx)
	if authutils.ClaimString(claims, "typ") != authutils.AccessTokenType {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется access токен"))
	}
	revoked, err := tokenstore.Instance.IsRevoked(ctx.UserContext(), GetTokenID(ctx))
	if err != nil {
		log.WithError(err).Error("ошибка проверки отзыва токена")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("ошибка проверки токена"))
	}
	if revoked {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("токен отозван"))
	}
	return ctx.Next()
}
