package middleware

import (
	"time"

	authutils "employee-management-backend/lib/utils/auth-utils"
	"employee-management-backend/models"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.ClaimString(authutils.GetClaims(ctx), "sub")
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(authutils.ClaimString(authutils.GetClaims(ctx), "role"))
}

func GetTokenID(ctx *fiber.Ctx) string {
	return authutils.ClaimString(authutils.GetClaims(ctx), "jti")
}

func GetTokenExpiresAt(ctx *fiber.Ctx) time.Time {
	return authutils.ClaimExpiresAt(authutils.GetClaims(ctx))
}
