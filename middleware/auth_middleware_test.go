package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"employee-management-backend/config"
	tokenstore "employee-management-backend/lib/auth/token-store"
	"employee-management-backend/lib/rbac"
	authutils "employee-management-backend/lib/utils/auth-utils"
	"employee-management-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func initAuthTestConfig() {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 3600
	config.Conf.Auth.JWTRefreshExpireInSec = 7200
	tokenstore.Instance = tokenstore.NewMemoryStore()
	rbac.NewHandler(func(userID string, role models.UserRole, path string) bool {
		return userID != "mgr-other"
	})
}

func newSecuredApp() *fiber.App {
	app := fiber.New()
	app.Route("/api/v1", func(router fiber.Router) {
		router.Use(AuthorizationRequired(), RbacMiddleware())
		ok := func(c *fiber.Ctx) error {
			return c.SendString(GetUserID(c))
		}
		router.Get("/dashboard", ok)
		router.Post("/divisions", ok)
		router.Post("/leaves/:id/approve", ok)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) int {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthorizationRequired(t *testing.T) {
	initAuthTestConfig()
	app := newSecuredApp()

	access, err := authutils.GetToken("e1", "Budi Santoso", models.EmployeeRole)
	require.NoError(t, err)

	t.Run(`missing bearer`, func(t *testing.T) {
		require.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, fiber.MethodGet, "/api/v1/dashboard", ""))
	})
	t.Run(`malformed token`, func(t *testing.T) {
		require.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, fiber.MethodGet, "/api/v1/dashboard", "garbage"))
	})
	t.Run(`foreign signature`, func(t *testing.T) {
		config.Conf.Auth.JWTSecret = "other-secret"
		foreign, err := authutils.GetToken("e1", "Budi Santoso", models.EmployeeRole)
		config.Conf.Auth.JWTSecret = "test-secret"
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, fiber.MethodGet, "/api/v1/dashboard", foreign.Token))
	})
	t.Run(`refresh token is not access`, func(t *testing.T) {
		refresh, err := authutils.GetRefreshToken("e1", "Budi Santoso", models.EmployeeRole)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, fiber.MethodGet, "/api/v1/dashboard", refresh.Token))
	})
	t.Run(`valid access token`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, doRequest(t, app, fiber.MethodGet, "/api/v1/dashboard", access.Token))
	})
	t.Run(`query token for websocket`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, doRequest(t, app, fiber.MethodGet, "/api/v1/dashboard?token="+access.Token, ""))
	})
	t.Run(`revoked jti`, func(t *testing.T) {
		revoked, err := authutils.GetToken("e1", "Budi Santoso", models.EmployeeRole)
		require.NoError(t, err)
		require.NoError(t, tokenstore.Instance.Revoke(context.Background(), revoked.JTI, time.Now().Add(time.Hour)))
		require.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, fiber.MethodGet, "/api/v1/dashboard", revoked.Token))
	})
}

func TestRbacMiddleware(t *testing.T) {
	initAuthTestConfig()
	app := newSecuredApp()

	token := func(userID string, role models.UserRole) string {
		info, err := authutils.GetToken(userID, "Test User", role)
		require.NoError(t, err)
		return info.Token
	}

	t.Run(`role outside rule`, func(t *testing.T) {
		require.Equal(t, fiber.StatusForbidden, doRequest(t, app, fiber.MethodPost, "/api/v1/divisions", token("e1", models.EmployeeRole)))
		require.Equal(t, fiber.StatusOK, doRequest(t, app, fiber.MethodPost, "/api/v1/divisions", token("hr1", models.HRAdminRole)))
	})
	t.Run(`unknown role`, func(t *testing.T) {
		require.Equal(t, fiber.StatusForbidden, doRequest(t, app, fiber.MethodGet, "/api/v1/dashboard", token("e1", models.UserRole("GUEST"))))
	})
	t.Run(`flow rule rejects`, func(t *testing.T) {
		require.Equal(t, fiber.StatusForbidden, doRequest(t, app, fiber.MethodPost, "/api/v1/leaves/l1/approve", token("mgr-other", models.ManagerRole)))
		require.Equal(t, fiber.StatusForbidden, doRequest(t, app, fiber.MethodPost, "/api/v1/leaves/l1/approve", token("e1", models.EmployeeRole)))
		require.Equal(t, fiber.StatusOK, doRequest(t, app, fiber.MethodPost, "/api/v1/leaves/l1/approve", token("mgr1", models.ManagerRole)))
	})
}
