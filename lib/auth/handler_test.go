package authhandler

import (
	"context"
	"sync"
	"testing"
	"time"

	"employee-management-backend/config"
	tokenstore "employee-management-backend/lib/auth/token-store"
	"employee-management-backend/lib/employee/store/storefake"
	"employee-management-backend/lib/rbac"
	apperrors "employee-management-backend/lib/utils/app-errors"
	authutils "employee-management-backend/lib/utils/auth-utils"
	"employee-management-backend/models"
	authapimodels "employee-management-backend/models/api/auth"
	dbmodels "employee-management-backend/models/db"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T, records ...dbmodels.Employee) (impl, *storefake.Fake) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 3600
	config.Conf.Auth.JWTRefreshExpireInSec = 7200
	config.Conf.Leave.MinTenureMonths = 3
	rbac.NewHandler(nil)
	employees := storefake.New(records...)
	return impl{
		store:      employees,
		tokenStore: tokenstore.NewMemoryStore(),
		rbac:       rbac.Instance,
		now: func() time.Time {
			return testNow
		},
	}, employees
}

func testEmployee(t *testing.T, id, email string) dbmodels.Employee {
	hash, err := authutils.HashPassword("secret123")
	require.NoError(t, err)
	return dbmodels.Employee{
		BaseModel: dbmodels.BaseModel{ID: id},
		Email:     email,
		Password:  hash,
		FirstName: "Budi",
		LastName:  "Santoso",
		Role:      models.ManagerRole,
		Status:    models.EmployeeActiveStatus,
		IsActive:  true,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	active := testEmployee(t, "e1", "budi@company.co.id")
	terminated := testEmployee(t, "e2", "old@company.co.id")
	terminated.Status = models.EmployeeTerminatedStatus
	h, employees := newTestHandler(t, active, terminated)

	t.Run(`success`, func(t *testing.T) {
		resp, err := h.Login(ctx, "budi@company.co.id", "secret123")
		require.NoError(t, err)
		require.Equal(t, int64(3600), resp.ExpiresIn)

		claims, err := authutils.ParseToken(resp.Token)
		require.NoError(t, err)
		require.Equal(t, "e1", claims["sub"])
		require.Equal(t, "MANAGER", claims["role"])
		require.Equal(t, authutils.AccessTokenType, claims["typ"])

		refresh, err := authutils.ParseToken(resp.RefreshToken)
		require.NoError(t, err)
		require.Equal(t, authutils.RefreshTokenType, refresh["typ"])
		require.Equal(t, testNow, employees.Updates["e1"]["last_login"])
	})
	t.Run(`wrong password`, func(t *testing.T) {
		_, err := h.Login(ctx, "budi@company.co.id", "wrong")
		require.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	})
	t.Run(`unknown email`, func(t *testing.T) {
		_, err := h.Login(ctx, "nobody@company.co.id", "secret123")
		require.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	})
	t.Run(`terminated employee`, func(t *testing.T) {
		_, err := h.Login(ctx, "old@company.co.id", "secret123")
		require.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	})
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestHandler(t, testEmployee(t, "e1", "budi@company.co.id"))
	resp, err := h.Login(ctx, "budi@company.co.id", "secret123")
	require.NoError(t, err)

	_, err = h.Refresh(ctx, resp.Token)
	require.True(t, apperrors.Is(err, apperrors.KindUnauthorized), "access token is not accepted")

	next, err := h.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, resp.RefreshToken, next.RefreshToken)

	_, err = h.Refresh(ctx, resp.RefreshToken)
	require.True(t, apperrors.Is(err, apperrors.KindUnauthorized), "used refresh token is revoked")

	_, err = h.Refresh(ctx, "garbage")
	require.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestRefreshConcurrentReuse(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestHandler(t, testEmployee(t, "e1", "budi@company.co.id"))
	resp, err := h.Login(ctx, "budi@company.co.id", "secret123")
	require.NoError(t, err)

	const workers = 8
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		success      int
		unauthorized int
	)
	start := make(chan struct{})
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := h.Refresh(ctx, resp.RefreshToken)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success++
				return
			}
			if apperrors.Is(err, apperrors.KindUnauthorized) {
				unauthorized++
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, 1, success, "refresh token is used once")
	require.Equal(t, workers-1, unauthorized)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	h, _ := newTestHandler(t, testEmployee(t, "e1", "budi@company.co.id"))
	resp, err := h.Login(ctx, "budi@company.co.id", "secret123")
	require.NoError(t, err)
	claims, err := authutils.ParseToken(resp.Token)
	require.NoError(t, err)
	jti := authutils.ClaimString(claims, "jti")

	err = h.Logout(ctx, "e1", jti, time.Now().Add(time.Hour), resp.RefreshToken)
	require.NoError(t, err)

	revoked, err := h.tokenStore.IsRevoked(ctx, jti)
	require.NoError(t, err)
	require.True(t, revoked)

	_, err = h.Refresh(ctx, resp.RefreshToken)
	require.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestProfile(t *testing.T) {
	h, employees := newTestHandler(t, testEmployee(t, "e1", "budi@company.co.id"))

	profile, err := h.GetProfile("e1")
	require.NoError(t, err)
	require.Equal(t, "Budi Santoso", profile.FullName)

	err = h.UpdateProfile("e1", authapimodels.ProfileUpdate{FirstName: " Budi "})
	require.NoError(t, err)
	require.Equal(t, "Budi", employees.Updates["e1"]["first_name"])
	require.NotContains(t, employees.Updates["e1"], "phone", "omitted phone is kept")
	require.NotContains(t, employees.Updates["e1"], "last_name")

	phone := "081234567890"
	err = h.UpdateProfile("e1", authapimodels.ProfileUpdate{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, "081234567890", employees.Updates["e1"]["phone"])

	empty := ""
	err = h.UpdateProfile("e1", authapimodels.ProfileUpdate{Phone: &empty})
	require.NoError(t, err)
	require.Equal(t, "", employees.Updates["e1"]["phone"], "explicit empty phone clears it")

	_, err = h.GetProfile("missing")
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestChangePassword(t *testing.T) {
	h, employees := newTestHandler(t, testEmployee(t, "e1", "budi@company.co.id"))

	err := h.ChangePassword("e1", authapimodels.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newsecret1"})
	require.Contains(t, apperrors.FieldErrors(err), "old_password")

	err = h.ChangePassword("e1", authapimodels.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "secret123"})
	require.Contains(t, apperrors.FieldErrors(err), "new_password")

	err = h.ChangePassword("e1", authapimodels.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "newsecret1"})
	require.NoError(t, err)
	hash, _ := employees.Updates["e1"]["password"].(string)
	require.True(t, authutils.CheckPassword(hash, "newsecret1"))
}

func TestPermissions(t *testing.T) {
	h, _ := newTestHandler(t)
	employee := h.Permissions(models.EmployeeRole)
	require.Equal(t, "EMPLOYEE", employee.Role)
	require.NotContains(t, employee.Permissions, string(models.ReportsModule))
	require.Contains(t, employee.Permissions[string(models.LeaveModule)], string(models.CreatePermission))

	hr := h.Permissions(models.HRAdminRole)
	require.Contains(t, hr.Permissions[string(models.EmployeesModule)], string(models.ManagePermission))
	require.Contains(t, hr.Permissions[string(models.LeaveModule)], string(models.FlowPermission))
}
