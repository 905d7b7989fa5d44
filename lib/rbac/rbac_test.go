package rbac

import (
	"strings"
	"testing"

	"employee-management-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/leaves/{id}/approve [post]")
		require.Nil(t, err)
		require.Equal(t, POST, method)
		r1, err := pathToRegex(path)
		require.NoError(t, err)

		validUri := "/api/v1/leaves/123-321/approve"
		isMatch := r1.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri := "/api/v1/leaves/approve"
		isMatch = r1.MatchString(invalidUri)
		require.Equal(t, false, isMatch)

		path, method, err = parseSwaggerPattern("/api/v1/divisions/{id}/employees/{otherID} [get]")
		require.Nil(t, err)
		require.Equal(t, GET, method)
		r2, err := pathToRegex(path)
		require.NoError(t, err)

		require.True(t, r2.MatchString("/api/v1/divisions/d-1/employees/e-2"))
		require.False(t, r2.MatchString("/api/v1/divisions/d-1/employees"))
	})
	t.Run(`pattern without method`, func(t *testing.T) {
		_, _, err := parseSwaggerPattern("/api/v1/leaves")
		require.Error(t, err)
	})
	t.Run(`normalize path`, func(t *testing.T) {
		require.Equal(t, "/api/v1/leaves", normalizePath("api//v1/leaves/"))
		require.Equal(t, "/", normalizePath(""))
	})
}

func TestRules(t *testing.T) {
	flowCalls := 0
	i := newInstance(func(userID string, role models.UserRole, uri string) bool {
		flowCalls++
		return strings.HasSuffix(uri, "/allowed/approve")
	})
	t.Run(`employee cannot create division`, func(t *testing.T) {
		rule, found := i.GetRuleFunc("POST", "/api/v1/divisions")
		require.True(t, found)
		require.False(t, rule("u1", models.EmployeeRole, "/api/v1/divisions"))
		require.True(t, rule("u1", models.HRAdminRole, "/api/v1/divisions"))
	})
	t.Run(`exact report rule wins over {id}`, func(t *testing.T) {
		rule, found := i.GetRuleFunc("get", "/api/v1/attendance/report")
		require.True(t, found)
		require.False(t, rule("u1", models.EmployeeRole, "/api/v1/attendance/report"))
		require.True(t, rule("u1", models.ManagerRole, "/api/v1/attendance/report"))

		rule, found = i.GetRuleFunc("GET", "/api/v1/attendance/a-1")
		require.True(t, found)
		require.True(t, rule("u1", models.EmployeeRole, "/api/v1/attendance/a-1"))
	})
	t.Run(`flow rule checks role before custom func`, func(t *testing.T) {
		rule, found := i.GetRuleFunc("POST", "/api/v1/leaves/allowed/approve")
		require.True(t, found)
		require.False(t, rule("u1", models.EmployeeRole, "/api/v1/leaves/allowed/approve"))
		require.Equal(t, 0, flowCalls)
		require.True(t, rule("u1", models.ManagerRole, "/api/v1/leaves/allowed/approve"))
		require.False(t, rule("u1", models.ManagerRole, "/api/v1/leaves/other/approve"))
		require.Equal(t, 2, flowCalls)
	})
	t.Run(`unknown path has no rule`, func(t *testing.T) {
		_, found := i.GetRuleFunc("GET", "/api/v1/unknown")
		require.False(t, found)
	})
	t.Run(`permissions for menu`, func(t *testing.T) {
		employee := i.GetPermissions(models.EmployeeRole)
		require.NotContains(t, employee[models.DivisionsModule], models.ManagePermission)
		require.Contains(t, employee[models.LeaveModule], models.CreatePermission)
		require.NotContains(t, employee, models.ReportsModule)

		hr := i.GetPermissions(models.HRAdminRole)
		require.Contains(t, hr[models.DivisionsModule], models.ManagePermission)
		require.Contains(t, hr[models.ReportsModule], models.ExportPermission)
	})
}
