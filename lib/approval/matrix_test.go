package approval

import (
	"testing"

	"employee-management-backend/models"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	requester := Requester{ID: "emp", DivisionID: "div", DivisionManagerID: "mgr"}

	t.Run(`hr admin sees all divisions`, func(t *testing.T) {
		require.Equal(t, HRAdmin, Resolve(Actor{ID: "hr", Role: models.HRAdminRole}, requester))
		require.Equal(t, HRAdmin, Resolve(Actor{ID: "root", Role: models.SuperAdminRole}, requester))
	})
	t.Run(`self`, func(t *testing.T) {
		require.Equal(t, Self, Resolve(Actor{ID: "emp", Role: models.EmployeeRole}, requester))
	})
	t.Run(`manager of requester division`, func(t *testing.T) {
		require.Equal(t, DivisionManager, Resolve(Actor{ID: "mgr", Role: models.ManagerRole}, requester))
	})
	t.Run(`manager of other division`, func(t *testing.T) {
		require.Equal(t, None, Resolve(Actor{ID: "mgr2", Role: models.ManagerRole}, requester))
	})
	t.Run(`division without manager`, func(t *testing.T) {
		noManager := Requester{ID: "emp", DivisionID: "div"}
		require.Equal(t, None, Resolve(Actor{ID: "", Role: models.ManagerRole}, noManager))
		require.Equal(t, None, Resolve(Actor{ID: "mgr", Role: models.ManagerRole}, noManager))
	})
	t.Run(`levels are ordered`, func(t *testing.T) {
		require.True(t, None < Self)
		require.True(t, Self < DivisionManager)
		require.True(t, DivisionManager < HRAdmin)
		require.Equal(t, "DIVISION_MANAGER", DivisionManager.String())
	})
}

func TestActions(t *testing.T) {
	requester := Requester{ID: "emp", DivisionID: "div", DivisionManagerID: "mgr"}
	manager := Actor{ID: "mgr", Role: models.ManagerRole}
	hr := Actor{ID: "hr", Role: models.HRAdminRole}
	self := Actor{ID: "emp", Role: models.EmployeeRole}
	stranger := Actor{ID: "x", Role: models.EmployeeRole}

	t.Run(`decide`, func(t *testing.T) {
		require.True(t, CanDecide(manager, requester))
		require.True(t, CanDecide(hr, requester))
		require.False(t, CanDecide(self, requester))
		require.False(t, CanDecide(stranger, requester))
	})
	t.Run(`hr cannot decide own leave`, func(t *testing.T) {
		hrRequester := Requester{ID: "hr", DivisionID: "div", DivisionManagerID: "mgr"}
		require.False(t, CanDecide(hr, hrRequester))
		require.True(t, CanDecide(Actor{ID: "hr2", Role: models.HRAdminRole}, hrRequester))
	})
	t.Run(`manager own leave goes up`, func(t *testing.T) {
		mgrRequester := Requester{ID: "mgr", DivisionID: "div", DivisionManagerID: "mgr"}
		require.False(t, CanDecide(manager, mgrRequester))
		require.True(t, CanDecide(hr, mgrRequester))
	})
	t.Run(`edit`, func(t *testing.T) {
		require.True(t, CanEdit(self, requester))
		require.True(t, CanEdit(hr, requester))
		require.False(t, CanEdit(manager, requester))
		require.False(t, CanEdit(stranger, requester))
	})
	t.Run(`view`, func(t *testing.T) {
		require.True(t, CanView(self, requester))
		require.True(t, CanView(manager, requester))
		require.False(t, CanView(stranger, requester))
	})
}
