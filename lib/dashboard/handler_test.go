package dashboardprovider

import (
	"testing"
	"time"

	attendancestore "employee-management-backend/lib/attendance/store"
	employeestore "employee-management-backend/lib/employee/store"
	"employee-management-backend/models"
	dashboardapimodels "employee-management-backend/models/api/dashboard"
	leaveapimodels "employee-management-backend/models/api/leave"
	dbmodels "employee-management-backend/models/db"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/singleflight"
)

type fakeEmployees struct {
	calls int
}

func (f *fakeEmployees) Counters(visibility models.Visibility) (employeestore.Counters, error) {
	f.calls++
	return employeestore.Counters{Total: 10, Active: 8, OnLeave: 2}, nil
}

type fakeAttendance struct {
	today   time.Time
	checked map[string]bool
	from    time.Time
}

func (f *fakeAttendance) GetByEmployeeDate(employeeID string, date time.Time) (*dbmodels.Attendance, error) {
	if !f.checked[employeeID] || !date.Equal(f.today) {
		return nil, nil
	}
	return &dbmodels.Attendance{EmployeeID: employeeID, Date: date}, nil
}

func (f *fakeAttendance) DayCounters(date time.Time, visibility models.Visibility) (attendancestore.Counters, error) {
	return attendancestore.Counters{Total: 6, Late: 1}, nil
}

func (f *fakeAttendance) EmployeeCounters(employeeID string, from, to time.Time) (attendancestore.Counters, error) {
	f.from = from
	return attendancestore.Counters{Total: 7, Late: 2}, nil
}

type fakeLeaves struct{}

func (f fakeLeaves) CountPending(visibility models.Visibility) (int64, error) {
	if visibility.All {
		return 4, nil
	}
	return 1, nil
}

type fakeVisibility struct{}

func (f fakeVisibility) Visibility(userID string, role models.UserRole) (models.Visibility, error) {
	return models.NewVisibility(userID, role, []string{"d1"}), nil
}

type fakeBalance struct{}

func (f fakeBalance) Balance(visibility models.Visibility, employeeID string, year int) (leaveapimodels.LeaveBalance, error) {
	return leaveapimodels.LeaveBalance{EmployeeID: employeeID, Year: year, RemainingDays: 9}, nil
}

func newHandler() (impl, *fakeEmployees, *fakeAttendance) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	employees := &fakeEmployees{}
	attendance := &fakeAttendance{today: today, checked: map[string]bool{"hr1": true}}
	return impl{
		employeeStore:   employees,
		attendanceStore: attendance,
		leaveStore:      fakeLeaves{},
		visibility:      fakeVisibility{},
		balance:         fakeBalance{},
		cache:           cache.New(companyCacheTTL, companyCacheTTL),
		group:           &singleflight.Group{},
		loc:             time.UTC,
		now:             func() time.Time { return today.Add(9 * time.Hour) },
	}, employees, attendance
}

func TestGet(t *testing.T) {
	t.Run(`hr sees company counters`, func(t *testing.T) {
		handler, employees, attendance := newHandler()
		view, err := handler.Get("hr1", models.HRAdminRole)
		require.NoError(t, err)
		require.Equal(t, dashboardapimodels.CompanyScope, view.Scope)
		require.Equal(t, &dashboardapimodels.Counters{
			EmployeesTotal:   10,
			EmployeesActive:  8,
			EmployeesOnLeave: 2,
			PresentToday:     6,
			LateToday:        1,
			PendingLeaves:    4,
		}, view.Counters)
		require.Equal(t, dashboardapimodels.OwnStats{
			MonthAttendance:   7,
			MonthLate:         2,
			CheckedInToday:    true,
			AnnualBalanceDays: 9,
			PendingLeaveCount: 1,
		}, view.Own)
		require.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), attendance.from)

		_, err = handler.Get("hr1", models.HRAdminRole)
		require.NoError(t, err)
		require.Equal(t, 1, employees.calls)
	})
	t.Run(`manager sees division counters`, func(t *testing.T) {
		handler, employees, _ := newHandler()
		view, err := handler.Get("mgr1", models.ManagerRole)
		require.NoError(t, err)
		require.Equal(t, dashboardapimodels.DivisionScope, view.Scope)
		require.Equal(t, []string{"d1"}, view.DivisionIDs)
		require.NotNil(t, view.Counters)
		require.False(t, view.Own.CheckedInToday)

		_, err = handler.Get("mgr1", models.ManagerRole)
		require.NoError(t, err)
		require.Equal(t, 2, employees.calls)
	})
	t.Run(`employee sees own stats only`, func(t *testing.T) {
		handler, employees, _ := newHandler()
		view, err := handler.Get("emp1", models.EmployeeRole)
		require.NoError(t, err)
		require.Equal(t, dashboardapimodels.OwnScope, view.Scope)
		require.Nil(t, view.Counters)
		require.Equal(t, 9, view.Own.AnnualBalanceDays)
		require.Equal(t, 0, employees.calls)
	})
}
