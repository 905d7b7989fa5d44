package dashboardprovider

import (
	"time"

	"employee-management-backend/config"
	"employee-management-backend/db"
	attendanceprovider "employee-management-backend/lib/attendance"
	attendancestore "employee-management-backend/lib/attendance/store"
	employeeprovider "employee-management-backend/lib/employee"
	employeestore "employee-management-backend/lib/employee/store"
	leaveprovider "employee-management-backend/lib/leave"
	leavestore "employee-management-backend/lib/leave/store"
	"employee-management-backend/lib/utils/helpers"
	initchecker "employee-management-backend/lib/utils/init-checker"
	"employee-management-backend/models"
	dashboardapimodels "employee-management-backend/models/api/dashboard"
	leaveapimodels "employee-management-backend/models/api/leave"
	dbmodels "employee-management-backend/models/db"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

type Provider interface {
	Get(userID string, role models.UserRole) (view dashboardapimodels.DashboardView, err error)
}

var Instance Provider

const (
	companyCacheTTL = time.Minute
	companyCacheKey = "company"
)

func NewHandler() {
	cutoff, err := attendanceprovider.ParseCutoff(config.Conf.Attendance.LateCutoff)
	if err != nil {
		panic(err)
	}
	loc := config.Location()
	instance := impl{
		employeeStore: employeestore.NewInstance(db.DB),
		attendanceStore: attendancestore.NewInstance(db.DB, attendancestore.LateRule{
			Timezone: loc.String(),
			Cutoff:   cutoff.String(),
		}),
		leaveStore: leavestore.NewInstance(db.DB),
		visibility: employeeprovider.Instance,
		balance:    leaveprovider.Instance,
		cache:      cache.New(companyCacheTTL, 2*companyCacheTTL),
		group:      &singleflight.Group{},
		loc:        loc,
		now:        time.Now,
	}
	initchecker.CheckInit(
		"employeeStore", instance.employeeStore,
		"attendanceStore", instance.attendanceStore,
		"leaveStore", instance.leaveStore,
		"visibility", instance.visibility,
		"balance", instance.balance,
	)
	Instance = instance
}

type employeeCounter interface {
	Counters(visibility models.Visibility) (employeestore.Counters, error)
}

type attendanceCounter interface {
	GetByEmployeeDate(employeeID string, date time.Time) (*dbmodels.Attendance, error)
	DayCounters(date time.Time, visibility models.Visibility) (attendancestore.Counters, error)
	EmployeeCounters(employeeID string, from, to time.Time) (attendancestore.Counters, error)
}

type leaveCounter interface {
	CountPending(visibility models.Visibility) (int64, error)
}

type visibilityResolver interface {
	Visibility(userID string, role models.UserRole) (models.Visibility, error)
}

type balanceProvider interface {
	Balance(visibility models.Visibility, employeeID string, year int) (leaveapimodels.LeaveBalance, error)
}

type impl struct {
	employeeStore   employeeCounter
	attendanceStore attendanceCounter
	leaveStore      leaveCounter
	visibility      visibilityResolver
	balance         balanceProvider
	cache           *cache.Cache
	group           *singleflight.Group
	loc             *time.Location
	now             func() time.Time
}

func (i impl) Get(userID string, role models.UserRole) (view dashboardapimodels.DashboardView, err error) {
	visibility, err := i.visibility.Visibility(userID, role)
	if err != nil {
		return view, err
	}
	today := helpers.Today(i.now(), i.loc)
	switch {
	case visibility.All:
		view.Scope = dashboardapimodels.CompanyScope
	case role.IsManager():
		view.Scope = dashboardapimodels.DivisionScope
		view.DivisionIDs = visibility.DivisionIDs
	default:
		view.Scope = dashboardapimodels.OwnScope
	}
	if view.Scope != dashboardapimodels.OwnScope {
		counters, err := i.counters(visibility, today)
		if err != nil {
			return view, err
		}
		view.Counters = &counters
	}
	view.Own, err = i.ownStats(userID, today)
	if err != nil {
		return view, err
	}
	return view, nil
}

func (i impl) counters(visibility models.Visibility, today time.Time) (dashboardapimodels.Counters, error) {
	if !visibility.All {
		return i.countersFor(visibility, today)
	}
	if cached, ok := i.cache.Get(companyCacheKey); ok {
		return cached.(dashboardapimodels.Counters), nil
	}
	// одновременные запросы HR считают показатели компании один раз
	value, err, _ := i.group.Do(companyCacheKey, func() (interface{}, error) {
		result, err := i.countersFor(visibility, today)
		if err != nil {
			return nil, err
		}
		i.cache.Set(companyCacheKey, result, companyCacheTTL)
		return result, nil
	})
	if err != nil {
		return dashboardapimodels.Counters{}, err
	}
	return value.(dashboardapimodels.Counters), nil
}

func (i impl) countersFor(visibility models.Visibility, today time.Time) (result dashboardapimodels.Counters, err error) {
	employees, err := i.employeeStore.Counters(visibility)
	if err != nil {
		return result, err
	}
	day, err := i.attendanceStore.DayCounters(today, visibility)
	if err != nil {
		return result, err
	}
	pending, err := i.leaveStore.CountPending(visibility)
	if err != nil {
		return result, err
	}
	return dashboardapimodels.Counters{
		EmployeesTotal:   employees.Total,
		EmployeesActive:  employees.Active,
		EmployeesOnLeave: employees.OnLeave,
		PresentToday:     day.Total,
		LateToday:        day.Late,
		PendingLeaves:    pending,
	}, nil
}

func (i impl) ownStats(userID string, today time.Time) (result dashboardapimodels.OwnStats, err error) {
	own := models.Visibility{EmployeeID: userID}
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	month, err := i.attendanceStore.EmployeeCounters(userID, monthStart, today)
	if err != nil {
		return result, err
	}
	rec, err := i.attendanceStore.GetByEmployeeDate(userID, today)
	if err != nil {
		return result, err
	}
	balance, err := i.balance.Balance(own, userID, today.Year())
	if err != nil {
		return result, err
	}
	pending, err := i.leaveStore.CountPending(own)
	if err != nil {
		return result, err
	}
	return dashboardapimodels.OwnStats{
		MonthAttendance:   month.Total,
		MonthLate:         month.Late,
		CheckedInToday:    rec != nil,
		AnnualBalanceDays: balance.RemainingDays,
		PendingLeaveCount: pending,
	}, nil
}
