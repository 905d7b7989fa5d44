package dashboardapimodels

type Scope string

const (
	CompanyScope  Scope = "company"
	DivisionScope Scope = "division"
	OwnScope      Scope = "own"
)

type Counters struct {
	EmployeesTotal   int64 `json:"employees_total"`
	EmployeesActive  int64 `json:"employees_active"`
	EmployeesOnLeave int64 `json:"employees_on_leave"`
	PresentToday     int64 `json:"present_today"`
	LateToday        int64 `json:"late_today"`
	PendingLeaves    int64 `json:"pending_leaves"`
}

type OwnStats struct {
	MonthAttendance   int64 `json:"month_attendance"`    // отметок в текущем месяце
	MonthLate         int64 `json:"month_late"`          // опозданий в текущем месяце
	CheckedInToday    bool  `json:"checked_in_today"`    // есть отметка за сегодня
	AnnualBalanceDays int   `json:"annual_balance_days"` // остаток ежегодного отпуска
	PendingLeaveCount int64 `json:"pending_leave_count"` // свои заявки на согласовании
}

type DashboardView struct {
	Scope       Scope     `json:"scope"`
	DivisionIDs []string  `json:"division_ids,omitempty"`
	Counters    *Counters `json:"counters,omitempty"`
	Own         OwnStats  `json:"own"`
}
