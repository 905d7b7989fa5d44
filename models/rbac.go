package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	EmployeesModule  Module = "EMPLOYEES"
	DivisionsModule  Module = "DIVISIONS"
	PositionsModule  Module = "POSITIONS"
	AttendanceModule Module = "ATTENDANCE"
	LeaveModule      Module = "LEAVE"
	DashboardModule  Module = "DASHBOARD"
	ReportsModule    Module = "REPORTS"
	ProfileModule    Module = "PROFILE"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
	ExportPermission Permission = "EXPORT"
)
