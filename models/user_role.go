package models

type UserRole string

const (
	EmployeeRole   UserRole = "EMPLOYEE"
	ManagerRole    UserRole = "MANAGER"
	HRAdminRole    UserRole = "HR_ADMIN"
	SuperAdminRole UserRole = "SUPER_ADMIN"
)

var roleHumanName = map[UserRole]string{
	EmployeeRole:   "Сотрудник",
	ManagerRole:    "Руководитель подразделения",
	HRAdminRole:    "HR администратор",
	SuperAdminRole: "Суперадмин системы",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

// IsHR роли с доступом ко всем подразделениям
func (r UserRole) IsHR() bool {
	return r == HRAdminRole || r == SuperAdminRole
}

func (r UserRole) IsManager() bool {
	return r == ManagerRole
}

const SystemUser = "Система"

type EmployeeStatus string

const (
	EmployeeActiveStatus     EmployeeStatus = "active"
	EmployeeInactiveStatus   EmployeeStatus = "inactive"
	EmployeeOnLeaveStatus    EmployeeStatus = "on_leave"
	EmployeeTerminatedStatus EmployeeStatus = "terminated"
)

var employeeStatusHumanName = map[EmployeeStatus]string{
	EmployeeActiveStatus:     "Работает",
	EmployeeInactiveStatus:   "Неактивен",
	EmployeeOnLeaveStatus:    "В отпуске",
	EmployeeTerminatedStatus: "Уволен",
}

func (s EmployeeStatus) ToHuman() string {
	if human, exist := employeeStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s EmployeeStatus) IsValid() bool {
	_, ok := employeeStatusHumanName[s]
	return ok
}

// IsEmployed сотрудник числится в штате
func (s EmployeeStatus) IsEmployed() bool {
	return s == EmployeeActiveStatus || s == EmployeeOnLeaveStatus
}

type EmploymentType string

const (
	FullTimeEmployment   EmploymentType = "full_time"
	PartTimeEmployment   EmploymentType = "part_time"
	ContractEmployment   EmploymentType = "contract"
	InternshipEmployment EmploymentType = "internship"
)

var employmentTypeHumanName = map[EmploymentType]string{
	FullTimeEmployment:   "Полная занятость",
	PartTimeEmployment:   "Частичная занятость",
	ContractEmployment:   "Контракт",
	InternshipEmployment: "Стажировка",
}

func (t EmploymentType) ToHuman() string {
	if human, exist := employmentTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t EmploymentType) IsValid() bool {
	_, ok := employmentTypeHumanName[t]
	return ok
}
