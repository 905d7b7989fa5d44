package dictapimodels

import (
	"time"

	"employee-management-backend/lib/utils/validators"
	apimodels "employee-management-backend/models/api"
	dbmodels "employee-management-backend/models/db"
)

type DivisionData struct {
	Code        string  `json:"code" validate:"required,dict_code"`
	Name        string  `json:"name" validate:"required,min=3,max=255"`
	Description string  `json:"description"`
	ManagerID   *string `json:"manager_id"`
	IsActive    *bool   `json:"is_active"`
}

func (d DivisionData) Validate() error {
	return validators.Struct(d)
}

// DivisionPatch частичное изменение, заданы только переданные поля
type DivisionPatch struct {
	Code        *string `json:"code" validate:"omitempty,dict_code"`
	Name        *string `json:"name" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description"`
	ManagerID   *string `json:"manager_id"`
	IsActive    *bool   `json:"is_active"`
}

func (d DivisionPatch) Validate() error {
	return validators.Struct(d)
}

type DivisionView struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ManagerID     *string   `json:"manager_id"`
	ManagerName   string    `json:"manager_name"`
	IsActive      bool      `json:"is_active"`
	EmployeeCount int64     `json:"employee_count"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type DivisionFilter struct {
	apimodels.Pagination
	Search   string `query:"search"`    // поиск по названию, коду и описанию
	Name     string `query:"name"`      // фильтр по названию
	IsActive *bool  `query:"is_active"` // фильтр по активности
	Ordering string `query:"ordering"`  // name, code, created_at; "-" в начале для обратного порядка
}

type DivisionStatistics struct {
	EmployeeCount     int64 `json:"employee_count"`
	ActiveEmployees   int64 `json:"active_employees"`
	InactiveEmployees int64 `json:"inactive_employees"`
}

func DivisionConvert(rec dbmodels.Division, employeeCount int64) DivisionView {
	return DivisionView{
		ID:            rec.ID,
		Code:          rec.Code,
		Name:          rec.Name,
		Description:   rec.Description,
		ManagerID:     rec.ManagerID,
		ManagerName:   rec.GetManagerName(),
		IsActive:      rec.IsActive,
		EmployeeCount: employeeCount,
		CreatedBy:     rec.CreatedBy,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func DivisionStatisticsConvert(rec dbmodels.DivisionStatistics) DivisionStatistics {
	return DivisionStatistics{
		EmployeeCount:     rec.EmployeeCount,
		ActiveEmployees:   rec.ActiveEmployees,
		InactiveEmployees: rec.InactiveEmployees,
	}
}
