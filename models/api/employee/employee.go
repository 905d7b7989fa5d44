package employeeapimodels

import (
	"time"

	"employee-management-backend/lib/utils/helpers"
	"employee-management-backend/lib/utils/validators"
	"employee-management-backend/models"
	apimodels "employee-management-backend/models/api"
	dbmodels "employee-management-backend/models/db"
)

type EmployeeData struct {
	EmployeeID     string                `json:"employee_id" validate:"omitempty,emp_code"` // генерируется, если не указан
	Email          string                `json:"email" validate:"required,email,not_disposable"`
	Password       string                `json:"password" validate:"omitempty,min=8"`
	Phone          string                `json:"phone" validate:"omitempty,phone"`
	FirstName      string                `json:"first_name" validate:"required,max=150"`
	LastName       string                `json:"last_name" validate:"max=150"`
	DivisionID     *string               `json:"division_id"`
	PositionID     *string               `json:"position_id"`
	HireDate       string                `json:"hire_date" validate:"omitempty,date"` // ГГГГ-ММ-ДД
	EmploymentType models.EmploymentType `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	Status         models.EmployeeStatus `json:"status" validate:"omitempty,oneof=active inactive on_leave terminated"`
	Role           models.UserRole       `json:"role" validate:"omitempty,oneof=EMPLOYEE MANAGER HR_ADMIN SUPER_ADMIN"`
	IsActive       *bool                 `json:"is_active"`
}

func (e EmployeeData) Validate() error {
	return validators.Struct(e)
}

type EmployeePatch struct {
	Email          *string                `json:"email" validate:"omitempty,email,not_disposable"`
	Phone          *string                `json:"phone" validate:"omitempty,phone"`
	FirstName      *string                `json:"first_name" validate:"omitempty,max=150"`
	LastName       *string                `json:"last_name" validate:"omitempty,max=150"`
	DivisionID     *string                `json:"division_id"`
	PositionID     *string                `json:"position_id"`
	HireDate       *string                `json:"hire_date" validate:"omitempty,date"`
	EmploymentType *models.EmploymentType `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	Status         *models.EmployeeStatus `json:"status" validate:"omitempty,oneof=active inactive on_leave terminated"`
	Role           *models.UserRole       `json:"role" validate:"omitempty,oneof=EMPLOYEE MANAGER HR_ADMIN SUPER_ADMIN"`
	IsActive       *bool                  `json:"is_active"`
}

func (e EmployeePatch) Validate() error {
	return validators.Struct(e)
}

// FullPatch запись PUT как частичное изменение всех полей
func (e EmployeeData) FullPatch() EmployeePatch {
	return EmployeePatch{
		Email:          &e.Email,
		Phone:          &e.Phone,
		FirstName:      &e.FirstName,
		LastName:       &e.LastName,
		DivisionID:     emptyIfNil(e.DivisionID),
		PositionID:     emptyIfNil(e.PositionID),
		HireDate:       &e.HireDate,
		EmploymentType: nonEmpty(e.EmploymentType),
		Status:         nonEmpty(e.Status),
		Role:           nonEmpty(e.Role),
		IsActive:       e.IsActive,
	}
}

func emptyIfNil(s *string) *string {
	if s == nil {
		empty := ""
		return &empty
	}
	return s
}

func nonEmpty[T ~string](v T) *T {
	if v == "" {
		return nil
	}
	return &v
}

type EmployeeView struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	FullName       string     `json:"full_name"`
	DivisionID     *string    `json:"division_id"`
	DivisionName   string     `json:"division_name"`
	PositionID     *string    `json:"position_id"`
	PositionName   string     `json:"position_name"`
	HireDate       string     `json:"hire_date"`
	EmploymentType string     `json:"employment_type"`
	Status         string     `json:"status"`
	StatusName     string     `json:"status_name"`
	Role           string     `json:"role"`
	RoleName       string     `json:"role_name"`
	IsActive       bool       `json:"is_active"`
	IsEmployed     bool       `json:"is_employed"`
	TenureMonths   int        `json:"tenure_months"`
	LeaveEligible  bool       `json:"leave_eligible"`
	HasFaceProfile bool       `json:"has_face_profile"`
	LastLogin      *time.Time `json:"last_login"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type EmployeeFilter struct {
	apimodels.Pagination
	Search         string `query:"search"` // поиск по имени, почте и табельному номеру
	DivisionID     string `query:"division_id"`
	PositionID     string `query:"position_id"`
	Status         string `query:"status"`
	EmploymentType string `query:"employment_type"`
	IncludeDeleted bool   `query:"include_deleted"` // только для HR
}

// FaceEnrollResult ключи загруженных фото профиля лица
type FaceEnrollResult struct {
	FrontKey string `json:"front_key"`
	LeftKey  string `json:"left_key"`
	RightKey string `json:"right_key"`
	Size     int    `json:"encoding_size"`
}

func EmployeeConvert(rec dbmodels.Employee, now time.Time, minTenureMonths int) EmployeeView {
	result := EmployeeView{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		Email:          rec.Email,
		Phone:          rec.Phone,
		FirstName:      rec.FirstName,
		LastName:       rec.LastName,
		FullName:       rec.GetFullName(),
		DivisionID:     rec.DivisionID,
		PositionID:     rec.PositionID,
		HireDate:       helpers.FormatDate(rec.HireDate),
		EmploymentType: string(rec.EmploymentType),
		Status:         string(rec.Status),
		StatusName:     rec.Status.ToHuman(),
		Role:           string(rec.Role),
		RoleName:       rec.Role.ToHuman(),
		IsActive:       rec.IsActive,
		IsEmployed:     rec.IsEmployed(),
		TenureMonths:   rec.TenureMonths(now),
		LeaveEligible:  rec.IsEmployed() && rec.LeaveEligible(now, minTenureMonths),
		HasFaceProfile: rec.HasFaceProfile(),
		LastLogin:      rec.LastLogin,
		DeletedAt:      rec.DeletedAt,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if rec.Division != nil {
		result.DivisionName = rec.Division.Name
	}
	if rec.Position != nil {
		result.PositionName = rec.Position.Name
	}
	return result
}
