package leaveapimodels

import (
	"time"

	"employee-management-backend/lib/utils/helpers"
	"employee-management-backend/lib/utils/validators"
	"employee-management-backend/models"
	apimodels "employee-management-backend/models/api"
	dbmodels "employee-management-backend/models/db"
)

type LeaveData struct {
	EmployeeID string           `json:"employee_id"` // для HR, оформление за сотрудника
	LeaveType  models.LeaveType `json:"leave_type" validate:"required,oneof=annual sick unpaid other"`
	StartDate  string           `json:"start_date" validate:"required,date"`
	EndDate    string           `json:"end_date" validate:"required,date"`
	Reason     string           `json:"reason" validate:"max=2000"`
}

func (l LeaveData) Validate() error {
	return validators.Struct(l)
}

type LeavePatch struct {
	LeaveType *models.LeaveType `json:"leave_type" validate:"omitempty,oneof=annual sick unpaid other"`
	StartDate *string           `json:"start_date" validate:"omitempty,date"`
	EndDate   *string           `json:"end_date" validate:"omitempty,date"`
	Reason    *string           `json:"reason" validate:"omitempty,max=2000"`
}

func (l LeavePatch) Validate() error {
	return validators.Struct(l)
}

func (l LeaveData) FullPatch() LeavePatch {
	return LeavePatch{
		LeaveType: &l.LeaveType,
		StartDate: &l.StartDate,
		EndDate:   &l.EndDate,
		Reason:    &l.Reason,
	}
}

type LeaveDecision struct {
	Comment string `json:"comment"`
}

type LeaveView struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    string     `json:"employee_name"`
	LeaveType       string     `json:"leave_type"`
	LeaveTypeName   string     `json:"leave_type_name"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	TotalDays       int        `json:"total_days"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	StatusName      string     `json:"status_name"`
	DecidedBy       string     `json:"decided_by"`
	DecidedByName   string     `json:"decided_by_name"`
	DecidedAt       *time.Time `json:"decided_at"`
	DecisionComment string     `json:"decision_comment"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type LeaveFilter struct {
	apimodels.Pagination
	EmployeeID string `query:"employee_id"`
	DivisionID string `query:"division_id"`
	Status     string `query:"status"`
	LeaveType  string `query:"leave_type"`
	DateFrom   string `query:"date_from"` // ГГГГ-ММ-ДД, отпуска, пересекающие период
	DateTo     string `query:"date_to"`
}

type LeaveHistoryView struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	UserName  string                 `json:"user_name"`
	Action    string                 `json:"action"`
	Status    string                 `json:"status"`
	Comment   string                 `json:"comment"`
	Changes   dbmodels.EntityChanges `json:"changes"`
	CreatedAt time.Time              `json:"created_at"`
}

type LeaveBalance struct {
	EmployeeID    string `json:"employee_id"`
	Year          int    `json:"year"`
	QuotaDays     int    `json:"quota_days"`
	UsedDays      int    `json:"used_days"`
	PendingDays   int    `json:"pending_days"`
	RemainingDays int    `json:"remaining_days"`
}

func LeaveConvert(rec dbmodels.Leave) LeaveView {
	result := LeaveView{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		LeaveType:       string(rec.LeaveType),
		LeaveTypeName:   rec.LeaveType.ToHuman(),
		StartDate:       helpers.FormatDate(&rec.StartDate),
		EndDate:         helpers.FormatDate(&rec.EndDate),
		TotalDays:       rec.TotalDays,
		Reason:          rec.Reason,
		Status:          string(rec.Status),
		StatusName:      rec.Status.ToHuman(),
		DecidedBy:       helpers.StrValue(rec.DecidedByID),
		DecidedAt:       rec.DecidedAt,
		DecisionComment: rec.DecisionComment,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	if rec.Employee != nil {
		result.EmployeeName = rec.Employee.GetFullName()
	}
	if rec.DecidedBy != nil {
		result.DecidedByName = rec.DecidedBy.GetFullName()
	}
	return result
}

func LeaveHistoryConvert(rec dbmodels.LeaveHistory) LeaveHistoryView {
	return LeaveHistoryView{
		ID:        rec.ID,
		UserID:    rec.UserID,
		UserName:  rec.UserName,
		Action:    string(rec.Action),
		Status:    string(rec.Status),
		Comment:   rec.Comment,
		Changes:   rec.Changes,
		CreatedAt: rec.CreatedAt,
	}
}
