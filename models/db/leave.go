package dbmodels

import (
	"time"

	"employee-management-backend/models"
)

type Leave struct {
	BaseModel
	EmployeeID      string           `gorm:"type:varchar(36);index"`
	Employee        *Employee        `gorm:"foreignKey:EmployeeID"`
	LeaveType       models.LeaveType `gorm:"type:varchar(20)"`
	StartDate       time.Time        `gorm:"type:date;index"`
	EndDate         time.Time        `gorm:"type:date;index"`
	TotalDays       int
	Reason          string             `gorm:"type:text"`
	Status          models.LeaveStatus `gorm:"type:varchar(20);index"`
	DecidedByID     *string            `gorm:"type:varchar(36)"`
	DecidedBy       *Employee          `gorm:"foreignKey:DecidedByID"`
	DecidedAt       *time.Time
	DecisionComment string `gorm:"type:text"`
}

// LeaveDays длительность включительно
func LeaveDays(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours()/24) + 1
}

// Covers отпуск приходится на дату day
func (l Leave) Covers(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(l.StartDate)) && !d.After(DateOf(l.EndDate))
}

type LeaveHistory struct {
	BaseModel
	LeaveID  string             `gorm:"type:varchar(36);index"`
	UserID   string             `gorm:"type:varchar(36)"`
	UserName string             `gorm:"type:varchar(255)"`
	Action   models.LeaveAction `gorm:"type:varchar(20)"`
	Status   models.LeaveStatus `gorm:"type:varchar(20)"`
	Comment  string             `gorm:"type:text"`
	Changes  EntityChanges      `gorm:"type:jsonb"`
}
