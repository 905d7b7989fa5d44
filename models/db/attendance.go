package dbmodels

import (
	"time"
)

type Attendance struct {
	BaseModel
	EmployeeID   string    `gorm:"type:varchar(36);uniqueIndex:idx_employee_date"`
	Employee     *Employee `gorm:"foreignKey:EmployeeID"`
	Date         time.Time `gorm:"type:date;uniqueIndex:idx_employee_date"`
	CheckIn      time.Time
	CheckOut     *time.Time
	FaceVerified bool
	FaceDistance *float64
	PhotoKey     string
	Latitude     *float64
	Longitude    *float64
	Notes        string `gorm:"type:text"`
}
