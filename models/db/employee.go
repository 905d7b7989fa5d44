package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"employee-management-backend/models"
)

type Employee struct {
	BaseModel
	EmployeeID     string                `gorm:"type:varchar(20);uniqueIndex"`
	Email          string                `gorm:"type:varchar(255);uniqueIndex"`
	Password       string                `gorm:"type:varchar(255)"`
	Phone          string                `gorm:"type:varchar(20)"`
	FirstName      string                `gorm:"type:varchar(150)"`
	LastName       string                `gorm:"type:varchar(150)"`
	DivisionID     *string               `gorm:"type:varchar(36);index"`
	Division       *Division             `gorm:"foreignKey:DivisionID"`
	PositionID     *string               `gorm:"type:varchar(36);index"`
	Position       *Position             `gorm:"foreignKey:PositionID"`
	HireDate       *time.Time            `gorm:"type:date"`
	EmploymentType models.EmploymentType `gorm:"type:varchar(20)"`
	Status         models.EmployeeStatus `gorm:"type:varchar(20);index"`
	Role           models.UserRole       `gorm:"type:varchar(20)"`
	IsActive       bool
	LastLogin      *time.Time
	FacePhotoFront string
	FacePhotoLeft  string
	FacePhotoRight string
	FaceEncoding   FaceEncoding `gorm:"type:jsonb"`
	DeletedAt      *time.Time   `gorm:"index"`
	DeletedBy      string       `gorm:"type:varchar(36)"`
}

func (e Employee) GetFullName() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

func (e Employee) IsDeleted() bool {
	return e.DeletedAt != nil
}

// CanLogin удаленные, неактивные и уволенные сотрудники не авторизуются
func (e Employee) CanLogin() bool {
	return e.IsActive && !e.IsDeleted() && e.Status != models.EmployeeTerminatedStatus
}

func (e Employee) IsEmployed() bool {
	return e.IsActive && !e.IsDeleted() && e.Status.IsEmployed()
}

// TenureMonths полных месяцев стажа на дату now
func (e Employee) TenureMonths(now time.Time) int {
	if e.HireDate == nil {
		return 0
	}
	hire := *e.HireDate
	if now.Before(hire) {
		return 0
	}
	months := (now.Year()-hire.Year())*12 + int(now.Month()) - int(hire.Month())
	if now.Day() < hire.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// LeaveEligible стаж ненулевой и не меньше minMonths месяцев
func (e Employee) LeaveEligible(now time.Time, minMonths int) bool {
	if e.HireDate == nil {
		return false
	}
	today := DateOf(now)
	hire := DateOf(*e.HireDate)
	if !hire.Before(today) {
		return false
	}
	return !today.Before(hire.AddDate(0, minMonths, 0))
}

func (e Employee) HasFaceProfile() bool {
	return len(e.FaceEncoding) > 0
}

// DateOf календарная дата t (в ее часовом поясе) как полночь UTC
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type FaceEncoding []float64

func (f FaceEncoding) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	valueString, err := json.Marshal(f)
	return string(valueString), err
}

func (f *FaceEncoding) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	}
	return fmt.Errorf("неподдерживаемый тип вектора лица: %T", value)
}
