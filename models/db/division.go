package dbmodels

import (
	"strings"

	"github.com/pkg/errors"
)

type Division struct {
	BaseModel
	Code        string    `gorm:"type:varchar(20);uniqueIndex"`
	Name        string    `gorm:"type:varchar(255);index"`
	Description string    `gorm:"type:text"`
	ManagerID   *string   `gorm:"type:varchar(36);index"`
	Manager     *Employee `gorm:"foreignKey:ManagerID"`
	IsActive    bool
	CreatedBy   string `gorm:"type:varchar(36)"`
}

func (d *Division) Validate() error {
	if len(strings.TrimSpace(d.Code)) < 2 {
		return errors.New("не указан код подразделения")
	}
	if len(strings.TrimSpace(d.Name)) < 3 {
		return errors.New("не указано название подразделения")
	}
	return nil
}

func (d Division) GetManagerName() string {
	if d.Manager == nil {
		return ""
	}
	return d.Manager.GetFullName()
}

// DivisionStatistics численность подразделения
type DivisionStatistics struct {
	EmployeeCount     int64
	ActiveEmployees   int64
	InactiveEmployees int64
}
