package dbmodels

import (
	"github.com/pkg/errors"
)

type Position struct {
	BaseModel
	Code        string    `gorm:"type:varchar(20);uniqueIndex"`
	Name        string    `gorm:"type:varchar(255)"`
	Level       int       `gorm:"index"`
	ParentID    *string   `gorm:"type:varchar(36);index"`
	Parent      *Position `gorm:"foreignKey:ParentID"`
	Description string    `gorm:"type:text"`
}

func (p *Position) Validate() error {
	if p.Code == "" {
		return errors.New("не указан код должности")
	}
	if p.Name == "" {
		return errors.New("не указано название должности")
	}
	if p.Level < 1 {
		return errors.New("уровень должности должен быть не меньше 1")
	}
	return nil
}
