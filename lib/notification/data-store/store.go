package pushdatastore

import (
	dbmodels "employee-management-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.PushData) error
	List(userID string) ([]dbmodels.PushData, error)
	Delete(ids []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.PushData) error {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения события")
	}
	return nil
}

func (i impl) List(userID string) (list []dbmodels.PushData, err error) {
	list = []dbmodels.PushData{}
	err = i.db.
		Model(dbmodels.PushData{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения событий")
	}
	return list, nil
}

func (i impl) Delete(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := i.db.
		Where("id in (?)", ids).
		Delete(&dbmodels.PushData{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления событий")
	}
	return nil
}
