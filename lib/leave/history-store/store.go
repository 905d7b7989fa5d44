package leavehistorystore

import (
	dbmodels "employee-management-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.LeaveHistory) (id string, err error)
	List(leaveID string) (list []dbmodels.LeaveHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.LeaveHistory) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения истории заявки")
	}
	return rec.ID, nil
}

func (i impl) List(leaveID string) (list []dbmodels.LeaveHistory, err error) {
	list = []dbmodels.LeaveHistory{}
	err = i.db.
		Model(dbmodels.LeaveHistory{}).
		Where("leave_id = ?", leaveID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		log.WithError(err).Error("ошибка получения истории заявки")
		return nil, errors.New("ошибка получения истории заявки")
	}
	return list, nil
}
