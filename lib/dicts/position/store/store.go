package store

import (
	"strings"

	apperrors "employee-management-backend/lib/utils/app-errors"
	dictapimodels "employee-management-backend/models/api/dict"
	dbmodels "employee-management-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Position) (id string, err error)
	GetByID(id string) (rec *dbmodels.Position, err error)
	List(filter dictapimodels.PositionFilter) (list []dbmodels.Position, err error)
	ListCount(filter dictapimodels.PositionFilter) (count int64, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	Children(id string) (list []dbmodels.Position, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Position) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", apperrors.Validation(err.Error())
	}
	err = i.isUnique("", rec.Code)
	if err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания должности")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Position, error) {
	rec := dbmodels.Position{}
	err := i.db.
		Preload("Parent").
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter dictapimodels.PositionFilter) (list []dbmodels.Position, err error) {
	list = []dbmodels.Position{}
	tx := i.db.
		Model(dbmodels.Position{}).
		Preload("Parent")
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Order("level asc").
		Order("name asc").
		Limit(limit).
		Offset(offset).
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка должностей")
	}
	return list, nil
}

func (i impl) ListCount(filter dictapimodels.PositionFilter) (count int64, err error) {
	tx := i.db.
		Model(dbmodels.Position{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения количества должностей")
	}
	return count, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	code, ok := updMap["code"]
	if ok {
		err := i.isUnique(id, code.(string))
		if err != nil {
			return err
		}
	}
	err := i.db.
		Model(&dbmodels.Position{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка обновления должности")
	}
	return nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Position{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления должности")
	}
	return nil
}

func (i impl) Children(id string) (list []dbmodels.Position, err error) {
	list = []dbmodels.Position{}
	err = i.db.
		Where("parent_id = ?", id).
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения подчиненных должностей")
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dictapimodels.PositionFilter) {
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("(lower(name) like ? or lower(code) like ?)", search, search)
	}
	if filter.Level != nil {
		tx.Where("level = ?", *filter.Level)
	}
}

func (i impl) isUnique(selfID, code string) error {
	var rowCount int64
	tx := i.db.Model(dbmodels.Position{})
	tx.Where("code = ?", code)
	if selfID != "" {
		tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return errors.Wrap(err, "ошибка проверки уникальности должности")
	}
	if rowCount != 0 {
		return apperrors.Conflict("должность с таким кодом уже существует")
	}
	return nil
}
