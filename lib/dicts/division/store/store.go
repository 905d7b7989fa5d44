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
	Create(rec dbmodels.Division) (id string, err error)
	GetByID(id string) (rec *dbmodels.Division, err error)
	List(filter dictapimodels.DivisionFilter) (list []dbmodels.Division, err error)
	ListCount(filter dictapimodels.DivisionFilter) (count int64, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	EmployeeCounts(ids []string) (counts map[string]int64, err error)
	Statistics(id string) (stat dbmodels.DivisionStatistics, err error)
	ManagedBy(managerID string) (ids []string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

var orderingFields = map[string]string{
	"name":       "name",
	"code":       "code",
	"created_at": "created_at",
}

func (i impl) Create(rec dbmodels.Division) (id string, err error) {
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
		return "", errors.Wrap(err, "ошибка создания подразделения")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Division, error) {
	rec := dbmodels.Division{}
	err := i.db.
		Preload("Manager").
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

func (i impl) List(filter dictapimodels.DivisionFilter) (list []dbmodels.Division, err error) {
	list = []dbmodels.Division{}
	tx := i.db.
		Model(dbmodels.Division{}).
		Preload("Manager")
	i.addFilter(tx, filter)
	i.addSort(tx, filter.Ordering)
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка подразделений")
	}
	return list, nil
}

func (i impl) ListCount(filter dictapimodels.DivisionFilter) (count int64, err error) {
	tx := i.db.
		Model(dbmodels.Division{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения количества подразделений")
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
		Model(&dbmodels.Division{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка обновления подразделения")
	}
	return nil
}

// Delete удаление записи, у удаленных сотрудников ссылка на подразделение сбрасывается
func (i impl) Delete(id string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&dbmodels.Employee{}).
			Where("division_id = ?", id).
			Update("division_id", nil).
			Error
		if err != nil {
			return errors.Wrap(err, "ошибка сброса подразделения у сотрудников")
		}
		err = tx.
			Where("id = ?", id).
			Delete(&dbmodels.Division{}).
			Error
		if err != nil {
			return errors.Wrap(err, "ошибка удаления подразделения")
		}
		return nil
	})
}

func (i impl) EmployeeCounts(ids []string) (map[string]int64, error) {
	result := map[string]int64{}
	if len(ids) == 0 {
		return result, nil
	}
	type countRow struct {
		DivisionID string
		Cnt        int64
	}
	rows := []countRow{}
	err := i.db.
		Model(&dbmodels.Employee{}).
		Select("division_id, count(*) as cnt").
		Where("deleted_at is null").
		Where("division_id in (?)", ids).
		Group("division_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка подсчета сотрудников подразделений")
	}
	for _, row := range rows {
		result[row.DivisionID] = row.Cnt
	}
	return result, nil
}

func (i impl) Statistics(id string) (stat dbmodels.DivisionStatistics, err error) {
	err = i.db.
		Model(&dbmodels.Employee{}).
		Select("count(*) as employee_count, "+
			"count(*) filter (where is_active) as active_employees, "+
			"count(*) filter (where not is_active) as inactive_employees").
		Where("deleted_at is null").
		Where("division_id = ?", id).
		Scan(&stat).
		Error
	if err != nil {
		return dbmodels.DivisionStatistics{}, errors.Wrap(err, "ошибка получения статистики подразделения")
	}
	return stat, nil
}

func (i impl) ManagedBy(managerID string) (ids []string, err error) {
	ids = []string{}
	err = i.db.
		Model(&dbmodels.Division{}).
		Where("manager_id = ?", managerID).
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения подразделений руководителя")
	}
	return ids, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dictapimodels.DivisionFilter) {
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("(lower(name) like ? or lower(code) like ? or lower(description) like ?)", search, search, search)
	}
	if filter.Name != "" {
		tx.Where("lower(name) like ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.IsActive != nil {
		tx.Where("is_active = ?", *filter.IsActive)
	}
}

func (i impl) addSort(tx *gorm.DB, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	field, ok := orderingFields[strings.TrimPrefix(ordering, "-")]
	if !ok {
		tx.Order("name asc")
		return
	}
	if desc {
		tx.Order(field + " desc")
	} else {
		tx.Order(field + " asc")
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}

func (i impl) isUnique(selfID, code string) error {
	var rowCount int64
	tx := i.db.Model(dbmodels.Division{})
	tx.Where("code = ?", code)
	if selfID != "" {
		tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return errors.Wrap(err, "ошибка проверки уникальности подразделения")
	}
	if rowCount != 0 {
		return apperrors.Conflict("подразделение с таким кодом уже существует")
	}
	return nil
}
