package store

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/models"
	employeeapimodels "employee-management-backend/models/api/employee"
	dbmodels "employee-management-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Employee) (id string, err error)
	GetByID(id string) (rec *dbmodels.Employee, err error)
	GetByEmail(email string) (rec *dbmodels.Employee, err error)
	List(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) (list []dbmodels.Employee, err error)
	ListCount(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) (count int64, err error)
	Update(id string, updMap map[string]interface{}) error
	NextEmployeeID() (string, error)
	CountByPosition(positionID string) (int64, error)
	CountByDivision(divisionID string) (int64, error)
	ListByStatus(status models.EmployeeStatus) (list []dbmodels.Employee, err error)
	SetStatus(ids []string, status models.EmployeeStatus) error
	Counters(visibility models.Visibility) (stat Counters, err error)
}

type Counters struct {
	Total   int64
	Active  int64
	OnLeave int64
}

const employeeIDPrefix = "EMP"

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (id string, err error) {
	err = i.isUnique("", rec.Email, rec.EmployeeID)
	if err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания сотрудника")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Preload("Division").
		Preload("Position").
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

func (i impl) GetByEmail(email string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("lower(email) = ?", strings.ToLower(email)).
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

func (i impl) List(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	tx := i.db.
		Model(dbmodels.Employee{}).
		Preload("Division").
		Preload("Position")
	i.addFilter(tx, filter, visibility)
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.Order("employee_id asc").Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка сотрудников")
	}
	return list, nil
}

func (i impl) ListCount(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) (count int64, err error) {
	tx := i.db.
		Model(dbmodels.Employee{})
	i.addFilter(tx, filter, visibility)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения количества сотрудников")
	}
	return count, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	email, _ := updMap["email"].(string)
	code, _ := updMap["employee_id"].(string)
	if email != "" || code != "" {
		err := i.isUnique(id, email, code)
		if err != nil {
			return err
		}
	}
	err := i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка обновления сотрудника")
	}
	return nil
}

// NextEmployeeID следующий табельный номер EMP0001, EMP0002...
func (i impl) NextEmployeeID() (string, error) {
	var maxNum int
	err := i.db.
		Model(&dbmodels.Employee{}).
		Select("coalesce(max(cast(substring(employee_id from 4) as integer)), 0)").
		Where("employee_id ~ ?", "^"+employeeIDPrefix+"[0-9]+$").
		Scan(&maxNum).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка генерации табельного номера")
	}
	return FormatEmployeeID(maxNum + 1), nil
}

func FormatEmployeeID(num int) string {
	return fmt.Sprintf("%s%04d", employeeIDPrefix, num)
}

func ParseEmployeeID(code string) (int, bool) {
	if !strings.HasPrefix(code, employeeIDPrefix) {
		return 0, false
	}
	num, err := strconv.Atoi(strings.TrimPrefix(code, employeeIDPrefix))
	if err != nil {
		return 0, false
	}
	return num, true
}

func (i impl) CountByPosition(positionID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Employee{}).
		Where("position_id = ?", positionID).
		Count(&count).
		Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка подсчета сотрудников должности")
	}
	return count, nil
}

func (i impl) CountByDivision(divisionID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Employee{}).
		Where("division_id = ?", divisionID).
		Where("deleted_at is null").
		Count(&count).
		Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка подсчета сотрудников подразделения")
	}
	return count, nil
}

func (i impl) ListByStatus(status models.EmployeeStatus) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = i.db.
		Where("status = ?", status).
		Where("deleted_at is null").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сотрудников по статусу")
	}
	return list, nil
}

func (i impl) SetStatus(ids []string, status models.EmployeeStatus) error {
	if len(ids) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Employee{}).
		Where("id in (?)", ids).
		Update("status", status).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка смены статуса сотрудников")
	}
	return nil
}

func (i impl) Counters(visibility models.Visibility) (stat Counters, err error) {
	tx := i.db.
		Model(&dbmodels.Employee{}).
		Select("count(*) as total, "+
			"count(*) filter (where status = ?) as active, "+
			"count(*) filter (where status = ?) as on_leave",
			models.EmployeeActiveStatus, models.EmployeeOnLeaveStatus).
		Where("deleted_at is null")
	addVisibility(tx, visibility, "")
	err = tx.Scan(&stat).Error
	if err != nil {
		return Counters{}, errors.Wrap(err, "ошибка подсчета сотрудников")
	}
	return stat, nil
}

func (i impl) addFilter(tx *gorm.DB, filter employeeapimodels.EmployeeFilter, visibility models.Visibility) {
	if !filter.IncludeDeleted || !visibility.All {
		tx.Where("deleted_at is null")
	}
	addVisibility(tx, visibility, "")
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("(lower(first_name) like ? or lower(last_name) like ? or lower(email) like ? or lower(employee_id) like ?)",
			search, search, search, search)
	}
	if filter.DivisionID != "" {
		tx.Where("division_id = ?", filter.DivisionID)
	}
	if filter.PositionID != "" {
		tx.Where("position_id = ?", filter.PositionID)
	}
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.EmploymentType != "" {
		tx.Where("employment_type = ?", filter.EmploymentType)
	}
}

// AddVisibility ограничение выборки по видимости, table - таблица сотрудников в запросе
func AddVisibility(tx *gorm.DB, visibility models.Visibility, table string) {
	addVisibility(tx, visibility, table)
}

func addVisibility(tx *gorm.DB, visibility models.Visibility, table string) {
	if visibility.All {
		return
	}
	prefix := ""
	if table != "" {
		prefix = table + "."
	}
	if len(visibility.DivisionIDs) == 0 {
		tx.Where(prefix+"id = ?", visibility.EmployeeID)
		return
	}
	tx.Where("("+prefix+"id = ? or "+prefix+"division_id in (?))", visibility.EmployeeID, visibility.DivisionIDs)
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}

func (i impl) isUnique(selfID, email, code string) error {
	if email != "" {
		var rowCount int64
		tx := i.db.Model(dbmodels.Employee{})
		tx.Where("lower(email) = ?", strings.ToLower(email))
		if selfID != "" {
			tx.Where("id <> ?", selfID)
		}
		err := tx.Count(&rowCount).Error
		if err != nil {
			return errors.Wrap(err, "ошибка проверки уникальности почты")
		}
		if rowCount != 0 {
			return apperrors.Conflict("сотрудник с такой почтой уже существует")
		}
	}
	if code != "" {
		var rowCount int64
		tx := i.db.Model(dbmodels.Employee{})
		tx.Where("employee_id = ?", code)
		if selfID != "" {
			tx.Where("id <> ?", selfID)
		}
		err := tx.Count(&rowCount).Error
		if err != nil {
			return errors.Wrap(err, "ошибка проверки уникальности табельного номера")
		}
		if rowCount != 0 {
			return apperrors.Conflict("сотрудник с таким табельным номером уже существует")
		}
	}
	return nil
}
