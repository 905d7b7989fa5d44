package store

import (
	"time"

	employeestore "employee-management-backend/lib/employee/store"
	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/models"
	attendanceapimodels "employee-management-backend/models/api/attendance"
	dbmodels "employee-management-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Attendance) (id string, err error)
	GetByID(id string) (rec *dbmodels.Attendance, err error)
	GetByEmployeeDate(employeeID string, date time.Time) (rec *dbmodels.Attendance, err error)
	Update(id string, updMap map[string]interface{}) error
	List(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (list []dbmodels.Attendance, err error)
	ListCount(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (count int64, err error)
	ListAll(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (list []dbmodels.Attendance, err error)
	DayCounters(date time.Time, visibility models.Visibility) (stat Counters, err error)
	EmployeeCounters(employeeID string, from, to time.Time) (stat Counters, err error)
}

type Counters struct {
	Total int64
	Late  int64
}

// LateRule опоздание считается в запросе из check_in, в таблице не хранится
type LateRule struct {
	Timezone string
	Cutoff   string
}

const lateExpr = "(attendances.check_in at time zone ?)::time > ?::time"

func NewInstance(DB *gorm.DB, rule LateRule) Provider {
	return &impl{
		db:   DB,
		rule: rule,
	}
}

type impl struct {
	db   *gorm.DB
	rule LateRule
}

func (i impl) Create(rec dbmodels.Attendance) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.Conflict("отметка прихода за эту дату уже есть")
		}
		return "", errors.Wrap(err, "ошибка создания отметки")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Attendance, error) {
	rec := dbmodels.Attendance{}
	err := i.db.
		Preload("Employee").
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

func (i impl) GetByEmployeeDate(employeeID string, date time.Time) (*dbmodels.Attendance, error) {
	rec := dbmodels.Attendance{}
	err := i.db.
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format(time.DateOnly)).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Attendance{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка обновления отметки")
	}
	return nil
}

func (i impl) List(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (list []dbmodels.Attendance, err error) {
	list = []dbmodels.Attendance{}
	tx := i.baseQuery(filter, visibility).
		Preload("Employee")
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
	err = tx.Order("attendances.date desc, attendances.check_in desc").Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка отметок")
	}
	return list, nil
}

func (i impl) ListCount(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (count int64, err error) {
	err = i.baseQuery(filter, visibility).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения количества отметок")
	}
	return count, nil
}

func (i impl) ListAll(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (list []dbmodels.Attendance, err error) {
	list = []dbmodels.Attendance{}
	err = i.baseQuery(filter, visibility).
		Preload("Employee").
		Order("attendances.date asc, employees.last_name asc").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения отметок для отчета")
	}
	return list, nil
}

func (i impl) DayCounters(date time.Time, visibility models.Visibility) (stat Counters, err error) {
	tx := i.db.
		Model(&dbmodels.Attendance{}).
		Select("count(*) as total, count(*) filter (where "+lateExpr+") as late", i.rule.Timezone, i.rule.Cutoff).
		Joins("join employees on employees.id = attendances.employee_id").
		Where("attendances.date = ?", date.Format(time.DateOnly))
	employeestore.AddVisibility(tx, visibility, "employees")
	err = tx.Scan(&stat).Error
	if err != nil {
		return Counters{}, errors.Wrap(err, "ошибка подсчета отметок за день")
	}
	return stat, nil
}

func (i impl) EmployeeCounters(employeeID string, from, to time.Time) (stat Counters, err error) {
	err = i.db.
		Model(&dbmodels.Attendance{}).
		Select("count(*) as total, count(*) filter (where "+lateExpr+") as late", i.rule.Timezone, i.rule.Cutoff).
		Where("attendances.employee_id = ?", employeeID).
		Where("attendances.date between ? and ?", from.Format(time.DateOnly), to.Format(time.DateOnly)).
		Scan(&stat).
		Error
	if err != nil {
		return Counters{}, errors.Wrap(err, "ошибка подсчета отметок сотрудника")
	}
	return stat, nil
}

func (i impl) baseQuery(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.Attendance{}).
		Joins("join employees on employees.id = attendances.employee_id")
	employeestore.AddVisibility(tx, visibility, "employees")
	if filter.EmployeeID != "" {
		tx.Where("attendances.employee_id = ?", filter.EmployeeID)
	}
	if filter.DivisionID != "" {
		tx.Where("employees.division_id = ?", filter.DivisionID)
	}
	if filter.DateFrom != "" {
		tx.Where("attendances.date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		tx.Where("attendances.date <= ?", filter.DateTo)
	}
	if filter.Late != nil {
		if *filter.Late {
			tx.Where(lateExpr, i.rule.Timezone, i.rule.Cutoff)
		} else {
			tx.Where("not "+lateExpr, i.rule.Timezone, i.rule.Cutoff)
		}
	}
	return tx
}
