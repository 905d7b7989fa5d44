package store

import (
	"time"

	employeestore "employee-management-backend/lib/employee/store"
	"employee-management-backend/models"
	leaveapimodels "employee-management-backend/models/api/leave"
	dbmodels "employee-management-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Leave) (id string, err error)
	GetByID(id string) (rec *dbmodels.Leave, err error)
	Update(id string, updMap map[string]interface{}) error
	// Decide меняет статус только у заявки на согласовании, false если статус уже изменен
	Decide(id string, updMap map[string]interface{}) (bool, error)
	Delete(id string) error
	List(filter leaveapimodels.LeaveFilter, visibility models.Visibility) (list []dbmodels.Leave, err error)
	ListCount(filter leaveapimodels.LeaveFilter, visibility models.Visibility) (count int64, err error)
	ListAll(filter leaveapimodels.LeaveFilter, visibility models.Visibility) (list []dbmodels.Leave, err error)
	// Overlapping заявки на согласовании и согласованные, пересекающие период
	Overlapping(employeeID string, start, end time.Time, excludeID string) (list []dbmodels.Leave, err error)
	// ListInYear заявки с указанными статусами, пересекающие год
	ListInYear(employeeID string, year int, leaveType models.LeaveType, statuses []models.LeaveStatus) (list []dbmodels.Leave, err error)
	// EmployeesOnLeave сотрудники с согласованным отпуском на дату
	EmployeesOnLeave(date time.Time) (ids []string, err error)
	CountPending(visibility models.Visibility) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Leave) (id string, err error) {
	err = i.db.
		Omit("Employee", "DecidedBy").
		Save(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания заявки на отпуск")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Leave, error) {
	rec := dbmodels.Leave{}
	err := i.db.
		Preload("Employee").
		Preload("Employee.Division").
		Preload("Employee.Position").
		Preload("DecidedBy").
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Leave{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка обновления заявки на отпуск")
	}
	return nil
}

func (i impl) Decide(id string, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Leave{}).
		Where("id = ?", id).
		Where("status = ?", models.LeavePending).
		Updates(updMap)
	if tx.Error != nil {
		return false, errors.Wrap(tx.Error, "ошибка смены статуса заявки на отпуск")
	}
	return tx.RowsAffected == 1, nil
}

func (i impl) Delete(id string) error {
	err := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Leave{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления заявки на отпуск")
	}
	return nil
}

func (i impl) List(filter leaveapimodels.LeaveFilter, visibility models.Visibility) (list []dbmodels.Leave, err error) {
	list = []dbmodels.Leave{}
	tx := i.baseQuery(filter, visibility).
		Preload("Employee").
		Preload("DecidedBy")
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
	err = tx.Order("leaves.start_date desc, leaves.created_at desc").Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка заявок на отпуск")
	}
	return list, nil
}

func (i impl) ListCount(filter leaveapimodels.LeaveFilter, visibility models.Visibility) (count int64, err error) {
	err = i.baseQuery(filter, visibility).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения количества заявок на отпуск")
	}
	return count, nil
}

func (i impl) ListAll(filter leaveapimodels.LeaveFilter, visibility models.Visibility) (list []dbmodels.Leave, err error) {
	list = []dbmodels.Leave{}
	err = i.baseQuery(filter, visibility).
		Preload("Employee").
		Preload("DecidedBy").
		Order("leaves.start_date asc").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявок для отчета")
	}
	return list, nil
}

func (i impl) Overlapping(employeeID string, start, end time.Time, excludeID string) (list []dbmodels.Leave, err error) {
	list = []dbmodels.Leave{}
	tx := i.db.
		Model(&dbmodels.Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status in (?)", []models.LeaveStatus{models.LeavePending, models.LeaveApproved}).
		Where("start_date <= ?", end.Format(time.DateOnly)).
		Where("end_date >= ?", start.Format(time.DateOnly))
	if excludeID != "" {
		tx.Where("id <> ?", excludeID)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка проверки пересечения отпусков")
	}
	return list, nil
}

func (i impl) ListInYear(employeeID string, year int, leaveType models.LeaveType, statuses []models.LeaveStatus) (list []dbmodels.Leave, err error) {
	list = []dbmodels.Leave{}
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	err = i.db.
		Model(&dbmodels.Leave{}).
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", leaveType).
		Where("status in (?)", statuses).
		Where("start_date <= ?", yearEnd.Format(time.DateOnly)).
		Where("end_date >= ?", yearStart.Format(time.DateOnly)).
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения отпусков за год")
	}
	return list, nil
}

func (i impl) EmployeesOnLeave(date time.Time) (ids []string, err error) {
	ids = []string{}
	day := date.Format(time.DateOnly)
	err = i.db.
		Model(&dbmodels.Leave{}).
		Distinct("employee_id").
		Where("status = ?", models.LeaveApproved).
		Where("start_date <= ?", day).
		Where("end_date >= ?", day).
		Pluck("employee_id", &ids).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сотрудников в отпуске")
	}
	return ids, nil
}

func (i impl) CountPending(visibility models.Visibility) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.Leave{}).
		Joins("join employees on employees.id = leaves.employee_id").
		Where("leaves.status = ?", models.LeavePending)
	employeestore.AddVisibility(tx, visibility, "employees")
	err = tx.Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка подсчета заявок на согласовании")
	}
	return count, nil
}

func (i impl) baseQuery(filter leaveapimodels.LeaveFilter, visibility models.Visibility) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.Leave{}).
		Joins("join employees on employees.id = leaves.employee_id")
	employeestore.AddVisibility(tx, visibility, "employees")
	if filter.EmployeeID != "" {
		tx.Where("leaves.employee_id = ?", filter.EmployeeID)
	}
	if filter.DivisionID != "" {
		tx.Where("employees.division_id = ?", filter.DivisionID)
	}
	if filter.Status != "" {
		tx.Where("leaves.status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		tx.Where("leaves.leave_type = ?", filter.LeaveType)
	}
	if filter.DateFrom != "" {
		tx.Where("leaves.end_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		tx.Where("leaves.start_date <= ?", filter.DateTo)
	}
	return tx
}
