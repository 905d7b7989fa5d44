package leaveworker

import (
	"context"
	"slices"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/db"
	employeestore "employee-management-backend/lib/employee/store"
	leavestore "employee-management-backend/lib/leave/store"
	baseworker "employee-management-backend/lib/utils/base-worker"
	"employee-management-backend/lib/utils/helpers"
	"employee-management-backend/models"
)

// StartWorker синхронизирует статус сотрудника с согласованными отпусками:
// active -> on_leave в первый день отпуска, on_leave -> active после окончания
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:      *baseworker.NewInstance("LeaveStatusWorker", 15*time.Second, 60*time.Minute),
		leaveStore:    leavestore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		loc:           config.Location(),
		now:           time.Now,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	leaveStore    leavestore.Provider
	employeeStore employeestore.Provider
	loc           *time.Location
	now           func() time.Time
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	today := helpers.Today(i.now(), i.loc)
	onLeave, err := i.leaveStore.EmployeesOnLeave(today)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка сотрудников в отпуске")
		return
	}
	if helpers.IsContextDone(ctx) {
		return
	}

	active, err := i.employeeStore.ListByStatus(models.EmployeeActiveStatus)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка работающих сотрудников")
		return
	}
	toLeave := []string{}
	for _, rec := range active {
		if slices.Contains(onLeave, rec.ID) {
			toLeave = append(toLeave, rec.ID)
		}
	}
	i.setStatus(toLeave, models.EmployeeOnLeaveStatus)
	if helpers.IsContextDone(ctx) {
		return
	}

	away, err := i.employeeStore.ListByStatus(models.EmployeeOnLeaveStatus)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка сотрудников в статусе отпуска")
		return
	}
	toActive := []string{}
	for _, rec := range away {
		if !slices.Contains(onLeave, rec.ID) {
			toActive = append(toActive, rec.ID)
		}
	}
	i.setStatus(toActive, models.EmployeeActiveStatus)
}

func (i impl) setStatus(ids []string, status models.EmployeeStatus) {
	if len(ids) == 0 {
		return
	}
	err := i.employeeStore.SetStatus(ids, status)
	if err != nil {
		i.GetLogger().
			WithError(err).
			WithField("employee_count", len(ids)).
			Errorf("Ошибка перевода сотрудников в статус %v", status)
		return
	}
	i.GetLogger().
		WithField("employee_count", len(ids)).
		Infof("Сотрудники переведены в статус %v", status)
}
