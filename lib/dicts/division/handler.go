package divisionprovider

import (
	"strings"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/db"
	"employee-management-backend/lib/dicts/division/store"
	employeestore "employee-management-backend/lib/employee/store"
	apperrors "employee-management-backend/lib/utils/app-errors"
	initchecker "employee-management-backend/lib/utils/init-checker"
	"employee-management-backend/lib/utils/validators"
	"employee-management-backend/models"
	dictapimodels "employee-management-backend/models/api/dict"
	employeeapimodels "employee-management-backend/models/api/employee"
	dbmodels "employee-management-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(userID string, request dictapimodels.DivisionData) (id string, err error)
	Update(id string, request dictapimodels.DivisionData) error
	Patch(id string, request dictapimodels.DivisionPatch) error
	Get(id string) (item dictapimodels.DivisionView, err error)
	List(filter dictapimodels.DivisionFilter) (list []dictapimodels.DivisionView, rowCount int64, err error)
	Delete(id string) (softDeleted bool, err error)
	Statistics(id string, visibility models.Visibility) (stat dictapimodels.DivisionStatistics, err error)
	Employees(id string, visibility models.Visibility, filter employeeapimodels.EmployeeFilter) (list []employeeapimodels.EmployeeView, rowCount int64, err error)
	ManagedBy(managerID string) (ids []string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         store.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		now:           time.Now,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	store         store.Provider
	employeeStore employeestore.Provider
	now           func() time.Time
}

func (i impl) Create(userID string, request dictapimodels.DivisionData) (id string, err error) {
	logger := log.WithField("user_id", userID)
	err = i.checkManager(request.ManagerID)
	if err != nil {
		return "", err
	}
	rec := dbmodels.Division{
		Code:        validators.NormalizeCode(request.Code),
		Name:        strings.TrimSpace(request.Name),
		Description: request.Description,
		ManagerID:   emptyToNil(request.ManagerID),
		IsActive:    request.IsActive == nil || *request.IsActive,
		CreatedBy:   userID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("division_code", rec.Code).
		WithField("rec_id", id).
		Info("создано подразделение")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.DivisionData) error {
	empty := ""
	patch := dictapimodels.DivisionPatch{
		Code:        &request.Code,
		Name:        &request.Name,
		Description: &request.Description,
		ManagerID:   request.ManagerID,
		IsActive:    request.IsActive,
	}
	if patch.ManagerID == nil {
		patch.ManagerID = &empty
	}
	return i.Patch(id, patch)
}

func (i impl) Patch(id string, request dictapimodels.DivisionPatch) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("подразделение не найдено")
	}
	updMap := map[string]interface{}{}
	if request.Code != nil {
		updMap["code"] = validators.NormalizeCode(*request.Code)
	}
	if request.Name != nil {
		updMap["name"] = strings.TrimSpace(*request.Name)
	}
	if request.Description != nil {
		updMap["description"] = *request.Description
	}
	if request.ManagerID != nil {
		err = i.checkManager(request.ManagerID)
		if err != nil {
			return err
		}
		updMap["manager_id"] = nullable(request.ManagerID)
	}
	if request.IsActive != nil {
		updMap["is_active"] = *request.IsActive
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлено подразделение")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.DivisionView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.DivisionView{}, err
	}
	if rec == nil {
		return dictapimodels.DivisionView{}, apperrors.NotFound("подразделение не найдено")
	}
	counts, err := i.store.EmployeeCounts([]string{rec.ID})
	if err != nil {
		return dictapimodels.DivisionView{}, err
	}
	return dictapimodels.DivisionConvert(*rec, counts[rec.ID]), nil
}

func (i impl) List(filter dictapimodels.DivisionFilter) (list []dictapimodels.DivisionView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(recList))
	for _, rec := range recList {
		ids = append(ids, rec.ID)
	}
	counts, err := i.store.EmployeeCounts(ids)
	if err != nil {
		return nil, 0, err
	}
	list = make([]dictapimodels.DivisionView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.DivisionConvert(rec, counts[rec.ID]))
	}
	return list, rowCount, nil
}

// Delete подразделение с сотрудниками деактивируется, пустое удаляется
func (i impl) Delete(id string) (softDeleted bool, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, apperrors.NotFound("подразделение не найдено")
	}
	count, err := i.employeeStore.CountByDivision(id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		err = i.store.Update(id, map[string]interface{}{"is_active": false})
		if err != nil {
			return false, err
		}
		logger.WithField("employee_count", count).Info("подразделение деактивировано")
		return true, nil
	}
	err = i.store.Delete(id)
	if err != nil {
		return false, err
	}
	logger.Info("удалено подразделение")
	return false, nil
}

func (i impl) Statistics(id string, visibility models.Visibility) (stat dictapimodels.DivisionStatistics, err error) {
	err = i.checkAccess(id, visibility)
	if err != nil {
		return dictapimodels.DivisionStatistics{}, err
	}
	rec, err := i.store.Statistics(id)
	if err != nil {
		return dictapimodels.DivisionStatistics{}, err
	}
	return dictapimodels.DivisionStatisticsConvert(rec), nil
}

func (i impl) Employees(id string, visibility models.Visibility, filter employeeapimodels.EmployeeFilter) (list []employeeapimodels.EmployeeView, rowCount int64, err error) {
	err = i.checkAccess(id, visibility)
	if err != nil {
		return nil, 0, err
	}
	filter.DivisionID = id
	filter.IncludeDeleted = false
	all := models.Visibility{All: true}
	rowCount, err = i.employeeStore.ListCount(filter, all)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.employeeStore.List(filter, all)
	if err != nil {
		return nil, 0, err
	}
	now := i.now().In(config.Location())
	list = make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, employeeapimodels.EmployeeConvert(rec, now, config.Conf.Leave.MinTenureMonths))
	}
	return list, rowCount, nil
}

func (i impl) ManagedBy(managerID string) (ids []string, err error) {
	return i.store.ManagedBy(managerID)
}

func (i impl) checkAccess(id string, visibility models.Visibility) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("подразделение не найдено")
	}
	if !visibility.AllowsDivision(id) {
		return apperrors.Forbidden("нет доступа к подразделению")
	}
	return nil
}

func (i impl) checkManager(managerID *string) error {
	if managerID == nil || *managerID == "" {
		return nil
	}
	manager, err := i.employeeStore.GetByID(*managerID)
	if err != nil {
		return err
	}
	if manager == nil || manager.IsDeleted() {
		return apperrors.ValidationFields(map[string]string{"manager_id": "руководитель не найден"})
	}
	if !manager.Role.IsManager() && !manager.Role.IsHR() {
		return apperrors.ValidationFields(map[string]string{"manager_id": "сотрудник не имеет роли руководителя"})
	}
	return nil
}

func nullable(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
