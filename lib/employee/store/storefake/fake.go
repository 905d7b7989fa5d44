// Package storefake подмена хранилища сотрудников в тестах обработчиков
package storefake

import (
	"employee-management-backend/lib/employee/store"
	"employee-management-backend/models"
	employeeapimodels "employee-management-backend/models/api/employee"
	dbmodels "employee-management-backend/models/db"
)

type Fake struct {
	Records map[string]dbmodels.Employee

	CreateFn          func(rec dbmodels.Employee) (string, error)
	ListFn            func(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) ([]dbmodels.Employee, error)
	ListCountFn       func(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) (int64, error)
	UpdateFn          func(id string, updMap map[string]interface{}) error
	NextEmployeeIDFn  func() (string, error)
	CountByPositionFn func(positionID string) (int64, error)
	CountByDivisionFn func(divisionID string) (int64, error)
	SetStatusFn       func(ids []string, status models.EmployeeStatus) error
	CountersFn        func(visibility models.Visibility) (store.Counters, error)

	Updates map[string]map[string]interface{}
}

var _ store.Provider = (*Fake)(nil)

func New(records ...dbmodels.Employee) *Fake {
	f := &Fake{
		Records: map[string]dbmodels.Employee{},
		Updates: map[string]map[string]interface{}{},
	}
	for _, rec := range records {
		f.Records[rec.ID] = rec
	}
	return f
}

func (f *Fake) Create(rec dbmodels.Employee) (string, error) {
	if f.CreateFn != nil {
		return f.CreateFn(rec)
	}
	if rec.ID == "" {
		rec.ID = "new-" + rec.Email
	}
	f.Records[rec.ID] = rec
	return rec.ID, nil
}

func (f *Fake) GetByID(id string) (*dbmodels.Employee, error) {
	rec, ok := f.Records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *Fake) GetByEmail(email string) (*dbmodels.Employee, error) {
	for _, rec := range f.Records {
		if rec.Email == email {
			result := rec
			return &result, nil
		}
	}
	return nil, nil
}

func (f *Fake) List(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) ([]dbmodels.Employee, error) {
	if f.ListFn != nil {
		return f.ListFn(filter, visibility)
	}
	list := []dbmodels.Employee{}
	for _, rec := range f.Records {
		if filter.DivisionID != "" && (rec.DivisionID == nil || *rec.DivisionID != filter.DivisionID) {
			continue
		}
		if !visibility.Allows(rec.ID, rec.DivisionID) {
			continue
		}
		list = append(list, rec)
	}
	return list, nil
}

func (f *Fake) ListCount(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) (int64, error) {
	if f.ListCountFn != nil {
		return f.ListCountFn(filter, visibility)
	}
	list, err := f.List(filter, visibility)
	return int64(len(list)), err
}

func (f *Fake) Update(id string, updMap map[string]interface{}) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(id, updMap)
	}
	if f.Updates[id] == nil {
		f.Updates[id] = map[string]interface{}{}
	}
	for key, value := range updMap {
		f.Updates[id][key] = value
	}
	return nil
}

func (f *Fake) NextEmployeeID() (string, error) {
	if f.NextEmployeeIDFn != nil {
		return f.NextEmployeeIDFn()
	}
	return store.FormatEmployeeID(len(f.Records) + 1), nil
}

func (f *Fake) CountByPosition(positionID string) (int64, error) {
	if f.CountByPositionFn != nil {
		return f.CountByPositionFn(positionID)
	}
	return 0, nil
}

func (f *Fake) CountByDivision(divisionID string) (int64, error) {
	if f.CountByDivisionFn != nil {
		return f.CountByDivisionFn(divisionID)
	}
	var count int64
	for _, rec := range f.Records {
		if rec.DivisionID != nil && *rec.DivisionID == divisionID && !rec.IsDeleted() {
			count++
		}
	}
	return count, nil
}

func (f *Fake) ListByStatus(status models.EmployeeStatus) ([]dbmodels.Employee, error) {
	list := []dbmodels.Employee{}
	for _, rec := range f.Records {
		if rec.Status == status && !rec.IsDeleted() {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *Fake) SetStatus(ids []string, status models.EmployeeStatus) error {
	if f.SetStatusFn != nil {
		return f.SetStatusFn(ids, status)
	}
	for _, id := range ids {
		rec := f.Records[id]
		rec.Status = status
		f.Records[id] = rec
	}
	return nil
}

func (f *Fake) Counters(visibility models.Visibility) (store.Counters, error) {
	if f.CountersFn != nil {
		return f.CountersFn(visibility)
	}
	result := store.Counters{}
	for _, rec := range f.Records {
		if rec.IsDeleted() || !visibility.Allows(rec.ID, rec.DivisionID) {
			continue
		}
		result.Total++
		switch rec.Status {
		case models.EmployeeActiveStatus:
			result.Active++
		case models.EmployeeOnLeaveStatus:
			result.OnLeave++
		}
	}
	return result, nil
}
