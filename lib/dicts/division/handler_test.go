package divisionprovider

import (
	"testing"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/lib/employee/store/storefake"
	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/models"
	dictapimodels "employee-management-backend/models/api/dict"
	employeeapimodels "employee-management-backend/models/api/employee"
	dbmodels "employee-management-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeDivisionStore struct {
	records map[string]dbmodels.Division
	updates map[string]map[string]interface{}
	deleted []string
	stat    dbmodels.DivisionStatistics
	managed map[string][]string
}

func newFakeDivisionStore(records ...dbmodels.Division) *fakeDivisionStore {
	f := &fakeDivisionStore{
		records: map[string]dbmodels.Division{},
		updates: map[string]map[string]interface{}{},
		managed: map[string][]string{},
	}
	for _, rec := range records {
		f.records[rec.ID] = rec
	}
	return f
}

func (f *fakeDivisionStore) Create(rec dbmodels.Division) (string, error) {
	for _, existed := range f.records {
		if existed.Code == rec.Code {
			return "", apperrors.Conflict("подразделение с таким кодом уже существует")
		}
	}
	rec.ID = "div-" + rec.Code
	f.records[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeDivisionStore) GetByID(id string) (*dbmodels.Division, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeDivisionStore) List(filter dictapimodels.DivisionFilter) ([]dbmodels.Division, error) {
	list := []dbmodels.Division{}
	for _, rec := range f.records {
		list = append(list, rec)
	}
	return list, nil
}

func (f *fakeDivisionStore) ListCount(filter dictapimodels.DivisionFilter) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeDivisionStore) Update(id string, updMap map[string]interface{}) error {
	f.updates[id] = updMap
	return nil
}

func (f *fakeDivisionStore) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.records, id)
	return nil
}

func (f *fakeDivisionStore) EmployeeCounts(ids []string) (map[string]int64, error) {
	result := map[string]int64{}
	for _, id := range ids {
		result[id] = 2
	}
	return result, nil
}

func (f *fakeDivisionStore) Statistics(id string) (dbmodels.DivisionStatistics, error) {
	return f.stat, nil
}

func (f *fakeDivisionStore) ManagedBy(managerID string) ([]string, error) {
	return f.managed[managerID], nil
}

func initTestConfig() {
	config.Conf = &config.Configuration{}
	config.Conf.Leave.MinTenureMonths = 3
}

func newTestHandler(divisions *fakeDivisionStore, employees *storefake.Fake) impl {
	initTestConfig()
	return impl{
		store:         divisions,
		employeeStore: employees,
		now: func() time.Time {
			return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		},
	}
}

func strPtr(s string) *string {
	return &s
}

func TestCreate(t *testing.T) {
	t.Run(`code is normalized and active by default`, func(t *testing.T) {
		divisions := newFakeDivisionStore()
		h := newTestHandler(divisions, storefake.New())
		id, err := h.Create("hr-1", dictapimodels.DivisionData{Code: " fin ", Name: " Finance "})
		require.NoError(t, err)
		rec := divisions.records[id]
		require.Equal(t, "FIN", rec.Code)
		require.Equal(t, "Finance", rec.Name)
		require.True(t, rec.IsActive)
		require.Equal(t, "hr-1", rec.CreatedBy)
		require.Nil(t, rec.ManagerID)
	})
	t.Run(`duplicate code is conflict`, func(t *testing.T) {
		divisions := newFakeDivisionStore(dbmodels.Division{BaseModel: dbmodels.BaseModel{ID: "d1"}, Code: "FIN"})
		h := newTestHandler(divisions, storefake.New())
		_, err := h.Create("hr-1", dictapimodels.DivisionData{Code: "fin", Name: "Finance"})
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
	})
	t.Run(`unknown manager`, func(t *testing.T) {
		h := newTestHandler(newFakeDivisionStore(), storefake.New())
		_, err := h.Create("hr-1", dictapimodels.DivisionData{Code: "FIN", Name: "Finance", ManagerID: strPtr("nobody")})
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
		require.Contains(t, apperrors.FieldErrors(err), "manager_id")
	})
	t.Run(`deleted manager`, func(t *testing.T) {
		deletedAt := time.Now()
		employees := storefake.New(dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "m1"}, DeletedAt: &deletedAt})
		h := newTestHandler(newFakeDivisionStore(), employees)
		_, err := h.Create("hr-1", dictapimodels.DivisionData{Code: "FIN", Name: "Finance", ManagerID: strPtr("m1")})
		require.Error(t, err)
	})
	t.Run(`manager must have manager role`, func(t *testing.T) {
		employees := storefake.New(
			dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e1"}, Role: models.EmployeeRole},
			dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "m1"}, Role: models.ManagerRole},
			dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "hr1"}, Role: models.HRAdminRole},
		)
		h := newTestHandler(newFakeDivisionStore(), employees)
		_, err := h.Create("hr-1", dictapimodels.DivisionData{Code: "FIN", Name: "Finance", ManagerID: strPtr("e1")})
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
		require.Contains(t, apperrors.FieldErrors(err), "manager_id")

		_, err = h.Create("hr-1", dictapimodels.DivisionData{Code: "FIN", Name: "Finance", ManagerID: strPtr("m1")})
		require.NoError(t, err)
		_, err = h.Create("hr-1", dictapimodels.DivisionData{Code: "OPS", Name: "Operations", ManagerID: strPtr("hr1")})
		require.NoError(t, err)
	})
}

func TestPatch(t *testing.T) {
	divisions := newFakeDivisionStore(dbmodels.Division{BaseModel: dbmodels.BaseModel{ID: "d1"}, Code: "FIN", Name: "Finance"})
	employees := storefake.New(dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "m1"}, Role: models.ManagerRole})
	h := newTestHandler(divisions, employees)

	t.Run(`only given fields`, func(t *testing.T) {
		err := h.Patch("d1", dictapimodels.DivisionPatch{Name: strPtr("Finance dept")})
		require.NoError(t, err)
		require.Equal(t, map[string]interface{}{"name": "Finance dept"}, divisions.updates["d1"])
	})
	t.Run(`empty manager clears it`, func(t *testing.T) {
		err := h.Patch("d1", dictapimodels.DivisionPatch{ManagerID: strPtr("")})
		require.NoError(t, err)
		require.Contains(t, divisions.updates["d1"], "manager_id")
		require.Nil(t, divisions.updates["d1"]["manager_id"])
	})
	t.Run(`put replaces every field`, func(t *testing.T) {
		err := h.Update("d1", dictapimodels.DivisionData{Code: "acc", Name: "Accounting", ManagerID: strPtr("m1")})
		require.NoError(t, err)
		upd := divisions.updates["d1"]
		require.Equal(t, "ACC", upd["code"])
		require.Equal(t, "Accounting", upd["name"])
		require.Equal(t, "", upd["description"])
		require.Equal(t, "m1", upd["manager_id"])
	})
	t.Run(`not found`, func(t *testing.T) {
		err := h.Patch("missing", dictapimodels.DivisionPatch{})
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})
}

func TestDelete(t *testing.T) {
	div := "d1"
	t.Run(`division with employees is deactivated`, func(t *testing.T) {
		divisions := newFakeDivisionStore(dbmodels.Division{BaseModel: dbmodels.BaseModel{ID: div}, IsActive: true})
		employees := storefake.New(dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e1"}, DivisionID: &div})
		h := newTestHandler(divisions, employees)
		soft, err := h.Delete(div)
		require.NoError(t, err)
		require.True(t, soft)
		require.Equal(t, false, divisions.updates[div]["is_active"])
		require.Empty(t, divisions.deleted)
	})
	t.Run(`empty division is removed`, func(t *testing.T) {
		divisions := newFakeDivisionStore(dbmodels.Division{BaseModel: dbmodels.BaseModel{ID: div}, IsActive: true})
		h := newTestHandler(divisions, storefake.New())
		soft, err := h.Delete(div)
		require.NoError(t, err)
		require.False(t, soft)
		require.Equal(t, []string{div}, divisions.deleted)
	})
	t.Run(`missing division`, func(t *testing.T) {
		h := newTestHandler(newFakeDivisionStore(), storefake.New())
		_, err := h.Delete("x")
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})
}

func TestStatisticsAndEmployees(t *testing.T) {
	div := "d1"
	other := "d2"
	hire := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	divisions := newFakeDivisionStore(
		dbmodels.Division{BaseModel: dbmodels.BaseModel{ID: div}},
		dbmodels.Division{BaseModel: dbmodels.BaseModel{ID: other}},
	)
	divisions.stat = dbmodels.DivisionStatistics{EmployeeCount: 3, ActiveEmployees: 2, InactiveEmployees: 1}
	employees := storefake.New(
		dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e1"}, DivisionID: &div, HireDate: &hire, IsActive: true, Status: models.EmployeeActiveStatus},
		dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e2"}, DivisionID: &other},
	)
	h := newTestHandler(divisions, employees)
	manager := models.NewVisibility("m1", models.ManagerRole, []string{div})

	t.Run(`manager reads own division`, func(t *testing.T) {
		stat, err := h.Statistics(div, manager)
		require.NoError(t, err)
		require.Equal(t, int64(3), stat.EmployeeCount)
		require.Equal(t, int64(1), stat.InactiveEmployees)

		list, count, err := h.Employees(div, manager, employeeapimodels.EmployeeFilter{})
		require.NoError(t, err)
		require.Equal(t, int64(1), count)
		require.Len(t, list, 1)
		require.Equal(t, "e1", list[0].ID)
		require.True(t, list[0].LeaveEligible)
	})
	t.Run(`manager of other division is forbidden`, func(t *testing.T) {
		_, err := h.Statistics(other, manager)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
	t.Run(`list adds employee counts`, func(t *testing.T) {
		list, count, err := h.List(dictapimodels.DivisionFilter{})
		require.NoError(t, err)
		require.Equal(t, int64(2), count)
		require.Equal(t, int64(2), list[0].EmployeeCount)
	})
}
