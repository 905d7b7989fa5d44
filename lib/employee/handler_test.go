package employeeprovider

import (
	"context"
	"testing"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/lib/employee/store/storefake"
	filestorage "employee-management-backend/lib/file-storage"
	apperrors "employee-management-backend/lib/utils/app-errors"
	authutils "employee-management-backend/lib/utils/auth-utils"
	"employee-management-backend/models"
	employeeapimodels "employee-management-backend/models/api/employee"
	dbmodels "employee-management-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeDivisions struct {
	records map[string]dbmodels.Division
	managed map[string][]string
}

func (f fakeDivisions) GetByID(id string) (*dbmodels.Division, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f fakeDivisions) ManagedBy(managerID string) ([]string, error) {
	return f.managed[managerID], nil
}

type fakePositions map[string]dbmodels.Position

func (f fakePositions) GetByID(id string) (*dbmodels.Position, error) {
	rec, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

type fakeFiles struct {
	uploaded map[string][]byte
	deleted  []string
}

func (f *fakeFiles) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	f.uploaded[key] = data
	return nil
}

func (f *fakeFiles) Get(ctx context.Context, key string) ([]byte, error) {
	return f.uploaded[key], nil
}

func (f *fakeFiles) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestHandler(employees *storefake.Fake) (impl, *fakeFiles) {
	config.Conf = &config.Configuration{}
	config.Conf.Leave.MinTenureMonths = 3
	files := &fakeFiles{uploaded: map[string][]byte{}}
	return impl{
		store: employees,
		divisionStore: fakeDivisions{
			records: map[string]dbmodels.Division{"d1": {BaseModel: dbmodels.BaseModel{ID: "d1"}}},
			managed: map[string][]string{"m1": {"d1"}},
		},
		positionStore: fakePositions{"p1": {BaseModel: dbmodels.BaseModel{ID: "p1"}, Level: 1}},
		fileStorage:   files,
		now: func() time.Time {
			return testNow
		},
	}, files
}

func strPtr(s string) *string {
	return &s
}

func TestCreate(t *testing.T) {
	t.Run(`defaults and generated code`, func(t *testing.T) {
		employees := storefake.New()
		h, _ := newTestHandler(employees)
		id, err := h.Create("hr-1", employeeapimodels.EmployeeData{
			Email:      " Budi@Company.co.id ",
			Password:   "secret123",
			FirstName:  "Budi",
			DivisionID: strPtr("d1"),
			HireDate:   "2024-01-15",
		})
		require.NoError(t, err)
		rec := employees.Records[id]
		require.Equal(t, "EMP0001", rec.EmployeeID)
		require.Equal(t, "budi@company.co.id", rec.Email)
		require.Equal(t, models.EmployeeActiveStatus, rec.Status)
		require.Equal(t, models.EmployeeRole, rec.Role)
		require.Equal(t, models.FullTimeEmployment, rec.EmploymentType)
		require.True(t, rec.IsActive)
		require.True(t, authutils.CheckPassword(rec.Password, "secret123"))
		require.Equal(t, "2024-01-15", rec.HireDate.Format("2006-01-02"))
	})
	t.Run(`password required`, func(t *testing.T) {
		h, _ := newTestHandler(storefake.New())
		_, err := h.Create("hr-1", employeeapimodels.EmployeeData{Email: "a@company.co.id", FirstName: "A"})
		require.Contains(t, apperrors.FieldErrors(err), "password")
	})
	t.Run(`company domain`, func(t *testing.T) {
		h, _ := newTestHandler(storefake.New())
		config.Conf.Auth.CompanyEmailDomain = "company.co.id"
		_, err := h.Create("hr-1", employeeapimodels.EmployeeData{Email: "a@gmail.com", Password: "secret123", FirstName: "A"})
		require.Contains(t, apperrors.FieldErrors(err), "email")
	})
	t.Run(`unknown division and position`, func(t *testing.T) {
		h, _ := newTestHandler(storefake.New())
		_, err := h.Create("hr-1", employeeapimodels.EmployeeData{Email: "a@company.co.id", Password: "secret123", FirstName: "A", DivisionID: strPtr("x")})
		require.Contains(t, apperrors.FieldErrors(err), "division_id")
		_, err = h.Create("hr-1", employeeapimodels.EmployeeData{Email: "a@company.co.id", Password: "secret123", FirstName: "A", PositionID: strPtr("x")})
		require.Contains(t, apperrors.FieldErrors(err), "position_id")
	})
}

func TestPatch(t *testing.T) {
	div := "d1"
	employees := storefake.New(dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e1"}, Email: "e1@company.co.id", DivisionID: &div})
	h, _ := newTestHandler(employees)

	t.Run(`clear division`, func(t *testing.T) {
		err := h.Patch("e1", employeeapimodels.EmployeePatch{DivisionID: strPtr("")})
		require.NoError(t, err)
		require.Contains(t, employees.Updates["e1"], "division_id")
		require.Nil(t, employees.Updates["e1"]["division_id"])
	})
	t.Run(`same email is not updated`, func(t *testing.T) {
		employees.Updates = map[string]map[string]interface{}{}
		err := h.Patch("e1", employeeapimodels.EmployeePatch{Email: strPtr("E1@company.co.id"), FirstName: strPtr(" Eka ")})
		require.NoError(t, err)
		require.NotContains(t, employees.Updates["e1"], "email")
		require.Equal(t, "Eka", employees.Updates["e1"]["first_name"])
	})
	t.Run(`not found`, func(t *testing.T) {
		err := h.Patch("x", employeeapimodels.EmployeePatch{})
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
	})
}

func TestDeleteRestore(t *testing.T) {
	employees := storefake.New(dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e1"}, IsActive: true})
	h, _ := newTestHandler(employees)

	err := h.Delete("hr-1", "hr-1")
	require.True(t, apperrors.Is(err, apperrors.KindValidation))

	err = h.Delete("hr-1", "e1")
	require.NoError(t, err)
	upd := employees.Updates["e1"]
	require.Equal(t, false, upd["is_active"])
	require.Equal(t, testNow, upd["deleted_at"])
	require.Equal(t, "hr-1", upd["deleted_by"])

	err = h.Restore("e1")
	require.True(t, apperrors.Is(err, apperrors.KindValidation))

	deletedAt := testNow
	rec := employees.Records["e1"]
	rec.DeletedAt = &deletedAt
	employees.Records["e1"] = rec
	err = h.Restore("e1")
	require.NoError(t, err)
	require.Equal(t, true, employees.Updates["e1"]["is_active"])
	require.Nil(t, employees.Updates["e1"]["deleted_at"])
}

func TestVisibility(t *testing.T) {
	div := "d1"
	other := "d2"
	deletedAt := testNow
	employees := storefake.New(
		dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "m1"}, DivisionID: &other},
		dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e1"}, DivisionID: &div},
		dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e2"}, DivisionID: &other},
		dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e3"}, DeletedAt: &deletedAt},
	)
	h, _ := newTestHandler(employees)

	manager, err := h.Visibility("m1", models.ManagerRole)
	require.NoError(t, err)
	require.Equal(t, []string{"d1"}, manager.DivisionIDs)

	_, err = h.Get("e1", manager)
	require.NoError(t, err)
	_, err = h.Get("m1", manager)
	require.NoError(t, err)
	_, err = h.Get("e2", manager)
	require.True(t, apperrors.Is(err, apperrors.KindForbidden))

	employee, err := h.Visibility("e1", models.EmployeeRole)
	require.NoError(t, err)
	list, count, err := h.List(employeeapimodels.EmployeeFilter{}, employee)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
	require.Equal(t, "e1", list[0].ID)

	hr, err := h.Visibility("hr", models.HRAdminRole)
	require.NoError(t, err)
	require.True(t, hr.All)
	_, err = h.Get("e3", hr)
	require.NoError(t, err)
	_, err = h.Get("e3", manager)
	require.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestEnrollFace(t *testing.T) {
	employees := storefake.New(dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e1"}, FacePhotoFront: "faces/e1/old.jpg"})
	h, files := newTestHandler(employees)
	ctx := context.Background()

	t.Run(`missing side`, func(t *testing.T) {
		_, err := h.EnrollFace(ctx, "e1", []FacePhoto{{Side: filestorage.FaceFront, Data: []byte{1}}}, []float64{0.1})
		fields := apperrors.FieldErrors(err)
		require.Contains(t, fields, "left")
		require.Contains(t, fields, "right")
	})
	t.Run(`missing encoding`, func(t *testing.T) {
		_, err := h.EnrollFace(ctx, "e1", nil, nil)
		require.Contains(t, apperrors.FieldErrors(err), "encoding")
	})
	t.Run(`photos uploaded and encoding saved`, func(t *testing.T) {
		photos := []FacePhoto{
			{Side: filestorage.FaceFront, FileName: "f.png", Data: []byte{1}},
			{Side: filestorage.FaceLeft, FileName: "l.jpg", Data: []byte{2}},
			{Side: filestorage.FaceRight, FileName: "r.jpg", Data: []byte{3}},
		}
		result, err := h.EnrollFace(ctx, "e1", photos, []float64{0.1, 0.2, 0.3})
		require.NoError(t, err)
		require.Equal(t, 3, result.Size)
		require.Len(t, files.uploaded, 3)
		require.Contains(t, files.uploaded, result.FrontKey)
		require.Equal(t, []string{"faces/e1/old.jpg"}, files.deleted)
		require.Equal(t, dbmodels.FaceEncoding{0.1, 0.2, 0.3}, employees.Updates["e1"]["face_encoding"])
	})
}
