package attendanceprovider

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"employee-management-backend/lib/attendance/store"
	"employee-management-backend/lib/employee/store/storefake"
	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/models"
	attendanceapimodels "employee-management-backend/models/api/attendance"
	leaveapimodels "employee-management-backend/models/api/leave"
	dbmodels "employee-management-backend/models/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceStore struct {
	mu      sync.Mutex
	records map[string]dbmodels.Attendance
	updates map[string]map[string]interface{}
	seq     int
}

func newFakeAttendanceStore(records ...dbmodels.Attendance) *fakeAttendanceStore {
	f := &fakeAttendanceStore{
		records: map[string]dbmodels.Attendance{},
		updates: map[string]map[string]interface{}{},
	}
	for _, rec := range records {
		f.records[rec.ID] = rec
	}
	return f
}

func (f *fakeAttendanceStore) Create(rec dbmodels.Attendance) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existed := range f.records {
		if existed.EmployeeID == rec.EmployeeID && existed.Date.Equal(rec.Date) {
			return "", apperrors.Conflict("отметка прихода за эту дату уже есть")
		}
	}
	f.seq++
	rec.ID = fmt.Sprintf("a%d", f.seq)
	f.records[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeAttendanceStore) GetByID(id string) (*dbmodels.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeAttendanceStore) GetByEmployeeDate(employeeID string, date time.Time) (*dbmodels.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) {
			result := rec
			return &result, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceStore) Update(id string, updMap map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = updMap
	return nil
}

func (f *fakeAttendanceStore) List(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) ([]dbmodels.Attendance, error) {
	return f.ListAll(filter, visibility)
}

func (f *fakeAttendanceStore) ListCount(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (int64, error) {
	list, err := f.ListAll(filter, visibility)
	return int64(len(list)), err
}

func (f *fakeAttendanceStore) ListAll(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) ([]dbmodels.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []dbmodels.Attendance{}
	for _, rec := range f.records {
		if visibility.Allows(rec.EmployeeID, nil) {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeAttendanceStore) DayCounters(date time.Time, visibility models.Visibility) (store.Counters, error) {
	return store.Counters{}, nil
}

func (f *fakeAttendanceStore) EmployeeCounters(employeeID string, from, to time.Time) (store.Counters, error) {
	return store.Counters{}, nil
}

type fakeFiles struct {
	mu       sync.Mutex
	uploaded map[string][]byte
}

func (f *fakeFiles) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded[key] = data
	return nil
}

func (f *fakeFiles) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, nil
}

func (f *fakeFiles) Delete(ctx context.Context, key string) error {
	return nil
}

type fakeXls struct {
	attendance []attendanceapimodels.AttendanceView
}

func (x *fakeXls) ExportAttendance(list []attendanceapimodels.AttendanceView, loc *time.Location) (*bytes.Buffer, error) {
	x.attendance = list
	return bytes.NewBufferString("xlsx"), nil
}

func (x *fakeXls) ExportLeaves(list []leaveapimodels.LeaveView) (*bytes.Buffer, error) {
	return nil, nil
}

var wib = time.FixedZone("WIB", 7*3600)

type testEnv struct {
	h     impl
	store *fakeAttendanceStore
	files *fakeFiles
	xls   *fakeXls
	now   time.Time
}

func newTestEnv(faceRequired bool, employees ...dbmodels.Employee) *testEnv {
	env := &testEnv{
		store: newFakeAttendanceStore(),
		files: &fakeFiles{uploaded: map[string][]byte{}},
		xls:   &fakeXls{},
		now:   time.Date(2024, 6, 3, 8, 45, 0, 0, wib),
	}
	env.h = impl{
		store:         env.store,
		employeeStore: storefake.New(employees...),
		fileStorage:   env.files,
		xls:           env.xls,
		cutoff:        Cutoff{Hour: 9},
		loc:           wib,
		faceRequired:  faceRequired,
		threshold:     0.6,
		now: func() time.Time {
			return env.now
		},
	}
	return env
}

func activeEmployee(id string, encoding ...float64) dbmodels.Employee {
	return dbmodels.Employee{
		BaseModel:    dbmodels.BaseModel{ID: id},
		FirstName:    "Budi",
		Status:       models.EmployeeActiveStatus,
		IsActive:     true,
		FaceEncoding: encoding,
	}
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run(`on time with verified face and photo`, func(t *testing.T) {
		env := newTestEnv(false, activeEmployee("e1", 0.1, 0.2, 0.3))
		item, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{Encoding: []float64{0.1, 0.2, 0.35}},
			&Photo{FileName: "selfie.jpg", Data: []byte{1, 2}})
		require.NoError(t, err)
		require.Equal(t, "2024-06-03", item.Date)
		require.False(t, item.Late)
		require.True(t, item.FaceVerified)
		require.NotNil(t, item.FaceDistance)
		require.True(t, item.HasPhoto)
		require.Len(t, env.files.uploaded, 1)
	})
	t.Run(`second check in same day is conflict`, func(t *testing.T) {
		env := newTestEnv(false, activeEmployee("e1"))
		_, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{}, nil)
		require.NoError(t, err)
		env.now = env.now.Add(3 * time.Hour)
		_, err = env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{}, nil)
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
		require.Len(t, env.store.records, 1)
	})
	t.Run(`next local day is a new record`, func(t *testing.T) {
		env := newTestEnv(false, activeEmployee("e1"))
		env.now = time.Date(2024, 6, 3, 23, 30, 0, 0, wib)
		_, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{}, nil)
		require.NoError(t, err)
		env.now = env.now.Add(time.Hour)
		item, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{}, nil)
		require.NoError(t, err)
		require.Equal(t, "2024-06-04", item.Date)
		require.Len(t, env.store.records, 2)
	})
	t.Run(`late after cutoff`, func(t *testing.T) {
		env := newTestEnv(false, activeEmployee("e1"))
		env.now = time.Date(2024, 6, 3, 9, 0, 1, 0, wib)
		item, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{}, nil)
		require.NoError(t, err)
		require.True(t, item.Late)
		require.False(t, item.FaceVerified)
	})
	t.Run(`face mismatch is forbidden and nothing stored`, func(t *testing.T) {
		env := newTestEnv(false, activeEmployee("e1", 0.1, 0.2, 0.3))
		_, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{Encoding: []float64{0.9, 0.9, 0.9}}, nil)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
		require.Empty(t, env.store.records)
	})
	t.Run(`face required without profile`, func(t *testing.T) {
		env := newTestEnv(true, activeEmployee("e1"))
		_, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{Encoding: []float64{0.1}}, nil)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
	t.Run(`face required without encoding`, func(t *testing.T) {
		env := newTestEnv(true, activeEmployee("e1", 0.1))
		_, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{}, nil)
		require.Contains(t, apperrors.FieldErrors(err), "encoding")
	})
	t.Run(`inactive employee`, func(t *testing.T) {
		rec := activeEmployee("e1")
		rec.IsActive = false
		env := newTestEnv(false, rec)
		_, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{}, nil)
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
	t.Run(`concurrent check ins create one record`, func(t *testing.T) {
		env := newTestEnv(false, activeEmployee("e1"))
		var wg sync.WaitGroup
		results := make(chan error, 5)
		for n := 0; n < 5; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{}, nil)
				results <- err
			}()
		}
		wg.Wait()
		close(results)
		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, apperrors.Is(err, apperrors.KindConflict))
		}
		require.Equal(t, 1, succeeded)
		require.Len(t, env.store.records, 1)
	})
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(false, activeEmployee("e1"))

	_, err := env.h.CheckOut("e1", attendanceapimodels.CheckOutRequest{})
	require.True(t, apperrors.Is(err, apperrors.KindValidation))

	item, err := env.h.CheckIn(ctx, "e1", attendanceapimodels.CheckInRequest{Notes: "office"}, nil)
	require.NoError(t, err)

	env.now = env.now.Add(8 * time.Hour)
	out, err := env.h.CheckOut("e1", attendanceapimodels.CheckOutRequest{Notes: "done"})
	require.NoError(t, err)
	require.Equal(t, 480, out.WorkMinutes)
	require.Equal(t, "office\ndone", env.store.updates[item.ID]["notes"])

	rec := env.store.records[item.ID]
	checkOut := env.now
	rec.CheckOut = &checkOut
	env.store.records[item.ID] = rec
	_, err = env.h.CheckOut("e1", attendanceapimodels.CheckOutRequest{})
	require.True(t, apperrors.Is(err, apperrors.KindConflict))
}

func TestListAndGet(t *testing.T) {
	div := "d1"
	env := newTestEnv(false)
	env.store.records["a1"] = dbmodels.Attendance{
		BaseModel:  dbmodels.BaseModel{ID: "a1"},
		EmployeeID: "e1",
		Employee:   &dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: "e1"}, DivisionID: &div},
		Date:       time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		CheckIn:    time.Date(2024, 6, 3, 2, 30, 0, 0, time.UTC),
	}

	t.Run(`late is computed on read`, func(t *testing.T) {
		item, err := env.h.Get("a1", models.Visibility{All: true})
		require.NoError(t, err)
		require.True(t, item.Late)
	})
	t.Run(`manager of division`, func(t *testing.T) {
		_, err := env.h.Get("a1", models.NewVisibility("m1", models.ManagerRole, []string{div}))
		require.NoError(t, err)
	})
	t.Run(`other employee`, func(t *testing.T) {
		_, err := env.h.Get("a1", models.NewVisibility("e2", models.EmployeeRole, nil))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
	t.Run(`bad period`, func(t *testing.T) {
		_, _, err := env.h.List(attendanceapimodels.AttendanceFilter{DateFrom: "2024-06-10", DateTo: "2024-06-01"}, models.Visibility{All: true})
		require.Contains(t, apperrors.FieldErrors(err), "date_to")
		_, _, err = env.h.List(attendanceapimodels.AttendanceFilter{DateFrom: "10.06.2024"}, models.Visibility{All: true})
		require.Contains(t, apperrors.FieldErrors(err), "date_from")
	})
	t.Run(`report`, func(t *testing.T) {
		buf, err := env.h.Report(context.Background(), attendanceapimodels.AttendanceFilter{}, models.Visibility{All: true})
		require.NoError(t, err)
		require.Equal(t, "xlsx", buf.String())
		require.Len(t, env.xls.attendance, 1)
		require.True(t, env.xls.attendance[0].Late)
	})
	t.Run(`report for foreign division`, func(t *testing.T) {
		_, err := env.h.Report(context.Background(), attendanceapimodels.AttendanceFilter{DivisionID: "d9"},
			models.NewVisibility("m1", models.ManagerRole, []string{div}))
		require.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})
}
