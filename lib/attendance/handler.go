package attendanceprovider

import (
	"bytes"
	"context"
	"strings"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/db"
	"employee-management-backend/lib/attendance/store"
	employeestore "employee-management-backend/lib/employee/store"
	xlsexport "employee-management-backend/lib/export/xls"
	"employee-management-backend/lib/face"
	filestorage "employee-management-backend/lib/file-storage"
	apperrors "employee-management-backend/lib/utils/app-errors"
	"employee-management-backend/lib/utils/helpers"
	initchecker "employee-management-backend/lib/utils/init-checker"
	"employee-management-backend/lib/utils/lock"
	"employee-management-backend/models"
	attendanceapimodels "employee-management-backend/models/api/attendance"
	dbmodels "employee-management-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	CheckIn(ctx context.Context, userID string, request attendanceapimodels.CheckInRequest, photo *Photo) (item attendanceapimodels.AttendanceView, err error)
	CheckOut(userID string, request attendanceapimodels.CheckOutRequest) (item attendanceapimodels.AttendanceView, err error)
	List(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (list []attendanceapimodels.AttendanceView, rowCount int64, err error)
	Get(id string, visibility models.Visibility) (item attendanceapimodels.AttendanceView, err error)
	Report(ctx context.Context, filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (*bytes.Buffer, error)
}

// Photo снимок при отметке прихода
type Photo struct {
	FileName    string
	ContentType string
	Data        []byte
}

var Instance Provider

const checkInLockWait = 5 * time.Second

func NewHandler() {
	cutoff, err := ParseCutoff(config.Conf.Attendance.LateCutoff)
	if err != nil {
		panic(err)
	}
	loc := config.Location()
	instance := impl{
		store: store.NewInstance(db.DB, store.LateRule{
			Timezone: loc.String(),
			Cutoff:   cutoff.String(),
		}),
		employeeStore: employeestore.NewInstance(db.DB),
		fileStorage:   filestorage.Instance,
		xls:           xlsexport.Instance,
		cutoff:        cutoff,
		loc:           loc,
		faceRequired:  config.Conf.Attendance.FaceRequired != nil && *config.Conf.Attendance.FaceRequired,
		threshold:     config.Conf.Attendance.FaceMatchThreshold,
		now:           time.Now,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
		"fileStorage", instance.fileStorage,
		"xls", instance.xls,
	)
	Instance = instance
}

type impl struct {
	store         store.Provider
	employeeStore employeestore.Provider
	fileStorage   filestorage.Provider
	xls           xlsexport.Provider
	cutoff        Cutoff
	loc           *time.Location
	faceRequired  bool
	threshold     float64
	now           func() time.Time
}

func (i impl) CheckIn(ctx context.Context, userID string, request attendanceapimodels.CheckInRequest, photo *Photo) (item attendanceapimodels.AttendanceView, err error) {
	logger := log.WithField("user_id", userID)
	employee, err := i.employeeStore.GetByID(userID)
	if err != nil {
		return item, err
	}
	if employee == nil || !employee.CanLogin() {
		return item, apperrors.Forbidden("сотрудник не может отмечаться")
	}
	verified, distance, err := i.verifyFace(*employee, request.Encoding)
	if err != nil {
		logger.WithError(err).Info("отметка прихода отклонена проверкой лица")
		return item, err
	}

	now := i.now()
	today := helpers.Today(now, i.loc)
	var rec dbmodels.Attendance
	success, err := lock.WithDelay(ctx, "attendance:"+userID, checkInLockWait, func() error {
		existed, err := i.store.GetByEmployeeDate(userID, today)
		if err != nil {
			return err
		}
		if existed != nil {
			return apperrors.Conflict("отметка прихода за сегодня уже есть")
		}
		rec = dbmodels.Attendance{
			EmployeeID:   userID,
			Date:         today,
			CheckIn:      now,
			FaceVerified: verified,
			FaceDistance: distance,
			Latitude:     request.Latitude,
			Longitude:    request.Longitude,
			Notes:        strings.TrimSpace(request.Notes),
		}
		if photo != nil && len(photo.Data) != 0 {
			key := filestorage.CheckInPhotoKey(userID, today.Format(helpers.DateFormat), photo.FileName)
			err = i.fileStorage.Upload(ctx, key, photo.Data, photo.ContentType)
			if err != nil {
				return err
			}
			rec.PhotoKey = key
		}
		rec.ID, err = i.store.Create(rec)
		return err
	})
	if err != nil {
		return item, err
	}
	if !success {
		return item, apperrors.Conflict("отметка прихода уже выполняется")
	}
	rec.Employee = employee
	logger.
		WithField("rec_id", rec.ID).
		WithField("face_verified", verified).
		Info("отметка прихода")
	return i.convert(rec), nil
}

func (i impl) CheckOut(userID string, request attendanceapimodels.CheckOutRequest) (item attendanceapimodels.AttendanceView, err error) {
	logger := log.WithField("user_id", userID)
	now := i.now()
	rec, err := i.store.GetByEmployeeDate(userID, helpers.Today(now, i.loc))
	if err != nil {
		return item, err
	}
	if rec == nil {
		return item, apperrors.Validation("за сегодня нет отметки прихода")
	}
	if rec.CheckOut != nil {
		return item, apperrors.Conflict("уход за сегодня уже отмечен")
	}
	if now.Before(rec.CheckIn) {
		return item, apperrors.Validation("время ухода раньше времени прихода")
	}
	updMap := map[string]interface{}{
		"check_out": now,
	}
	notes := strings.TrimSpace(request.Notes)
	if notes != "" {
		if rec.Notes != "" {
			notes = rec.Notes + "\n" + notes
		}
		updMap["notes"] = notes
		rec.Notes = notes
	}
	err = i.store.Update(rec.ID, updMap)
	if err != nil {
		return item, err
	}
	rec.CheckOut = &now
	logger.WithField("rec_id", rec.ID).Info("отметка ухода")
	return i.convert(*rec), nil
}

func (i impl) List(filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (list []attendanceapimodels.AttendanceView, rowCount int64, err error) {
	err = checkFilter(filter)
	if err != nil {
		return nil, 0, err
	}
	rowCount, err = i.store.ListCount(filter, visibility)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(filter, visibility)
	if err != nil {
		return nil, 0, err
	}
	list = make([]attendanceapimodels.AttendanceView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, i.convert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Get(id string, visibility models.Visibility) (item attendanceapimodels.AttendanceView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return item, err
	}
	if rec == nil {
		return item, apperrors.NotFound("отметка не найдена")
	}
	var divisionID *string
	if rec.Employee != nil {
		divisionID = rec.Employee.DivisionID
	}
	if !visibility.Allows(rec.EmployeeID, divisionID) {
		return item, apperrors.Forbidden("нет доступа к отметке")
	}
	return i.convert(*rec), nil
}

func (i impl) Report(ctx context.Context, filter attendanceapimodels.AttendanceFilter, visibility models.Visibility) (*bytes.Buffer, error) {
	err := checkFilter(filter)
	if err != nil {
		return nil, err
	}
	if filter.DivisionID != "" && !visibility.AllowsDivision(filter.DivisionID) {
		return nil, apperrors.Forbidden("нет доступа к подразделению")
	}
	if !lock.Export.Acquire(ctx) {
		return nil, ctx.Err()
	}
	defer lock.Export.Release()
	recList, err := i.store.ListAll(filter, visibility)
	if err != nil {
		return nil, err
	}
	list := make([]attendanceapimodels.AttendanceView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, i.convert(rec))
	}
	return i.xls.ExportAttendance(list, i.loc)
}

// verifyFace сверяет вектор с профилем; без профиля отметка не подтверждена, если проверка не обязательна
func (i impl) verifyFace(employee dbmodels.Employee, encoding []float64) (verified bool, distance *float64, err error) {
	if !employee.HasFaceProfile() {
		if i.faceRequired {
			return false, nil, apperrors.Forbidden("профиль лица не загружен")
		}
		return false, nil, nil
	}
	if len(encoding) == 0 {
		if i.faceRequired {
			return false, nil, apperrors.ValidationFields(map[string]string{"encoding": "обязательное поле"})
		}
		return false, nil, nil
	}
	result, err := face.Compare(employee.FaceEncoding, encoding, i.threshold)
	if err != nil {
		return false, nil, err
	}
	if !result.Matched {
		return false, &result.Distance, apperrors.Forbidden("лицо не совпадает с профилем сотрудника")
	}
	return true, &result.Distance, nil
}

func (i impl) convert(rec dbmodels.Attendance) attendanceapimodels.AttendanceView {
	return attendanceapimodels.AttendanceConvert(rec, IsLate(rec.CheckIn, i.cutoff, i.loc))
}

func checkFilter(filter attendanceapimodels.AttendanceFilter) error {
	from, err := helpers.ParseOptionalDate(filter.DateFrom)
	if err != nil {
		return apperrors.ValidationFields(map[string]string{"date_from": err.Error()})
	}
	to, err := helpers.ParseOptionalDate(filter.DateTo)
	if err != nil {
		return apperrors.ValidationFields(map[string]string{"date_to": err.Error()})
	}
	if from != nil && to != nil && to.Before(*from) {
		return apperrors.ValidationFields(map[string]string{"date_to": "окончание периода раньше начала"})
	}
	return nil
}
