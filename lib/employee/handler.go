package employeeprovider

import (
	"context"
	"strings"
	"time"

	"employee-management-backend/config"
	"employee-management-backend/db"
	divisionstore "employee-management-backend/lib/dicts/division/store"
	positionstore "employee-management-backend/lib/dicts/position/store"
	"employee-management-backend/lib/employee/store"
	filestorage "employee-management-backend/lib/file-storage"
	apperrors "employee-management-backend/lib/utils/app-errors"
	authutils "employee-management-backend/lib/utils/auth-utils"
	"employee-management-backend/lib/utils/helpers"
	initchecker "employee-management-backend/lib/utils/init-checker"
	"employee-management-backend/lib/utils/validators"
	"employee-management-backend/models"
	employeeapimodels "employee-management-backend/models/api/employee"
	dbmodels "employee-management-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(userID string, request employeeapimodels.EmployeeData) (id string, err error)
	Update(id string, request employeeapimodels.EmployeeData) error
	Patch(id string, request employeeapimodels.EmployeePatch) error
	Get(id string, visibility models.Visibility) (item employeeapimodels.EmployeeView, err error)
	List(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) (list []employeeapimodels.EmployeeView, rowCount int64, err error)
	Delete(userID, id string) error
	Restore(id string) error
	EnrollFace(ctx context.Context, id string, photos []FacePhoto, encoding []float64) (result employeeapimodels.FaceEnrollResult, err error)
	Visibility(userID string, role models.UserRole) (models.Visibility, error)
}

// FacePhoto фото профиля лица из multipart формы
type FacePhoto struct {
	Side        filestorage.FaceSide
	FileName    string
	ContentType string
	Data        []byte
}

type divisionReader interface {
	GetByID(id string) (*dbmodels.Division, error)
	ManagedBy(managerID string) ([]string, error)
}

type positionReader interface {
	GetByID(id string) (*dbmodels.Position, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         store.NewInstance(db.DB),
		divisionStore: divisionstore.NewInstance(db.DB),
		positionStore: positionstore.NewInstance(db.DB),
		fileStorage:   filestorage.Instance,
		now:           time.Now,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"divisionStore", instance.divisionStore,
		"positionStore", instance.positionStore,
		"fileStorage", instance.fileStorage,
	)
	Instance = instance
}

type impl struct {
	store         store.Provider
	divisionStore divisionReader
	positionStore positionReader
	fileStorage   filestorage.Provider
	now           func() time.Time
}

func (i impl) Create(userID string, request employeeapimodels.EmployeeData) (id string, err error) {
	logger := log.WithField("user_id", userID)
	if request.Password == "" {
		return "", apperrors.ValidationFields(map[string]string{"password": "обязательное поле"})
	}
	email := validators.NormalizeEmail(request.Email)
	err = validators.CheckCompanyDomain(email, config.Conf.Auth.CompanyEmailDomain)
	if err != nil {
		return "", err
	}
	err = i.checkDivision(request.DivisionID)
	if err != nil {
		return "", err
	}
	err = i.checkPosition(request.PositionID)
	if err != nil {
		return "", err
	}
	hireDate, err := parseHireDate(request.HireDate)
	if err != nil {
		return "", err
	}
	code := validators.NormalizeCode(request.EmployeeID)
	if code == "" {
		code, err = i.store.NextEmployeeID()
		if err != nil {
			return "", err
		}
	}
	passwordHash, err := authutils.HashPassword(request.Password)
	if err != nil {
		return "", err
	}
	rec := dbmodels.Employee{
		EmployeeID:     code,
		Email:          email,
		Password:       passwordHash,
		Phone:          request.Phone,
		FirstName:      strings.TrimSpace(request.FirstName),
		LastName:       strings.TrimSpace(request.LastName),
		DivisionID:     emptyToNil(request.DivisionID),
		PositionID:     emptyToNil(request.PositionID),
		HireDate:       hireDate,
		EmploymentType: request.EmploymentType,
		Status:         request.Status,
		Role:           request.Role,
		IsActive:       request.IsActive == nil || *request.IsActive,
	}
	if rec.EmploymentType == "" {
		rec.EmploymentType = models.FullTimeEmployment
	}
	if rec.Status == "" {
		rec.Status = models.EmployeeActiveStatus
	}
	if rec.Role == "" {
		rec.Role = models.EmployeeRole
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("employee_id", code).
		WithField("rec_id", id).
		Info("создан сотрудник")
	return id, nil
}

func (i impl) Update(id string, request employeeapimodels.EmployeeData) error {
	err := i.Patch(id, request.FullPatch())
	if err != nil {
		return err
	}
	if request.Password != "" {
		passwordHash, err := authutils.HashPassword(request.Password)
		if err != nil {
			return err
		}
		return i.store.Update(id, map[string]interface{}{"password": passwordHash})
	}
	return nil
}

func (i impl) Patch(id string, request employeeapimodels.EmployeePatch) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("сотрудник не найден")
	}
	updMap := map[string]interface{}{}
	if request.Email != nil {
		email := validators.NormalizeEmail(*request.Email)
		if email != rec.Email {
			err = validators.CheckCompanyDomain(email, config.Conf.Auth.CompanyEmailDomain)
			if err != nil {
				return err
			}
			updMap["email"] = email
		}
	}
	if request.Phone != nil {
		updMap["phone"] = *request.Phone
	}
	if request.FirstName != nil {
		updMap["first_name"] = strings.TrimSpace(*request.FirstName)
	}
	if request.LastName != nil {
		updMap["last_name"] = strings.TrimSpace(*request.LastName)
	}
	if request.DivisionID != nil {
		err = i.checkDivision(request.DivisionID)
		if err != nil {
			return err
		}
		updMap["division_id"] = nullable(request.DivisionID)
	}
	if request.PositionID != nil {
		err = i.checkPosition(request.PositionID)
		if err != nil {
			return err
		}
		updMap["position_id"] = nullable(request.PositionID)
	}
	if request.HireDate != nil {
		hireDate, err := parseHireDate(*request.HireDate)
		if err != nil {
			return err
		}
		updMap["hire_date"] = hireDate
	}
	if request.EmploymentType != nil {
		updMap["employment_type"] = *request.EmploymentType
	}
	if request.Status != nil {
		updMap["status"] = *request.Status
	}
	if request.Role != nil {
		updMap["role"] = *request.Role
	}
	if request.IsActive != nil {
		updMap["is_active"] = *request.IsActive
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлен сотрудник")
	return nil
}

func (i impl) Get(id string, visibility models.Visibility) (item employeeapimodels.EmployeeView, err error) {
	rec, err := i.getVisible(id, visibility)
	if err != nil {
		return employeeapimodels.EmployeeView{}, err
	}
	return i.convert(*rec), nil
}

func (i impl) List(filter employeeapimodels.EmployeeFilter, visibility models.Visibility) (list []employeeapimodels.EmployeeView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter, visibility)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(filter, visibility)
	if err != nil {
		return nil, 0, err
	}
	list = make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, i.convert(rec))
	}
	return list, rowCount, nil
}

// Delete мягкое удаление, запись остается для истории отметок и заявок
func (i impl) Delete(userID, id string) error {
	logger := log.
		WithField("user_id", userID).
		WithField("rec_id", id)
	if userID == id {
		return apperrors.Validation("нельзя удалить свою учетную запись")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil || rec.IsDeleted() {
		return apperrors.NotFound("сотрудник не найден")
	}
	updMap := map[string]interface{}{
		"is_active":  false,
		"deleted_at": i.now(),
		"deleted_by": userID,
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	logger.Info("сотрудник удален")
	return nil
}

func (i impl) Restore(id string) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("сотрудник не найден")
	}
	if !rec.IsDeleted() {
		return apperrors.Validation("сотрудник не удален")
	}
	updMap := map[string]interface{}{
		"is_active":  true,
		"deleted_at": nil,
		"deleted_by": "",
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	logger.Info("сотрудник восстановлен")
	return nil
}

func (i impl) EnrollFace(ctx context.Context, id string, photos []FacePhoto, encoding []float64) (result employeeapimodels.FaceEnrollResult, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return result, err
	}
	if rec == nil || rec.IsDeleted() {
		return result, apperrors.NotFound("сотрудник не найден")
	}
	if len(encoding) == 0 {
		return result, apperrors.ValidationFields(map[string]string{"encoding": "обязательное поле"})
	}
	bySide := map[filestorage.FaceSide]FacePhoto{}
	for _, photo := range photos {
		bySide[photo.Side] = photo
	}
	fields := map[string]string{}
	for _, side := range filestorage.FaceSides {
		photo, ok := bySide[side]
		if !ok || len(photo.Data) == 0 {
			fields[string(side)] = "обязательное фото"
		}
	}
	if len(fields) != 0 {
		return result, apperrors.ValidationFields(fields)
	}

	keys := map[filestorage.FaceSide]string{}
	for _, side := range filestorage.FaceSides {
		photo := bySide[side]
		key := filestorage.FacePhotoKey(rec.ID, side, photo.FileName)
		err = i.fileStorage.Upload(ctx, key, photo.Data, photo.ContentType)
		if err != nil {
			return result, err
		}
		keys[side] = key
	}
	updMap := map[string]interface{}{
		"face_photo_front": keys[filestorage.FaceFront],
		"face_photo_left":  keys[filestorage.FaceLeft],
		"face_photo_right": keys[filestorage.FaceRight],
		"face_encoding":    dbmodels.FaceEncoding(encoding),
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return result, err
	}
	i.removeOldPhotos(ctx, logger, *rec)
	logger.WithField("encoding_size", len(encoding)).Info("сохранен профиль лица")
	return employeeapimodels.FaceEnrollResult{
		FrontKey: keys[filestorage.FaceFront],
		LeftKey:  keys[filestorage.FaceLeft],
		RightKey: keys[filestorage.FaceRight],
		Size:     len(encoding),
	}, nil
}

func (i impl) Visibility(userID string, role models.UserRole) (models.Visibility, error) {
	if !role.IsManager() {
		return models.NewVisibility(userID, role, nil), nil
	}
	ids, err := i.divisionStore.ManagedBy(userID)
	if err != nil {
		return models.Visibility{}, err
	}
	return models.NewVisibility(userID, role, ids), nil
}

func (i impl) removeOldPhotos(ctx context.Context, logger *log.Entry, rec dbmodels.Employee) {
	for _, key := range []string{rec.FacePhotoFront, rec.FacePhotoLeft, rec.FacePhotoRight} {
		if key == "" {
			continue
		}
		err := i.fileStorage.Delete(ctx, key)
		if err != nil {
			logger.WithError(err).Warn("ошибка удаления старого фото лица")
		}
	}
}

func (i impl) getVisible(id string, visibility models.Visibility) (*dbmodels.Employee, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil || (rec.IsDeleted() && !visibility.All) {
		return nil, apperrors.NotFound("сотрудник не найден")
	}
	if !visibility.Allows(rec.ID, rec.DivisionID) {
		return nil, apperrors.Forbidden("нет доступа к сотруднику")
	}
	return rec, nil
}

func (i impl) convert(rec dbmodels.Employee) employeeapimodels.EmployeeView {
	return employeeapimodels.EmployeeConvert(rec, i.now().In(config.Location()), config.Conf.Leave.MinTenureMonths)
}

func (i impl) checkDivision(divisionID *string) error {
	if divisionID == nil || *divisionID == "" {
		return nil
	}
	rec, err := i.divisionStore.GetByID(*divisionID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.ValidationFields(map[string]string{"division_id": "подразделение не найдено"})
	}
	return nil
}

func (i impl) checkPosition(positionID *string) error {
	if positionID == nil || *positionID == "" {
		return nil
	}
	rec, err := i.positionStore.GetByID(*positionID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.ValidationFields(map[string]string{"position_id": "должность не найдена"})
	}
	return nil
}

func parseHireDate(value string) (*time.Time, error) {
	hireDate, err := helpers.ParseOptionalDate(value)
	if err != nil {
		return nil, apperrors.ValidationFields(map[string]string{"hire_date": err.Error()})
	}
	return hireDate, nil
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
