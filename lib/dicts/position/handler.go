package positionprovider

import (
	"strings"

	"employee-management-backend/db"
	"employee-management-backend/lib/dicts/position/store"
	employeestore "employee-management-backend/lib/employee/store"
	apperrors "employee-management-backend/lib/utils/app-errors"
	initchecker "employee-management-backend/lib/utils/init-checker"
	"employee-management-backend/lib/utils/validators"
	dictapimodels "employee-management-backend/models/api/dict"
	dbmodels "employee-management-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(request dictapimodels.PositionData) (id string, err error)
	Update(id string, request dictapimodels.PositionData) error
	Patch(id string, request dictapimodels.PositionPatch) error
	Get(id string) (item dictapimodels.PositionView, err error)
	List(filter dictapimodels.PositionFilter) (list []dictapimodels.PositionView, rowCount int64, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         store.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
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
}

func (i impl) Create(request dictapimodels.PositionData) (id string, err error) {
	parentID := emptyToNil(request.ParentID)
	err = i.checkParent("", parentID, request.Level)
	if err != nil {
		return "", err
	}
	rec := dbmodels.Position{
		Code:        validators.NormalizeCode(request.Code),
		Name:        strings.TrimSpace(request.Name),
		Level:       request.Level,
		ParentID:    parentID,
		Description: request.Description,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.
		WithField("position_code", rec.Code).
		WithField("rec_id", id).
		Info("создана должность")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.PositionData) error {
	parentID := request.ParentID
	if parentID == nil {
		empty := ""
		parentID = &empty
	}
	return i.Patch(id, dictapimodels.PositionPatch{
		Code:        &request.Code,
		Name:        &request.Name,
		Level:       &request.Level,
		ParentID:    parentID,
		Description: &request.Description,
	})
}

func (i impl) Patch(id string, request dictapimodels.PositionPatch) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("должность не найдена")
	}
	level := rec.Level
	if request.Level != nil {
		level = *request.Level
	}
	parentID := rec.ParentID
	if request.ParentID != nil {
		parentID = emptyToNil(request.ParentID)
	}
	if request.Level != nil || request.ParentID != nil {
		err = i.checkParent(id, parentID, level)
		if err != nil {
			return err
		}
		if request.Level != nil {
			err = i.checkChildren(id, level)
			if err != nil {
				return err
			}
		}
	}
	updMap := map[string]interface{}{}
	if request.Code != nil {
		updMap["code"] = validators.NormalizeCode(*request.Code)
	}
	if request.Name != nil {
		updMap["name"] = strings.TrimSpace(*request.Name)
	}
	if request.Level != nil {
		updMap["level"] = level
	}
	if request.ParentID != nil {
		if parentID == nil {
			updMap["parent_id"] = nil
		} else {
			updMap["parent_id"] = *parentID
		}
	}
	if request.Description != nil {
		updMap["description"] = *request.Description
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлена должность")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.PositionView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.PositionView{}, err
	}
	if rec == nil {
		return dictapimodels.PositionView{}, apperrors.NotFound("должность не найдена")
	}
	return dictapimodels.PositionConvert(*rec), nil
}

func (i impl) List(filter dictapimodels.PositionFilter) (list []dictapimodels.PositionView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]dictapimodels.PositionView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.PositionConvert(rec))
	}
	return list, rowCount, nil
}

// Delete должность удаляется только если на ней нет сотрудников и подчиненных должностей
func (i impl) Delete(id string) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("должность не найдена")
	}
	count, err := i.employeeStore.CountByPosition(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("должность назначена сотрудникам")
	}
	children, err := i.store.Children(id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return apperrors.Conflict("на должность ссылаются подчиненные должности")
	}
	err = i.store.Delete(id)
	if err != nil {
		return err
	}
	logger.Info("удалена должность")
	return nil
}

// checkParent уровень родителя строго ниже уровня должности
func (i impl) checkParent(selfID string, parentID *string, level int) error {
	if parentID == nil {
		return nil
	}
	if *parentID == selfID {
		return apperrors.ValidationFields(map[string]string{"parent_id": "должность не может быть родителем самой себя"})
	}
	parent, err := i.store.GetByID(*parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return apperrors.ValidationFields(map[string]string{"parent_id": "родительская должность не найдена"})
	}
	if parent.Level >= level {
		return apperrors.ValidationFields(map[string]string{"parent_id": "уровень родительской должности должен быть ниже уровня должности"})
	}
	return nil
}

// checkChildren при смене уровня подчиненные должности должны остаться выше
func (i impl) checkChildren(id string, level int) error {
	children, err := i.store.Children(id)
	if err != nil {
		return err
	}
	for _, child := range children {
		if child.Level <= level {
			return apperrors.ValidationFields(map[string]string{"level": "уровень должен быть ниже уровня подчиненных должностей"})
		}
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
