package db

import (
	"employee-management-backend/config"
	employeestore "employee-management-backend/lib/employee/store"
	authutils "employee-management-backend/lib/utils/auth-utils"
	"employee-management-backend/models"
	dbmodels "employee-management-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addAdmin()
}

// addAdmin первый HR администратор, без него в систему некому войти
func addAdmin() {
	if config.Conf.Admin.Email == "" {
		log.Warn("администратор не добавлен, отсутвует настройка ADMIN_EMAIL")
		return
	}
	store := employeestore.NewInstance(DB)
	existedRec, err := store.GetByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if existedRec != nil {
		return
	}
	hash, err := authutils.HashPassword(config.Conf.Admin.Password)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	employeeID, err := store.NextEmployeeID()
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	rec := dbmodels.Employee{
		EmployeeID:     employeeID,
		Email:          config.Conf.Admin.Email,
		Password:       hash,
		FirstName:      config.Conf.Admin.FirstName,
		LastName:       config.Conf.Admin.LastName,
		EmploymentType: models.FullTimeEmployment,
		Status:         models.EmployeeActiveStatus,
		Role:           models.SuperAdminRole,
		IsActive:       true,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	log.WithField("email", rec.Email).Info("добавлен администратор")
}
