package db

import (
	dbmodels "employee-management-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Division{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Division")
	}
	if err := DB.AutoMigrate(&dbmodels.Position{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Position")
	}
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Attendance{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Attendance")
	}
	if err := DB.AutoMigrate(&dbmodels.Leave{}, &dbmodels.LeaveHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Leave")
	}
	if err := DB.AutoMigrate(&dbmodels.PushData{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PushData")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
