package dbmodels

import "employee-management-backend/models"

// PushData событие для пользователя не в сети, отправляется при подключении
type PushData struct {
	BaseModel
	UserID string                  `gorm:"type:varchar(36);index:idx_user"`
	Code   models.NotificationCode `gorm:"type:varchar(50)"`
	Title  string
	Msg    string
}
