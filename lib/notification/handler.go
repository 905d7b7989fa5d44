package pushhandler

import (
	"fmt"
	"time"

	"employee-management-backend/db"
	employeestore "employee-management-backend/lib/employee/store"
	pushdatastore "employee-management-backend/lib/notification/data-store"
	"employee-management-backend/lib/smtp"
	initchecker "employee-management-backend/lib/utils/init-checker"
	connectionhub "employee-management-backend/lib/ws/hub/connection-hub"
	"employee-management-backend/models"
	dbmodels "employee-management-backend/models/db"
	wsmodels "employee-management-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	SendNotification(userID string, code models.NotificationCode, msg string)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		hub:           connectionhub.Instance,
		store:         pushdatastore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		mail:          smtp.Instance,
		now:           time.Now,
	}
	initchecker.CheckInit(
		"hub", instance.hub,
		"store", instance.store,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	hub           connectionhub.Provider
	store         pushdatastore.Provider
	employeeStore employeestore.Provider
	mail          smtp.Provider
	now           func() time.Time
}

// emailCodes события, которые дублируются на почту
var emailCodes = map[models.NotificationCode]bool{
	models.LeaveApprovedNotification: true,
	models.LeaveRejectedNotification: true,
}

// SendNotification отправляет событие в сокет; пользователю не в сети событие сохраняется до подключения
func (i impl) SendNotification(userID string, code models.NotificationCode, msg string) {
	if userID == "" {
		return
	}
	logger := log.
		WithField("user_id", userID).
		WithField("push_code", code)
	serverMsg := wsmodels.ServerMessage{
		ToUserID: userID,
		Time:     i.now().Format(wsmodels.TimeFormat),
		Code:     string(code),
		Title:    code.Title(),
		Msg:      msg,
	}
	if !i.hub.SendMessage(serverMsg) {
		err := i.store.Create(dbmodels.PushData{
			UserID: userID,
			Code:   code,
			Title:  serverMsg.Title,
			Msg:    msg,
		})
		if err != nil {
			logger.WithError(err).Error("ошибка сохранения уведомления")
		}
	}
	if emailCodes[code] {
		i.sendEmail(logger, userID, code, msg)
	}
}

func (i impl) sendEmail(logger *log.Entry, userID string, code models.NotificationCode, msg string) {
	if i.mail == nil || !i.mail.IsConfigured() {
		return
	}
	rec, err := i.employeeStore.GetByID(userID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения сотрудника для уведомления")
		return
	}
	if rec == nil || rec.Email == "" {
		return
	}
	body := fmt.Sprintf("%s, %s", rec.FirstName, msg)
	err = i.mail.SendEMail(rec.Email, code.Title(), body)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления на почту")
	}
}
