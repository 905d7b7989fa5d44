package models

type NotificationCode string

const (
	LeaveCreatedNotification  NotificationCode = "LEAVE_CREATED"
	LeaveApprovedNotification NotificationCode = "LEAVE_APPROVED"
	LeaveRejectedNotification NotificationCode = "LEAVE_REJECTED"
)

var notificationTitle = map[NotificationCode]string{
	LeaveCreatedNotification:  "Новая заявка на отпуск",
	LeaveApprovedNotification: "Заявка на отпуск согласована",
	LeaveRejectedNotification: "Заявка на отпуск отклонена",
}

func (c NotificationCode) Title() string {
	if title, ok := notificationTitle[c]; ok {
		return title
	}
	return string(c)
}
