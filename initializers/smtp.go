package initializers

import (
	"employee-management-backend/config"
	"employee-management-backend/lib/smtp"
)

func InitSmtp() {
	err := smtp.Connect(config.Conf.Smtp.User, config.Conf.Smtp.Password,
		config.Conf.Smtp.Host, config.Conf.Smtp.Port, config.Conf.Smtp.TLSEnabled != nil && *config.Conf.Smtp.TLSEnabled)
	if err != nil {
		panic(err.Error())
	}
}
