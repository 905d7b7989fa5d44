package initializers

import (
	"context"

	"employee-management-backend/config"
	s3client "employee-management-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	err := s3client.Connect(ctx, config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, config.Conf.S3.UseSSL != nil && *config.Conf.S3.UseSSL)
	if err != nil {
		panic(err.Error())
	}
	log.Info("S3 клиент успешно инициализирован")
}
