package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

var Client *minio.Client

// Connect клиент S3 совместимого хранилища с проверкой доступа
func Connect(ctx context.Context, endpoint, accessKeyID, secretAccessKey string, useSSL bool) error {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка инициализации клиента S3")
	}
	_, err = minioClient.ListBuckets(ctx)
	if err != nil {
		return errors.Wrap(err, "ошибка подключения к S3")
	}
	Client = minioClient
	return nil
}
