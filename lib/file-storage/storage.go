package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"employee-management-backend/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

var Instance Provider

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func NewHandler(ctx context.Context, s3client *minio.Client) error {
	i := &impl{
		s3client:   s3client,
		bucketName: config.Conf.S3.BucketName,
	}
	err := i.makeBucket(ctx)
	if err != nil {
		return err
	}
	Instance = i
	return nil
}

func (i impl) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	log.WithField("file_key", key).Debug("файл загружен в хранилище")
	return nil
}

func (i impl) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return data, nil
}

func (i impl) Delete(ctx context.Context, key string) error {
	err := i.s3client.RemoveObject(ctx, i.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "ошибка удаления файла из хранилища")
	}
	return nil
}

func (i impl) makeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки бакета")
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return errors.Wrap(err, "ошибка создания бакета")
	}
	return nil
}

type FaceSide string

const (
	FaceFront FaceSide = "front"
	FaceLeft  FaceSide = "left"
	FaceRight FaceSide = "right"
)

var FaceSides = []FaceSide{FaceFront, FaceLeft, FaceRight}

func FacePhotoKey(employeeID string, side FaceSide, fileName string) string {
	return fmt.Sprintf("faces/%s/%s-%s%s", employeeID, side, uuid.NewString(), fileExt(fileName))
}

func CheckInPhotoKey(employeeID, date, fileName string) string {
	return fmt.Sprintf("attendance/%s/%s-%s%s", employeeID, date, uuid.NewString(), fileExt(fileName))
}

func fileExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	}
	return ".jpg"
}
