package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"asset-tools-backend/config"
)

// Provider хранит файлы компании в отдельном бакете S3
type Provider interface {
	EnsureCompanyBucket(ctx context.Context, companyCode string) error
	Upload(ctx context.Context, companyCode, objectName string, payload []byte, contentType string) (string, error)
	GetFile(ctx context.Context, companyCode, objectName string) ([]byte, error)
}

var Instance Provider

type impl struct {
	s3client *minio.Client
}

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

func (i impl) EnsureCompanyBucket(ctx context.Context, companyCode string) error {
	bucketName := i.getCompanyBucketName(companyCode)
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return errors.Wrapf(err, "ошибка проверки бакета %v", bucketName)
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return errors.Wrapf(err, "ошибка создания бакета %v", bucketName)
	}
	return nil
}

func (i impl) Upload(ctx context.Context, companyCode, objectName string, payload []byte, contentType string) (string, error) {
	err := i.EnsureCompanyBucket(ctx, companyCode)
	if err != nil {
		return "", err
	}
	bucketName := i.getCompanyBucketName(companyCode)
	_, err = i.s3client.PutObject(ctx, bucketName, objectName, bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "ошибка сохранения файла %v", objectName)
	}
	return fmt.Sprintf("%v/%v", bucketName, objectName), nil
}

func (i impl) GetFile(ctx context.Context, companyCode, objectName string) ([]byte, error) {
	bucketName := i.getCompanyBucketName(companyCode)
	object, err := i.s3client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка получения файла %v", objectName)
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения файла %v", objectName)
	}
	return body, nil
}

func (i impl) getCompanyBucketName(companyCode string) string {
	return fmt.Sprintf("%s-%s", config.Conf.S3.BucketPrefix, companyCode)
}
