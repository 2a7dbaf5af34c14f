package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"caseFilesCPT/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Storage interface {
	SignURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

type MinIOClient struct {
	client *minio.Client
	config *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к MinIO: %w", err)
	}

	return &MinIOClient{
		client: client,
		config: cfg,
	}, nil
}

// SignURL выдает временную подписанную ссылку на приватный объект
func (m *MinIOClient) SignURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = m.config.MinIO.URLExpiry
	}

	reqParams := make(url.Values)

	signedURL, err := m.client.PresignedGetObject(ctx, m.config.MinIO.BucketName, objectName, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации подписанной ссылки: %w", err)
	}

	return signedURL.String(), nil
}
