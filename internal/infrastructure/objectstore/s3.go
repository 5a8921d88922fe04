package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/scooter-map/internal/config"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	s3      *s3.Client
	bucket  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewS3Client создает клиент S3-совместимого хранилища (только list + get).
// Повторы отключены: каждый вызов - одна попытка с таймаутом.
func NewS3Client(cfg *config.ObjectStoreConfig, logger *zap.Logger) repository.ObjectStore {
	opts := s3.Options{
		Region:           cfg.Region,
		UsePathStyle:     cfg.UsePathStyle,
		RetryMaxAttempts: 1,
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}

	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}

	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return &client{
		s3:      s3.New(opts),
		bucket:  cfg.Bucket,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// ListKeys возвращает ключи объектов с заданным префиксом
func (c *client) ListKeys(ctx context.Context, prefix string, maxKeys int32) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("Listing objects",
		zap.String("bucket", c.bucket),
		zap.String("prefix", prefix),
		zap.Int32("max_keys", maxKeys))

	out, err := c.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(maxKeys),
	})
	if err != nil {
		c.logger.Error("Failed to list objects",
			zap.String("bucket", c.bucket),
			zap.String("prefix", prefix),
			zap.Error(err))
		return nil, fmt.Errorf("%w: list %s/%s: %s", domain.ErrObjectStoreUnavailable, c.bucket, prefix, describe(err))
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		if key := aws.ToString(obj.Key); key != "" {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

// GetObject возвращает тело объекта целиком
func (c *client) GetObject(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %s", key, describe(err))
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}

	return body, nil
}

// describe достает код ошибки S3 (NoSuchBucket, AccessDenied, ...), если он есть
func describe(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err.Error()
}
