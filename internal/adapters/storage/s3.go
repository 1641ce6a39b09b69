package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"eventconnect/internal/domain"
)

// Prefix for event design-file objects.
const folderEventFiles = "event-files"

// S3Config holds S3 client configuration for the event file store.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

type s3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	fetcher  *httpFetcher
	cfg      S3Config
	logger   *slog.Logger
}

// NewS3Store creates a FileStore backed by S3. Credentials fall back to the
// default chain when not set explicitly.
func NewS3Store(ctx context.Context, cfg S3Config, logger *slog.Logger) (domain.FileStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	} else {
		logger.Warn("s3 store using default credential chain")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &s3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		fetcher:  &httpFetcher{client: http.DefaultClient},
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Upload stores the file under a random key and returns its object URL.
func (s *s3Store) Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (string, error) {
	key := path.Join(folderEventFiles, uuid.NewString()+path.Ext(fileName))
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", fileName, err)
	}
	return s.objectURL(key), nil
}

// FetchBytes reads stored file bytes. URLs inside the configured bucket are
// read through the S3 API; anything else is fetched over plain HTTP, since
// file rows may point at externally hosted objects.
func (s *s3Store) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	if key, ok := s.objectKey(url); ok {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("get object %s: %w", key, err)
		}
		defer out.Body.Close()
		data, err := io.ReadAll(out.Body)
		if err != nil {
			return nil, fmt.Errorf("read object %s: %w", key, err)
		}
		return data, nil
	}
	return s.fetcher.FetchBytes(ctx, url)
}

func (s *s3Store) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func (s *s3Store) objectKey(url string) (string, bool) {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.cfg.Bucket, s.cfg.Region)
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix), true
	}
	return "", false
}
