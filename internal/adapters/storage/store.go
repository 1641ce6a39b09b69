package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"eventconnect/internal/domain"
)

// StoreConfig holds configuration for creating a file store.
type StoreConfig struct {
	Provider string // "s3" or "noop"
	S3       S3Config
}

// NewFileStore creates a file store from config. Provider "s3" stores bytes
// in the configured bucket; "noop" or unknown discards uploads and fetches
// over plain HTTP, for development without AWS credentials.
func NewFileStore(ctx context.Context, config StoreConfig, logger *slog.Logger) (domain.FileStore, error) {
	switch config.Provider {
	case "s3":
		if config.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 file store requires a bucket")
		}
		return NewS3Store(ctx, config.S3, logger)
	case "noop":
		return &noopStore{logger: logger}, nil
	default:
		logger.Warn("unknown storage provider, using noop", "provider", config.Provider)
		return &noopStore{logger: logger}, nil
	}
}

type noopStore struct {
	logger *slog.Logger
}

func (n *noopStore) Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://storage.invalid/%s/%s", uuid.NewString(), fileName)
	n.logger.Info("file would be stored (noop)", "file", fileName, "size", size, "url", url)
	return url, nil
}

func (n *noopStore) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return NewHTTPFetcher(http.DefaultClient).FetchBytes(ctx, url)
}
