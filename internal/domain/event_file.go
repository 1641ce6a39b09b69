package domain

import (
	"context"
	"io"
	"time"
)

// EventFile is a design file attached to an event (merchandise artwork etc).
// The bytes live in external storage; this is the metadata row.
// swagger:model EventFile
type EventFile struct {
	ID             string    `json:"id"`
	EventRequestID string    `json:"event_request_id"`
	FileName       string    `json:"file_name"`
	FileURL        string    `json:"file_url"`
	FileSize       int64     `json:"file_size"`
	MimeType       string    `json:"mime_type"`
	CreatedAt      time.Time `json:"created_at"`
}

// FileUpload carries an incoming file body and its metadata.
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// EventFileRepository defines the interface for event file metadata storage.
type EventFileRepository interface {
	Create(ctx context.Context, f *EventFile) error
	ListByEventRequestID(ctx context.Context, eventRequestID string) ([]*EventFile, error)
}

// FileFetcher retrieves stored file bytes by URL (infrastructure port).
type FileFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// FileStore stores file bytes and returns a fetchable URL.
type FileStore interface {
	FileFetcher
	Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (url string, err error)
}
