package postgres

import (
	"context"
	"database/sql"

	"eventconnect/internal/domain"
)

type eventFileRepository struct {
	DB *sql.DB
}

func NewEventFileRepository(db *sql.DB) domain.EventFileRepository {
	return &eventFileRepository{DB: db}
}

func (r *eventFileRepository) Create(ctx context.Context, f *domain.EventFile) error {
	query := `
		INSERT INTO event_files (event_request_id, file_name, file_url, file_size, mime_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		f.EventRequestID, f.FileName, f.FileURL, f.FileSize, f.MimeType, f.CreatedAt,
	).Scan(&f.ID)
}

func (r *eventFileRepository) ListByEventRequestID(ctx context.Context, eventRequestID string) ([]*domain.EventFile, error) {
	query := `
		SELECT id, event_request_id, file_name, file_url, file_size, mime_type, created_at
		FROM event_files
		WHERE event_request_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]*domain.EventFile, 0)
	for rows.Next() {
		f := &domain.EventFile{}
		if err := rows.Scan(&f.ID, &f.EventRequestID, &f.FileName, &f.FileURL, &f.FileSize, &f.MimeType, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
