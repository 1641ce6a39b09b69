package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventconnect/internal/domain"
)

type eventRequestRepository struct {
	DB *sql.DB
}

func NewEventRequestRepository(db *sql.DB) domain.EventRequestRepository {
	return &eventRequestRepository{DB: db}
}

const eventRequestColumns = `id, organizer_id, event_name, event_type, attendees, event_date, budget, city,
	needs_catering, needs_merchandise, needs_sponsors, additional_notes, status, created_at, updated_at`

func (r *eventRequestRepository) Create(ctx context.Context, e *domain.EventRequest) error {
	query := `
		INSERT INTO event_requests (organizer_id, event_name, event_type, attendees, event_date, budget, city,
			needs_catering, needs_merchandise, needs_sponsors, additional_notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.OrganizerID, e.EventName, e.EventType, e.Attendees, e.EventDate, e.Budget, e.City,
		e.NeedsCatering, e.NeedsMerchandise, e.NeedsSponsors, e.AdditionalNotes, e.Status, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRequestRepository) GetByID(ctx context.Context, id string) (*domain.EventRequest, error) {
	query := `
		SELECT ` + eventRequestColumns + `
		FROM event_requests
		WHERE id = $1
	`
	e, err := scanEventRequest(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRequestRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.EventRequest, error) {
	query := `
		SELECT ` + eventRequestColumns + `
		FROM event_requests
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.EventRequest, 0)
	for rows.Next() {
		e, err := scanEventRequest(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRequestRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE event_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEventRequest(row rowScanner) (*domain.EventRequest, error) {
	e := &domain.EventRequest{}
	var budgetNull sql.NullFloat64
	var notesNull sql.NullString
	err := row.Scan(
		&e.ID, &e.OrganizerID, &e.EventName, &e.EventType, &e.Attendees, &e.EventDate, &budgetNull, &e.City,
		&e.NeedsCatering, &e.NeedsMerchandise, &e.NeedsSponsors, &notesNull, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if budgetNull.Valid {
		e.Budget = &budgetNull.Float64
	}
	if notesNull.Valid {
		e.AdditionalNotes = &notesNull.String
	}
	return e, nil
}
