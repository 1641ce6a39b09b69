package postgres

import (
	"context"
	"database/sql"

	"eventconnect/internal/domain"
)

type inquiryRepository struct {
	DB *sql.DB
}

func NewInquiryRepository(db *sql.DB) domain.InquiryRepository {
	return &inquiryRepository{DB: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inq *domain.Inquiry) error {
	query := `
		INSERT INTO event_inquiries (event_request_id, partner_id, email_subject, email_content, status, message_id, has_attachment, sent_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		inq.EventRequestID, inq.PartnerID, inq.EmailSubject, inq.EmailContent, inq.Status,
		inq.MessageID, inq.HasAttachment, inq.SentAt, inq.CreatedAt, inq.UpdatedAt,
	).Scan(&inq.ID)
}

func (r *inquiryRepository) ListByEventRequestID(ctx context.Context, eventRequestID string) ([]*domain.InquiryDetail, error) {
	query := `
		SELECT i.id, i.event_request_id, i.partner_id, i.email_subject, i.email_content, i.status, i.message_id, i.has_attachment, i.sent_at, i.created_at, i.updated_at,
			p.company_name, p.contact_name, p.contact_email
		FROM event_inquiries i
		JOIN partners p ON p.id = i.partner_id
		WHERE i.event_request_id = $1
		ORDER BY i.sent_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inquiries := make([]*domain.InquiryDetail, 0)
	for rows.Next() {
		d := &domain.InquiryDetail{}
		var msgIDNull sql.NullString
		err := rows.Scan(
			&d.ID, &d.EventRequestID, &d.PartnerID, &d.EmailSubject, &d.EmailContent, &d.Status,
			&msgIDNull, &d.HasAttachment, &d.SentAt, &d.CreatedAt, &d.UpdatedAt,
			&d.CompanyName, &d.ContactName, &d.ContactEmail,
		)
		if err != nil {
			return nil, err
		}
		if msgIDNull.Valid {
			d.MessageID = &msgIDNull.String
		}
		inquiries = append(inquiries, d)
	}
	return inquiries, rows.Err()
}

func (r *inquiryRepository) ListByPartnerID(ctx context.Context, partnerID string) ([]*domain.InquiryWithEvent, error) {
	query := `
		SELECT i.id, i.event_request_id, i.partner_id, i.email_subject, i.email_content, i.status, i.message_id, i.has_attachment, i.sent_at, i.created_at, i.updated_at,
			e.event_name, e.event_type, e.event_date, e.city, e.attendees
		FROM event_inquiries i
		JOIN event_requests e ON e.id = i.event_request_id
		WHERE i.partner_id = $1
		ORDER BY i.sent_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inquiries := make([]*domain.InquiryWithEvent, 0)
	for rows.Next() {
		d := &domain.InquiryWithEvent{}
		var msgIDNull sql.NullString
		err := rows.Scan(
			&d.ID, &d.EventRequestID, &d.PartnerID, &d.EmailSubject, &d.EmailContent, &d.Status,
			&msgIDNull, &d.HasAttachment, &d.SentAt, &d.CreatedAt, &d.UpdatedAt,
			&d.EventName, &d.EventType, &d.EventDate, &d.EventCity, &d.Attendees,
		)
		if err != nil {
			return nil, err
		}
		if msgIDNull.Valid {
			d.MessageID = &msgIDNull.String
		}
		inquiries = append(inquiries, d)
	}
	return inquiries, rows.Err()
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, inquiryID, partnerID, status string) error {
	query := `
		UPDATE event_inquiries
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND partner_id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, status, inquiryID, partnerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
