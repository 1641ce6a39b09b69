package postgres

import (
	"context"
	"database/sql"

	"eventconnect/internal/domain"
)

type selectedPartnerRepository struct {
	DB *sql.DB
}

func NewSelectedPartnerRepository(db *sql.DB) domain.SelectedPartnerRepository {
	return &selectedPartnerRepository{DB: db}
}

func (r *selectedPartnerRepository) Create(ctx context.Context, sp *domain.SelectedPartner) error {
	query := `
		INSERT INTO event_selected_partners (event_request_id, partner_id, service_type, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		sp.EventRequestID, sp.PartnerID, sp.ServiceType, sp.CreatedAt,
	).Scan(&sp.ID)
}

func (r *selectedPartnerRepository) ListDetailsByEventRequestID(ctx context.Context, eventRequestID string) ([]*domain.SelectedPartnerDetail, error) {
	query := `
		SELECT sp.id, sp.event_request_id, sp.partner_id, sp.service_type, sp.created_at,
			p.id, p.user_id, p.company_name, p.service_type, p.city, p.contact_name, p.contact_email, p.description, p.created_at, p.updated_at
		FROM event_selected_partners sp
		JOIN partners p ON p.id = sp.partner_id
		WHERE sp.event_request_id = $1
		ORDER BY sp.created_at ASC, sp.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*domain.SelectedPartnerDetail, 0)
	for rows.Next() {
		d := &domain.SelectedPartnerDetail{Partner: &domain.Partner{}}
		var descNull sql.NullString
		err := rows.Scan(
			&d.ID, &d.EventRequestID, &d.PartnerID, &d.ServiceType, &d.CreatedAt,
			&d.Partner.ID, &d.Partner.UserID, &d.Partner.CompanyName, &d.Partner.ServiceType, &d.Partner.City,
			&d.Partner.ContactName, &d.Partner.ContactEmail, &descNull, &d.Partner.CreatedAt, &d.Partner.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if descNull.Valid {
			d.Partner.Description = &descNull.String
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
