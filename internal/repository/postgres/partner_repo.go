package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventconnect/internal/domain"
)

type partnerRepository struct {
	DB *sql.DB
}

func NewPartnerRepository(db *sql.DB) domain.PartnerRepository {
	return &partnerRepository{DB: db}
}

func (r *partnerRepository) Create(ctx context.Context, p *domain.Partner) error {
	query := `
		INSERT INTO partners (user_id, company_name, service_type, city, contact_name, contact_email, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.UserID, p.CompanyName, p.ServiceType, p.City, p.ContactName, p.ContactEmail, p.Description, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *partnerRepository) GetByID(ctx context.Context, id string) (*domain.Partner, error) {
	query := `
		SELECT id, user_id, company_name, service_type, city, contact_name, contact_email, description, created_at, updated_at
		FROM partners
		WHERE id = $1
	`
	return scanPartnerRow(r.DB.QueryRowContext(ctx, query, id))
}

func (r *partnerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Partner, error) {
	query := `
		SELECT id, user_id, company_name, service_type, city, contact_name, contact_email, description, created_at, updated_at
		FROM partners
		WHERE user_id = $1
	`
	return scanPartnerRow(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *partnerRepository) List(ctx context.Context, filter domain.PartnerFilter, params domain.PaginationParams) ([]*domain.Partner, int, error) {
	whereClauses := []string{}
	args := []interface{}{}
	n := 1
	if filter.ServiceType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("service_type = $%d", n))
		args = append(args, filter.ServiceType)
		n++
	}
	if filter.City != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(city) = LOWER($%d)", n))
		args = append(args, strings.TrimSpace(filter.City))
		n++
	}
	where := ""
	if len(whereClauses) > 0 {
		where = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM partners %s`, where)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, company_name, service_type, city, contact_name, contact_email, description, created_at, updated_at
		FROM partners
		%s
		ORDER BY company_name ASC
		LIMIT $%d OFFSET $%d
	`, where, n, n+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	partners := make([]*domain.Partner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, 0, err
		}
		partners = append(partners, p)
	}
	return partners, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPartner(row rowScanner) (*domain.Partner, error) {
	p := &domain.Partner{}
	var descNull sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.ServiceType, &p.City, &p.ContactName, &p.ContactEmail, &descNull, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		p.Description = &descNull.String
	}
	return p, nil
}

func scanPartnerRow(row *sql.Row) (*domain.Partner, error) {
	p, err := scanPartner(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
