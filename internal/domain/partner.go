package domain

import (
	"context"
	"time"
)

// Service categories a partner can offer.
const (
	ServiceTypeVenue       = "venue"
	ServiceTypeCatering    = "catering"
	ServiceTypeMerchandise = "merchandise"
	ServiceTypeSponsor     = "sponsor"
	ServiceTypeOther       = "other"
)

// ValidServiceType reports whether s is one of the known service categories.
func ValidServiceType(s string) bool {
	switch s {
	case ServiceTypeVenue, ServiceTypeCatering, ServiceTypeMerchandise, ServiceTypeSponsor, ServiceTypeOther:
		return true
	}
	return false
}

// Partner represents a service provider contacted by organizers.
// swagger:model Partner
type Partner struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CompanyName  string    `json:"company_name"`
	ServiceType  string    `json:"service_type"`
	City         string    `json:"city"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PartnerFilter narrows partner directory listings. Empty fields match everything.
type PartnerFilter struct {
	ServiceType string
	City        string
}

// PartnerRepository defines the interface for partner storage.
type PartnerRepository interface {
	Create(ctx context.Context, p *Partner) error
	GetByID(ctx context.Context, id string) (*Partner, error)
	GetByUserID(ctx context.Context, userID string) (*Partner, error)
	List(ctx context.Context, filter PartnerFilter, params PaginationParams) ([]*Partner, int, error)
}

// PartnerService exposes the partner directory and the partner-side inquiry inbox.
type PartnerService interface {
	ListPartners(ctx context.Context, filter PartnerFilter, params PaginationParams) ([]*Partner, int, error)
	GetByUserID(ctx context.Context, userID string) (*Partner, error)
	ListInquiries(ctx context.Context, userID string) ([]*InquiryWithEvent, error)
	UpdateInquiryStatus(ctx context.Context, userID, inquiryID, status string) error
}
