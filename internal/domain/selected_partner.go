package domain

import (
	"context"
	"time"
)

// SelectedPartner records that an organizer chose a partner for an event
// under a given service category. Created once at event submission,
// immutable afterward.
// swagger:model SelectedPartner
type SelectedPartner struct {
	ID             string    `json:"id"`
	EventRequestID string    `json:"event_request_id"`
	PartnerID      string    `json:"partner_id"`
	ServiceType    string    `json:"service_type"`
	CreatedAt      time.Time `json:"created_at"`
}

// SelectedPartnerDetail is the typed join of a selection with its partner.
type SelectedPartnerDetail struct {
	SelectedPartner
	Partner *Partner `json:"partner"`
}

// SelectedPartnerRepository defines the interface for selection storage.
type SelectedPartnerRepository interface {
	Create(ctx context.Context, sp *SelectedPartner) error
	// ListDetailsByEventRequestID returns selections with partner data,
	// in selection (insertion) order.
	ListDetailsByEventRequestID(ctx context.Context, eventRequestID string) ([]*SelectedPartnerDetail, error)
}
