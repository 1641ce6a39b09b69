package domain

import (
	"context"
	"time"
)

// Event request lifecycle statuses.
const (
	EventStatusDraft     = "draft"
	EventStatusSent      = "sent"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// CanTransitionEventStatus reports whether an event may move from one status to the next.
// draft -> sent, draft -> cancelled, sent -> completed, sent -> cancelled.
func CanTransitionEventStatus(from, to string) bool {
	switch from {
	case EventStatusDraft:
		return to == EventStatusSent || to == EventStatusCancelled
	case EventStatusSent:
		return to == EventStatusCompleted || to == EventStatusCancelled
	}
	return false
}

// EventRequest represents an organizer's event and what it needs from partners.
// swagger:model EventRequest
type EventRequest struct {
	ID               string    `json:"id"`
	OrganizerID      string    `json:"organizer_id"`
	EventName        string    `json:"event_name"`
	EventType        string    `json:"event_type"`
	Attendees        int       `json:"attendees"`
	EventDate        time.Time `json:"event_date"`
	Budget           *float64  `json:"budget,omitempty"`
	City             string    `json:"city"`
	NeedsCatering    bool      `json:"needs_catering"`
	NeedsMerchandise bool      `json:"needs_merchandise"`
	NeedsSponsors    bool      `json:"needs_sponsors"`
	AdditionalNotes  *string   `json:"additional_notes,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EventRequestRepository defines the interface for event request storage.
type EventRequestRepository interface {
	Create(ctx context.Context, e *EventRequest) error
	GetByID(ctx context.Context, id string) (*EventRequest, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*EventRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PartnerSelection is one (partner, category) pick made by the organizer at submission.
type PartnerSelection struct {
	PartnerID   string `json:"partner_id"`
	ServiceType string `json:"service_type"`
}

// EventDetails is the typed join result for an event with its files,
// selected partners, and recorded inquiries.
type EventDetails struct {
	Event      *EventRequest            `json:"event"`
	Files      []*EventFile             `json:"files"`
	Selections []*SelectedPartnerDetail `json:"selected_partners"`
	Inquiries  []*InquiryDetail         `json:"inquiries"`
}

// EventService defines the organizer-side event operations.
type EventService interface {
	CreateEvent(ctx context.Context, e *EventRequest) error
	GetEventDetails(ctx context.Context, eventID, callerID string) (*EventDetails, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*EventRequest, error)
	UpdateStatus(ctx context.Context, eventID, organizerID, status string) error
	SelectPartners(ctx context.Context, eventID, organizerID string, selections []PartnerSelection) error
	AttachFile(ctx context.Context, eventID, organizerID string, upload *FileUpload) (*EventFile, error)
}
