package domain

import (
	"context"
	"time"
)

// Inquiry lifecycle statuses. "sent" is set at dispatch; the rest are
// advanced by the partner from their inbox.
const (
	InquiryStatusSent     = "sent"
	InquiryStatusOpened   = "opened"
	InquiryStatusReplied  = "replied"
	InquiryStatusDeclined = "declined"
)

// ValidInquiryStatusUpdate reports whether a partner may set the given status.
func ValidInquiryStatusUpdate(status string) bool {
	switch status {
	case InquiryStatusOpened, InquiryStatusReplied, InquiryStatusDeclined:
		return true
	}
	return false
}

// Inquiry is the durable record of one attempted/sent outreach email.
// Created exactly once per successful send; never deleted.
// swagger:model Inquiry
type Inquiry struct {
	ID             string    `json:"id"`
	EventRequestID string    `json:"event_request_id"`
	PartnerID      string    `json:"partner_id"`
	EmailSubject   string    `json:"email_subject"`
	EmailContent   string    `json:"email_content"`
	Status         string    `json:"status"`
	MessageID      *string   `json:"message_id,omitempty"`
	HasAttachment  bool      `json:"has_attachment"`
	SentAt         time.Time `json:"sent_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InquiryDetail is the typed join of an inquiry with its partner,
// for the organizer's event view.
type InquiryDetail struct {
	Inquiry
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
}

// InquiryWithEvent is the typed join of an inquiry with its event,
// for the partner's inbox.
type InquiryWithEvent struct {
	Inquiry
	EventName string    `json:"event_name"`
	EventType string    `json:"event_type"`
	EventDate time.Time `json:"event_date"`
	EventCity string    `json:"event_city"`
	Attendees int       `json:"attendees"`
}

// InquiryRepository defines storage operations for inquiries.
// Create is append-only; there is no delete.
type InquiryRepository interface {
	Create(ctx context.Context, inq *Inquiry) error
	ListByEventRequestID(ctx context.Context, eventRequestID string) ([]*InquiryDetail, error)
	ListByPartnerID(ctx context.Context, partnerID string) ([]*InquiryWithEvent, error)
	// UpdateStatus updates an inquiry's status only if it belongs to the
	// given partner. Returns ErrNotFound otherwise.
	UpdateStatus(ctx context.Context, inquiryID, partnerID, status string) error
}
