package domain

import "context"

// EmailPreview is a generated but not-yet-sent email draft for one partner.
// It exists only in memory between generation and dispatch; the organizer
// may edit subject and content before passing previews back for dispatch.
type EmailPreview struct {
	PartnerID     string `json:"partner_id"`
	PartnerName   string `json:"partner_name"`
	PartnerEmail  string `json:"partner_email"`
	Subject       string `json:"subject"`
	Content       string `json:"content"`
	HasAttachment bool   `json:"has_attachment"`
}

// SentEmail identifies one successful send in a dispatch summary.
type SentEmail struct {
	PartnerID   string `json:"partner_id"`
	PartnerName string `json:"partner_name"`
	MessageID   string `json:"message_id"`
}

// FailedEmail records one recipient whose send was skipped or rejected.
type FailedEmail struct {
	PartnerID    string `json:"partner_id"`
	PartnerEmail string `json:"partner_email"`
	Reason       string `json:"reason"`
}

// DispatchSummary is the aggregate outcome of one dispatch. SentCount is
// always between 0 and the number of previews; zero successes with a
// populated Failed list is a valid, non-error result.
type DispatchSummary struct {
	SentCount int           `json:"sent_count"`
	Sent      []SentEmail   `json:"sent_emails"`
	Failed    []FailedEmail `json:"failed_emails"`
}

// OutreachService generates personalized email previews for an event's
// selected partners and dispatches them through the mailbox collaborator.
type OutreachService interface {
	// GeneratePreviews returns one preview per selected partner, in
	// selection order. A generator transport failure fails the whole batch.
	GeneratePreviews(ctx context.Context, eventID, organizerID string) ([]*EmailPreview, error)
	// Dispatch attempts to deliver every preview. A failed organizer email
	// lookup or token refresh aborts with zero sends; individual send
	// failures are recorded in the summary and never abort the rest.
	Dispatch(ctx context.Context, eventID, organizerID string, previews []*EmailPreview) (*DispatchSummary, error)
}
