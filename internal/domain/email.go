package domain

import "context"

// Attachment is one file attached to an outbound email.
type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

// OutboundEmail is a fully composed message ready for delivery.
// From may be left empty; the mailer then uses its configured identity.
type OutboundEmail struct {
	From        string
	To          string
	ReplyTo     string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Mailer defines the contract for the mailbox collaborator (infrastructure port).
// Authorize refreshes mailbox credentials and must be called before a send
// batch; Send delivers one message and returns the provider message id.
type Mailer interface {
	Authorize(ctx context.Context) error
	Send(ctx context.Context, msg *OutboundEmail) (messageID string, err error)
}
