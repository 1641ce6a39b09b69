package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"eventconnect/internal/domain"
)

type outreachService struct {
	eventRepo     domain.EventRequestRepository
	userRepo      domain.UserRepository
	selectionRepo domain.SelectedPartnerRepository
	fileRepo      domain.EventFileRepository
	inquiryRepo   domain.InquiryRepository
	generator     domain.TextGenerator
	mailer        domain.Mailer
	fetcher       domain.FileFetcher
	logger        *slog.Logger
	callTimeout   time.Duration
}

// NewOutreachService wires the preview generation and dispatch flow.
// callTimeout bounds each individual external call (generation, token
// refresh, attachment fetch, send).
func NewOutreachService(
	eventRepo domain.EventRequestRepository,
	userRepo domain.UserRepository,
	selectionRepo domain.SelectedPartnerRepository,
	fileRepo domain.EventFileRepository,
	inquiryRepo domain.InquiryRepository,
	generator domain.TextGenerator,
	mailer domain.Mailer,
	fetcher domain.FileFetcher,
	logger *slog.Logger,
	callTimeout time.Duration,
) domain.OutreachService {
	return &outreachService{
		eventRepo:     eventRepo,
		userRepo:      userRepo,
		selectionRepo: selectionRepo,
		fileRepo:      fileRepo,
		inquiryRepo:   inquiryRepo,
		generator:     generator,
		mailer:        mailer,
		fetcher:       fetcher,
		logger:        logger,
		callTimeout:   callTimeout,
	}
}

func (s *outreachService) GeneratePreviews(ctx context.Context, eventID, organizerID string) ([]*domain.EmailPreview, error) {
	event, err := s.ownedEvent(ctx, eventID, organizerID)
	if err != nil {
		return nil, err
	}

	selections, err := s.selectionRepo.ListDetailsByEventRequestID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list selected partners: %w", err)
	}
	if len(selections) == 0 {
		return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNoPartnersSelected)
	}

	files, err := s.fileRepo.ListByEventRequestID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event files: %w", err)
	}
	hasFiles := len(files) > 0

	previews := make([]*domain.EmailPreview, 0, len(selections))
	for _, sel := range selections {
		prompt := buildOutreachPrompt(event, sel.Partner, sel.ServiceType)
		raw, err := s.generateOne(ctx, prompt)
		if err != nil {
			// A provider failure aborts the whole batch; no partial result.
			return nil, fmt.Errorf("generate email for %s: %w", sel.Partner.CompanyName, err)
		}
		draft := parseEmailDraft(raw, event.EventName)
		if draft.Fallback {
			s.logger.Warn("generated email missing subject/body markers, using fallback",
				"event_id", eventID, "partner_id", sel.PartnerID)
		}
		previews = append(previews, &domain.EmailPreview{
			PartnerID:     sel.PartnerID,
			PartnerName:   sel.Partner.CompanyName,
			PartnerEmail:  sel.Partner.ContactEmail,
			Subject:       draft.Subject,
			Content:       draft.Body,
			HasAttachment: sel.ServiceType == domain.ServiceTypeMerchandise && hasFiles,
		})
	}
	return previews, nil
}

func (s *outreachService) Dispatch(ctx context.Context, eventID, organizerID string, previews []*domain.EmailPreview) (*domain.DispatchSummary, error) {
	event, err := s.ownedEvent(ctx, eventID, organizerID)
	if err != nil {
		return nil, err
	}

	organizerEmail, err := s.userRepo.GetEmailByID(ctx, event.OrganizerID)
	if err != nil {
		return nil, fmt.Errorf("resolve organizer email: %w", err)
	}

	if err := s.authorizeMailer(ctx); err != nil {
		return nil, fmt.Errorf("authorize mailer: %w", err)
	}

	files, err := s.fileRepo.ListByEventRequestID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event files: %w", err)
	}

	summary := &domain.DispatchSummary{
		Sent:   []domain.SentEmail{},
		Failed: []domain.FailedEmail{},
	}

	// Strictly sequential: one recipient's failure never aborts the rest.
	for _, preview := range previews {
		msg := &domain.OutboundEmail{
			To:      preview.PartnerEmail,
			ReplyTo: organizerEmail,
			Subject: preview.Subject,
			Text:    preview.Content,
			HTML:    htmlBody(preview.Content),
		}

		if preview.HasAttachment && len(files) > 0 {
			attachments, err := s.fetchAttachments(ctx, files)
			if err != nil {
				// Abandon this recipient rather than send a merchandise
				// inquiry without the promised design files.
				s.logger.Error("attachment fetch failed, skipping recipient",
					"event_id", eventID, "partner_id", preview.PartnerID, "err", err)
				summary.Failed = append(summary.Failed, domain.FailedEmail{
					PartnerID:    preview.PartnerID,
					PartnerEmail: preview.PartnerEmail,
					Reason:       fmt.Sprintf("fetch attachments: %v", err),
				})
				continue
			}
			msg.Attachments = attachments
		}

		messageID, err := s.sendOne(ctx, msg)
		if err != nil {
			s.logger.Error("send failed, continuing with remaining recipients",
				"event_id", eventID, "partner_id", preview.PartnerID, "to", preview.PartnerEmail, "err", err)
			summary.Failed = append(summary.Failed, domain.FailedEmail{
				PartnerID:    preview.PartnerID,
				PartnerEmail: preview.PartnerEmail,
				Reason:       err.Error(),
			})
			continue
		}

		now := time.Now()
		inquiry := &domain.Inquiry{
			EventRequestID: event.ID,
			PartnerID:      preview.PartnerID,
			EmailSubject:   preview.Subject,
			EmailContent:   preview.Content,
			Status:         domain.InquiryStatusSent,
			MessageID:      &messageID,
			HasAttachment:  preview.HasAttachment,
			SentAt:         now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
			// Best effort: the email is already out, the send still counts.
			s.logger.Error("failed to record inquiry for sent email",
				"event_id", eventID, "partner_id", preview.PartnerID, "message_id", messageID, "err", err)
		}

		summary.Sent = append(summary.Sent, domain.SentEmail{
			PartnerID:   preview.PartnerID,
			PartnerName: preview.PartnerName,
			MessageID:   messageID,
		})
		summary.SentCount++
	}

	return summary, nil
}

func (s *outreachService) ownedEvent(ctx context.Context, eventID, organizerID string) (*domain.EventRequest, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *outreachService) generateOne(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.generator.Generate(ctx, outreachPersona, prompt)
}

func (s *outreachService) authorizeMailer(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.mailer.Authorize(ctx)
}

func (s *outreachService) sendOne(ctx context.Context, msg *domain.OutboundEmail) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.mailer.Send(ctx, msg)
}

// fetchAttachments loads every event file fresh; nothing is cached across
// recipients.
func (s *outreachService) fetchAttachments(ctx context.Context, files []*domain.EventFile) ([]domain.Attachment, error) {
	attachments := make([]domain.Attachment, 0, len(files))
	for _, f := range files {
		fetchCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		data, err := s.fetcher.FetchBytes(fetchCtx, f.FileURL)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.FileName, err)
		}
		attachments = append(attachments, domain.Attachment{
			Filename:    f.FileName,
			Content:     data,
			ContentType: f.MimeType,
		})
	}
	return attachments, nil
}

// htmlBody renders the plain-text body as simple HTML with line breaks.
func htmlBody(text string) string {
	escaped := html.EscapeString(text)
	return `<div style="font-family: Arial, sans-serif; line-height: 1.6;">` +
		strings.ReplaceAll(escaped, "\n", "<br>") +
		`</div>`
}
