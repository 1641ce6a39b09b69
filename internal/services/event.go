package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventconnect/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRequestRepository
	fileRepo       domain.EventFileRepository
	selectionRepo  domain.SelectedPartnerRepository
	partnerRepo    domain.PartnerRepository
	inquiryRepo    domain.InquiryRepository
	fileStore      domain.FileStore
	contextTimeout time.Duration
}

// NewEventService returns the organizer-side event service.
func NewEventService(
	eventRepo domain.EventRequestRepository,
	fileRepo domain.EventFileRepository,
	selectionRepo domain.SelectedPartnerRepository,
	partnerRepo domain.PartnerRepository,
	inquiryRepo domain.InquiryRepository,
	fileStore domain.FileStore,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		fileRepo:       fileRepo,
		selectionRepo:  selectionRepo,
		partnerRepo:    partnerRepo,
		inquiryRepo:    inquiryRepo,
		fileStore:      fileStore,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, e *domain.EventRequest) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if e.OrganizerID == "" {
		return fmt.Errorf("event organizer is required")
	}
	if e.EventName == "" {
		return fmt.Errorf("event name is required")
	}
	if e.Attendees <= 0 {
		return fmt.Errorf("attendee count must be positive")
	}

	e.Status = domain.EventStatusDraft
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	return s.eventRepo.Create(ctx, e)
}

func (s *eventService) GetEventDetails(ctx context.Context, eventID, callerID string) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != callerID {
		return nil, domain.ErrForbidden
	}

	files, err := s.fileRepo.ListByEventRequestID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	selections, err := s.selectionRepo.ListDetailsByEventRequestID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list selected partners: %w", err)
	}
	inquiries, err := s.inquiryRepo.ListByEventRequestID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}

	return &domain.EventDetails{
		Event:      event,
		Files:      files,
		Selections: selections,
		Inquiries:  inquiries,
	}, nil
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListByOrganizerID(ctx, organizerID)
}

func (s *eventService) UpdateStatus(ctx context.Context, eventID, organizerID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	if !domain.CanTransitionEventStatus(event.Status, status) {
		return fmt.Errorf("cannot change event status from %q to %q", event.Status, status)
	}
	return s.eventRepo.UpdateStatus(ctx, eventID, status)
}

// SelectPartners persists the organizer's partner picks for a draft event.
// Selections are immutable once created; dispatch only ever targets them.
func (s *eventService) SelectPartners(ctx context.Context, eventID, organizerID string, selections []domain.PartnerSelection) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	if event.Status != domain.EventStatusDraft {
		return fmt.Errorf("partners can only be selected for a draft event")
	}
	if len(selections) == 0 {
		return fmt.Errorf("at least one partner selection is required")
	}

	now := time.Now()
	for _, sel := range selections {
		if !domain.ValidServiceType(sel.ServiceType) {
			return fmt.Errorf("invalid service type %q", sel.ServiceType)
		}
		if _, err := s.partnerRepo.GetByID(ctx, sel.PartnerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("partner %s: %w", sel.PartnerID, domain.ErrNotFound)
			}
			return fmt.Errorf("get partner %s: %w", sel.PartnerID, err)
		}
		sp := &domain.SelectedPartner{
			EventRequestID: eventID,
			PartnerID:      sel.PartnerID,
			ServiceType:    sel.ServiceType,
			CreatedAt:      now,
		}
		if err := s.selectionRepo.Create(ctx, sp); err != nil {
			return fmt.Errorf("save selection for partner %s: %w", sel.PartnerID, err)
		}
	}
	return nil
}

func (s *eventService) AttachFile(ctx context.Context, eventID, organizerID string, upload *domain.FileUpload) (*domain.EventFile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}

	url, err := s.fileStore.Upload(ctx, upload.FileName, upload.ContentType, upload.Body, upload.Size)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}
	file := &domain.EventFile{
		EventRequestID: eventID,
		FileName:       upload.FileName,
		FileURL:        url,
		FileSize:       upload.Size,
		MimeType:       upload.ContentType,
		CreatedAt:      time.Now(),
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("save file metadata: %w", err)
	}
	return file, nil
}
