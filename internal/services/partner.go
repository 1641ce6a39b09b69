package services

import (
	"context"
	"fmt"
	"time"

	"eventconnect/internal/domain"
)

type partnerService struct {
	partnerRepo    domain.PartnerRepository
	inquiryRepo    domain.InquiryRepository
	contextTimeout time.Duration
}

// NewPartnerService returns the partner directory and inbox service.
func NewPartnerService(partnerRepo domain.PartnerRepository, inquiryRepo domain.InquiryRepository, timeout time.Duration) domain.PartnerService {
	return &partnerService{
		partnerRepo:    partnerRepo,
		inquiryRepo:    inquiryRepo,
		contextTimeout: timeout,
	}
}

func (s *partnerService) ListPartners(ctx context.Context, filter domain.PartnerFilter, params domain.PaginationParams) ([]*domain.Partner, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.ServiceType != "" && !domain.ValidServiceType(filter.ServiceType) {
		return nil, 0, fmt.Errorf("invalid service type %q", filter.ServiceType)
	}
	return s.partnerRepo.List(ctx, filter, params)
}

func (s *partnerService) GetByUserID(ctx context.Context, userID string) (*domain.Partner, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.partnerRepo.GetByUserID(ctx, userID)
}

// ListInquiries returns the inbox of outreach emails addressed to the
// authenticated partner account.
func (s *partnerService) ListInquiries(ctx context.Context, userID string) ([]*domain.InquiryWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	partner, err := s.partnerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.inquiryRepo.ListByPartnerID(ctx, partner.ID)
}

func (s *partnerService) UpdateInquiryStatus(ctx context.Context, userID, inquiryID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidInquiryStatusUpdate(status) {
		return fmt.Errorf("status must be %q, %q or %q",
			domain.InquiryStatusOpened, domain.InquiryStatusReplied, domain.InquiryStatusDeclined)
	}
	partner, err := s.partnerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.inquiryRepo.UpdateStatus(ctx, inquiryID, partner.ID, status)
}
