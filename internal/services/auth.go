package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventconnect/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo    domain.UserRepository
	partnerRepo domain.PartnerRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates an AuthService with the given repositories and auth ports.
func NewAuthService(userRepo domain.UserRepository, partnerRepo domain.PartnerRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		userRepo:    userRepo,
		partnerRepo: partnerRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

// SignUp registers a user. Partner accounts also get their Partner record
// created in the same flow, so the company is immediately listed in the
// directory.
func (s *authService) SignUp(ctx context.Context, input *domain.SignUpInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if input.UserType != domain.UserTypeOrganizer && input.UserType != domain.UserTypePartner {
		return nil, fmt.Errorf("user type must be %q or %q", domain.UserTypeOrganizer, domain.UserTypePartner)
	}
	if input.UserType == domain.UserTypePartner && !domain.ValidServiceType(input.ServiceType) {
		return nil, fmt.Errorf("invalid service type %q", input.ServiceType)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(email, input.UserType, input.FullName, input.Phone, now, now)
	user.PasswordHash = hash
	user.Salt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if input.UserType == domain.UserTypePartner {
		partner := &domain.Partner{
			UserID:       user.ID,
			CompanyName:  input.CompanyName,
			ServiceType:  input.ServiceType,
			City:         input.City,
			ContactName:  input.ContactName,
			ContactEmail: input.ContactEmail,
			Description:  input.Description,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if partner.ContactEmail == "" {
			partner.ContactEmail = email
		}
		if err := s.partnerRepo.Create(ctx, partner); err != nil {
			return nil, fmt.Errorf("create partner profile: %w", err)
		}
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.UserType, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
