package domain

import (
	"context"
	"time"
)

// User account types.
const (
	UserTypeOrganizer = "organizer"
	UserTypePartner   = "partner"
)

// User represents a registered account: an event organizer or a service partner.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	UserType     string    `json:"user_type"`
	FullName     string    `json:"full_name"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, userType, fullName string, phone *string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:     email,
		UserType:  userType,
		FullName:  fullName,
		Phone:     phone,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, userType string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// GetEmailByID resolves just the email address for a user id.
	// Returns ErrNotFound if the user does not exist.
	GetEmailByID(ctx context.Context, id string) (string, error)
}

// SignUpInput carries registration data. The partner fields are required
// only when UserType is "partner"; a Partner record is created in the same flow.
type SignUpInput struct {
	Email    string
	Password string
	UserType string
	FullName string
	Phone    *string

	CompanyName  string
	ServiceType  string
	City         string
	ContactName  string
	ContactEmail string
	Description  *string
}

// AuthService defines registration and login.
type AuthService interface {
	SignUp(ctx context.Context, input *SignUpInput) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
