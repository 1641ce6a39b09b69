package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "eventconnect/internal/delivery/http/helpers"
	"eventconnect/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignUpRequest is the request body for POST /auth/signup.
// Partner fields are required when user_type is "partner".
type SignUpRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	UserType string  `json:"user_type"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`

	CompanyName  string  `json:"company_name"`
	ServiceType  string  `json:"service_type"`
	City         string  `json:"city"`
	ContactName  string  `json:"contact_name"`
	ContactEmail string  `json:"contact_email"`
	Description  *string `json:"description"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	} else if len(s.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	userType := strings.TrimSpace(strings.ToLower(s.UserType))
	if userType != domain.UserTypeOrganizer && userType != domain.UserTypePartner {
		errs = append(errs, "user_type must be \"organizer\" or \"partner\"")
	}
	if s.FullName == "" {
		errs = append(errs, "full_name is required")
	}
	if userType == domain.UserTypePartner {
		if s.CompanyName == "" {
			errs = append(errs, "company_name is required for partners")
		}
		if !domain.ValidServiceType(s.ServiceType) {
			errs = append(errs, "service_type must be one of venue, catering, merchandise, sponsor, other")
		}
		if s.City == "" {
			errs = append(errs, "city is required for partners")
		}
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/login.
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Register a new account
// @Description Create an organizer or partner account. Partner sign-ups also create the partner's directory entry (company, service type, city, contact).
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	input := &domain.SignUpInput{
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		Password:     req.Password,
		UserType:     strings.TrimSpace(strings.ToLower(req.UserType)),
		FullName:     req.FullName,
		Phone:        req.Phone,
		CompanyName:  req.CompanyName,
		ServiceType:  req.ServiceType,
		City:         req.City,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Description:  req.Description,
	}
	user, err := c.Service.SignUp(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "email already registered")
			return
		}
		if strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "must be") {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}

	h.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Returns a JWT containing user id, email, and user type.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", User: user})
}
