package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventconnect/internal/delivery/http/controllers"
	"eventconnect/internal/delivery/http/middleware"
	"eventconnect/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	partnerController *controllers.PartnerController,
	outreachController *controllers.OutreachController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events (organizer)
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", auth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}/status", auth(eventController.UpdateEventStatus))
	mux.HandleFunc("POST /events/{eventID}/partners", auth(eventController.SelectPartners))
	mux.HandleFunc("POST /events/{eventID}/files", auth(eventController.UploadFile))

	// Outreach
	mux.HandleFunc("POST /events/{eventID}/previews", auth(outreachController.GeneratePreviews))
	mux.HandleFunc("POST /events/{eventID}/dispatch", auth(outreachController.Dispatch))

	// Partner directory and inbox
	mux.HandleFunc("GET /partners", auth(partnerController.ListPartners))
	mux.HandleFunc("GET /partners/me/inquiries", auth(partnerController.MyInquiries))
	mux.HandleFunc("PATCH /partners/me/inquiries/{inquiryID}", auth(partnerController.UpdateInquiryStatus))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
