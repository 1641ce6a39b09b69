package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	h "eventconnect/internal/delivery/http/helpers"
	"eventconnect/internal/delivery/http/middleware"
	"eventconnect/internal/domain"
)

// Upload size cap for event design files (10MB).
const maxFileSize = 10 << 20

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	EventName        string   `json:"event_name"`
	EventType        string   `json:"event_type"`
	Attendees        int      `json:"attendees"`
	EventDate        string   `json:"event_date"` // YYYY-MM-DD
	Budget           *float64 `json:"budget"`
	City             string   `json:"city"`
	NeedsCatering    bool     `json:"needs_catering"`
	NeedsMerchandise bool     `json:"needs_merchandise"`
	NeedsSponsors    bool     `json:"needs_sponsors"`
	AdditionalNotes  *string  `json:"additional_notes"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.EventName == "" {
		errs = append(errs, "event_name is required")
	}
	if c.EventType == "" {
		errs = append(errs, "event_type is required")
	}
	if c.Attendees <= 0 {
		errs = append(errs, "attendees must be positive")
	}
	if _, err := time.Parse("2006-01-02", c.EventDate); err != nil {
		errs = append(errs, "event_date must be YYYY-MM-DD")
	}
	if c.City == "" {
		errs = append(errs, "city is required")
	}
	return errs
}

// UpdateEventStatusRequest is the request body for PATCH /events/{eventID}/status.
type UpdateEventStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateEventStatusRequest) Validate() []string {
	if u.Status == "" {
		return []string{"status is required"}
	}
	return nil
}

// SelectPartnersRequest is the request body for POST /events/{eventID}/partners.
type SelectPartnersRequest struct {
	Selections []domain.PartnerSelection `json:"selections"`
}

// Validate implements Validator.
func (s SelectPartnersRequest) Validate() []string {
	var errs []string
	if len(s.Selections) == 0 {
		errs = append(errs, "at least one selection is required")
	}
	for _, sel := range s.Selections {
		if sel.PartnerID == "" {
			errs = append(errs, "selection partner_id is required")
			break
		}
	}
	return errs
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event request
// @Description Create a draft event for the authenticated organizer. Status starts as "draft".
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	date, _ := time.Parse("2006-01-02", req.EventDate)
	event := &domain.EventRequest{
		OrganizerID:      userID,
		EventName:        req.EventName,
		EventType:        req.EventType,
		Attendees:        req.Attendees,
		EventDate:        date,
		Budget:           req.Budget,
		City:             req.City,
		NeedsCatering:    req.NeedsCatering,
		NeedsMerchandise: req.NeedsMerchandise,
		NeedsSponsors:    req.NeedsSponsors,
		AdditionalNotes:  req.AdditionalNotes,
	}
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event with details
// @Description Returns the event with its files, selected partners, and recorded inquiries. Only the owning organizer may read it.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event details"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	details, err := c.Service.GetEventDetails(r.Context(), r.PathValue("eventID"), userID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, details)
}

// ListMyEvents godoc
// @Summary List the authenticated organizer's events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListByOrganizer(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// UpdateEventStatus godoc
// @Summary Update an event's lifecycle status
// @Description Valid transitions: draft->sent, draft->cancelled, sent->completed, sent->cancelled.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/status [patch]
func (c *EventController) UpdateEventStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID := r.PathValue("eventID")
	if err := c.Service.UpdateStatus(r.Context(), eventID, userID, req.Status); err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrForbidden) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"id": eventID, "status": req.Status})
}

// SelectPartners godoc
// @Summary Select partners for a draft event
// @Description Persists the organizer's (partner, service category) picks. Selections are immutable and are the only dispatch targets.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body SelectPartnersRequest true "Partner selections"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/partners [post]
func (c *EventController) SelectPartners(w http.ResponseWriter, r *http.Request) {
	var req SelectPartnersRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID := r.PathValue("eventID")
	if err := c.Service.SelectPartners(r.Context(), eventID, userID, req.Selections); err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrForbidden) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, map[string]int{"selected": len(req.Selections)})
}

// UploadFile godoc
// @Summary Attach a design file to an event
// @Description Accepts a multipart form with a "file" field. Bytes go to object storage; metadata is recorded on the event.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param file formData file true "Design file"
// @Success 201 {object} helpers.APIResponse "data contains the stored file metadata"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events/{eventID}/files [post]
func (c *EventController) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxFileSize); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upload := &domain.FileUpload{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}
	stored, err := c.Service.AttachFile(r.Context(), r.PathValue("eventID"), userID, upload)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, stored)
}

func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "you do not own this event")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}
