package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventconnect/internal/delivery/http/helpers"
	"eventconnect/internal/delivery/http/middleware"
	"eventconnect/internal/domain"
)

// DispatchRequest is the request body for POST /events/{eventID}/dispatch.
// The previews are the (possibly organizer-edited) drafts returned by the
// preview endpoint.
type DispatchRequest struct {
	Previews []*domain.EmailPreview `json:"previews"`
}

// Validate implements Validator.
func (d DispatchRequest) Validate() []string {
	var errs []string
	if len(d.Previews) == 0 {
		errs = append(errs, "at least one preview is required")
	}
	for _, p := range d.Previews {
		if p == nil || p.PartnerID == "" || p.PartnerEmail == "" {
			errs = append(errs, "every preview needs partner_id and partner_email")
			break
		}
	}
	return errs
}

type OutreachController struct {
	Logger       *slog.Logger
	Service      domain.OutreachService
	EventService domain.EventService
}

func NewOutreachController(logger *slog.Logger, svc domain.OutreachService, eventSvc domain.EventService) *OutreachController {
	return &OutreachController{
		Logger:       logger,
		Service:      svc,
		EventService: eventSvc,
	}
}

// GeneratePreviews godoc
// @Summary Generate outreach email previews
// @Description Drafts one personalized email per selected partner, in selection order. Nothing is sent or persisted; the organizer may edit the drafts before dispatch.
// @Tags outreach
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the preview list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (no partners selected)"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error (draft generation failed)"
// @Router /events/{eventID}/previews [post]
func (c *OutreachController) GeneratePreviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	previews, err := c.Service.GeneratePreviews(r.Context(), r.PathValue("eventID"), userID)
	if err != nil {
		c.writeOutreachError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, previews)
}

// Dispatch godoc
// @Summary Send outreach emails to the selected partners
// @Description Sends each preview through the organizer's mailbox. One recipient failing never blocks the rest; the summary lists successes and failures. When at least one email went out the event moves to "sent".
// @Tags outreach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body DispatchRequest true "Previews to send"
// @Success 200 {object} helpers.APIResponse "data contains the dispatch summary"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error (mailbox authorization failed)"
// @Router /events/{eventID}/dispatch [post]
func (c *OutreachController) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID := r.PathValue("eventID")
	summary, err := c.Service.Dispatch(r.Context(), eventID, userID, req.Previews)
	if err != nil {
		c.writeOutreachError(w, r, err)
		return
	}

	// The emails are already out; a failed status update must not turn the
	// response into an error.
	if summary.SentCount > 0 {
		if err := c.EventService.UpdateStatus(r.Context(), eventID, userID, domain.EventStatusSent); err != nil {
			c.Logger.ErrorContext(r.Context(), "event status update after dispatch failed",
				"event_id", eventID, "err", err)
		}
	}

	h.WriteJSONSuccess(w, http.StatusOK, summary)
}

func (c *OutreachController) writeOutreachError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "you do not own this event")
	case errors.Is(err, domain.ErrNoPartnersSelected):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "no partners selected for this event")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}
