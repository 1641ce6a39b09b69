package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventconnect/internal/delivery/http/helpers"
	"eventconnect/internal/delivery/http/middleware"
	"eventconnect/internal/domain"
)

// PartnerListResponse is the paginated response for GET /partners.
type PartnerListResponse struct {
	Partners   []*domain.Partner `json:"partners"`
	Pagination h.PaginationMeta  `json:"pagination"`
}

// UpdateInquiryStatusRequest is the request body for PATCH /partners/me/inquiries/{inquiryID}.
type UpdateInquiryStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateInquiryStatusRequest) Validate() []string {
	if u.Status == "" {
		return []string{"status is required"}
	}
	return nil
}

type PartnerController struct {
	Logger  *slog.Logger
	Service domain.PartnerService
}

func NewPartnerController(logger *slog.Logger, svc domain.PartnerService) *PartnerController {
	return &PartnerController{
		Logger:  logger,
		Service: svc,
	}
}

// ListPartners godoc
// @Summary List partners in the directory
// @Description Filter by service_type and city query parameters; paginated.
// @Tags partners
// @Produce json
// @Security BearerAuth
// @Param service_type query string false "Service category filter"
// @Param city query string false "City filter (case-insensitive)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains partners and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /partners [get]
func (c *PartnerController) ListPartners(w http.ResponseWriter, r *http.Request) {
	filter := domain.PartnerFilter{
		ServiceType: r.URL.Query().Get("service_type"),
		City:        r.URL.Query().Get("city"),
	}
	params := h.ParsePagination(r)
	partners, total, err := c.Service.ListPartners(r.Context(), filter, params)
	if err != nil {
		if filter.ServiceType != "" && !domain.ValidServiceType(filter.ServiceType) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, PartnerListResponse{
		Partners:   partners,
		Pagination: h.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// MyInquiries godoc
// @Summary List inquiries addressed to the authenticated partner
// @Tags partners
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains inquiries with event details"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no partner profile)"
// @Router /partners/me/inquiries [get]
func (c *PartnerController) MyInquiries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inquiries, err := c.Service.ListInquiries(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "no partner profile for this account")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, inquiries)
}

// UpdateInquiryStatus godoc
// @Summary Update the status of an inquiry in the partner's inbox
// @Description Allowed statuses: opened, replied, declined.
// @Tags partners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param inquiryID path string true "Inquiry ID"
// @Param body body UpdateInquiryStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /partners/me/inquiries/{inquiryID} [patch]
func (c *PartnerController) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateInquiryStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inquiryID := r.PathValue("inquiryID")
	if err := c.Service.UpdateInquiryStatus(r.Context(), userID, inquiryID, req.Status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "inquiry not found")
			return
		}
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"id": inquiryID, "status": req.Status})
}
