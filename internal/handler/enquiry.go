package handler

import (
	"log/slog"
	"net/http"

	"github.com/campusgate/campusgate/internal/model"
	"github.com/campusgate/campusgate/internal/server/middleware"
	"github.com/campusgate/campusgate/internal/service"
	"github.com/campusgate/campusgate/internal/store"
)

// EnquiryHandler serves the public contact form and the enquiry listing.
type EnquiryHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewEnquiryHandler creates an EnquiryHandler.
func NewEnquiryHandler(st *store.Store, logger *slog.Logger) *EnquiryHandler {
	return &EnquiryHandler{store: st, logger: logger}
}

// enquiryRequest uses "mob" for the mobile field, matching the existing
// frontend contract.
type enquiryRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Mob   string `json:"mob"`
	Query string `json:"query"`
}

// Submit stores a contact-form submission.
// POST /api/enquiryForm
func (h *EnquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req enquiryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !service.ValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	enquiry := &model.Enquiry{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mob,
		Query:  req.Query,
	}
	if err := h.store.CreateEnquiry(r.Context(), enquiry); err != nil {
		h.logger.Error("enquiry insert failed", "error", err,
			"request_id", middleware.GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "An error occurred while submitting form")
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Form submitted successfully"})
}

// List returns all enquiries, newest first.
// GET /api/getEnquiries
func (h *EnquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.store.ListEnquiries(r.Context())
	if err != nil {
		h.logger.Error("enquiry listing failed", "error", err,
			"request_id", middleware.GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "An error occurred while fetching enquiries")
		return
	}

	if enquiries == nil {
		enquiries = []model.Enquiry{}
	}
	writeJSON(w, http.StatusOK, enquiries)
}
