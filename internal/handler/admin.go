package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusgate/campusgate/internal/model"
	"github.com/campusgate/campusgate/internal/server/middleware"
	"github.com/campusgate/campusgate/internal/service"
)

// AdminHandler serves the admin login endpoint.
type AdminHandler struct {
	accounts *service.AccountService
	logger   *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(accounts *service.AccountService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{accounts: accounts, logger: logger}
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates an admin and returns a bearer token signed with the
// admin secret.
// POST /api/adminlogin
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.accounts.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdminCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid admin credentials")
			return
		}
		h.logger.Error("admin login failed", "error", err,
			"request_id", middleware.GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "An error occurred while logging in as admin")
		return
	}

	writeJSON(w, http.StatusOK, model.AdminTokenResponse{
		Message:   "Admin login successfully",
		AuthToken: token,
	})
}
