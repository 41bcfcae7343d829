package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/campusgate/campusgate/internal/model"
	"github.com/campusgate/campusgate/internal/server/middleware"
	"github.com/campusgate/campusgate/internal/service"
	"github.com/campusgate/campusgate/internal/store"
)

// AuthHandler serves the student-facing authentication endpoints: signup,
// password login, Google sign-in, and the authenticated profile.
type AuthHandler struct {
	accounts *service.AccountService
	store    *store.Store
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(accounts *service.AccountService, st *store.Store, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, store: st, logger: logger}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// SignUp registers a new student account.
// POST /signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Mobile == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email, mobile, and password are required")
		return
	}

	err := h.accounts.SignUp(r.Context(), req.Name, req.Email, req.Mobile, req.Password)
	if err != nil {
		var conflict *store.ConflictError
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "Invalid email format")
		case errors.Is(err, service.ErrInvalidMobile):
			writeError(w, http.StatusBadRequest, "Invalid mobile number")
		case errors.As(err, &conflict):
			writeError(w, http.StatusBadRequest, conflictMessage(conflict.Field))
		default:
			h.logger.Error("signup failed", "error", err,
				"request_id", middleware.GetRequestID(r.Context()))
			writeError(w, http.StatusInternalServerError, "An error occurred while signing up")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Signup successful"})
}

// conflictMessage maps a duplicate outcome to the message the frontend
// displays. The both-conflict case takes precedence upstream.
func conflictMessage(field string) string {
	switch field {
	case "both":
		return "Account already exists. Please try logging in."
	case "mobile":
		return "Mobile number already exists. Please try logging in."
	default:
		return "Email already exists. Please try logging in."
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a student by password and returns a bearer token.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.logger.Error("login failed", "error", err,
			"request_id", middleware.GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "An error occurred while logging in")
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{
		Message:   "Login successful",
		AuthToken: token,
	})
}

type googleAuthRequest struct {
	Token string `json:"token"`
}

// GoogleAuth verifies a Google ID token and logs the student in, creating
// the account on first sign-in.
// POST /google-auth
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req googleAuthRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "Token is required")
		return
	}

	token, err := h.accounts.GoogleLogin(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidIdentityToken) {
			writeError(w, http.StatusUnauthorized, "Invalid Google token")
			return
		}
		h.logger.Error("google auth failed", "error", err,
			"request_id", middleware.GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "An error occurred during authentication")
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{
		Message:   "Google authentication successful",
		AuthToken: token,
	})
}

// Profile returns the authenticated student's account. Requires a valid
// student bearer token (enforced by the Authenticate middleware).
// GET /api/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetStudentID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	student, err := h.store.GetStudent(r.Context(), studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		h.logger.Error("profile lookup failed", "error", err,
			"request_id", middleware.GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "An error occurred while fetching profile")
		return
	}

	writeJSON(w, http.StatusOK, student)
}
