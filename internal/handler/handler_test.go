package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusgate/campusgate/internal/model"
	"github.com/campusgate/campusgate/internal/server/middleware"
	"github.com/campusgate/campusgate/internal/service"
	"github.com/campusgate/campusgate/internal/store"
)

// stubVerifier is an IdentityVerifier returning a fixed identity or error.
type stubVerifier struct {
	identity *service.Identity
	err      error
}

func (v *stubVerifier) Verify(ctx context.Context, rawToken string) (*service.Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

// testEnv holds shared state for handler integration tests.
type testEnv struct {
	store    *store.Store
	accounts *service.AccountService
	verifier *stubVerifier
	router   chi.Router
}

// newTestEnv creates a fresh environment with an in-memory store and a chi
// router with all public routes mounted.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.New(store.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	verifier := &stubVerifier{err: service.ErrInvalidIdentityToken}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := service.NewAccountService(
		st,
		verifier,
		service.NewTokenIssuer("test-student-secret", time.Hour),
		service.NewTokenIssuer("test-admin-secret", time.Hour),
		logger,
	)

	authHandler := NewAuthHandler(accounts, st, logger)
	adminHandler := NewAdminHandler(accounts, logger)
	enquiryHandler := NewEnquiryHandler(st, logger)

	r := chi.NewRouter()
	r.Post("/signup", authHandler.SignUp)
	r.Post("/login", authHandler.Login)
	r.Post("/google-auth", authHandler.GoogleAuth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/adminlogin", adminHandler.Login)
		r.Post("/enquiryForm", enquiryHandler.Submit)
		r.Get("/getEnquiries", enquiryHandler.List)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(accounts))
			r.Get("/profile", authHandler.Profile)
		})
	})

	return &testEnv{
		store:    st,
		accounts: accounts,
		verifier: verifier,
		router:   r,
	}
}

// seedStudent registers a student through the account service and returns it.
func (e *testEnv) seedStudent(t *testing.T, email, mobile, password string) *model.Student {
	t.Helper()
	if err := e.accounts.SignUp(context.Background(), "Test Student", email, mobile, password); err != nil {
		t.Fatalf("seedStudent: %v", err)
	}
	st, err := e.store.GetStudentByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("seedStudent lookup: %v", err)
	}
	return st
}

// seedAdmin creates an admin account with a bcrypt password hash.
func (e *testEnv) seedAdmin(t *testing.T, username, password string) *model.Admin {
	t.Helper()
	hash, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("seedAdmin hash: %v", err)
	}
	admin := &model.Admin{Username: username, PasswordHash: hash}
	if err := e.store.CreateAdmin(context.Background(), admin); err != nil {
		t.Fatalf("seedAdmin: %v", err)
	}
	return admin
}

// do executes an HTTP request against the test router.
func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, headers ...[2]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		req.Header.Set(h[0], h[1])
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func toJSON(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("toJSON: %v", err)
	}
	return buf
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rr.Code, want, rr.Body.String())
	}
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decodeJSON: %v; body = %s", err, rr.Body.String())
	}
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp model.ErrorResponse
	decodeJSON(t, rr, &resp)
	return resp.Error
}
