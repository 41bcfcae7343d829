package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campusgate/campusgate/internal/service"
	"github.com/campusgate/campusgate/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st, err := store.New(store.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := service.NewAccountService(st, nil,
		service.NewTokenIssuer("student-secret", time.Hour),
		service.NewTokenIssuer("admin-secret", time.Hour),
		logger)

	return New(DefaultConfig(), st, accounts, logger)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestReadyz(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/readyz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestRoutesWired(t *testing.T) {
	srv := newTestServer(t)

	// Each POST route should respond with a handler-level error for an empty
	// body, never a 404 or 405.
	for _, path := range []string{"/signup", "/login", "/google-auth", "/api/adminlogin", "/api/enquiryForm"} {
		rr := httptest.NewRecorder()
		srv.ServeHTTP(rr, httptest.NewRequest("POST", path, strings.NewReader("{}")))
		if rr.Code == http.StatusNotFound || rr.Code == http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, route not wired", path, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/api/getEnquiries", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("/api/getEnquiries: status = %d, want 200", rr.Code)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/api/profile", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not set on response")
	}
}
