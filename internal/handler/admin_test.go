package handler

import (
	"net/http"
	"testing"

	"github.com/campusgate/campusgate/internal/model"
)

func TestAdminLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "registrar", "adminpw123")

	body := toJSON(t, map[string]string{"username": "registrar", "password": "adminpw123"})
	rr := env.do(t, "POST", "/api/adminlogin", body)
	assertStatus(t, rr, http.StatusOK)

	var resp model.AdminTokenResponse
	decodeJSON(t, rr, &resp)
	if resp.Message != "Admin login successfully" {
		t.Errorf("message = %q, want %q", resp.Message, "Admin login successfully")
	}
	if resp.AuthToken == "" {
		t.Error("expected non-empty authToken1")
	}

	// The admin token must not pass student verification.
	if _, err := env.accounts.VerifyStudentToken(resp.AuthToken); err == nil {
		t.Error("admin token verified against the student secret")
	}
}

func TestAdminLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "registrar", "adminpw123")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "registrar", "wrong"},
		{"unknown username", "nobody", "adminpw123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := toJSON(t, map[string]string{"username": tt.username, "password": tt.password})
			rr := env.do(t, "POST", "/api/adminlogin", body)
			assertStatus(t, rr, http.StatusBadRequest)
			if msg := errorMessage(t, rr); msg != "Invalid admin credentials" {
				t.Errorf("error = %q, want %q", msg, "Invalid admin credentials")
			}
		})
	}
}

func TestAdminLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "POST", "/api/adminlogin", toJSON(t, map[string]string{"username": "registrar"}))
	assertStatus(t, rr, http.StatusBadRequest)
}
