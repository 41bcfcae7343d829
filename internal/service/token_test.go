package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	id, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != 42 {
		t.Errorf("subject id = %d, want 42", id)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	students := NewTokenIssuer("student-secret", time.Hour)
	admins := NewTokenIssuer("admin-secret", time.Hour)

	studentToken, err := students.Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	adminToken, err := admins.Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := admins.Verify(studentToken); err != ErrInvalidToken {
		t.Errorf("student token against admin secret: got %v, want ErrInvalidToken", err)
	}
	if _, err := students.Verify(adminToken); err != ErrInvalidToken {
		t.Errorf("admin token against student secret: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Hour)

	token, err := issuer.Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := issuer.Verify(token); err != ErrInvalidToken {
		t.Errorf("expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(raw); err != ErrInvalidToken {
			t.Errorf("Verify(%q): got %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestTokenWithoutExpiryRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	// Hand-craft a token signed with the right secret but no exp claim.
	claims := tokenClaims{UserID: 7}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Verify(raw); err != ErrInvalidToken {
		t.Errorf("token without exp: got %v, want ErrInvalidToken", err)
	}
}
