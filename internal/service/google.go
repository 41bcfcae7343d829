package service

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// ErrInvalidIdentityToken is returned when a Google ID token fails signature,
// audience, or expiry validation.
var ErrInvalidIdentityToken = errors.New("invalid identity token")

// Identity is the verified subject extracted from a Google ID token.
type Identity struct {
	Email string
	Name  string
}

// IdentityVerifier validates a third-party identity token and extracts the
// verified email and display name.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// GoogleVerifier validates Google-issued ID tokens against Google's public
// keys. The keys are fetched and cached by the idtoken package.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a verifier that accepts only tokens issued for
// the given OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify validates the token's signature, expiry, and audience. Tokens not
// issued for the configured client ID are rejected.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, ErrInvalidIdentityToken
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, ErrInvalidIdentityToken
	}

	return &Identity{Email: email, Name: name}, nil
}
