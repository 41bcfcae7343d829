package model

// ErrorResponse is the standard envelope for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the envelope for endpoints that acknowledge success
// without returning a resource (signup, enquiry form).
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by the student login and Google sign-in
// endpoints.
type TokenResponse struct {
	Message   string `json:"message"`
	AuthToken string `json:"authToken"`
}

// AdminTokenResponse is returned by the admin login endpoint. The field name
// follows the existing frontend contract.
type AdminTokenResponse struct {
	Message   string `json:"message"`
	AuthToken string `json:"authToken1"`
}
