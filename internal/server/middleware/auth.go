package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/campusgate/campusgate/internal/service"
)

// studentIDKey is the context key for the authenticated student's ID.
const studentIDKey contextKey = "student_id"

// Authenticate validates the Authorization: Bearer token against the student
// token issuer and attaches the student ID to the request context. Requests
// without a valid token get a 401 JSON error.
func Authenticate(accounts *service.AccountService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, "Authentication required")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			studentID, err := accounts.VerifyStudentToken(token)
			if err != nil {
				writeAuthError(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), studentIDKey, studentID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetStudentID extracts the authenticated student's ID from the context.
// The second return is false for unauthenticated requests.
func GetStudentID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(studentIDKey).(int64)
	return id, ok
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	// Constructed by hand to avoid an import cycle with the handler package.
	w.Write([]byte(`{"error":"` + message + `"}`))
}
