package model

// Student represents a registered student account. Passwords are stored as
// bcrypt hashes. Google-created accounts carry a random throwaway password
// and no mobile number.
type Student struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"` // bcrypt hash, never expose
	Mobile       string `json:"mobile" db:"mobile"`
	IsGoogleUser bool   `json:"is_google_user" db:"is_google_user"`
}
