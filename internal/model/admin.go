package model

// Admin represents an administrative user in the adminlog table. Admins are
// provisioned through the CLI, never through the public API. Passwords are
// stored as bcrypt hashes.
type Admin struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"` // bcrypt hash, never expose
}
