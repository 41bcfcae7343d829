package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/campusgate/campusgate/internal/model"
	"github.com/campusgate/campusgate/internal/store"
)

var (
	// ErrInvalidEmail is returned when an email fails format validation.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidMobile is returned when a mobile number is not 10 digits.
	ErrInvalidMobile = errors.New("invalid mobile number")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidAdminCredentials covers both an unknown username and a
	// wrong admin password.
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials")
)

var (
	emailPattern  = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*@([\w-]+\.)+[a-zA-Z]{2,7}$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// AccountService implements signup, password login, Google sign-in, and
// admin login over the credential store.
type AccountService struct {
	store         *store.Store
	verifier      IdentityVerifier
	studentTokens *TokenIssuer
	adminTokens   *TokenIssuer
	logger        *slog.Logger
}

// NewAccountService creates an AccountService. The two token issuers must
// carry distinct secrets so student and admin tokens are not interchangeable.
func NewAccountService(st *store.Store, verifier IdentityVerifier, studentTokens, adminTokens *TokenIssuer, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:         st,
		verifier:      verifier,
		studentTokens: studentTokens,
		adminTokens:   adminTokens,
		logger:        logger,
	}
}

// SignUp registers a new student account. It validates the email and mobile
// formats, rejects duplicates (*store.ConflictError, with "both" taking
// precedence over "email" over "mobile"), and stores only a bcrypt hash of
// the password. No token is issued; the client logs in separately.
func (s *AccountService) SignUp(ctx context.Context, name, email, mobile, password string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if !mobilePattern.MatchString(mobile) {
		return ErrInvalidMobile
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	student := &model.Student{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Mobile:       mobile,
		IsGoogleUser: false,
	}
	return s.store.CreateStudent(ctx, student)
}

// Login verifies a student's password and returns a bearer token bound to
// the account ID. An unknown email and a wrong password produce the same
// ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	student, err := s.store.GetStudentByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !CheckPassword(password, student.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.studentTokens.Issue(student.ID)
}

// GoogleLogin verifies a Google ID token, finds or creates the matching
// student account, and returns a bearer token for it. A first sign-in
// creates the account with a random throwaway password and no mobile; a
// later sign-in for a password-created account marks it Google-linked
// (best effort; an update failure is logged, not fatal).
func (s *AccountService) GoogleLogin(ctx context.Context, rawToken string) (string, error) {
	identity, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", err
	}

	student, err := s.store.GetStudentByEmail(ctx, identity.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		hash, err := HashPassword(randomPassword())
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		student = &model.Student{
			Name:         identity.Name,
			Email:        identity.Email,
			PasswordHash: hash,
			IsGoogleUser: true,
		}
		if err := s.store.CreateStudent(ctx, student); err != nil {
			var conflict *store.ConflictError
			if errors.As(err, &conflict) {
				// Lost a race against a concurrent first sign-in for the
				// same email; the account now exists, so use it.
				student, err = s.store.GetStudentByEmail(ctx, identity.Email)
				if err != nil {
					return "", err
				}
			} else {
				return "", err
			}
		}

	case err != nil:
		return "", err

	default:
		if !student.IsGoogleUser {
			if err := s.store.MarkGoogleUser(ctx, student.ID); err != nil {
				s.logger.Warn("failed to mark account as google user",
					"student_id", student.ID, "error", err)
			}
		}
	}

	return s.studentTokens.Issue(student.ID)
}

// AdminLogin verifies an admin's password against the stored bcrypt hash and
// returns a bearer token signed with the admin secret.
func (s *AccountService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	admin, err := s.store.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidAdminCredentials
		}
		return "", err
	}

	if !CheckPassword(password, admin.PasswordHash) {
		return "", ErrInvalidAdminCredentials
	}

	return s.adminTokens.Issue(admin.ID)
}

// VerifyStudentToken returns the student ID a bearer token binds, or
// ErrInvalidToken.
func (s *AccountService) VerifyStudentToken(token string) (int64, error) {
	return s.studentTokens.Verify(token)
}

// ValidEmail reports whether an email matches the accepted format.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// randomPassword generates a throwaway password for Google-created accounts.
// It is never shown to anyone; those accounts authenticate via Google.
func randomPassword() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(b)
}
