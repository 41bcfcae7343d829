package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/campusgate/campusgate/internal/model"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Store persists student accounts, admin credentials, and enquiries in a
// relational database. MySQL is the production backend; SQLite serves local
// development and tests.
type Store struct {
	db     *sqlx.DB
	driver string
}

// New opens a database connection for the given driver and DSN, applies
// migrations, and returns a ready Store. Pass ":memory:" with DriverSQLite
// for an in-memory store.
func New(driver, dsn string) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ---------------------------------------------------------------------------
// Students
// ---------------------------------------------------------------------------

// studentRow maps 1:1 to the student table. Mobile is nullable in the schema
// so empty mobiles (Google accounts) never trip the unique constraint;
// model.Student exposes it as a plain string.
type studentRow struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Mobile       sql.NullString `db:"mobile"`
	IsGoogleUser bool           `db:"is_google_user"`
}

func studentRowFromModel(st *model.Student) studentRow {
	row := studentRow{
		ID:           st.ID,
		Name:         st.Name,
		Email:        st.Email,
		PasswordHash: st.PasswordHash,
		IsGoogleUser: st.IsGoogleUser,
	}
	if st.Mobile != "" {
		row.Mobile = sql.NullString{String: st.Mobile, Valid: true}
	}
	return row
}

func (r studentRow) toModel() model.Student {
	return model.Student{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Mobile:       r.Mobile.String,
		IsGoogleUser: r.IsGoogleUser,
	}
}

// CreateStudent inserts a new student account. The existence checks and the
// insert run in one transaction so two concurrent signups for the same email
// or mobile cannot both pass the checks. Collisions are reported as
// *ConflictError with the field set to "email", "mobile", or "both"; the
// both-conflict outcome takes precedence. The ID field on st is populated
// after a successful insert.
func (s *Store) CreateStudent(ctx context.Context, st *model.Student) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var emailCount int
	if err := tx.GetContext(ctx, &emailCount,
		"SELECT COUNT(*) FROM student WHERE email = ?", st.Email); err != nil {
		return fmt.Errorf("check email: %w", err)
	}

	var mobileCount int
	if st.Mobile != "" {
		if err := tx.GetContext(ctx, &mobileCount,
			"SELECT COUNT(*) FROM student WHERE mobile = ?", st.Mobile); err != nil {
			return fmt.Errorf("check mobile: %w", err)
		}
	}

	switch {
	case emailCount > 0 && mobileCount > 0:
		return &ConflictError{Field: "both"}
	case emailCount > 0:
		return &ConflictError{Field: "email"}
	case mobileCount > 0:
		return &ConflictError{Field: "mobile"}
	}

	row := studentRowFromModel(st)
	const q = `INSERT INTO student (name, email, password_hash, mobile, is_google_user)
		VALUES (:name, :email, :password_hash, :mobile, :is_google_user)`

	result, err := tx.NamedExecContext(ctx, q, row)
	if err != nil {
		// The unique constraints are the backstop for races the read-committed
		// checks above can still miss under MySQL.
		if field, ok := classifyConflict(err); ok {
			return &ConflictError{Field: field}
		}
		return fmt.Errorf("insert student: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get student id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student insert: %w", err)
	}
	st.ID = id
	return nil
}

// GetStudentByEmail returns a student by email address.
func (s *Store) GetStudentByEmail(ctx context.Context, email string) (*model.Student, error) {
	var row studentRow
	if err := s.db.GetContext(ctx, &row, "SELECT * FROM student WHERE email = ?", email); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student by email: %w", err)
	}
	st := row.toModel()
	return &st, nil
}

// GetStudent returns a student by ID.
func (s *Store) GetStudent(ctx context.Context, id int64) (*model.Student, error) {
	var row studentRow
	if err := s.db.GetContext(ctx, &row, "SELECT * FROM student WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	st := row.toModel()
	return &st, nil
}

// MarkGoogleUser sets the is_google_user flag for an existing account.
func (s *Store) MarkGoogleUser(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE student SET is_google_user = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("mark google user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark google user rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Admins
// ---------------------------------------------------------------------------

// CreateAdmin inserts a new admin credential row. The ID field on admin is
// populated after a successful insert.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	const q = `INSERT INTO adminlog (username, password_hash)
		VALUES (:username, :password_hash)`

	result, err := s.db.NamedExecContext(ctx, q, admin)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get admin id: %w", err)
	}
	admin.ID = id
	return nil
}

// GetAdminByUsername returns an admin by username.
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	if err := s.db.GetContext(ctx, &admin, "SELECT * FROM adminlog WHERE username = ?", username); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return &admin, nil
}

// ListAdmins returns all admin accounts.
func (s *Store) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := s.db.SelectContext(ctx, &admins, "SELECT * FROM adminlog ORDER BY username"); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// ---------------------------------------------------------------------------
// Enquiries
// ---------------------------------------------------------------------------

// CreateEnquiry inserts a contact-form submission. The Date field is set to
// the current time if zero.
func (s *Store) CreateEnquiry(ctx context.Context, e *model.Enquiry) error {
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}

	const q = `INSERT INTO enquirydetails (name, email, mobile, query, date)
		VALUES (:name, :email, :mobile, :query, :date)`

	result, err := s.db.NamedExecContext(ctx, q, e)
	if err != nil {
		return fmt.Errorf("insert enquiry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get enquiry id: %w", err)
	}
	e.ID = id
	return nil
}

// ListEnquiries returns all enquiries, newest first.
func (s *Store) ListEnquiries(ctx context.Context) ([]model.Enquiry, error) {
	var enquiries []model.Enquiry
	if err := s.db.SelectContext(ctx, &enquiries,
		"SELECT * FROM enquirydetails ORDER BY date DESC"); err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	return enquiries, nil
}

// classifyConflict inspects a driver error for a unique-constraint violation
// on the student table and reports which field collided.
func classifyConflict(err error) (string, bool) {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique constraint") &&
		!strings.Contains(msg, "duplicate entry") &&
		!strings.Contains(msg, "duplicate key") {
		return "", false
	}
	if strings.Contains(msg, "mobile") {
		return "mobile", true
	}
	return "email", true
}
