package store

import "fmt"

// Mobile is nullable so that Google-created accounts, which have no mobile
// number, never collide on the unique constraint.
var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS student (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL DEFAULT '',
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		mobile TEXT UNIQUE,
		is_google_user INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS adminlog (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS enquirydetails (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		mobile TEXT NOT NULL DEFAULT '',
		query TEXT NOT NULL DEFAULT '',
		date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_student_email ON student(email)`,
}

var mysqlMigrations = []string{
	`CREATE TABLE IF NOT EXISTS student (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		mobile VARCHAR(15) NULL,
		is_google_user TINYINT(1) NOT NULL DEFAULT 0,
		UNIQUE KEY uq_student_email (email),
		UNIQUE KEY uq_student_mobile (mobile)
	)`,

	`CREATE TABLE IF NOT EXISTS adminlog (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		username VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		UNIQUE KEY uq_adminlog_username (username)
	)`,

	`CREATE TABLE IF NOT EXISTS enquirydetails (
		id BIGINT PRIMARY KEY AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL,
		mobile VARCHAR(15) NOT NULL DEFAULT '',
		query TEXT NOT NULL,
		date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func (s *Store) migrate() error {
	migrations := sqliteMigrations
	if s.driver == DriverMySQL {
		migrations = mysqlMigrations
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
