// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credstore keeps the user accounts allowed to call the server.
package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingCredentials is returned when a username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrUnknownUser is returned by CheckLogin for a username with no account.
	ErrUnknownUser = errors.New("no user with that name")

	// ErrWrongPassword is returned by CheckLogin when the password does not match.
	ErrWrongPassword = errors.New("wrong password")

	// ErrNotFound is returned by Delete for a username with no account.
	ErrNotFound = errors.New("user not found")
)

// Store is a SQLite-backed table of usernames and bcrypt password hashes.
type Store struct {
	db   *sql.DB
	cost int
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed. ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, cost: bcrypt.DefaultCost}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	return err
}

// Put creates the account or replaces its password.
func (s *Store) Put(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	hashed, err := hashPassword(password, s.cost)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO users (username, password) VALUES (?, ?)
		ON CONFLICT(username) DO UPDATE SET password = excluded.password, updated_at = datetime('now')`,
		username, hashed)
	if err != nil {
		return fmt.Errorf("saving user %q: %w", username, err)
	}
	return nil
}

// Delete removes the account.
func (s *Store) Delete(ctx context.Context, username string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("deleting user %q: %w", username, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every username in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// CheckLogin verifies username and password. Usernames match exactly.
func (s *Store) CheckLogin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	var stored string
	err := s.db.QueryRowContext(ctx, `SELECT password FROM users WHERE username = ?`, username).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUnknownUser
	}
	if err != nil {
		return fmt.Errorf("looking up user %q: %w", username, err)
	}
	if !verifyPassword(stored, password) {
		return ErrWrongPassword
	}
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// verifyPassword reports whether password matches the stored bcrypt hash.
// Malformed hashes never match.
func verifyPassword(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
