// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"folio/internal/models"
)

// UserStore persists the admin account and its second factor.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// dummyHash is compared against when the username is unknown, so a login
// attempt costs one bcrypt comparison whether or not the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("folio-no-such-user"), bcrypt.DefaultCost)

const userColumns = `id, username, email, password_hash, totp_secret, totp_enabled, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// findOne returns the user matching where, or nil.
func (s *UserStore) findOne(where string, arg any) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	u, err := s.findOne(`username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return u, nil
}

func (s *UserStore) FindByID(id int64) (*models.User, error) {
	u, err := s.findOne(`id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return u, nil
}

// Create inserts a user with a bcrypt hash of password. A taken username
// yields ErrDuplicate.
func (s *UserStore) Create(username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := scanUser(s.db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		username, email, string(hash),
	))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", mapUnique(err))
	}
	return u, nil
}

// SetTOTPSecret stores a pending secret. 2FA stays off until EnableTOTP.
func (s *UserStore) SetTOTPSecret(userID int64, secret string) error {
	return s.updateTOTP(userID, "set totp secret",
		`UPDATE users SET totp_secret = $2, totp_enabled = FALSE, updated_at = NOW() WHERE id = $1`, secret)
}

// EnableTOTP turns 2FA on. It fails with ErrStaleID when no secret is pending.
func (s *UserStore) EnableTOTP(userID int64) error {
	return s.updateTOTP(userID, "enable totp",
		`UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1 AND totp_secret IS NOT NULL`)
}

// ResetTOTP drops the secret and turns 2FA off.
func (s *UserStore) ResetTOTP(userID int64) error {
	return s.updateTOTP(userID, "reset totp",
		`UPDATE users SET totp_secret = NULL, totp_enabled = FALSE, updated_at = NOW() WHERE id = $1`)
}

func (s *UserStore) updateTOTP(userID int64, action, query string, args ...any) error {
	res, err := s.db.Exec(query, append([]any{userID}, args...)...)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if err := checkAffected(res, userID); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

// CheckPassword reports whether password matches user's hash. A nil user
// is checked against a dummy hash and always fails.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	hash := dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	ok := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	return ok && user != nil
}
