// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"folio/internal/auth"
	"folio/internal/middleware"
	"folio/internal/models"
)

// UserRepo is the user persistence used by Auth.
type UserRepo interface {
	FindByUsername(username string) (*models.User, error)
	FindByID(id int64) (*models.User, error)
	SetTOTPSecret(userID int64, secret string) error
	EnableTOTP(userID int64) error
	ResetTOTP(userID int64) error
	CheckPassword(user *models.User, password string) bool
}

// Revoker records logged-out token IDs.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// Auth groups the login, logout, profile and 2FA handlers.
type Auth struct {
	users   UserRepo
	tokens  *auth.Tokens
	revoker Revoker
}

// NewAuth creates an Auth handler group. revoker may be nil when Valkey is
// not configured, in which case logout is a client-side operation only.
func NewAuth(users UserRepo, tokens *auth.Tokens, revoker Revoker) *Auth {
	return &Auth{users: users, tokens: tokens, revoker: revoker}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
	OTP      string `json:"otp" validate:"omitempty,len=6,numeric"`
}

// userView is the public shape of the admin account.
type userView struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	TOTPEnabled bool   `json:"totp_enabled"`
}

func viewUser(u *models.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, TOTPEnabled: u.TOTPEnabled}
}

type loginResponse struct {
	AccessToken string   `json:"access_token"`
	User        userView `json:"user"`
}

// Login checks the credentials and issues an access token. When the admin
// has 2FA enabled, a valid otp code must accompany the password.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "login")
		return
	}
	if err := validateStruct(req); err != nil {
		respondError(w, err, "login")
		return
	}

	user, err := a.users.FindByUsername(req.Username)
	if err != nil {
		respondError(w, err, "login lookup")
		return
	}
	// CheckPassword runs even for unknown users so both failures take as long.
	if ok := a.users.CheckPassword(user, req.Password); !ok || user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if user.RequiresOTP() {
		if req.OTP == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error":        "Verification code required",
				"otp_required": true,
			})
			return
		}
		if !auth.ValidateCode(req.OTP, *user.TOTPSecret) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
	}

	token, _, err := a.tokens.Issue(user)
	if err != nil {
		respondError(w, err, "issue token")
		return
	}

	slog.Info("admin logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, User: viewUser(user)})
}

// Logout revokes the presented token until it would have expired anyway.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if a.revoker != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := a.revoker.Revoke(r.Context(), claims.ID, ttl); err != nil {
			respondError(w, err, "revoke token")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Profile returns the authenticated admin.
func (a *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewUser(user))
}

// TwoFASetup generates a new TOTP secret and returns it with a QR code.
// The secret only takes effect once confirmed through TwoFAEnable.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	if user.TOTPEnabled {
		writeError(w, http.StatusConflict, "Two-factor authentication is already enabled")
		return
	}

	enrollment, err := auth.NewEnrollment(user.Email)
	if err != nil {
		respondError(w, err, "totp setup")
		return
	}
	if err := a.users.SetTOTPSecret(user.ID, enrollment.Secret); err != nil {
		respondError(w, err, "store totp secret")
		return
	}

	writeJSON(w, http.StatusOK, enrollment)
}

type codeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// TwoFAEnable confirms the pending secret with a current code.
func (a *Auth) TwoFAEnable(w http.ResponseWriter, r *http.Request) {
	user, code, ok := a.userAndCode(w, r)
	if !ok {
		return
	}
	if user.TOTPSecret == nil {
		writeError(w, http.StatusBadRequest, "Run two-factor setup first")
		return
	}
	if !auth.ValidateCode(code, *user.TOTPSecret) {
		writeError(w, http.StatusBadRequest, "Invalid verification code")
		return
	}
	if err := a.users.EnableTOTP(user.ID); err != nil {
		respondError(w, err, "enable totp")
		return
	}

	slog.Info("2fa enabled", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"totp_enabled": true})
}

// TwoFADisable turns 2FA off after checking a current code.
func (a *Auth) TwoFADisable(w http.ResponseWriter, r *http.Request) {
	user, code, ok := a.userAndCode(w, r)
	if !ok {
		return
	}
	if !user.RequiresOTP() {
		writeError(w, http.StatusBadRequest, "Two-factor authentication is not enabled")
		return
	}
	if !auth.ValidateCode(code, *user.TOTPSecret) {
		writeError(w, http.StatusBadRequest, "Invalid verification code")
		return
	}
	if err := a.users.ResetTOTP(user.ID); err != nil {
		respondError(w, err, "reset totp")
		return
	}

	slog.Info("2fa disabled", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"totp_enabled": false})
}

// currentUser loads the user named by the request's token claims.
func (a *Auth) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	user, err := a.users.FindByID(claims.UserID())
	if err != nil {
		respondError(w, err, "load user")
		return nil, false
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return user, true
}

func (a *Auth) userAndCode(w http.ResponseWriter, r *http.Request) (*models.User, string, bool) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return nil, "", false
	}
	var req codeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode code")
		return nil, "", false
	}
	if err := validateStruct(req); err != nil {
		respondError(w, err, "decode code")
		return nil, "", false
	}
	return user, req.Code, true
}
