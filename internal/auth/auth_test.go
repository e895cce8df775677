// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/models"
)

var admin = &models.User{ID: 7, Username: "admin", Email: "admin@example.com"}

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	raw, issued, err := tokens.Issue(admin)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID())
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokensHaveUniqueIDs(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	_, a, err := tokens.Issue(admin)
	require.NoError(t, err)
	_, b, err := tokens.Issue(admin)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParseRejects(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	raw, _, err := tokens.Issue(admin)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokens("other-secret", time.Hour).Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, _, err := NewTokens("test-secret", -time.Minute).Issue(admin)
		require.NoError(t, err)
		_, err = tokens.Parse(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(raw, ".")
		require.Len(t, parts, 3)
		_, err := tokens.Parse(parts[0] + "." + parts[1] + "x." + parts[2])
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "7", ID: "x"},
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tokens.Parse(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestEnrollmentAndValidate(t *testing.T) {
	e, err := NewEnrollment("admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, e.Secret)
	assert.True(t, strings.HasPrefix(e.OTPAuthURL, "otpauth://totp/"))

	png, err := base64.StdEncoding.DecodeString(e.QRCode)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))

	code, err := totp.GenerateCode(e.Secret, time.Now())
	require.NoError(t, err)
	assert.True(t, ValidateCode(code, e.Secret))
	assert.False(t, ValidateCode("000000x", e.Secret))
	assert.False(t, ValidateCode("", e.Secret))
	assert.False(t, ValidateCode(code, ""))
}
