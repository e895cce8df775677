// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE username = $1", "storetest-user") })

	missing, err := s.FindByUsername("storetest-user")
	require.NoError(t, err)
	assert.Nil(t, missing)

	user, err := s.Create("storetest-user", "user@store-test.local", "testpass123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "testpass123", user.PasswordHash, "password hash must not be plaintext")
	assert.False(t, user.TOTPEnabled)

	found, err := s.FindByUsername("storetest-user")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	assert.True(t, s.CheckPassword(found, "testpass123"))
	assert.False(t, s.CheckPassword(found, "wrong"))

	_, err = s.Create("storetest-user", "other@store-test.local", "x")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserStoreTOTP(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE username = $1", "storetest-totp") })

	user, err := s.Create("storetest-totp", "totp@store-test.local", "testpass123")
	require.NoError(t, err)

	require.NoError(t, s.SetTOTPSecret(user.ID, "JBSWY3DPEHPK3PXP"))
	require.NoError(t, s.EnableTOTP(user.ID))

	got, err := s.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, got.RequiresOTP())

	require.NoError(t, s.ResetTOTP(user.ID))
	got, err = s.FindByID(user.ID)
	require.NoError(t, err)
	assert.False(t, got.RequiresOTP())
	assert.Nil(t, got.TOTPSecret)
}

func TestUserStoreCheckPasswordUnknownUser(t *testing.T) {
	s := &UserStore{}
	assert.False(t, s.CheckPassword(nil, "folio-no-such-user"))
}

func TestUserStoreTOTPStateChecks(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE username = $1", "storetest-totp-state") })

	user, err := s.Create("storetest-totp-state", "state@store-test.local", "testpass123")
	require.NoError(t, err)

	assert.ErrorIs(t, s.EnableTOTP(user.ID), ErrStaleID, "no pending secret")
	assert.ErrorIs(t, s.ResetTOTP(999999999), ErrStaleID)
}
