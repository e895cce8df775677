// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"folio/internal/models"
)

// SettingsRepo is the settings persistence used by handlers.
type SettingsRepo interface {
	Get() (*models.Settings, error)
	Save(st *models.Settings) (*models.Settings, error)
}

// Settings serves the site-wide portfolio settings.
type Settings struct {
	store SettingsRepo
}

// NewSettings creates a Settings handler group.
func NewSettings(store SettingsRepo) *Settings {
	return &Settings{store: store}
}

// load returns the stored settings, or the defaults before the first save.
func (s *Settings) load() (*models.Settings, error) {
	st, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	if st == nil {
		return models.DefaultSettings(), nil
	}
	return st, nil
}

// Get returns the public view of the settings: SMTP credentials omitted.
func (s *Settings) Get(w http.ResponseWriter, r *http.Request) {
	st, err := s.load()
	if err != nil {
		respondError(w, err, "get settings")
		return
	}
	writeJSON(w, http.StatusOK, st.Public())
}

// AdminGet returns the settings for editing. The SMTP password is never sent back.
func (s *Settings) AdminGet(w http.ResponseWriter, r *http.Request) {
	st, err := s.load()
	if err != nil {
		respondError(w, err, "get settings")
		return
	}
	st.SMTPPass = ""
	writeJSON(w, http.StatusOK, st)
}

// Update merges the request over the stored settings. An empty smtp_pass
// keeps the stored password, since it is never sent to clients.
func (s *Settings) Update(w http.ResponseWriter, r *http.Request) {
	st, err := s.load()
	if err != nil {
		respondError(w, err, "update settings")
		return
	}
	storedPass := st.SMTPPass
	if !decodeValid(w, r, st, "update settings") {
		return
	}
	if st.SMTPPass == "" {
		st.SMTPPass = storedPass
	}

	saved, err := s.store.Save(st)
	if err != nil {
		respondError(w, err, "update settings")
		return
	}
	slog.Info("settings updated",
		"contact_form", saved.EnableContactForm,
		"database_storage", saved.EnableDatabaseStorage,
		"email_sending", saved.EnableEmailSending,
	)
	saved.SMTPPass = ""
	writeJSON(w, http.StatusOK, saved)
}
