// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
)

// SettingsStore manages the singleton portfolio_settings row.
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore returns a new SettingsStore backed by the given database.
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

const settingsColumns = `id, site_title, main_photo_url, hero_background_url, seo_image_url,
	meta_description, linkedin_url, github_url, email, favicon_type, accent_color, show_admin_link,
	enable_contact_form, enable_database_storage, enable_email_sending,
	smtp_host, smtp_port, smtp_user, smtp_pass, smtp_secure, smtp_require_tls, smtp_from,
	created_at, updated_at`

func scanSettings(scanner interface{ Scan(...any) error }) (*models.Settings, error) {
	var s models.Settings
	err := scanner.Scan(
		&s.ID, &s.SiteTitle, &s.MainPhotoURL, &s.HeroBackground, &s.SEOImageURL,
		&s.MetaDescription, &s.LinkedInURL, &s.GitHubURL, &s.Email, &s.FaviconType,
		&s.AccentColor, &s.ShowAdminLink,
		&s.EnableContactForm, &s.EnableDatabaseStorage, &s.EnableEmailSending,
		&s.SMTPHost, &s.SMTPPort, &s.SMTPUser, &s.SMTPPass, &s.SMTPSecure, &s.SMTPRequireTLS,
		&s.SMTPFrom, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get returns the settings row, or nil if it has not been created yet.
func (s *SettingsStore) Get() (*models.Settings, error) {
	row := s.db.QueryRow(`SELECT `+settingsColumns+` FROM portfolio_settings WHERE id = $1`, models.SettingsID)
	st, err := scanSettings(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return st, nil
}

// Save upserts the settings row. The id is always forced to 1.
func (s *SettingsStore) Save(st *models.Settings) (*models.Settings, error) {
	row := s.db.QueryRow(`
		INSERT INTO portfolio_settings (id, site_title, main_photo_url, hero_background_url,
			seo_image_url, meta_description, linkedin_url, github_url, email, favicon_type,
			accent_color, show_admin_link, enable_contact_form, enable_database_storage,
			enable_email_sending, smtp_host, smtp_port, smtp_user, smtp_pass, smtp_secure,
			smtp_require_tls, smtp_from)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22)
		ON CONFLICT (id) DO UPDATE SET
			site_title = EXCLUDED.site_title,
			main_photo_url = EXCLUDED.main_photo_url,
			hero_background_url = EXCLUDED.hero_background_url,
			seo_image_url = EXCLUDED.seo_image_url,
			meta_description = EXCLUDED.meta_description,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			email = EXCLUDED.email,
			favicon_type = EXCLUDED.favicon_type,
			accent_color = EXCLUDED.accent_color,
			show_admin_link = EXCLUDED.show_admin_link,
			enable_contact_form = EXCLUDED.enable_contact_form,
			enable_database_storage = EXCLUDED.enable_database_storage,
			enable_email_sending = EXCLUDED.enable_email_sending,
			smtp_host = EXCLUDED.smtp_host,
			smtp_port = EXCLUDED.smtp_port,
			smtp_user = EXCLUDED.smtp_user,
			smtp_pass = EXCLUDED.smtp_pass,
			smtp_secure = EXCLUDED.smtp_secure,
			smtp_require_tls = EXCLUDED.smtp_require_tls,
			smtp_from = EXCLUDED.smtp_from,
			updated_at = NOW()
		RETURNING `+settingsColumns,
		models.SettingsID, st.SiteTitle, st.MainPhotoURL, st.HeroBackground,
		st.SEOImageURL, st.MetaDescription, st.LinkedInURL, st.GitHubURL, st.Email, st.FaviconType,
		st.AccentColor, st.ShowAdminLink, st.EnableContactForm, st.EnableDatabaseStorage,
		st.EnableEmailSending, st.SMTPHost, st.Port(), st.SMTPUser, st.SMTPPass, st.SMTPSecure,
		st.SMTPRequireTLS, st.SMTPFrom,
	)
	saved, err := scanSettings(row)
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return saved, nil
}
