// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// SettingsID is the primary key of the single portfolio_settings row.
const SettingsID = 1

// DefaultSMTPPort is used when the stored SMTP port is zero.
const DefaultSMTPPort = 587

// Settings is the singleton portfolio configuration row. Besides the
// site presentation fields it carries the toggles and SMTP connection
// parameters of the contact pipeline.
type Settings struct {
	ID              int64  `json:"id"`
	SiteTitle       string `json:"site_title" validate:"max=200"`
	MainPhotoURL    string `json:"main_photo_url" validate:"omitempty,max=500,uri"`
	HeroBackground  string `json:"hero_background_url" validate:"omitempty,max=500,uri"`
	SEOImageURL     string `json:"seo_image_url" validate:"omitempty,max=500,uri"`
	MetaDescription string `json:"meta_description" validate:"max=500"`
	LinkedInURL     string `json:"linkedin_url" validate:"omitempty,max=500,http_url"`
	GitHubURL       string `json:"github_url" validate:"omitempty,max=500,http_url"`
	Email           string `json:"email" validate:"omitempty,email"`
	FaviconType     string `json:"favicon_type" validate:"omitempty,oneof=terminal code rocket star briefcase user"`
	AccentColor     string `json:"accent_color" validate:"omitempty,hexcolor"`
	ShowAdminLink   bool   `json:"show_admin_link"`

	EnableContactForm     bool `json:"enable_contact_form"`
	EnableDatabaseStorage bool `json:"enable_database_storage"`
	EnableEmailSending    bool `json:"enable_email_sending"`

	SMTPHost       string `json:"smtp_host" validate:"omitempty,hostname_rfc1123|ip"`
	SMTPPort       int    `json:"smtp_port" validate:"omitempty,min=1,max=65535"`
	SMTPUser       string `json:"smtp_user"`
	SMTPPass       string `json:"smtp_pass,omitempty"`
	SMTPSecure     bool   `json:"smtp_secure"`
	SMTPRequireTLS bool   `json:"smtp_require_tls"`
	SMTPFrom       string `json:"smtp_from" validate:"max=320"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings returns the values assumed when no settings row exists:
// the form and storage are on, e-mail sending is off.
func DefaultSettings() *Settings {
	return &Settings{
		ID:                    SettingsID,
		SiteTitle:             "Portfolio",
		FaviconType:           "terminal",
		AccentColor:           DefaultCategoryColor,
		EnableContactForm:     true,
		EnableDatabaseStorage: true,
		EnableEmailSending:    false,
		SMTPPort:              DefaultSMTPPort,
		SMTPRequireTLS:        true,
	}
}

// Public returns a copy safe to expose on unauthenticated endpoints.
func (s *Settings) Public() *Settings {
	c := *s
	c.SMTPPass = ""
	c.SMTPUser = ""
	return &c
}

// Port returns the SMTP port, falling back to DefaultSMTPPort.
func (s *Settings) Port() int {
	if s.SMTPPort == 0 {
		return DefaultSMTPPort
	}
	return s.SMTPPort
}
