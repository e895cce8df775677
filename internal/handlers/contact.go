// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"folio/internal/contact"
	"folio/internal/mail"
	"folio/internal/middleware"
)

// TestMailer sends the interactive SMTP diagnostic message.
type TestMailer interface {
	SendTest(ctx context.Context, cfg mail.TestConfig) error
}

// Contact groups the public contact form and the admin inbox handlers.
type Contact struct {
	pipeline *contact.Pipeline
	settings SettingsRepo
	mailer   TestMailer
}

// NewContact creates a Contact handler group.
func NewContact(pipeline *contact.Pipeline, settings SettingsRepo, mailer TestMailer) *Contact {
	return &Contact{pipeline: pipeline, settings: settings, mailer: mailer}
}

// Submit runs a public contact submission through the pipeline. The
// current settings are read per request so admin toggles apply at once.
func (c *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	var in contact.Input
	if !decodeValid(w, r, &in, "contact submit") {
		return
	}

	settings, err := c.settings.Get()
	if err != nil {
		respondError(w, err, "load settings")
		return
	}

	result, err := c.pipeline.Submit(r.Context(), settings, in, middleware.ClientIP(r))
	if err != nil {
		respondError(w, err, "contact submit")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (c *Contact) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.pipeline.List()
	if err != nil {
		respondError(w, err, "list contacts")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *Contact) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "mark contact read")
		return
	}
	msg, err := c.pipeline.MarkRead(id)
	if err != nil {
		respondError(w, err, "mark contact read")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (c *Contact) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "delete contact")
		return
	}
	if err := c.pipeline.Delete(id); err != nil {
		respondError(w, err, "delete contact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnreadCount feeds the admin dashboard badge.
func (c *Contact) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := c.pipeline.UnreadCount()
	if err != nil {
		respondError(w, err, "count unread contacts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

// TestEmail sends a diagnostic message with the SMTP parameters in the
// body. SMTP failures are reported to the admin as 502 with the server's
// error text.
func (c *Contact) TestEmail(w http.ResponseWriter, r *http.Request) {
	var cfg mail.TestConfig
	if !decodeValid(w, r, &cfg, "test email") {
		return
	}

	if err := c.mailer.SendTest(r.Context(), cfg); err != nil {
		slog.Warn("test email failed", "host", cfg.Host, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Test email sent successfully"})
}
