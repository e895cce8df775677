// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mail sends contact notifications and SMTP test messages.
package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	gomail "github.com/wneessen/go-mail"

	"folio/internal/models"
)

const (
	defaultFrom     = `"Portfolio Contact" <no-reply@portfolio.com>`
	defaultTestFrom = `"Test" <no-reply@test.com>`
	noSubject       = "Sin asunto"
	testSubject     = "Test de configuración SMTP - Portfolio"
)

// DefaultTimeout bounds a single SMTP conversation.
const DefaultTimeout = 15 * time.Second

// Transport is the SMTP connection a message is sent over.
type Transport struct {
	Host       string
	Port       int
	User       string
	Pass       string
	Secure     bool // implicit TLS (usually port 465)
	RequireTLS bool // verify certificates and refuse plaintext
}

// TestConfig is an ad-hoc SMTP configuration supplied by the admin to check
// connectivity before saving it.
type TestConfig struct {
	Host       string `json:"host" validate:"required,hostname_rfc1123|ip"`
	Port       int    `json:"port" validate:"omitempty,min=1,max=65535"`
	User       string `json:"user"`
	Pass       string `json:"pass"`
	Secure     bool   `json:"secure"`
	RequireTLS *bool  `json:"require_tls"`
	From       string `json:"from"`
	To         string `json:"to" validate:"required,email"`
}

// Mailer builds a client per message from the supplied settings, so
// configuration changes take effect without a restart.
type Mailer struct {
	Timeout time.Duration
}

// New returns a Mailer with the default timeout.
func New() *Mailer {
	return &Mailer{Timeout: DefaultTimeout}
}

// Notify emails the site owner about a contact submission. It never returns
// an error: every failure is logged and reported as false.
func (m *Mailer) Notify(ctx context.Context, s *models.Settings, c *models.Contact) bool {
	if s == nil || !s.EnableEmailSending {
		slog.Warn("contact notification skipped", "reason", "email sending disabled")
		return false
	}
	if s.SMTPHost == "" {
		slog.Warn("contact notification skipped", "reason", "smtp host not configured")
		return false
	}
	if s.Email == "" {
		slog.Warn("contact notification skipped", "reason", "no recipient email configured")
		return false
	}

	subject := c.Subject
	if subject == "" {
		subject = noSubject
	}
	body, err := render(notificationTmpl, notificationData{
		Name: c.Name, Email: c.Email, Subject: subject, Message: c.Message,
	})
	if err != nil {
		slog.Error("render contact notification", "error", err)
		return false
	}

	from := s.SMTPFrom
	if from == "" {
		from = defaultFrom
	}
	msg, err := newMessage(from, s.Email, "[Portfolio] Nuevo mensaje: "+subject, body)
	if err == nil {
		err = msg.ReplyTo(c.Email)
	}
	if err != nil {
		slog.Error("build contact notification", "error", err)
		return false
	}

	t := Transport{
		Host: s.SMTPHost, Port: s.Port(), User: s.SMTPUser, Pass: s.SMTPPass,
		Secure: s.SMTPSecure, RequireTLS: s.SMTPRequireTLS,
	}
	if err := m.send(ctx, t, msg); err != nil {
		slog.Error("contact notification failed", "host", s.SMTPHost, "error", err)
		return false
	}
	slog.Info("contact notification sent", "to", s.Email)
	return true
}

// SendTest sends a fixed diagnostic message using cfg. Unlike Notify, any
// failure is returned to the caller.
func (m *Mailer) SendTest(ctx context.Context, cfg TestConfig) error {
	port := cfg.Port
	if port == 0 {
		port = models.DefaultSMTPPort
	}
	requireTLS := true
	if cfg.RequireTLS != nil {
		requireTLS = *cfg.RequireTLS
	}

	body, err := render(testTmpl, testData{Host: cfg.Host, Port: port, Secure: cfg.Secure})
	if err != nil {
		return err
	}
	from := cfg.From
	if from == "" {
		from = defaultTestFrom
	}
	msg, err := newMessage(from, cfg.To, testSubject, body)
	if err != nil {
		return err
	}

	t := Transport{
		Host: cfg.Host, Port: port, User: cfg.User, Pass: cfg.Pass,
		Secure: cfg.Secure, RequireTLS: requireTLS,
	}
	if err := m.send(ctx, t, msg); err != nil {
		slog.Warn("smtp test failed", "host", cfg.Host, "port", port, "error", err)
		return err
	}
	slog.Info("smtp test sent", "host", cfg.Host, "to", cfg.To)
	return nil
}

func newMessage(from, to, subject, html string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, html)
	return msg, nil
}

// clientOptions translates a Transport into go-mail client options.
// connPlan is the resolved connection behaviour for a Transport.
type connPlan struct {
	port      int
	timeout   time.Duration
	ssl       bool
	policy    gomail.TLSPolicy
	verify    bool
	plainAuth bool
}

func (m *Mailer) plan(t Transport) connPlan {
	p := connPlan{
		port:      t.Port,
		timeout:   m.Timeout,
		ssl:       t.Secure,
		policy:    gomail.TLSOpportunistic,
		verify:    t.RequireTLS,
		plainAuth: t.User != "",
	}
	if p.port == 0 {
		p.port = models.DefaultSMTPPort
	}
	if p.timeout <= 0 {
		p.timeout = DefaultTimeout
	}
	if t.RequireTLS {
		p.policy = gomail.TLSMandatory
	}
	return p
}

func (m *Mailer) clientOptions(t Transport) []gomail.Option {
	p := m.plan(t)
	opts := []gomail.Option{
		gomail.WithPort(p.port),
		gomail.WithTimeout(p.timeout),
		gomail.WithTLSConfig(&tls.Config{
			ServerName:         t.Host,
			InsecureSkipVerify: !p.verify,
			MinVersion:         tls.VersionTLS12,
		}),
	}
	if p.ssl {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(p.policy))
	}
	if p.plainAuth {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(t.User),
			gomail.WithPassword(t.Pass),
		)
	}
	return opts
}

func (m *Mailer) send(ctx context.Context, t Transport, msg *gomail.Msg) error {
	client, err := gomail.NewClient(t.Host, m.clientOptions(t)...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render mail: %w", err)
	}
	return buf.String(), nil
}
