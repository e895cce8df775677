// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contact accepts contact-form submissions. Whether a submission is
// accepted, stored and emailed is decided per call by the portfolio
// settings. Notification runs in the background and can never fail or delay
// a submission.
package contact

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"folio/internal/models"
)

// ErrFormDisabled is returned when the contact form is switched off.
var ErrFormDisabled = errors.New("contact form is disabled")

// ErrNotFound is returned when an admin operation targets a missing message.
var ErrNotFound = errors.New("contact not found")

// AckMessage is the acknowledgement text returned when storage is off.
const AckMessage = "Message sent successfully"

// DefaultNotifyTimeout bounds a background notification.
const DefaultNotifyTimeout = 30 * time.Second

// Input is a public contact submission.
type Input struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Ack is the response body when a submission was accepted but not stored.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Result is either the stored Contact or an Ack, never both.
type Result struct {
	Contact *models.Contact
	Ack     *Ack
}

// MarshalJSON encodes whichever of the two shapes is set.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Contact != nil {
		return json.Marshal(r.Contact)
	}
	return json.Marshal(r.Ack)
}

// Repository persists contact messages.
type Repository interface {
	Create(c *models.Contact) (*models.Contact, error)
	List() ([]models.Contact, error)
	MarkRead(id int64) (*models.Contact, error)
	Delete(id int64) (bool, error)
	UnreadCount() (int, error)
}

// Notifier delivers a notification about a submission and reports success.
// It must not panic on delivery failures.
type Notifier interface {
	Notify(ctx context.Context, s *models.Settings, c *models.Contact) bool
}

// Pipeline runs submissions through the settings gates.
type Pipeline struct {
	repo          Repository
	notifier      Notifier
	NotifyTimeout time.Duration

	wg sync.WaitGroup
}

// NewPipeline creates a Pipeline.
func NewPipeline(repo Repository, notifier Notifier) *Pipeline {
	return &Pipeline{repo: repo, notifier: notifier, NotifyTimeout: DefaultNotifyTimeout}
}

// Submit accepts a contact submission under the given settings. Nil
// settings mean the defaults: form on, storage on, email off.
//
// A disabled form is rejected before any side effect. When storage is on the
// message is saved with clientIP and returned; otherwise an Ack is returned.
// When email is on a notification is dispatched in the background and its
// outcome is only logged.
func (p *Pipeline) Submit(ctx context.Context, settings *models.Settings, in Input, clientIP string) (Result, error) {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if !settings.EnableContactForm {
		return Result{}, ErrFormDisabled
	}

	c := &models.Contact{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   in.Message,
		IPAddress: clientIP,
	}

	var result Result
	if settings.EnableDatabaseStorage {
		saved, err := p.repo.Create(c)
		if err != nil {
			return Result{}, err
		}
		result.Contact = saved
		c = saved
		slog.Info("contact stored", "id", saved.ID, "ip", clientIP)
	} else {
		result.Ack = &Ack{Success: true, Message: AckMessage}
	}

	if settings.EnableEmailSending {
		p.dispatch(settings, c)
	}
	return result, nil
}

// dispatch notifies in a goroutine detached from the request context, with
// copies of its inputs so later edits cannot race with delivery.
func (p *Pipeline) dispatch(settings *models.Settings, c *models.Contact) {
	s := *settings
	msg := *c
	timeout := p.NotifyTimeout
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("contact notification panicked", "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if !p.notifier.Notify(ctx, &s, &msg) {
			slog.Warn("contact notification not delivered", "email", msg.Email)
		}
	}()
}

// Wait blocks until all in-flight notifications have finished.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// List returns all stored messages, newest first.
func (p *Pipeline) List() ([]models.Contact, error) {
	items, err := p.repo.List()
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Contact{}
	}
	return items, nil
}

// MarkRead flags a message as read and returns it.
func (p *Pipeline) MarkRead(id int64) (*models.Contact, error) {
	c, err := p.repo.MarkRead(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// Delete removes a message.
func (p *Pipeline) Delete(id int64) error {
	ok, err := p.repo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// UnreadCount returns the number of unread messages.
func (p *Pipeline) UnreadCount() (int, error) {
	return p.repo.UnreadCount()
}
