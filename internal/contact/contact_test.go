// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"folio/internal/mail"
	"folio/internal/models"
)

// memRepo is an in-memory Repository.
type memRepo struct {
	mu      sync.Mutex
	rows    []models.Contact
	failErr error
}

func (r *memRepo) Create(c *models.Contact) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	saved := *c
	saved.ID = int64(len(r.rows) + 1)
	saved.CreatedAt = time.Now()
	r.rows = append(r.rows, saved)
	return &saved, nil
}

func (r *memRepo) List() ([]models.Contact, error) { return r.rows, nil }

func (r *memRepo) MarkRead(id int64) (*models.Contact, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Read = true
			c := r.rows[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memRepo) Delete(id int64) (bool, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) UnreadCount() (int, error) {
	n := 0
	for _, c := range r.rows {
		if !c.Read {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// mockNotifier records Notify calls.
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, s *models.Settings, c *models.Contact) bool {
	args := m.Called(ctx, s, c)
	return args.Bool(0)
}

func validInput() Input {
	return Input{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello there"}
}

func settingsWith(form, storage, email bool) *models.Settings {
	s := models.DefaultSettings()
	s.EnableContactForm = form
	s.EnableDatabaseStorage = storage
	s.EnableEmailSending = email
	s.Email = "owner@example.com"
	s.SMTPHost = "smtp.example.com"
	return s
}

func TestSubmitFormDisabled(t *testing.T) {
	repo := &memRepo{}
	notifier := &mockNotifier{}
	p := NewPipeline(repo, notifier)

	_, err := p.Submit(context.Background(), settingsWith(false, true, true), validInput(), "203.0.113.1")
	p.Wait()

	assert.ErrorIs(t, err, ErrFormDisabled)
	assert.Equal(t, 0, repo.count(), "no contact row is created")
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitStoresWithClientIP(t *testing.T) {
	repo := &memRepo{}
	notifier := &mockNotifier{}
	p := NewPipeline(repo, notifier)

	res, err := p.Submit(context.Background(), settingsWith(true, true, false), validInput(), "203.0.113.1")
	p.Wait()

	require.NoError(t, err)
	require.NotNil(t, res.Contact)
	assert.Nil(t, res.Ack)
	assert.Equal(t, int64(1), res.Contact.ID)
	assert.Equal(t, "203.0.113.1", res.Contact.IPAddress)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"id":1`)
}

func TestSubmitNilSettingsUsesDefaults(t *testing.T) {
	repo := &memRepo{}
	notifier := &mockNotifier{}
	p := NewPipeline(repo, notifier)

	res, err := p.Submit(context.Background(), nil, validInput(), "")
	p.Wait()

	require.NoError(t, err)
	assert.NotNil(t, res.Contact, "storage is on by default")
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitEmailOnlyReturnsAck(t *testing.T) {
	repo := &memRepo{}
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything, mock.MatchedBy(func(c *models.Contact) bool {
		return c.Email == "ada@example.com" && c.ID == 0
	})).Return(true).Once()
	p := NewPipeline(repo, notifier)

	res, err := p.Submit(context.Background(), settingsWith(true, false, true), validInput(), "203.0.113.1")
	p.Wait()

	require.NoError(t, err)
	assert.Nil(t, res.Contact)
	require.NotNil(t, res.Ack)
	assert.Equal(t, 0, repo.count(), "contact row count unchanged")
	notifier.AssertExpectations(t)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Message sent successfully"}`, string(body))
	assert.NotContains(t, string(body), `"id"`)
}

func TestSubmitNotificationFailureDoesNotAffectResult(t *testing.T) {
	repo := &memRepo{}
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(false).Once()
	p := NewPipeline(repo, notifier)

	res, err := p.Submit(context.Background(), settingsWith(true, true, true), validInput(), "203.0.113.1")
	p.Wait()

	require.NoError(t, err)
	require.NotNil(t, res.Contact)
	assert.Equal(t, 1, repo.count())
	notifier.AssertExpectations(t)
}

func TestSubmitUnreachableSMTPStillStores(t *testing.T) {
	repo := &memRepo{}
	p := NewPipeline(repo, &mail.Mailer{Timeout: 2 * time.Second})

	s := settingsWith(true, true, true)
	s.SMTPHost = "invalid.invalid"

	res, err := p.Submit(context.Background(), s, validInput(), "203.0.113.1")
	require.NoError(t, err)
	require.NotNil(t, res.Contact)
	assert.NotZero(t, res.Contact.ID)

	p.Wait()
	assert.Equal(t, 1, repo.count())
}

// blockingNotifier holds Notify until released, proving Submit does not wait.
type blockingNotifier struct {
	release chan struct{}
	done    chan bool
}

func (b *blockingNotifier) Notify(ctx context.Context, s *models.Settings, c *models.Contact) bool {
	<-b.release
	b.done <- ctx.Err() == nil
	return true
}

func TestSubmitDoesNotWaitForNotification(t *testing.T) {
	n := &blockingNotifier{release: make(chan struct{}), done: make(chan bool, 1)}
	p := NewPipeline(&memRepo{}, n)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := p.Submit(ctx, settingsWith(true, true, true), validInput(), "")
	require.NoError(t, err)

	// The request is over; its context must not cancel the notification.
	cancel()
	close(n.release)
	p.Wait()
	assert.True(t, <-n.done, "notification context is detached from the request")
}

type panickingNotifier struct{}

func (panickingNotifier) Notify(context.Context, *models.Settings, *models.Contact) bool {
	panic("boom")
}

func TestSubmitRecoversNotifierPanic(t *testing.T) {
	p := NewPipeline(&memRepo{}, panickingNotifier{})
	_, err := p.Submit(context.Background(), settingsWith(true, false, true), validInput(), "")
	require.NoError(t, err)
	p.Wait()
}

func TestSubmitStorageErrorPropagates(t *testing.T) {
	repo := &memRepo{failErr: errors.New("db down")}
	notifier := &mockNotifier{}
	p := NewPipeline(repo, notifier)

	_, err := p.Submit(context.Background(), settingsWith(true, true, true), validInput(), "")
	p.Wait()
	assert.EqualError(t, err, "db down")
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOperations(t *testing.T) {
	repo := &memRepo{}
	p := NewPipeline(repo, &mockNotifier{})
	res, err := p.Submit(context.Background(), nil, validInput(), "")
	require.NoError(t, err)
	id := res.Contact.ID

	n, err := p.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	read, err := p.MarkRead(id)
	require.NoError(t, err)
	assert.True(t, read.Read)

	n, err = p.UnreadCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = p.MarkRead(999)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.Delete(id))
	assert.ErrorIs(t, p.Delete(id), ErrNotFound)

	list, err := p.List()
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
