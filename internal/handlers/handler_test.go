// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// request helpers, in-memory repositories, and a PostgreSQL helper for the
// integration tests, which are skipped when the database is unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"folio/internal/auth"
	"folio/internal/database"
	"folio/internal/middleware"
	"folio/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "folio")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "folio")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// request describes one call to a handler under test.
type request struct {
	method string
	path   string
	body   any
	params map[string]string
	claims *auth.Claims
	header map[string]string
	remote string
}

// serve runs h with a request built from req and returns the recorder.
// URL params are injected the way chi would after routing.
func serve(t *testing.T, h http.HandlerFunc, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	switch b := req.body.(type) {
	case nil:
	case string:
		body.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&body).Encode(b))
	}

	method := req.method
	if method == "" {
		method = http.MethodGet
	}
	path := req.path
	if path == "" {
		path = "/"
	}
	r := httptest.NewRequest(method, path, &body)
	r.Header.Set("Content-Type", "application/json")
	for k, v := range req.header {
		r.Header.Set(k, v)
	}
	if req.remote != "" {
		r.RemoteAddr = req.remote
	}

	ctx := r.Context()
	if len(req.params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range req.params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	if req.claims != nil {
		ctx = middleware.WithClaims(ctx, req.claims)
	}

	rr := httptest.NewRecorder()
	h(rr, r.WithContext(ctx))
	return rr
}

// decodeBody unmarshals the response body into a fresh T.
func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

// --- in-memory repositories ---

type memSettings struct {
	mu sync.Mutex
	st *models.Settings
}

func (m *memSettings) Get() (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.st == nil {
		return nil, nil
	}
	c := *m.st
	return &c, nil
}

func (m *memSettings) Save(st *models.Settings) (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *st
	c.ID = models.SettingsID
	c.UpdatedAt = time.Now()
	m.st = &c
	out := c
	return &out, nil
}

type memContacts struct {
	mu    sync.Mutex
	next  int64
	items []models.Contact
}

func (m *memContacts) Create(c *models.Contact) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	saved := *c
	saved.ID = m.next
	saved.CreatedAt = time.Now()
	m.items = append(m.items, saved)
	return &saved, nil
}

func (m *memContacts) List() ([]models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Contact, 0, len(m.items))
	for i := len(m.items) - 1; i >= 0; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}

func (m *memContacts) MarkRead(id int64) (*models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Read = true
			c := m.items[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memContacts) Delete(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memContacts) UnreadCount() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.items {
		if !c.Read {
			n++
		}
	}
	return n, nil
}

// memUsers is a single-admin UserRepo. Passwords are compared in plain
// text; bcrypt is covered by the store tests.
type memUsers struct {
	user     *models.User
	password string
}

func (m *memUsers) FindByUsername(username string) (*models.User, error) {
	if m.user == nil || m.user.Username != username {
		return nil, nil
	}
	u := *m.user
	return &u, nil
}

func (m *memUsers) FindByID(id int64) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, nil
	}
	u := *m.user
	return &u, nil
}

func (m *memUsers) SetTOTPSecret(_ int64, secret string) error {
	m.user.TOTPSecret = &secret
	return nil
}

func (m *memUsers) EnableTOTP(int64) error {
	m.user.TOTPEnabled = true
	return nil
}

func (m *memUsers) ResetTOTP(int64) error {
	m.user.TOTPEnabled = false
	m.user.TOTPSecret = nil
	return nil
}

func (m *memUsers) CheckPassword(_ *models.User, password string) bool {
	return password == m.password
}

type memRevoker struct {
	revoked map[string]time.Duration
}

func (m *memRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if m.revoked == nil {
		m.revoked = map[string]time.Duration{}
	}
	m.revoked[jti] = ttl
	return nil
}

type memProjects struct {
	next  int64
	items map[int64]models.Project
}

func newMemProjects() *memProjects {
	return &memProjects{items: map[int64]models.Project{}}
}

func (m *memProjects) List() ([]models.Project, error) {
	var out []models.Project
	for id := int64(1); id <= m.next; id++ {
		if p, ok := m.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProjects) FindByID(id int64) (*models.Project, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProjects) Create(p *models.Project) (*models.Project, error) {
	m.next++
	saved := *p
	saved.ID = m.next
	m.items[saved.ID] = saved
	return &saved, nil
}

func (m *memProjects) Update(p *models.Project) (*models.Project, error) {
	if _, ok := m.items[p.ID]; !ok {
		return nil, nil
	}
	m.items[p.ID] = *p
	saved := *p
	return &saved, nil
}

func (m *memProjects) Delete(id int64) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

type memTechLookup []models.Technology

func (m memTechLookup) FindByNames(names []string) ([]models.Technology, error) {
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	var out []models.Technology
	for _, t := range m {
		if want[t.Name] {
			out = append(out, t)
		}
	}
	return out, nil
}

type memContent struct {
	hero  *models.Hero
	about *models.About
}

func (m *memContent) Hero() (*models.Hero, error) {
	if m.hero == nil {
		return nil, nil
	}
	h := *m.hero
	return &h, nil
}

func (m *memContent) SaveHero(h *models.Hero) (*models.Hero, error) {
	c := *h
	c.ID = 1
	m.hero = &c
	out := c
	return &out, nil
}

func (m *memContent) About() (*models.About, error) {
	if m.about == nil {
		return nil, nil
	}
	a := *m.about
	return &a, nil
}

func (m *memContent) SaveAbout(a *models.About) (*models.About, error) {
	c := *a
	c.ID = 1
	m.about = &c
	out := c
	return &out, nil
}
