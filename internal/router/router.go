// Package router sets up all HTTP routes and middleware chains for the
// folio API. Routes are split into a public group, served through the
// response cache, and an admin group behind bearer authentication.
package router

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"folio/internal/cache"
	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/storage"
)

// Handlers holds every handler group the router mounts.
type Handlers struct {
	Health    http.HandlerFunc
	Auth      *handlers.Auth
	Catalog   *handlers.Catalog
	Portfolio *handlers.Portfolio
	Settings  *handlers.Settings
	Contact   *handlers.Contact
	Upload    *handlers.Upload
	// Files serves stored uploads with the /uploads/ prefix stripped.
	Files http.Handler
}

// Options configures the cross-cutting middleware.
type Options struct {
	CORSOrigins    []string
	TrustedProxies []netip.Prefix
	Tokens         middleware.TokenParser
	Revoked        middleware.RevocationList
	Cache          *cache.ResponseCache
	ContactLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP(opts.TrustedProxies))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{"Retry-After", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           int((5 * time.Minute).Seconds()),
	}))

	r.Get("/health", h.Health)
	r.Handle(storage.PublicPrefix+"*", http.StripPrefix(storage.PublicPrefix, h.Files))

	r.Route("/api", func(r chi.Router) {
		// Public reads, cached in Valkey when it is configured.
		r.Group(func(r chi.Router) {
			r.Use(opts.Cache.Middleware)

			r.Get("/technologies", h.Catalog.ListTechnologies)
			r.Get("/technologies/grouped", h.Catalog.Grouped)
			r.Get("/technologies/skills", h.Catalog.Skills)
			r.Get("/categories", h.Catalog.ListCategories)
			r.Get("/categories/{id}", h.Catalog.GetCategory)
			r.Get("/settings", h.Settings.Get)
			r.Get("/projects", h.Portfolio.ListProjects)
			r.Get("/projects/{id}", h.Portfolio.GetProject)
			r.Get("/experience", h.Portfolio.ListExperience)
			r.Get("/specialties", h.Portfolio.ListSpecialties)
			r.Get("/hero", h.Portfolio.Hero)
			r.Get("/about", h.Portfolio.About)
		})

		// Icon search proxies an external catalog that is already memoized.
		r.Get("/technologies/search", h.Catalog.SearchIcons)

		r.With(opts.ContactLimiter.Middleware).Post("/contact", h.Contact.Submit)
		r.Post("/auth/login", h.Auth.Login)

		// Admin: bearer token required; successful writes drop the cache.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(opts.Tokens, opts.Revoked))
			r.Use(opts.Cache.InvalidateOnWrite)

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/profile", h.Auth.Profile)
			r.Post("/auth/2fa/setup", h.Auth.TwoFASetup)
			r.Post("/auth/2fa/enable", h.Auth.TwoFAEnable)
			r.Post("/auth/2fa/disable", h.Auth.TwoFADisable)

			r.Post("/technologies", h.Catalog.CreateTechnology)
			r.Post("/technologies/reorder", h.Catalog.ReorderTechnologies)
			r.Put("/technologies/{id}", h.Catalog.UpdateTechnology)
			r.Delete("/technologies/{id}", h.Catalog.DeleteTechnology)
			r.Post("/technologies/{id}/move", h.Catalog.MoveTechnology)

			r.Post("/categories", h.Catalog.CreateCategory)
			r.Post("/categories/reorder", h.Catalog.ReorderCategories)
			r.Patch("/categories/{id}", h.Catalog.UpdateCategory)
			r.Delete("/categories/{id}", h.Catalog.DeleteCategory)

			r.Put("/settings", h.Settings.Update)

			r.Post("/projects", h.Portfolio.CreateProject)
			r.Put("/projects/{id}", h.Portfolio.UpdateProject)
			r.Delete("/projects/{id}", h.Portfolio.DeleteProject)
			r.Post("/experience", h.Portfolio.CreateExperience)
			r.Put("/experience/{id}", h.Portfolio.UpdateExperience)
			r.Delete("/experience/{id}", h.Portfolio.DeleteExperience)
			r.Post("/specialties", h.Portfolio.CreateSpecialty)
			r.Put("/specialties/{id}", h.Portfolio.UpdateSpecialty)
			r.Delete("/specialties/{id}", h.Portfolio.DeleteSpecialty)
			r.Put("/hero", h.Portfolio.UpdateHero)
			r.Put("/about", h.Portfolio.UpdateAbout)

			r.Post("/upload", h.Upload.Create)
			r.Delete("/upload", h.Upload.Delete)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/settings", h.Settings.AdminGet)
				r.Get("/contacts", h.Contact.List)
				r.Get("/contacts/unread-count", h.Contact.UnreadCount)
				r.Post("/contacts/{id}/read", h.Contact.MarkRead)
				r.Delete("/contacts/{id}", h.Contact.Delete)
				r.Post("/contact/test-email", h.Contact.TestEmail)
			})
		})
	})

	return r
}
