// Package main is the entry point for the folio API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"

	"folio/internal/auth"
	"folio/internal/cache"
	"folio/internal/catalog"
	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/database"
	"folio/internal/handlers"
	"folio/internal/icons"
	"folio/internal/mail"
	"folio/internal/middleware"
	"folio/internal/router"
	"folio/internal/session"
	"folio/internal/storage"
	"folio/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	initLogger(cfg.IsDev())

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"valkey", cfg.ValkeyEnabled(),
		"s3", cfg.S3Enabled(),
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Creates the admin, the settings row and the default categories when missing.
	if err := database.Seed(db, database.AdminSeed{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Valkey is optional: without it public reads are not cached and logout
	// cannot revoke tokens before they expire.
	var valkeyClient *redis.Client
	if cfg.ValkeyEnabled() {
		valkeyClient, err = cache.ConnectValkey(cache.ValkeyOptions{
			Host:     cfg.ValkeyHost,
			Port:     cfg.ValkeyPort,
			Password: cfg.ValkeyPassword,
		})
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
	} else {
		slog.Warn("valkey not configured, response cache and token revocation disabled")
	}
	responseCache := cache.NewResponseCache(valkeyClient, cache.DefaultTTL)
	revocations := session.NewStore(valkeyClient)

	uploads, err := newUploads(cfg)
	if err != nil {
		slog.Error("failed to initialize upload storage", "error", err)
		os.Exit(1)
	}

	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	technologyStore := store.NewTechnologyStore(db)
	settingsStore := store.NewSettingsStore(db)

	mailer := mail.New()
	pipeline := contact.NewPipeline(store.NewContactStore(db), mailer)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	contactLimiter := middleware.NewRateLimiter(cfg.ContactRateLimit, cfg.ContactRateWindow)
	defer contactLimiter.Stop()

	var revoker handlers.Revoker
	var revoked middleware.RevocationList
	if revocations != nil {
		revoker, revoked = revocations, revocations
	}

	r := router.New(router.Handlers{
		Health:  handlers.Health(db),
		Auth:    handlers.NewAuth(userStore, tokens, revoker),
		Catalog: handlers.NewCatalog(catalog.NewService(categoryStore, technologyStore), icons.NewCatalog(cfg.IconCatalogURL)),
		Portfolio: handlers.NewPortfolio(
			store.NewProjectStore(db),
			store.NewExperienceStore(db),
			store.NewSpecialtyStore(db),
			store.NewContentStore(db),
			technologyStore,
		),
		Settings: handlers.NewSettings(settingsStore),
		Contact:  handlers.NewContact(pipeline, settingsStore, mailer),
		Upload:   handlers.NewUpload(uploads),
		Files:    uploads.Handler(),
	}, router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Tokens:         tokens,
		Revoked:        revoked,
		Cache:          responseCache,
		ContactLimiter: contactLimiter,
	})

	// WriteTimeout leaves room for the SMTP test endpoint, which waits on
	// the remote server.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	// Let queued contact notifications finish before the process exits.
	pipeline.Wait()
	slog.Info("server stopped gracefully")
}

// initLogger installs colored text output in development and JSON otherwise.
func initLogger(dev bool) {
	var h slog.Handler
	if dev {
		h = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(h))
}

// newUploads picks S3-compatible storage when configured, local disk otherwise.
func newUploads(cfg *config.Config) (*storage.Uploads, error) {
	if cfg.S3Enabled() {
		s3, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return nil, err
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		return storage.NewUploads(s3), nil
	}

	local, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	slog.Info("storing uploads on local disk", "dir", local.Dir())
	return storage.NewUploads(local), nil
}
