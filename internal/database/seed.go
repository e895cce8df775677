// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"folio/internal/slug"
)

// AdminSeed holds the credentials of the administrator created on first start.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// defaultCategories are created when the categories table is empty.
var defaultCategories = []struct {
	title string
	color string
}{
	{"Frontend", "#3B82F6"},
	{"Backend", "#10B981"},
	{"Tools", "#F59E0B"},
	{"Database", "#8B5CF6"},
	{"DevOps", "#EF4444"},
	{"Mobile", "#EC4899"},
}

// Seed populates the database with the rows the application expects to
// exist: the administrator account, the settings singleton, and a starter
// set of technology categories. Each step is a no-op when data is present.
func Seed(db *sql.DB, admin AdminSeed) error {
	if err := seedAdmin(db, admin); err != nil {
		return err
	}

	// The settings row is a singleton; ON CONFLICT keeps existing values.
	if _, err := db.Exec(`INSERT INTO portfolio_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING`); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	return seedCategories(db)
}

func seedAdmin(db *sql.DB, admin AdminSeed) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("admin user already present, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
	`, admin.Username, admin.Email, string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with admin user", "username", admin.Username)
	return nil
}

func seedCategories(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i, c := range defaultCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, short_title, long_title, color, display_order)
			VALUES ($1, $2, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
		`, slug.Generate(c.title), c.title, c.color, i)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.title, err)
		}
	}

	slog.Info("database seeded with default categories", "count", len(defaultCategories))
	return nil
}
