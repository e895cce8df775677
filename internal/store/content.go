// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
)

// singletonID is the fixed primary key of the hero and about rows.
const singletonID = 1

// ContentStore manages the hero and about singleton rows.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore returns a new ContentStore.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const heroColumns = `id, title, title_highlight, title_en, title_highlight_en, subtitle,
	subtitle_en, description, description_en, background_image_url, created_at, updated_at`

func scanHero(scanner interface{ Scan(...any) error }) (*models.Hero, error) {
	var h models.Hero
	err := scanner.Scan(&h.ID, &h.Title, &h.TitleHighlight, &h.TitleEN, &h.TitleHighlightEN,
		&h.Subtitle, &h.SubtitleEN, &h.Description, &h.DescriptionEN, &h.BackgroundImageURL,
		&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Hero returns the hero copy, or nil if it has never been saved.
func (s *ContentStore) Hero() (*models.Hero, error) {
	h, err := scanHero(s.db.QueryRow(`SELECT `+heroColumns+` FROM hero_content WHERE id = $1`, singletonID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get hero: %w", err)
	}
	return h, nil
}

// SaveHero upserts the hero copy.
func (s *ContentStore) SaveHero(h *models.Hero) (*models.Hero, error) {
	row := s.db.QueryRow(`
		INSERT INTO hero_content (id, title, title_highlight, title_en, title_highlight_en,
			subtitle, subtitle_en, description, description_en, background_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			title_highlight = EXCLUDED.title_highlight,
			title_en = EXCLUDED.title_en,
			title_highlight_en = EXCLUDED.title_highlight_en,
			subtitle = EXCLUDED.subtitle,
			subtitle_en = EXCLUDED.subtitle_en,
			description = EXCLUDED.description,
			description_en = EXCLUDED.description_en,
			background_image_url = EXCLUDED.background_image_url,
			updated_at = NOW()
		RETURNING `+heroColumns,
		singletonID, h.Title, h.TitleHighlight, h.TitleEN, h.TitleHighlightEN,
		h.Subtitle, h.SubtitleEN, h.Description, h.DescriptionEN, h.BackgroundImageURL,
	)
	saved, err := scanHero(row)
	if err != nil {
		return nil, fmt.Errorf("save hero: %w", err)
	}
	return saved, nil
}

const aboutColumns = `id, bio, bio_en, highlights, highlights_en, created_at, updated_at`

func scanAbout(scanner interface{ Scan(...any) error }) (*models.About, error) {
	var a models.About
	var highlights, highlightsEN stringList
	err := scanner.Scan(&a.ID, &a.Bio, &a.BioEN, &highlights, &highlightsEN, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Highlights = highlights
	a.HighlightsEN = highlightsEN
	return &a, nil
}

// About returns the about copy, or nil if it has never been saved.
func (s *ContentStore) About() (*models.About, error) {
	a, err := scanAbout(s.db.QueryRow(`SELECT `+aboutColumns+` FROM about_content WHERE id = $1`, singletonID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get about: %w", err)
	}
	return a, nil
}

// SaveAbout upserts the about copy.
func (s *ContentStore) SaveAbout(a *models.About) (*models.About, error) {
	row := s.db.QueryRow(`
		INSERT INTO about_content (id, bio, bio_en, highlights, highlights_en)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			bio = EXCLUDED.bio,
			bio_en = EXCLUDED.bio_en,
			highlights = EXCLUDED.highlights,
			highlights_en = EXCLUDED.highlights_en,
			updated_at = NOW()
		RETURNING `+aboutColumns,
		singletonID, a.Bio, a.BioEN, stringList(a.Highlights), stringList(a.HighlightsEN),
	)
	saved, err := scanAbout(row)
	if err != nil {
		return nil, fmt.Errorf("save about: %w", err)
	}
	return saved, nil
}
