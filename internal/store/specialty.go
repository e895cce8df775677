// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
)

// SpecialtyStore manages the specialty cards on the home page.
type SpecialtyStore struct {
	db *sql.DB
}

// NewSpecialtyStore returns a new SpecialtyStore.
func NewSpecialtyStore(db *sql.DB) *SpecialtyStore {
	return &SpecialtyStore{db: db}
}

const specialtyColumns = `id, title, title_en, description, description_en, color, icon_type,
	technologies, display_order, created_at, updated_at`

func scanSpecialty(scanner interface{ Scan(...any) error }) (*models.Specialty, error) {
	var sp models.Specialty
	var techs stringList
	err := scanner.Scan(&sp.ID, &sp.Title, &sp.TitleEN, &sp.Description, &sp.DescriptionEN,
		&sp.Color, &sp.IconType, &techs, &sp.DisplayOrder, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sp.Technologies = techs
	return &sp, nil
}

// List returns all specialties by display_order.
func (s *SpecialtyStore) List() ([]models.Specialty, error) {
	rows, err := s.db.Query(`SELECT ` + specialtyColumns + ` FROM specialties ORDER BY display_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list specialties: %w", err)
	}
	defer rows.Close()

	var items []models.Specialty
	for rows.Next() {
		sp, err := scanSpecialty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan specialty: %w", err)
		}
		items = append(items, *sp)
	}
	return items, rows.Err()
}

// FindByID retrieves a specialty by ID. Returns nil if not found.
func (s *SpecialtyStore) FindByID(id int64) (*models.Specialty, error) {
	row := s.db.QueryRow(`SELECT `+specialtyColumns+` FROM specialties WHERE id = $1`, id)
	sp, err := scanSpecialty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find specialty by id: %w", err)
	}
	return sp, nil
}

// Create inserts a new specialty and returns it.
func (s *SpecialtyStore) Create(sp *models.Specialty) (*models.Specialty, error) {
	row := s.db.QueryRow(`
		INSERT INTO specialties (title, title_en, description, description_en, color, icon_type,
			technologies, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+specialtyColumns,
		sp.Title, sp.TitleEN, sp.Description, sp.DescriptionEN, sp.Color, sp.IconType,
		stringList(sp.Technologies), sp.DisplayOrder,
	)
	saved, err := scanSpecialty(row)
	if err != nil {
		return nil, fmt.Errorf("create specialty: %w", err)
	}
	return saved, nil
}

// Update overwrites a specialty. Returns nil if it does not exist.
func (s *SpecialtyStore) Update(sp *models.Specialty) (*models.Specialty, error) {
	row := s.db.QueryRow(`
		UPDATE specialties SET
			title = $1, title_en = $2, description = $3, description_en = $4, color = $5,
			icon_type = $6, technologies = $7, display_order = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+specialtyColumns,
		sp.Title, sp.TitleEN, sp.Description, sp.DescriptionEN, sp.Color, sp.IconType,
		stringList(sp.Technologies), sp.DisplayOrder, sp.ID,
	)
	saved, err := scanSpecialty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update specialty: %w", err)
	}
	return saved, nil
}

// Delete removes a specialty and reports whether a row was deleted.
func (s *SpecialtyStore) Delete(id int64) (bool, error) {
	return deleteByID(s.db, "specialties", id)
}
