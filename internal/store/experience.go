// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
)

// ExperienceStore manages work experience entries.
type ExperienceStore struct {
	db *sql.DB
}

// NewExperienceStore returns a new ExperienceStore.
func NewExperienceStore(db *sql.DB) *ExperienceStore {
	return &ExperienceStore{db: db}
}

const experienceColumns = `id, title, company, period, description, achievements, display_order,
	created_at, updated_at`

func scanExperience(scanner interface{ Scan(...any) error }) (*models.Experience, error) {
	var e models.Experience
	var achievements stringList
	err := scanner.Scan(&e.ID, &e.Title, &e.Company, &e.Period, &e.Description, &achievements,
		&e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Achievements = achievements
	return &e, nil
}

// List returns all experience entries by display_order.
func (s *ExperienceStore) List() ([]models.Experience, error) {
	rows, err := s.db.Query(`SELECT ` + experienceColumns + ` FROM experiences ORDER BY display_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	var items []models.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// FindByID retrieves an entry by ID. Returns nil if not found.
func (s *ExperienceStore) FindByID(id int64) (*models.Experience, error) {
	row := s.db.QueryRow(`SELECT `+experienceColumns+` FROM experiences WHERE id = $1`, id)
	e, err := scanExperience(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find experience by id: %w", err)
	}
	return e, nil
}

// Create inserts a new entry and returns it.
func (s *ExperienceStore) Create(e *models.Experience) (*models.Experience, error) {
	row := s.db.QueryRow(`
		INSERT INTO experiences (title, company, period, description, achievements, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+experienceColumns,
		e.Title, e.Company, e.Period, e.Description, stringList(e.Achievements), e.DisplayOrder,
	)
	saved, err := scanExperience(row)
	if err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}
	return saved, nil
}

// Update overwrites an entry. Returns nil if it does not exist.
func (s *ExperienceStore) Update(e *models.Experience) (*models.Experience, error) {
	row := s.db.QueryRow(`
		UPDATE experiences SET
			title = $1, company = $2, period = $3, description = $4, achievements = $5,
			display_order = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+experienceColumns,
		e.Title, e.Company, e.Period, e.Description, stringList(e.Achievements), e.DisplayOrder, e.ID,
	)
	saved, err := scanExperience(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}
	return saved, nil
}

// Delete removes an entry and reports whether a row was deleted.
func (s *ExperienceStore) Delete(id int64) (bool, error) {
	return deleteByID(s.db, "experiences", id)
}
