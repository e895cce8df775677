// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
)

// ProjectStore manages portfolio projects.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore returns a new ProjectStore.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, title, title_en, description, description_en, long_description,
	long_description_en, image_url, demo_url, github_url, technologies, featured, display_order,
	created_at, updated_at`

func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	var techs stringList
	err := scanner.Scan(
		&p.ID, &p.Title, &p.TitleEN, &p.Description, &p.DescriptionEN, &p.LongDescription,
		&p.LongDescriptionEN, &p.ImageURL, &p.DemoURL, &p.GitHubURL, &techs, &p.Featured,
		&p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Technologies = techs
	return &p, nil
}

// List returns all projects, featured first, then by display_order.
func (s *ProjectStore) List() ([]models.Project, error) {
	rows, err := s.db.Query(`SELECT ` + projectColumns + ` FROM projects
		ORDER BY featured DESC, display_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a project by ID. Returns nil if not found.
func (s *ProjectStore) FindByID(id int64) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// Create inserts a new project and returns it.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	row := s.db.QueryRow(`
		INSERT INTO projects (title, title_en, description, description_en, long_description,
			long_description_en, image_url, demo_url, github_url, technologies, featured, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+projectColumns,
		p.Title, p.TitleEN, p.Description, p.DescriptionEN, p.LongDescription,
		p.LongDescriptionEN, p.ImageURL, p.DemoURL, p.GitHubURL, stringList(p.Technologies),
		p.Featured, p.DisplayOrder,
	)
	saved, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return saved, nil
}

// Update overwrites a project. Returns nil if it does not exist.
func (s *ProjectStore) Update(p *models.Project) (*models.Project, error) {
	row := s.db.QueryRow(`
		UPDATE projects SET
			title = $1, title_en = $2, description = $3, description_en = $4,
			long_description = $5, long_description_en = $6, image_url = $7, demo_url = $8,
			github_url = $9, technologies = $10, featured = $11, display_order = $12,
			updated_at = NOW()
		WHERE id = $13
		RETURNING `+projectColumns,
		p.Title, p.TitleEN, p.Description, p.DescriptionEN, p.LongDescription,
		p.LongDescriptionEN, p.ImageURL, p.DemoURL, p.GitHubURL, stringList(p.Technologies),
		p.Featured, p.DisplayOrder, p.ID,
	)
	saved, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return saved, nil
}

// Delete removes a project and reports whether a row was deleted.
func (s *ProjectStore) Delete(id int64) (bool, error) {
	return deleteByID(s.db, "projects", id)
}
