// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"folio/internal/models"
)

// TechnologyStore manages technologies in the database.
type TechnologyStore struct {
	db *sql.DB
}

// NewTechnologyStore returns a new TechnologyStore.
func NewTechnologyStore(db *sql.DB) *TechnologyStore {
	return &TechnologyStore{db: db}
}

const technologyColumns = `id, name, icon, category, category_id, level, show_in_about,
	display_order, created_at, updated_at`

func scanTechnology(scanner interface{ Scan(...any) error }) (*models.Technology, error) {
	var t models.Technology
	err := scanner.Scan(
		&t.ID, &t.Name, &t.Icon, &t.Category, &t.CategoryID, &t.Level, &t.ShowInAbout,
		&t.DisplayOrder, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TechnologyStore) query(q string, args ...any) ([]models.Technology, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Technology
	for rows.Next() {
		t, err := scanTechnology(rows)
		if err != nil {
			return nil, fmt.Errorf("scan technology: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// List returns all technologies ordered by category, display_order and name.
func (s *TechnologyStore) List() ([]models.Technology, error) {
	items, err := s.query(`SELECT ` + technologyColumns + ` FROM technologies
		ORDER BY category, display_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	return items, nil
}

// Skills returns the technologies shown on the about page.
func (s *TechnologyStore) Skills() ([]models.Technology, error) {
	items, err := s.query(`SELECT ` + technologyColumns + ` FROM technologies
		WHERE show_in_about ORDER BY display_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return items, nil
}

// FindByNames returns the technologies whose name is in names, in name order.
func (s *TechnologyStore) FindByNames(names []string) ([]models.Technology, error) {
	if len(names) == 0 {
		return nil, nil
	}
	items, err := s.query(`SELECT `+technologyColumns+` FROM technologies
		WHERE name = ANY($1) ORDER BY name`, names)
	if err != nil {
		return nil, fmt.Errorf("find technologies by name: %w", err)
	}
	return items, nil
}

// FindByID retrieves a technology by ID. Returns nil if not found.
func (s *TechnologyStore) FindByID(id int64) (*models.Technology, error) {
	row := s.db.QueryRow(`SELECT `+technologyColumns+` FROM technologies WHERE id = $1`, id)
	t, err := scanTechnology(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find technology by id: %w", err)
	}
	return t, nil
}

// Create inserts a new technology and returns it.
func (s *TechnologyStore) Create(t *models.Technology) (*models.Technology, error) {
	row := s.db.QueryRow(`
		INSERT INTO technologies (name, icon, category, category_id, level, show_in_about, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+technologyColumns,
		t.Name, t.Icon, t.Category, t.CategoryID, t.Level, t.ShowInAbout, t.DisplayOrder,
	)
	result, err := scanTechnology(row)
	if err != nil {
		return nil, fmt.Errorf("create technology: %w", mapUnique(err))
	}
	return result, nil
}

// Update writes every mutable column of t. Returns nil if the row is gone.
func (s *TechnologyStore) Update(t *models.Technology) (*models.Technology, error) {
	row := s.db.QueryRow(`
		UPDATE technologies SET
			name = $1, icon = $2, category = $3, category_id = $4, level = $5,
			show_in_about = $6, display_order = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+technologyColumns,
		t.Name, t.Icon, t.Category, t.CategoryID, t.Level, t.ShowInAbout, t.DisplayOrder, t.ID,
	)
	result, err := scanTechnology(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update technology: %w", mapUnique(err))
	}
	return result, nil
}

// Delete removes a technology by ID and reports whether a row was deleted.
func (s *TechnologyStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM technologies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete technology: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete technology: %w", err)
	}
	return n > 0, nil
}

// NextDisplayOrder returns max(display_order)+1 among technologies carrying
// the given label, or 0 when there are none.
func (s *TechnologyStore) NextDisplayOrder(category string) (int, error) {
	var maxOrder sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(display_order) FROM technologies WHERE category = $1`, category).
		Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("next technology order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}

// Reorder sets display_order to each id's index in ids, in a single
// transaction. An unknown id rolls back the whole batch with ErrStaleID.
func (s *TechnologyStore) Reorder(ids []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := reorderTx(tx, ids, time.Now()); err != nil {
		return err
	}
	return tx.Commit()
}

// Move relabels a technology and rewrites the order of its destination and
// source groups, all in one transaction. dest must already contain id at
// its new position; src lists the remaining members of the old group.
func (s *TechnologyStore) Move(id int64, category string, categoryID *int64, dest, src []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.Exec(`
		UPDATE technologies SET category = $1, category_id = $2, updated_at = $3
		WHERE id = $4`, category, categoryID, now, id)
	if err != nil {
		return fmt.Errorf("move technology %d: %w", id, err)
	}
	if err := checkAffected(res, id); err != nil {
		return fmt.Errorf("move technology: %w", err)
	}

	if err := reorderTx(tx, dest, now); err != nil {
		return err
	}
	if err := reorderTx(tx, src, now); err != nil {
		return err
	}
	return tx.Commit()
}

func reorderTx(tx *sql.Tx, ids []int64, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`UPDATE technologies SET display_order = $1, updated_at = $2 WHERE id = $3`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		res, err := stmt.Exec(i, now, id)
		if err != nil {
			return fmt.Errorf("reorder technology %d: %w", id, err)
		}
		if err := checkAffected(res, id); err != nil {
			return fmt.Errorf("reorder technology: %w", err)
		}
	}
	return nil
}
