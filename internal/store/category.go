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

// CategoryStore manages technology categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, short_title, long_title, short_title_en, long_title_en,
	description, description_en, icon, color, display_order, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.ShortTitle, &c.LongTitle, &c.ShortTitleEN, &c.LongTitleEN,
		&c.Description, &c.DescriptionEN, &c.Icon, &c.Color, &c.DisplayOrder,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by display_order then name, with the
// number of technologies carrying each category's label.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.short_title, c.long_title, c.short_title_en, c.long_title_en,
		       c.description, c.description_en, c.icon, c.color, c.display_order,
		       c.created_at, c.updated_at,
		       COUNT(t.id) AS technology_count
		FROM categories c
		LEFT JOIN technologies t ON t.category = c.name
		GROUP BY c.id
		ORDER BY c.display_order, c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.ShortTitle, &c.LongTitle, &c.ShortTitleEN, &c.LongTitleEN,
			&c.Description, &c.DescriptionEN, &c.Icon, &c.Color, &c.DisplayOrder,
			&c.CreatedAt, &c.UpdatedAt,
			&c.TechnologyCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id int64) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindByName retrieves a category by its slug. Returns nil if not found.
func (s *CategoryStore) FindByName(name string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it. A name collision returns
// an error wrapping ErrDuplicate.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, short_title, long_title, short_title_en, long_title_en,
			description, description_en, icon, color, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+categoryColumns,
		c.Name, c.ShortTitle, c.LongTitle, c.ShortTitleEN, c.LongTitleEN,
		c.Description, c.DescriptionEN, c.Icon, c.Color, c.DisplayOrder,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", mapUnique(err))
	}
	return result, nil
}

// Update modifies an existing category. When the name changes, the label of
// every technology linked to the category (by id or by the old label) is
// rewritten in the same transaction so the two never disagree.
func (s *CategoryStore) Update(c *models.Category, oldName string) (*models.Category, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		UPDATE categories SET
			name = $1, short_title = $2, long_title = $3, short_title_en = $4, long_title_en = $5,
			description = $6, description_en = $7, icon = $8, color = $9, display_order = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING `+categoryColumns,
		c.Name, c.ShortTitle, c.LongTitle, c.ShortTitleEN, c.LongTitleEN,
		c.Description, c.DescriptionEN, c.Icon, c.Color, c.DisplayOrder, c.ID,
	)
	result, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", mapUnique(err))
	}

	if oldName != result.Name {
		_, err = tx.Exec(`
			UPDATE technologies SET category = $1, category_id = $2, updated_at = NOW()
			WHERE category_id = $2 OR category = $3`,
			result.Name, result.ID, oldName,
		)
		if err != nil {
			return nil, fmt.Errorf("relabel technologies: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit category update: %w", err)
	}
	return result, nil
}

// Delete removes a category by ID. Linked technologies are detached by the
// foreign key (ON DELETE SET NULL) and keep their label. Reports whether a
// row was deleted.
func (s *CategoryStore) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return n > 0, nil
}

// Reorder sets display_order to each id's index in ids, in a single
// transaction. An unknown id rolls back the whole batch with ErrStaleID.
func (s *CategoryStore) Reorder(ids []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE categories SET display_order = $1, updated_at = $2 WHERE id = $3`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i, id := range ids {
		res, err := stmt.Exec(i, now, id)
		if err != nil {
			return fmt.Errorf("reorder category %d: %w", id, err)
		}
		if err := checkAffected(res, id); err != nil {
			return fmt.Errorf("reorder category: %w", err)
		}
	}

	return tx.Commit()
}

// NextDisplayOrder returns max(display_order)+1, or 0 when there are no categories.
func (s *CategoryStore) NextDisplayOrder() (int, error) {
	var maxOrder sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(display_order) FROM categories`).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("next category order: %w", err)
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}
