// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"log/slog"
	"strings"

	"folio/internal/models"
)

// TechnologyInput holds the fields of a new technology.
type TechnologyInput struct {
	Name        string
	Icon        string
	Category    string
	Level       *int
	ShowInAbout *bool
}

// TechnologyPatch holds optional technology updates; nil fields are left unchanged.
type TechnologyPatch struct {
	Name         *string
	Icon         *string
	Category     *string
	Level        *int
	ShowInAbout  *bool
	DisplayOrder *int
}

// ListTechnologies returns all technologies.
func (s *Service) ListTechnologies() ([]models.Technology, error) {
	return s.technologies.List()
}

// Skills returns the technologies visible on the about page.
func (s *Service) Skills() ([]models.Technology, error) {
	return s.technologies.Skills()
}

// GetTechnology returns a technology by id.
func (s *Service) GetTechnology(id int64) (*models.Technology, error) {
	t, err := s.technologies.FindByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

// resolveCategory maps a category label to its row. Empty and "other" mean
// no category. Unknown labels are rejected rather than created implicitly.
func (s *Service) resolveCategory(label string) (string, *int64, error) {
	label = strings.TrimSpace(label)
	if label == "" || label == models.OtherGroup {
		return "", nil, nil
	}
	c, err := s.categories.FindByName(label)
	if err != nil {
		return "", nil, err
	}
	if c == nil {
		return "", nil, ErrUnknownCategory
	}
	return c.Name, &c.ID, nil
}

// CreateTechnology adds a technology at the end of its category. Without a
// level or visibility flag it starts visible at level 1.
func (s *Service) CreateTechnology(in TechnologyInput) (*models.Technology, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	label, categoryID, err := s.resolveCategory(in.Category)
	if err != nil {
		return nil, err
	}
	order, err := s.technologies.NextDisplayOrder(label)
	if err != nil {
		return nil, err
	}

	t := &models.Technology{
		Name:         name,
		Icon:         in.Icon,
		Category:     label,
		CategoryID:   categoryID,
		Level:        1,
		DisplayOrder: order,
	}
	t.SetVisibility(in.Level, in.ShowInAbout)

	created, err := s.technologies.Create(t)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	slog.Info("technology created", "id", created.ID, "name", created.Name, "category", label)
	return created, nil
}

// UpdateTechnology applies a patch. Changing the category appends the
// technology to the new category unless a display order is also given.
// Level and about-page visibility always move together.
func (s *Service) UpdateTechnology(id int64, p TechnologyPatch) (*models.Technology, error) {
	t, err := s.GetTechnology(id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, invalid("name", "is required")
		}
		t.Name = name
	}
	setString(&t.Icon, p.Icon)

	// A detached technology keeps its legacy label; echoing it back is not
	// a category change and must not be rejected as unknown.
	if p.Category != nil && strings.TrimSpace(*p.Category) != t.Category {
		label, categoryID, err := s.resolveCategory(*p.Category)
		if err != nil {
			return nil, err
		}
		if label != t.Category {
			order, err := s.technologies.NextDisplayOrder(label)
			if err != nil {
				return nil, err
			}
			t.DisplayOrder = order
		}
		t.Category, t.CategoryID = label, categoryID
	}
	if p.DisplayOrder != nil {
		t.DisplayOrder = *p.DisplayOrder
	}
	t.SetVisibility(p.Level, p.ShowInAbout)

	updated, err := s.technologies.Update(t)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// DeleteTechnology removes a technology.
func (s *Service) DeleteTechnology(id int64) error {
	ok, err := s.technologies.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	slog.Info("technology deleted", "id", id)
	return nil
}
