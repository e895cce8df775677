// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"fmt"
	"sort"

	"folio/internal/models"
	"folio/internal/store"
)

// memDB is an in-memory stand-in for the category and technology stores,
// mirroring their relabel and detach behavior.
type memDB struct {
	nextID int64
	cats   map[int64]*models.Category
	techs  map[int64]*models.Technology

	reorderErr error
}

func newMemDB() *memDB {
	return &memDB{cats: map[int64]*models.Category{}, techs: map[int64]*models.Technology{}}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

type memCategories struct{ *memDB }
type memTechnologies struct{ *memDB }

func newTestService() (*Service, *memDB) {
	m := newMemDB()
	return NewService(memCategories{m}, memTechnologies{m}), m
}

func (m memCategories) List() ([]models.Category, error) {
	var out []models.Category
	for _, c := range m.cats {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memCategories) FindByID(id int64) (*models.Category, error) {
	if c, ok := m.cats[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m memCategories) FindByName(name string) (*models.Category, error) {
	for _, c := range m.cats {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memCategories) Create(c *models.Category) (*models.Category, error) {
	if existing, _ := m.FindByName(c.Name); existing != nil {
		return nil, fmt.Errorf("%w: categories_name_key", store.ErrDuplicate)
	}
	cp := *c
	cp.ID = m.id()
	m.cats[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m memCategories) Update(c *models.Category, oldName string) (*models.Category, error) {
	if _, ok := m.cats[c.ID]; !ok {
		return nil, nil
	}
	if existing, _ := m.FindByName(c.Name); existing != nil && existing.ID != c.ID {
		return nil, fmt.Errorf("%w: categories_name_key", store.ErrDuplicate)
	}
	cp := *c
	m.cats[c.ID] = &cp
	if oldName != c.Name {
		for _, t := range m.techs {
			if (t.CategoryID != nil && *t.CategoryID == c.ID) || t.Category == oldName {
				id := c.ID
				t.Category, t.CategoryID = c.Name, &id
			}
		}
	}
	out := cp
	return &out, nil
}

func (m memCategories) Delete(id int64) (bool, error) {
	if _, ok := m.cats[id]; !ok {
		return false, nil
	}
	delete(m.cats, id)
	for _, t := range m.techs {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	return true, nil
}

func (m memCategories) Reorder(ids []int64) error {
	for _, id := range ids {
		if _, ok := m.cats[id]; !ok {
			return fmt.Errorf("id %d: %w", id, store.ErrStaleID)
		}
	}
	for i, id := range ids {
		m.cats[id].DisplayOrder = i
	}
	return nil
}

func (m memCategories) NextDisplayOrder() (int, error) {
	next := 0
	for _, c := range m.cats {
		if c.DisplayOrder+1 > next {
			next = c.DisplayOrder + 1
		}
	}
	return next, nil
}

func (m memTechnologies) List() ([]models.Technology, error) {
	var out []models.Technology
	for _, t := range m.techs {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memTechnologies) Skills() ([]models.Technology, error) {
	all, _ := m.List()
	var out []models.Technology
	for _, t := range all {
		if t.ShowInAbout {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m memTechnologies) FindByID(id int64) (*models.Technology, error) {
	if t, ok := m.techs[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (m memTechnologies) Create(t *models.Technology) (*models.Technology, error) {
	for _, existing := range m.techs {
		if existing.Name == t.Name {
			return nil, fmt.Errorf("%w: technologies_name_key", store.ErrDuplicate)
		}
	}
	cp := *t
	cp.ID = m.id()
	m.techs[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m memTechnologies) Update(t *models.Technology) (*models.Technology, error) {
	if _, ok := m.techs[t.ID]; !ok {
		return nil, nil
	}
	cp := *t
	m.techs[t.ID] = &cp
	out := cp
	return &out, nil
}

func (m memTechnologies) Delete(id int64) (bool, error) {
	if _, ok := m.techs[id]; !ok {
		return false, nil
	}
	delete(m.techs, id)
	return true, nil
}

func (m memTechnologies) NextDisplayOrder(category string) (int, error) {
	next := 0
	for _, t := range m.techs {
		if t.Category == category && t.DisplayOrder+1 > next {
			next = t.DisplayOrder + 1
		}
	}
	return next, nil
}

func (m memTechnologies) Reorder(ids []int64) error {
	if m.reorderErr != nil {
		return m.reorderErr
	}
	for _, id := range ids {
		if _, ok := m.techs[id]; !ok {
			return fmt.Errorf("id %d: %w", id, store.ErrStaleID)
		}
	}
	for i, id := range ids {
		m.techs[id].DisplayOrder = i
	}
	return nil
}

func (m memTechnologies) Move(id int64, category string, categoryID *int64, dest, src []int64) error {
	t, ok := m.techs[id]
	if !ok {
		return fmt.Errorf("id %d: %w", id, store.ErrStaleID)
	}
	t.Category, t.CategoryID = category, categoryID
	if err := m.Reorder(dest); err != nil {
		return err
	}
	return m.Reorder(src)
}
