// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog keeps technologies classified into categories and ordered
// within them. It owns category slugs, grouped listings, drag-and-drop
// reordering and cross-category moves. All multi-row writes are applied in
// a single transaction by the underlying store.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"folio/internal/models"
	"folio/internal/slug"
	"folio/internal/store"
)

var (
	// ErrNotFound is returned when a category or technology id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnknownCategory is returned when a write names a category that is not defined.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrDuplicateName is returned when a category slug or technology name is taken.
	ErrDuplicateName = errors.New("name already exists")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// CategoryRepo is the category persistence used by Service.
type CategoryRepo interface {
	List() ([]models.Category, error)
	FindByID(id int64) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category, oldName string) (*models.Category, error)
	Delete(id int64) (bool, error)
	Reorder(ids []int64) error
	NextDisplayOrder() (int, error)
}

// TechnologyRepo is the technology persistence used by Service.
type TechnologyRepo interface {
	List() ([]models.Technology, error)
	Skills() ([]models.Technology, error)
	FindByID(id int64) (*models.Technology, error)
	Create(t *models.Technology) (*models.Technology, error)
	Update(t *models.Technology) (*models.Technology, error)
	Delete(id int64) (bool, error)
	NextDisplayOrder(category string) (int, error)
	Reorder(ids []int64) error
	Move(id int64, category string, categoryID *int64, dest, src []int64) error
}

// Service implements the category and technology operations.
type Service struct {
	categories   CategoryRepo
	technologies TechnologyRepo
}

// NewService creates a Service over the given repositories.
func NewService(categories CategoryRepo, technologies TechnologyRepo) *Service {
	return &Service{categories: categories, technologies: technologies}
}

// mapStoreErr translates store sentinels into catalog errors.
func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrDuplicateName, err)
	case errors.Is(err, store.ErrStaleID):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

// ListGrouped returns every category with its technologies, plus a trailing
// "other" group for technologies whose label matches no category.
func (s *Service) ListGrouped() ([]Group, error) {
	cats, err := s.categories.List()
	if err != nil {
		return nil, err
	}
	techs, err := s.technologies.List()
	if err != nil {
		return nil, err
	}
	return GroupTechnologies(cats, techs), nil
}

// ReorderWithinCategory assigns display_order = index to each id. ids must
// list every technology of the group exactly once.
func (s *Service) ReorderWithinCategory(key string, ids []int64) error {
	groups, err := s.ListGrouped()
	if err != nil {
		return err
	}
	g := findGroup(groups, key)
	if g == nil {
		if key != models.OtherGroup {
			return ErrUnknownCategory
		}
		g = &Group{Key: key}
	}
	if !samePermutation(memberIDs(g, 0), ids) {
		return invalid("ids", "must list every technology in the category exactly once")
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.technologies.Reorder(ids); err != nil {
		return mapStoreErr(err)
	}
	slog.Debug("technologies reordered", "category", key, "count", len(ids))
	return nil
}

// MoveToCategory relabels a technology with the destination category and
// places it at index in the destination order. The source group is
// compacted. from, when non-empty, must match the technology's current
// group. Moving to "other" clears the category.
func (s *Service) MoveToCategory(techID int64, from, to string, index int) (*models.Technology, error) {
	tech, err := s.technologies.FindByID(techID)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, ErrNotFound
	}

	groups, err := s.ListGrouped()
	if err != nil {
		return nil, err
	}
	current := models.OtherGroup
	for _, g := range groups {
		for _, t := range g.Technologies {
			if t.ID == techID {
				current = g.Key
			}
		}
	}
	if from != "" && from != current {
		return nil, invalid("from", fmt.Sprintf("technology is in %q, not %q", current, from))
	}

	label, categoryID := "", (*int64)(nil)
	if to != models.OtherGroup {
		dst := findGroup(groups, to)
		if dst == nil || dst.Category == nil {
			return nil, ErrUnknownCategory
		}
		label, categoryID = dst.Category.Name, &dst.Category.ID
	}

	dest := insertAt(memberIDs(findGroup(groups, to), techID), techID, index)
	if to == current {
		if err := s.technologies.Reorder(dest); err != nil {
			return nil, mapStoreErr(err)
		}
	} else {
		src := memberIDs(findGroup(groups, current), techID)
		if err := s.technologies.Move(techID, label, categoryID, dest, src); err != nil {
			return nil, mapStoreErr(err)
		}
	}

	slog.Info("technology moved", "id", techID, "from", current, "to", to, "index", index)
	return s.technologies.FindByID(techID)
}

// ListCategories returns all categories in display order.
func (s *Service) ListCategories() ([]models.Category, error) {
	return s.categories.List()
}

// GetCategory returns a category by id.
func (s *Service) GetCategory(id int64) (*models.Category, error) {
	c, err := s.categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// CategoryInput holds the editable fields of a category. The slug name is
// never taken from input; it is always derived from ShortTitle.
type CategoryInput struct {
	ShortTitle    string
	LongTitle     string
	ShortTitleEN  string
	LongTitleEN   string
	Description   string
	DescriptionEN string
	Icon          string
	Color         string
	DisplayOrder  *int
}

// CategoryPatch holds optional category updates; nil fields are left unchanged.
type CategoryPatch struct {
	ShortTitle    *string
	LongTitle     *string
	ShortTitleEN  *string
	LongTitleEN   *string
	Description   *string
	DescriptionEN *string
	Icon          *string
	Color         *string
	DisplayOrder  *int
}

// categoryName derives and validates the slug for a short title.
func categoryName(shortTitle string) (string, error) {
	name := slug.Generate(shortTitle)
	if name == "" {
		return "", invalid("short_title", "must contain at least one letter or digit")
	}
	if name == models.OtherGroup {
		return "", invalid("short_title", fmt.Sprintf("%q is reserved", models.OtherGroup))
	}
	return name, nil
}

// CreateCategory creates a category named after its short title. Without an
// explicit display order it is appended after the last category.
func (s *Service) CreateCategory(in CategoryInput) (*models.Category, error) {
	name, err := categoryName(in.ShortTitle)
	if err != nil {
		return nil, err
	}

	c := &models.Category{
		Name:          name,
		ShortTitle:    strings.TrimSpace(in.ShortTitle),
		LongTitle:     in.LongTitle,
		ShortTitleEN:  in.ShortTitleEN,
		LongTitleEN:   in.LongTitleEN,
		Description:   in.Description,
		DescriptionEN: in.DescriptionEN,
		Icon:          in.Icon,
		Color:         in.Color,
	}
	if c.Color == "" {
		c.Color = models.DefaultCategoryColor
	}
	if in.DisplayOrder != nil {
		c.DisplayOrder = *in.DisplayOrder
	} else {
		next, err := s.categories.NextDisplayOrder()
		if err != nil {
			return nil, err
		}
		c.DisplayOrder = next
	}

	created, err := s.categories.Create(c)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	slog.Info("category created", "id", created.ID, "name", created.Name)
	return created, nil
}

// UpdateCategory applies a patch and recomputes the slug. A slug change
// relabels the linked technologies in the same transaction.
func (s *Service) UpdateCategory(id int64, p CategoryPatch) (*models.Category, error) {
	c, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	oldName := c.Name

	setString(&c.ShortTitle, p.ShortTitle)
	setString(&c.LongTitle, p.LongTitle)
	setString(&c.ShortTitleEN, p.ShortTitleEN)
	setString(&c.LongTitleEN, p.LongTitleEN)
	setString(&c.Description, p.Description)
	setString(&c.DescriptionEN, p.DescriptionEN)
	setString(&c.Icon, p.Icon)
	setString(&c.Color, p.Color)
	if p.DisplayOrder != nil {
		c.DisplayOrder = *p.DisplayOrder
	}
	if c.Color == "" {
		c.Color = models.DefaultCategoryColor
	}
	c.ShortTitle = strings.TrimSpace(c.ShortTitle)

	if c.Name, err = categoryName(c.ShortTitle); err != nil {
		return nil, err
	}

	updated, err := s.categories.Update(c, oldName)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	if updated.Name != oldName {
		slog.Info("category renamed", "id", id, "from", oldName, "to", updated.Name)
	}
	return updated, nil
}

// DeleteCategory removes a category. Its technologies are detached but keep
// their label, so they show up under "other" until reassigned.
func (s *Service) DeleteCategory(id int64) error {
	ok, err := s.categories.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	slog.Info("category deleted", "id", id)
	return nil
}

// ReorderCategories assigns display_order = index to each category id.
func (s *Service) ReorderCategories(ids []int64) error {
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return invalid("ids", fmt.Sprintf("duplicate id %d", id))
		}
		seen[id] = true
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.categories.Reorder(ids); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
