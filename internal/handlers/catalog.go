// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"folio/internal/catalog"
	"folio/internal/icons"
)

// IconSearcher looks up technology icons in an external catalog.
type IconSearcher interface {
	Search(ctx context.Context, q string) []icons.Icon
}

// Catalog groups the technology and category handlers.
type Catalog struct {
	svc   *catalog.Service
	icons IconSearcher
}

// NewCatalog creates a Catalog handler group.
func NewCatalog(svc *catalog.Service, icons IconSearcher) *Catalog {
	return &Catalog{svc: svc, icons: icons}
}

// orEmpty makes sure list endpoints encode [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// --- technologies ---

type technologyRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Icon         *string `json:"icon" validate:"omitempty,max=500"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	Level        *int    `json:"level" validate:"omitempty,gte=0,lte=5"`
	ShowInAbout  *bool   `json:"show_in_about"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,gte=0"`
}

func (c *Catalog) ListTechnologies(w http.ResponseWriter, r *http.Request) {
	techs, err := c.svc.ListTechnologies()
	if err != nil {
		respondError(w, err, "list technologies")
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(techs))
}

// Grouped returns the technologies partitioned into category tabs.
func (c *Catalog) Grouped(w http.ResponseWriter, r *http.Request) {
	groups, err := c.svc.ListGrouped()
	if err != nil {
		respondError(w, err, "list grouped technologies")
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(groups))
}

// Skills returns the technologies shown on the about page.
func (c *Catalog) Skills(w http.ResponseWriter, r *http.Request) {
	techs, err := c.svc.Skills()
	if err != nil {
		respondError(w, err, "list skills")
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(techs))
}

// SearchIcons proxies ?q= to the icon catalog.
func (c *Catalog) SearchIcons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.icons.Search(r.Context(), r.URL.Query().Get("q")))
}

func (c *Catalog) CreateTechnology(w http.ResponseWriter, r *http.Request) {
	var req technologyRequest
	if !decodeValid(w, r, &req, "create technology") {
		return
	}
	if req.Name == nil {
		respondError(w, fieldErrors{{Field: "name", Message: "is required"}}, "create technology")
		return
	}

	t, err := c.svc.CreateTechnology(catalog.TechnologyInput{
		Name:        *req.Name,
		Icon:        deref(req.Icon),
		Category:    deref(req.Category),
		Level:       req.Level,
		ShowInAbout: req.ShowInAbout,
	})
	if err != nil {
		respondError(w, err, "create technology")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (c *Catalog) UpdateTechnology(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "update technology")
		return
	}
	var req technologyRequest
	if !decodeValid(w, r, &req, "update technology") {
		return
	}

	t, err := c.svc.UpdateTechnology(id, catalog.TechnologyPatch{
		Name:         req.Name,
		Icon:         req.Icon,
		Category:     req.Category,
		Level:        req.Level,
		ShowInAbout:  req.ShowInAbout,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		respondError(w, err, "update technology")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (c *Catalog) DeleteTechnology(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "delete technology")
		return
	}
	if err := c.svc.DeleteTechnology(id); err != nil {
		respondError(w, err, "delete technology")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderTechnologiesRequest struct {
	Category string  `json:"category" validate:"required"`
	IDs      []int64 `json:"ids" validate:"required,dive,gt=0"`
}

// ReorderTechnologies persists a drag-and-drop order within one category.
func (c *Catalog) ReorderTechnologies(w http.ResponseWriter, r *http.Request) {
	var req reorderTechnologiesRequest
	if !decodeValid(w, r, &req, "reorder technologies") {
		return
	}
	if err := c.svc.ReorderWithinCategory(req.Category, req.IDs); err != nil {
		respondError(w, err, "reorder technologies")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveRequest struct {
	From  string `json:"from"`
	To    string `json:"to" validate:"required"`
	Index int    `json:"index" validate:"gte=0"`
}

// MoveTechnology moves a technology to another category at a given index.
func (c *Catalog) MoveTechnology(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "move technology")
		return
	}
	var req moveRequest
	if !decodeValid(w, r, &req, "move technology") {
		return
	}
	t, err := c.svc.MoveToCategory(id, req.From, req.To, req.Index)
	if err != nil {
		respondError(w, err, "move technology")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// --- categories ---

type categoryRequest struct {
	ShortTitle    *string `json:"short_title" validate:"omitempty,max=100"`
	LongTitle     *string `json:"long_title" validate:"omitempty,max=200"`
	ShortTitleEN  *string `json:"short_title_en" validate:"omitempty,max=100"`
	LongTitleEN   *string `json:"long_title_en" validate:"omitempty,max=200"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
	DescriptionEN *string `json:"description_en" validate:"omitempty,max=2000"`
	Icon          *string `json:"icon" validate:"omitempty,max=500"`
	Color         *string `json:"color" validate:"omitempty,hexcolor"`
	DisplayOrder  *int    `json:"display_order" validate:"omitempty,gte=0"`
}

func (c *Catalog) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := c.svc.ListCategories()
	if err != nil {
		respondError(w, err, "list categories")
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(cats))
}

func (c *Catalog) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "get category")
		return
	}
	cat, err := c.svc.GetCategory(id)
	if err != nil {
		respondError(w, err, "get category")
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// CreateCategory adds a category. Its name is always derived from short_title.
func (c *Catalog) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeValid(w, r, &req, "create category") {
		return
	}
	if req.ShortTitle == nil {
		respondError(w, fieldErrors{{Field: "short_title", Message: "is required"}}, "create category")
		return
	}

	cat, err := c.svc.CreateCategory(catalog.CategoryInput{
		ShortTitle:    *req.ShortTitle,
		LongTitle:     deref(req.LongTitle),
		ShortTitleEN:  deref(req.ShortTitleEN),
		LongTitleEN:   deref(req.LongTitleEN),
		Description:   deref(req.Description),
		DescriptionEN: deref(req.DescriptionEN),
		Icon:          deref(req.Icon),
		Color:         deref(req.Color),
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		respondError(w, err, "create category")
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (c *Catalog) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "update category")
		return
	}
	var req categoryRequest
	if !decodeValid(w, r, &req, "update category") {
		return
	}

	cat, err := c.svc.UpdateCategory(id, catalog.CategoryPatch{
		ShortTitle:    req.ShortTitle,
		LongTitle:     req.LongTitle,
		ShortTitleEN:  req.ShortTitleEN,
		LongTitleEN:   req.LongTitleEN,
		Description:   req.Description,
		DescriptionEN: req.DescriptionEN,
		Icon:          req.Icon,
		Color:         req.Color,
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		respondError(w, err, "update category")
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (c *Catalog) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "delete category")
		return
	}
	if err := c.svc.DeleteCategory(id); err != nil {
		respondError(w, err, "delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderCategoriesRequest struct {
	IDs []int64 `json:"ids" validate:"required,dive,gt=0"`
}

func (c *Catalog) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var req reorderCategoriesRequest
	if !decodeValid(w, r, &req, "reorder categories") {
		return
	}
	if err := c.svc.ReorderCategories(req.IDs); err != nil {
		respondError(w, err, "reorder categories")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeValid decodes and validates the request body, writing the error
// response itself when either step fails.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any, action string) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		respondError(w, err, action)
		return false
	}
	if err := validateStruct(dst); err != nil {
		respondError(w, err, action)
		return false
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
