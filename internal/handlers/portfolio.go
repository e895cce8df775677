// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"folio/internal/models"
)

// ProjectRepo is the project persistence used by Portfolio.
type ProjectRepo interface {
	List() ([]models.Project, error)
	FindByID(id int64) (*models.Project, error)
	Create(p *models.Project) (*models.Project, error)
	Update(p *models.Project) (*models.Project, error)
	Delete(id int64) (bool, error)
}

// ExperienceRepo is the work history persistence used by Portfolio.
type ExperienceRepo interface {
	List() ([]models.Experience, error)
	FindByID(id int64) (*models.Experience, error)
	Create(e *models.Experience) (*models.Experience, error)
	Update(e *models.Experience) (*models.Experience, error)
	Delete(id int64) (bool, error)
}

// SpecialtyRepo is the specialty persistence used by Portfolio.
type SpecialtyRepo interface {
	List() ([]models.Specialty, error)
	FindByID(id int64) (*models.Specialty, error)
	Create(sp *models.Specialty) (*models.Specialty, error)
	Update(sp *models.Specialty) (*models.Specialty, error)
	Delete(id int64) (bool, error)
}

// ContentRepo holds the hero and about singletons.
type ContentRepo interface {
	Hero() (*models.Hero, error)
	SaveHero(h *models.Hero) (*models.Hero, error)
	About() (*models.About, error)
	SaveAbout(a *models.About) (*models.About, error)
}

// TechnologyLookup resolves technology names to rows.
type TechnologyLookup interface {
	FindByNames(names []string) ([]models.Technology, error)
}

// Portfolio groups the project, experience, specialty, hero and about handlers.
// Updates merge the request body over the stored record, so clients may
// send only the fields they change.
type Portfolio struct {
	projects     ProjectRepo
	experience   ExperienceRepo
	specialties  SpecialtyRepo
	content      ContentRepo
	technologies TechnologyLookup
}

// NewPortfolio creates a Portfolio handler group.
func NewPortfolio(projects ProjectRepo, experience ExperienceRepo, specialties SpecialtyRepo, content ContentRepo, technologies TechnologyLookup) *Portfolio {
	return &Portfolio{
		projects:     projects,
		experience:   experience,
		specialties:  specialties,
		content:      content,
		technologies: technologies,
	}
}

// --- projects ---

// withTechnologies fills TechnologyEntities from the project's technology
// names with one lookup for all projects.
func (p *Portfolio) withTechnologies(projects []models.Project) error {
	var names []string
	for _, pr := range projects {
		names = append(names, pr.Technologies...)
	}
	byName := map[string]models.Technology{}
	if len(names) > 0 {
		techs, err := p.technologies.FindByNames(names)
		if err != nil {
			return err
		}
		for _, t := range techs {
			byName[t.Name] = t
		}
	}
	for i := range projects {
		projects[i].TechnologyEntities = []models.Technology{}
		for _, name := range projects[i].Technologies {
			if t, ok := byName[name]; ok {
				projects[i].TechnologyEntities = append(projects[i].TechnologyEntities, t)
			}
		}
		projects[i].Technologies = orEmpty(projects[i].Technologies)
	}
	return nil
}

func (p *Portfolio) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := p.projects.List()
	if err != nil {
		respondError(w, err, "list projects")
		return
	}
	if err := p.withTechnologies(projects); err != nil {
		respondError(w, err, "resolve project technologies")
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(projects))
}

func (p *Portfolio) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "get project")
		return
	}
	pr, err := p.projects.FindByID(id)
	if err != nil {
		respondError(w, err, "get project")
		return
	}
	if pr == nil {
		respondError(w, errNotFound, "get project")
		return
	}
	p.writeProject(w, http.StatusOK, pr)
}

func (p *Portfolio) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in models.Project
	if !decodeValid(w, r, &in, "create project") {
		return
	}
	created, err := p.projects.Create(&in)
	if err != nil {
		respondError(w, err, "create project")
		return
	}
	p.writeProject(w, http.StatusCreated, created)
}

func (p *Portfolio) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "update project")
		return
	}
	pr, err := p.projects.FindByID(id)
	if err != nil {
		respondError(w, err, "update project")
		return
	}
	if pr == nil {
		respondError(w, errNotFound, "update project")
		return
	}
	if !decodeValid(w, r, pr, "update project") {
		return
	}
	pr.ID = id
	updated, err := p.projects.Update(pr)
	if err != nil {
		respondError(w, err, "update project")
		return
	}
	if updated == nil {
		respondError(w, errNotFound, "update project")
		return
	}
	p.writeProject(w, http.StatusOK, updated)
}

func (p *Portfolio) DeleteProject(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, p.projects.Delete, "delete project")
}

func (p *Portfolio) writeProject(w http.ResponseWriter, status int, pr *models.Project) {
	list := []models.Project{*pr}
	if err := p.withTechnologies(list); err != nil {
		respondError(w, err, "resolve project technologies")
		return
	}
	writeJSON(w, status, list[0])
}

// --- experience ---

func (p *Portfolio) ListExperience(w http.ResponseWriter, r *http.Request) {
	items, err := p.experience.List()
	if err != nil {
		respondError(w, err, "list experience")
		return
	}
	for i := range items {
		items[i].Achievements = orEmpty(items[i].Achievements)
	}
	writeJSON(w, http.StatusOK, orEmpty(items))
}

func (p *Portfolio) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var in models.Experience
	if !decodeValid(w, r, &in, "create experience") {
		return
	}
	created, err := p.experience.Create(&in)
	if err != nil {
		respondError(w, err, "create experience")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (p *Portfolio) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "update experience")
		return
	}
	e, err := p.experience.FindByID(id)
	if err != nil {
		respondError(w, err, "update experience")
		return
	}
	if e == nil {
		respondError(w, errNotFound, "update experience")
		return
	}
	if !decodeValid(w, r, e, "update experience") {
		return
	}
	e.ID = id
	updated, err := p.experience.Update(e)
	if err != nil {
		respondError(w, err, "update experience")
		return
	}
	if updated == nil {
		respondError(w, errNotFound, "update experience")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (p *Portfolio) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, p.experience.Delete, "delete experience")
}

// --- specialties ---

func (p *Portfolio) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	items, err := p.specialties.List()
	if err != nil {
		respondError(w, err, "list specialties")
		return
	}
	for i := range items {
		items[i].Technologies = orEmpty(items[i].Technologies)
	}
	writeJSON(w, http.StatusOK, orEmpty(items))
}

func (p *Portfolio) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	in := models.Specialty{Color: "primary"}
	if !decodeValid(w, r, &in, "create specialty") {
		return
	}
	created, err := p.specialties.Create(&in)
	if err != nil {
		respondError(w, err, "create specialty")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (p *Portfolio) UpdateSpecialty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, "update specialty")
		return
	}
	sp, err := p.specialties.FindByID(id)
	if err != nil {
		respondError(w, err, "update specialty")
		return
	}
	if sp == nil {
		respondError(w, errNotFound, "update specialty")
		return
	}
	if !decodeValid(w, r, sp, "update specialty") {
		return
	}
	sp.ID = id
	updated, err := p.specialties.Update(sp)
	if err != nil {
		respondError(w, err, "update specialty")
		return
	}
	if updated == nil {
		respondError(w, errNotFound, "update specialty")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (p *Portfolio) DeleteSpecialty(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, p.specialties.Delete, "delete specialty")
}

// --- hero & about ---

// Hero returns the hero copy, or an empty record before it is first saved.
func (p *Portfolio) Hero(w http.ResponseWriter, r *http.Request) {
	h, err := p.content.Hero()
	if err != nil {
		respondError(w, err, "get hero")
		return
	}
	if h == nil {
		h = &models.Hero{ID: 1}
	}
	writeJSON(w, http.StatusOK, h)
}

func (p *Portfolio) UpdateHero(w http.ResponseWriter, r *http.Request) {
	h, err := p.content.Hero()
	if err != nil {
		respondError(w, err, "update hero")
		return
	}
	if h == nil {
		h = &models.Hero{}
	}
	if !decodeValid(w, r, h, "update hero") {
		return
	}
	saved, err := p.content.SaveHero(h)
	if err != nil {
		respondError(w, err, "update hero")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// About returns the biography, or an empty record before it is first saved.
func (p *Portfolio) About(w http.ResponseWriter, r *http.Request) {
	a, err := p.content.About()
	if err != nil {
		respondError(w, err, "get about")
		return
	}
	if a == nil {
		a = &models.About{ID: 1}
	}
	a.Highlights = orEmpty(a.Highlights)
	a.HighlightsEN = orEmpty(a.HighlightsEN)
	writeJSON(w, http.StatusOK, a)
}

func (p *Portfolio) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	a, err := p.content.About()
	if err != nil {
		respondError(w, err, "update about")
		return
	}
	if a == nil {
		a = &models.About{}
	}
	if !decodeValid(w, r, a, "update about") {
		return
	}
	saved, err := p.content.SaveAbout(a)
	if err != nil {
		respondError(w, err, "update about")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// deleteByID handles DELETE /{id} for stores reporting whether a row existed.
func deleteByID(w http.ResponseWriter, r *http.Request, del func(int64) (bool, error), action string) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, err, action)
		return
	}
	ok, err := del(id)
	if err != nil {
		respondError(w, err, action)
		return
	}
	if !ok {
		respondError(w, errNotFound, action)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
