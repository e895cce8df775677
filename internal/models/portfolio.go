// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Project is a portfolio showcase entry. Technologies holds technology
// names; matching rows are resolved at read time.
type Project struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title" validate:"required,max=200"`
	TitleEN           string    `json:"title_en" validate:"max=200"`
	Description       string    `json:"description" validate:"max=2000"`
	DescriptionEN     string    `json:"description_en" validate:"max=2000"`
	LongDescription   string    `json:"long_description" validate:"max=20000"`
	LongDescriptionEN string    `json:"long_description_en" validate:"max=20000"`
	ImageURL          string    `json:"image_url" validate:"omitempty,max=500,uri"`
	DemoURL           string    `json:"demo_url" validate:"omitempty,max=500,http_url"`
	GitHubURL         string    `json:"github_url" validate:"omitempty,max=500,http_url"`
	Technologies      []string  `json:"technologies" validate:"dive,max=100"`
	Featured          bool      `json:"featured"`
	DisplayOrder      int       `json:"display_order" validate:"gte=0,lte=9999"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	TechnologyEntities []Technology `json:"technology_entities"`
}

// Experience is one entry of the work history timeline.
type Experience struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title" validate:"required,max=200"`
	Company      string    `json:"company" validate:"required,max=200"`
	Period       string    `json:"period" validate:"max=100"`
	Description  string    `json:"description" validate:"max=5000"`
	Achievements []string  `json:"achievements" validate:"dive,max=1000"`
	DisplayOrder int       `json:"display_order" validate:"gte=0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Specialty is a highlighted area of expertise on the home page.
type Specialty struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title" validate:"required,max=200"`
	TitleEN       string    `json:"title_en" validate:"max=200"`
	Description   string    `json:"description" validate:"required,max=2000"`
	DescriptionEN string    `json:"description_en" validate:"max=2000"`
	Color         string    `json:"color" validate:"omitempty,oneof=primary green blue"`
	IconType      string    `json:"icon_type" validate:"omitempty,oneof=frontend backend devops database mobile cloud"`
	Technologies  []string  `json:"technologies" validate:"dive,max=100"`
	DisplayOrder  int       `json:"display_order" validate:"gte=0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Hero is the singleton landing banner copy.
type Hero struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title" validate:"max=200"`
	TitleHighlight     string    `json:"title_highlight" validate:"max=200"`
	TitleEN            string    `json:"title_en" validate:"max=200"`
	TitleHighlightEN   string    `json:"title_highlight_en" validate:"max=200"`
	Subtitle           string    `json:"subtitle" validate:"max=300"`
	SubtitleEN         string    `json:"subtitle_en" validate:"max=300"`
	Description        string    `json:"description" validate:"max=2000"`
	DescriptionEN      string    `json:"description_en" validate:"max=2000"`
	BackgroundImageURL string    `json:"background_image_url" validate:"omitempty,max=500,uri"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// About is the singleton biography section.
type About struct {
	ID           int64     `json:"id"`
	Bio          string    `json:"bio" validate:"max=10000"`
	BioEN        string    `json:"bio_en" validate:"max=10000"`
	Highlights   []string  `json:"highlights" validate:"dive,max=500"`
	HighlightsEN []string  `json:"highlights_en" validate:"dive,max=500"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
