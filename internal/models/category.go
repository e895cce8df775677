// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// DefaultCategoryColor is applied when a category is created without a color.
const DefaultCategoryColor = "#F5A623"

// OtherGroup is the synthetic group key for technologies whose label
// matches no defined category.
const OtherGroup = "other"

// Category groups technologies under a titled, ordered tab. Name is the
// slug derived from ShortTitle and is unique across all categories.
type Category struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ShortTitle    string    `json:"short_title"`
	LongTitle     string    `json:"long_title"`
	ShortTitleEN  string    `json:"short_title_en"`
	LongTitleEN   string    `json:"long_title_en"`
	Description   string    `json:"description"`
	DescriptionEN string    `json:"description_en"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	DisplayOrder  int       `json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Virtual field populated by store methods.
	TechnologyCount int `json:"technology_count"`
}
