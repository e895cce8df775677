// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// MaxLevel is the highest proficiency level a technology can carry.
const MaxLevel = 5

// Technology is a single skill or tool shown on the portfolio.
//
// Category is the legacy free-text label used for grouping; CategoryID is
// the relational link. Level 0 means hidden, and ShowInAbout must always
// equal Level > 0.
type Technology struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon"`
	Category     string    `json:"category"`
	CategoryID   *int64    `json:"category_id"`
	Level        int       `json:"level"`
	ShowInAbout  bool      `json:"show_in_about"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetVisibility applies a level and/or visibility change while keeping
// Level and ShowInAbout in lockstep. A level change wins over a
// conflicting visibility flag. Turning visibility on for a hidden
// technology restores level 1.
func (t *Technology) SetVisibility(level *int, show *bool) {
	switch {
	case level != nil:
		t.Level = clampLevel(*level)
	case show != nil && *show:
		if t.Level == 0 {
			t.Level = 1
		}
	case show != nil:
		t.Level = 0
	}
	t.ShowInAbout = t.Level > 0
}

// clampLevel bounds a level to 0..MaxLevel.
func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
