// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"sort"

	"folio/internal/models"
)

// Group is one category tab with its technologies in display order.
// Category is nil for the synthetic "other" group.
type Group struct {
	Key          string              `json:"key"`
	Category     *models.Category    `json:"category"`
	Technologies []models.Technology `json:"technologies"`
}

// GroupTechnologies partitions technologies by category label. Every defined
// category yields a group, even when empty, in display_order then name
// order. Technologies whose label matches no category land in a trailing
// "other" group, which is present only when it has members. No technology
// is ever dropped.
func GroupTechnologies(categories []models.Category, technologies []models.Technology) []Group {
	cats := make([]models.Category, len(categories))
	copy(cats, categories)
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].DisplayOrder != cats[j].DisplayOrder {
			return cats[i].DisplayOrder < cats[j].DisplayOrder
		}
		return cats[i].Name < cats[j].Name
	})

	groups := make([]Group, 0, len(cats)+1)
	index := make(map[string]int, len(cats))
	for i := range cats {
		index[cats[i].Name] = len(groups)
		groups = append(groups, Group{
			Key:          cats[i].Name,
			Category:     &cats[i],
			Technologies: []models.Technology{},
		})
	}

	var other []models.Technology
	for _, t := range technologies {
		if i, ok := index[t.Category]; ok {
			groups[i].Technologies = append(groups[i].Technologies, t)
		} else {
			other = append(other, t)
		}
	}
	if len(other) > 0 {
		groups = append(groups, Group{Key: models.OtherGroup, Technologies: other})
	}

	for i := range groups {
		sortTechnologies(groups[i].Technologies)
	}
	return groups
}

// sortTechnologies orders by display_order, ties broken by name.
func sortTechnologies(ts []models.Technology) {
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].DisplayOrder != ts[j].DisplayOrder {
			return ts[i].DisplayOrder < ts[j].DisplayOrder
		}
		return ts[i].Name < ts[j].Name
	})
}

// findGroup returns the group with the given key, or nil.
func findGroup(groups []Group, key string) *Group {
	for i := range groups {
		if groups[i].Key == key {
			return &groups[i]
		}
	}
	return nil
}

// memberIDs returns the ids of g's technologies in order, skipping exclude.
func memberIDs(g *Group, exclude int64) []int64 {
	if g == nil {
		return []int64{}
	}
	ids := make([]int64, 0, len(g.Technologies))
	for _, t := range g.Technologies {
		if t.ID != exclude {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// insertAt returns ids with id inserted at index, clamped to [0, len(ids)].
func insertAt(ids []int64, id int64, index int) []int64 {
	if index < 0 {
		index = 0
	}
	if index > len(ids) {
		index = len(ids)
	}
	out := make([]int64, 0, len(ids)+1)
	out = append(out, ids[:index]...)
	out = append(out, id)
	return append(out, ids[index:]...)
}

// samePermutation reports whether want lists exactly the members of have,
// each once.
func samePermutation(have, want []int64) bool {
	if len(have) != len(want) {
		return false
	}
	seen := make(map[int64]bool, len(have))
	for _, id := range have {
		seen[id] = true
	}
	for _, id := range want {
		if !seen[id] {
			return false
		}
		delete(seen, id)
	}
	return len(seen) == 0
}
