// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/models"
)

func createTech(t *testing.T, s *TechnologyStore, name, category string, order int) *models.Technology {
	t.Helper()
	tech, err := s.Create(&models.Technology{Name: name, Category: category, Level: 1, ShowInAbout: true, DisplayOrder: order})
	require.NoError(t, err)
	return tech
}

func TestTechnologyStoreReorder(t *testing.T) {
	db := testDB(t)
	s := NewTechnologyStore(db)
	names := []string{"storetest-t1", "storetest-t2", "storetest-t3"}
	t.Cleanup(func() { cleanTechnologies(t, db, names...) })

	t1 := createTech(t, s, names[0], "storetest-group", 0)
	t2 := createTech(t, s, names[1], "storetest-group", 1)
	t3 := createTech(t, s, names[2], "storetest-group", 2)

	require.NoError(t, s.Reorder([]int64{t3.ID, t1.ID, t2.ID}))

	for want, id := range []int64{t3.ID, t1.ID, t2.ID} {
		got, err := s.FindByID(id)
		require.NoError(t, err)
		assert.Equal(t, want, got.DisplayOrder)
	}

	next, err := s.NextDisplayOrder("storetest-group")
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestTechnologyStoreMove(t *testing.T) {
	db := testDB(t)
	s := NewTechnologyStore(db)
	names := []string{"storetest-m1", "storetest-m2", "storetest-m3"}
	t.Cleanup(func() { cleanTechnologies(t, db, names...) })

	m1 := createTech(t, s, names[0], "storetest-src", 0)
	m2 := createTech(t, s, names[1], "storetest-src", 1)
	m3 := createTech(t, s, names[2], "storetest-dst", 0)

	require.NoError(t, s.Move(m1.ID, "storetest-dst", nil, []int64{m3.ID, m1.ID}, []int64{m2.ID}))

	got, err := s.FindByID(m1.ID)
	require.NoError(t, err)
	assert.Equal(t, "storetest-dst", got.Category)
	assert.Equal(t, 1, got.DisplayOrder)

	got, err = s.FindByID(m2.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.DisplayOrder, "source group is compacted")
}

func TestTechnologyStoreMoveRollsBack(t *testing.T) {
	db := testDB(t)
	s := NewTechnologyStore(db)
	t.Cleanup(func() { cleanTechnologies(t, db, "storetest-rb") })

	tech := createTech(t, s, "storetest-rb", "storetest-src", 4)

	err := s.Move(tech.ID, "storetest-dst", nil, []int64{tech.ID, -1}, nil)
	assert.ErrorIs(t, err, ErrStaleID)

	got, err := s.FindByID(tech.ID)
	require.NoError(t, err)
	assert.Equal(t, "storetest-src", got.Category, "relabel must roll back with the batch")
	assert.Equal(t, 4, got.DisplayOrder)
}

func TestTechnologyStoreVisibilityConstraint(t *testing.T) {
	db := testDB(t)
	s := NewTechnologyStore(db)
	t.Cleanup(func() { cleanTechnologies(t, db, "storetest-vis") })

	_, err := s.Create(&models.Technology{Name: "storetest-vis", Level: 0, ShowInAbout: true})
	assert.Error(t, err, "database rejects level 0 shown on about page")
}

func TestTechnologyStoreFindByNames(t *testing.T) {
	db := testDB(t)
	s := NewTechnologyStore(db)
	t.Cleanup(func() { cleanTechnologies(t, db, "storetest-n1", "storetest-n2") })

	createTech(t, s, "storetest-n1", "", 0)
	createTech(t, s, "storetest-n2", "", 1)

	got, err := s.FindByNames([]string{"storetest-n2", "storetest-n1", "storetest-missing"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "storetest-n1", got[0].Name)

	none, err := s.FindByNames(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
