package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/testutil"
)

func TestEffortRepository_ReplaceForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewEffortRepository(db)
	user := testutil.TestUser(t, db)

	week1 := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	week2 := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	first := []*model.EffortDistribution{
		{UserID: user.ID, WeekStart: week1, Features: 3, Fixes: 1},
	}
	require.NoError(t, repo.ReplaceForUser(user.ID, first))

	second := []*model.EffortDistribution{
		{UserID: user.ID, WeekStart: week1, Features: 2},
		{UserID: user.ID, WeekStart: week2, Refactors: 4},
	}
	require.NoError(t, repo.ReplaceForUser(user.ID, second))

	weeks, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, weeks, 2)

	// 按周起点升序
	assert.True(t, week1.Equal(weeks[0].WeekStart))
	assert.Equal(t, 2, weeks[0].Features)
	assert.Equal(t, 0, weeks[0].Fixes)
	assert.True(t, week2.Equal(weeks[1].WeekStart))
	assert.Equal(t, 4, weeks[1].Refactors)
}

func TestEffortRepository_ReplaceForUser_IsolatesUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewEffortRepository(db)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	week := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ReplaceForUser(other.ID, []*model.EffortDistribution{
		{UserID: other.ID, WeekStart: week, Tests: 5},
	}))

	require.NoError(t, repo.ReplaceForUser(user.ID, nil))

	weeks, err := repo.ListByUser(other.ID)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, 5, weeks[0].Tests)
}
