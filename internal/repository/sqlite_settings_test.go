package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mresler/dayboard/internal/domain"
	"github.com/mresler/dayboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_GetBeforeAnySave(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsRepo_UpsertRoundtrip(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	saved := domain.DefaultControllerSettings()
	saved.SubmitTime = "10:30"
	saved.GapMin = 30
	saved.Location = "south pier"
	saved.UpdatedAt = time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, &saved))

	got, err := repo.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, saved, *got)
}

func TestSettingsRepo_UpsertReplacesExistingRow(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := domain.DefaultControllerSettings()
	require.NoError(t, repo.Upsert(ctx, &first))

	second := first
	second.StepMin = 5
	require.NoError(t, repo.Upsert(ctx, &second))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, got.StepMin)
}

func TestLoadOrDefault_FallsBackWhenUnsaved(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))

	s, err := LoadOrDefault(context.Background(), repo)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultControllerSettings(), s)
}

func TestLoadOrDefault_PrefersStoredSettings(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	saved := domain.DefaultControllerSettings()
	saved.GapMin = 0
	require.NoError(t, repo.Upsert(ctx, &saved))

	s, err := LoadOrDefault(ctx, repo)

	require.NoError(t, err)
	assert.Equal(t, 0, s.GapMin)
}
