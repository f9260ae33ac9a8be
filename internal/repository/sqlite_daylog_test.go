package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mresler/dayboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayLogRepo_LastOpenedBeforeAnyTouch(t *testing.T) {
	repo := NewSQLiteDayLogRepo(testutil.NewTestDB(t))

	_, err := repo.LastOpened(context.Background())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDayLogRepo_TouchAndLastOpened(t *testing.T) {
	repo := NewSQLiteDayLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Touch(ctx, day))

	got, err := repo.LastOpened(ctx)

	require.NoError(t, err)
	assert.Equal(t, day, got)
}

func TestDayLogRepo_TouchIsIdempotentPerDay(t *testing.T) {
	repo := NewSQLiteDayLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Touch(ctx, day))
	require.NoError(t, repo.Touch(ctx, day))

	got, err := repo.LastOpened(ctx)
	require.NoError(t, err)
	assert.Equal(t, day, got)
}
