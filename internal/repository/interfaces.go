package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mresler/dayboard/internal/domain"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// SettingsRepo stores the process-wide controller settings. Loaded once at
// board startup, saved whenever an admin changes them.
type SettingsRepo interface {
	Get(ctx context.Context) (*domain.ControllerSettings, error)
	Upsert(ctx context.Context, s *domain.ControllerSettings) error
}

// DayLogRepo remembers which operating days were opened, so the board can
// default to the last one.
type DayLogRepo interface {
	Touch(ctx context.Context, day time.Time) error
	LastOpened(ctx context.Context) (time.Time, error)
}
