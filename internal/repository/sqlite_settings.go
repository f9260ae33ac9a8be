package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mresler/dayboard/internal/db"
	"github.com/mresler/dayboard/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo using a SQLite database.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.ControllerSettings, error) {
	query := `SELECT submit_time, location, duration_cap_one, duration_cap_two,
		duration_cap_three, gap_min, step_min, min_duration_min, max_duration_min, updated_at
		FROM controller_settings WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var s domain.ControllerSettings
	var updatedAt string
	err := row.Scan(
		&s.SubmitTime,
		&s.Location,
		&s.DurationCapOne,
		&s.DurationCapTwo,
		&s.DurationCapThree,
		&s.GapMin,
		&s.StepMin,
		&s.MinDurationMin,
		&s.MaxDurationMin,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("controller settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning controller settings: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		s.UpdatedAt = t
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.ControllerSettings) error {
	query := `INSERT OR REPLACE INTO controller_settings (id, submit_time, location,
		duration_cap_one, duration_cap_two, duration_cap_three, gap_min, step_min,
		min_duration_min, max_duration_min, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.SubmitTime,
		s.Location,
		s.DurationCapOne,
		s.DurationCapTwo,
		s.DurationCapThree,
		s.GapMin,
		s.StepMin,
		s.MinDurationMin,
		s.MaxDurationMin,
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting controller settings: %w", err)
	}
	return nil
}

// LoadOrDefault returns the stored settings, falling back to defaults when
// none have been saved yet.
func LoadOrDefault(ctx context.Context, repo SettingsRepo) (domain.ControllerSettings, error) {
	s, err := repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.DefaultControllerSettings(), nil
		}
		return domain.ControllerSettings{}, err
	}
	return *s, nil
}
