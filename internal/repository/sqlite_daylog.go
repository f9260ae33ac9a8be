package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mresler/dayboard/internal/db"
)

const dayLayout = "2006-01-02"

// SQLiteDayLogRepo implements DayLogRepo using a SQLite database.
type SQLiteDayLogRepo struct {
	db db.DBTX
}

// NewSQLiteDayLogRepo creates a new SQLiteDayLogRepo.
func NewSQLiteDayLogRepo(conn db.DBTX) *SQLiteDayLogRepo {
	return &SQLiteDayLogRepo{db: conn}
}

func (r *SQLiteDayLogRepo) Touch(ctx context.Context, day time.Time) error {
	query := `INSERT OR REPLACE INTO board_days (day, last_opened_at) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		day.Format(dayLayout),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording board day: %w", err)
	}
	return nil
}

func (r *SQLiteDayLogRepo) LastOpened(ctx context.Context) (time.Time, error) {
	query := `SELECT day FROM board_days ORDER BY last_opened_at DESC LIMIT 1`
	var day string
	if err := r.db.QueryRowContext(ctx, query).Scan(&day); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, fmt.Errorf("board day: %w", ErrNotFound)
		}
		return time.Time{}, fmt.Errorf("scanning board day: %w", err)
	}
	parsed, err := time.Parse(dayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing board day %q: %w", day, err)
	}
	return parsed, nil
}
