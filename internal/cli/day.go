package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mresler/dayboard/internal/domain"
	"github.com/mresler/dayboard/internal/repository"
)

const dayLayout = "2006-01-02"

// resolveDay turns the --day flag into an operating day. An empty flag falls
// back to the last day the board was opened on, then to today.
func resolveDay(ctx context.Context, flag string, days repository.DayLogRepo) (time.Time, error) {
	if flag != "" {
		day, err := time.Parse(dayLayout, flag)
		if err != nil {
			return time.Time{}, fmt.Errorf("day %q is not YYYY-MM-DD", flag)
		}
		return day, nil
	}
	if days != nil {
		day, err := days.LastOpened(ctx)
		if err == nil {
			return day, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return time.Time{}, err
		}
	}
	return domain.DayOf(time.Now()), nil
}

// touchDay records the day as opened. Best-effort; the board works without it.
func touchDay(ctx context.Context, days repository.DayLogRepo, day time.Time) {
	if days != nil {
		_ = days.Touch(ctx, day)
	}
}
