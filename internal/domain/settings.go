package domain

import (
	"fmt"
	"time"
)

// ControllerSettings holds the process-wide scheduling knobs the board
// controller applies when placing new events. Persisted across sessions.
type ControllerSettings struct {
	SubmitTime       string // "HH:MM", earliest start offered to new events
	Location         string // default location for new events
	DurationCapOne   int    // minutes for a 1-student booking
	DurationCapTwo   int    // minutes for a 2-student booking
	DurationCapThree int    // minutes for 3+ students
	GapMin           int
	StepMin          int
	MinDurationMin   int
	MaxDurationMin   int
	UpdatedAt        time.Time
}

// DefaultControllerSettings returns the settings applied before an admin has
// saved any.
func DefaultControllerSettings() ControllerSettings {
	return ControllerSettings{
		SubmitTime:       "09:00",
		Location:         "",
		DurationCapOne:   60,
		DurationCapTwo:   90,
		DurationCapThree: 120,
		GapMin:           15,
		StepMin:          15,
		MinDurationMin:   30,
		MaxDurationMin:   180,
	}
}

// DurationForCapacity maps a booking's student count to the controller's
// default lesson duration.
func (s ControllerSettings) DurationForCapacity(students int) int {
	switch {
	case students <= 1:
		return s.DurationCapOne
	case students == 2:
		return s.DurationCapTwo
	default:
		return s.DurationCapThree
	}
}

// Validate reports the first structural problem with the settings.
func (s ControllerSettings) Validate() error {
	if _, err := time.Parse("15:04", s.SubmitTime); err != nil {
		return fmt.Errorf("submit time %q is not HH:MM", s.SubmitTime)
	}
	if s.StepMin <= 0 {
		return fmt.Errorf("step duration must be positive, got %d", s.StepMin)
	}
	if s.GapMin < 0 {
		return fmt.Errorf("gap minutes must not be negative, got %d", s.GapMin)
	}
	if s.MinDurationMin <= 0 || s.MaxDurationMin < s.MinDurationMin {
		return fmt.Errorf("duration bounds [%d, %d] are invalid", s.MinDurationMin, s.MaxDurationMin)
	}
	for _, d := range []int{s.DurationCapOne, s.DurationCapTwo, s.DurationCapThree} {
		if d <= 0 {
			return fmt.Errorf("capacity durations must be positive, got %d", d)
		}
	}
	return nil
}
