package cli

import (
	"fmt"
	"strings"

	"github.com/mresler/dayboard/internal/board"
	"github.com/mresler/dayboard/internal/domain"
	"github.com/mresler/dayboard/internal/schedule"
)

// formatEventLine renders one event row for plain-text output.
func formatEventLine(m board.MergedEvent) string {
	n := m.Node
	marker := " "
	if m.Pending {
		marker = "~"
	}
	loc := n.Data.Location
	if loc == "" {
		loc = "-"
	}
	return fmt.Sprintf("%s %s-%s  %-18s %2d st  %-12s %s",
		marker,
		n.Start().Format("15:04"),
		n.End().Format("15:04"),
		n.BookingLeaderName,
		n.CapacityStudents,
		loc,
		n.Data.Status,
	)
}

// formatDayBoard renders the whole board for non-interactive output.
func formatDayBoard(c *board.Coordinator) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board for %s\n", c.Day().Format(dayLayout))

	teachers := c.Teachers()
	if len(teachers) == 0 {
		b.WriteString("\n  no active teachers\n")
	}
	for _, t := range teachers {
		fmt.Fprintf(&b, "\n%s\n", formatTeacherHeading(t, c.MergedEvents(t.ID)))
		events := c.MergedEvents(t.ID)
		if len(events) == 0 {
			b.WriteString("    (free all day)\n")
			continue
		}
		for _, ev := range events {
			fmt.Fprintf(&b, "   %s\n", formatEventLine(ev))
		}
	}

	if skipped := c.SkippedLessons(); len(skipped) > 0 {
		b.WriteString("\nNot placed:\n")
		for _, s := range skipped {
			fmt.Fprintf(&b, "   %s\n", formatSkippedLine(s))
		}
	}
	return b.String()
}

func formatTeacherHeading(t domain.Teacher, events []board.MergedEvent) string {
	return fmt.Sprintf("  %s (%d events)", t.Username, len(events))
}

func formatSkippedLine(s schedule.SkippedLesson) string {
	return fmt.Sprintf("booking %s lesson %s: %s", s.BookingID, s.LessonID, s.Reason)
}

// formatSettings renders the controller settings as aligned key/value lines.
func formatSettings(s domain.ControllerSettings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "submit time        %s\n", s.SubmitTime)
	fmt.Fprintf(&b, "default location   %s\n", orDash(s.Location))
	fmt.Fprintf(&b, "duration 1/2/3+    %d/%d/%d min\n", s.DurationCapOne, s.DurationCapTwo, s.DurationCapThree)
	fmt.Fprintf(&b, "gap                %d min\n", s.GapMin)
	fmt.Fprintf(&b, "step               %d min\n", s.StepMin)
	fmt.Fprintf(&b, "duration bounds    %d-%d min\n", s.MinDurationMin, s.MaxDurationMin)
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
