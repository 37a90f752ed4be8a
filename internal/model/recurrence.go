package model

import (
	"errors"

	"github.com/google/uuid"
)

type Pattern string

const (
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
)

var ErrInvalidPattern = errors.New("model: invalid recurrence pattern")

func (p Pattern) IsValid() bool {
	switch p {
	case PatternDaily, PatternWeekly, PatternMonthly:
		return true
	default:
		return false
	}
}

// Patterns lists the recognized recurrence patterns in form order.
var Patterns = []Pattern{PatternDaily, PatternWeekly, PatternMonthly}

// NextOccurrence computes the occurrence after day for the given pattern.
// Monthly uses calendar month arithmetic, so month-end dates roll over the
// short months (Jan 31 advances to Mar 2 or Mar 3); that behavior is kept
// deliberately. Reports false for an unrecognized pattern or an unparseable
// day.
func NextOccurrence(day string, pattern Pattern) (string, bool) {
	base, ok := Task{DueDate: day}.DueTime()
	if !ok {
		return "", false
	}
	switch pattern {
	case PatternDaily:
		return FormatDay(base.AddDate(0, 0, 1)), true
	case PatternWeekly:
		return FormatDay(base.AddDate(0, 0, 7)), true
	case PatternMonthly:
		return FormatDay(base.AddDate(0, 1, 0)), true
	default:
		return "", false
	}
}

// NextInstance builds the successor occurrence for a recurring-active task.
// The instance gets a fresh id, copied title, description and categories,
// subtasks reset to undone with fresh ids, status Pending, and a parent
// reference tracing to the root template of the chain. Reports false when the
// task is not recurring-active, no next date is computable, or the next date
// falls past the recurrence end bound.
func NextInstance(template Task) (Task, bool) {
	if !template.RecurringActive() {
		return Task{}, false
	}
	next, ok := NextOccurrence(template.DueDate, template.RecurrencePattern)
	if !ok {
		return Task{}, false
	}
	if end, hasEnd := (Task{DueDate: template.RecurrenceEndDate}).DueTime(); hasEnd {
		nextDay, _ := Task{DueDate: next}.DueTime()
		if nextDay.After(end) {
			return Task{}, false
		}
	}

	subtasks := make([]Subtask, 0, len(template.Subtasks))
	for _, sub := range template.Subtasks {
		subtasks = append(subtasks, Subtask{
			ID:   uuid.NewString(),
			Text: sub.Text,
			Done: false,
		})
	}
	if len(subtasks) == 0 {
		subtasks = nil
	}

	instance := Task{
		ID:                  uuid.NewString(),
		Title:               template.Title,
		Description:         template.Description,
		Status:              StatusPending,
		DueDate:             next,
		Categories:          append([]Category(nil), template.Categories...),
		Subtasks:            subtasks,
		IsRecurring:         template.IsRecurring,
		RecurrencePattern:   template.RecurrencePattern,
		RecurrenceEndDate:   template.RecurrenceEndDate,
		ParentRecurringID:   template.ChainRootID(),
		IsRecurringInstance: true,
	}
	return instance, true
}
