package model

import "time"

// Urgency is a derived classification of a due date relative to the current
// day; it is never stored on the task.
type Urgency string

const (
	UrgencyNone     Urgency = ""
	UrgencyOverdue  Urgency = "Overdue"
	UrgencyToday    Urgency = "Today"
	UrgencyThisWeek Urgency = "ThisWeek"
	UrgencyLater    Urgency = "Later"
)

// Urgencies lists the selectable buckets; UrgencyNone is excluded because a
// task without a due date never matches an urgency filter.
var Urgencies = []Urgency{UrgencyOverdue, UrgencyToday, UrgencyThisWeek, UrgencyLater}

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyOverdue, UrgencyToday, UrgencyThisWeek, UrgencyLater:
		return true
	default:
		return false
	}
}

// UrgencyOf buckets a task's due date against today. Both dates are truncated
// to midnight before the day difference is taken.
func UrgencyOf(t Task, today time.Time) Urgency {
	due, ok := t.DueTime()
	if !ok {
		return UrgencyNone
	}
	switch diff := DaysBetween(today, due); {
	case diff < 0:
		return UrgencyOverdue
	case diff == 0:
		return UrgencyToday
	case diff <= 7:
		return UrgencyThisWeek
	default:
		return UrgencyLater
	}
}
