package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidCategory = errors.New("model: invalid task category")
)

// DayLayout is the wire format for all calendar dates. Tasks carry dates as
// plain strings so the persisted JSON stays byte-stable across load/save.
const DayLayout = "2006-01-02"

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone}

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryHealth   Category = "Health"
	CategoryFinance  Category = "Finance"
	CategoryOther    Category = "Other"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth, CategoryFinance, CategoryOther:
		return true
	default:
		return false
	}
}

// Categories is the fixed vocabulary; values outside it are discarded on
// normalization.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryShopping,
	CategoryHealth,
	CategoryFinance,
	CategoryOther,
}

type Subtask struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type Task struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Status              Status     `json:"status"`
	DueDate             string     `json:"dueDate,omitempty"`
	Categories          []Category `json:"categories,omitempty"`
	Subtasks            []Subtask  `json:"subtasks,omitempty"`
	IsRecurring         bool       `json:"isRecurring,omitempty"`
	RecurrencePattern   Pattern    `json:"recurrencePattern,omitempty"`
	RecurrenceEndDate   string     `json:"recurrenceEndDate,omitempty"`
	ParentRecurringID   string     `json:"parentRecurringId,omitempty"`
	IsRecurringInstance bool       `json:"isRecurringInstance,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	for _, c := range t.Categories {
		if !c.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
		}
	}
	if t.IsRecurring && !t.RecurrencePattern.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, t.RecurrencePattern)
	}
	return nil
}

// RecurringActive reports whether the task participates in recurrence
// generation: the recurring flag is set and a recognized pattern is present.
func (t Task) RecurringActive() bool {
	return t.IsRecurring && t.RecurrencePattern.IsValid()
}

// ChainRootID resolves the template at the root of a recurrence chain. A
// generated instance points at the root via ParentRecurringID; a template is
// its own root.
func (t Task) ChainRootID() string {
	if t.ParentRecurringID != "" {
		return t.ParentRecurringID
	}
	return t.ID
}

// DueTime parses the due date, reporting false when the task has none or the
// stored value is not a calendar date.
func (t Task) DueTime() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	day, err := time.Parse(DayLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// Normalize returns the task with categories collapsed to the known vocabulary
// (duplicates and unknown values dropped) and subtasks filtered to non-empty
// text with ids assigned where missing. Idempotent.
func (t Task) Normalize() Task {
	out := t
	if !out.Status.IsValid() {
		out.Status = StatusPending
	}

	if len(t.Categories) > 0 {
		seen := make(map[Category]bool, len(t.Categories))
		kept := make([]Category, 0, len(t.Categories))
		for _, c := range t.Categories {
			if !c.IsValid() || seen[c] {
				continue
			}
			seen[c] = true
			kept = append(kept, c)
		}
		if len(kept) == 0 {
			kept = nil
		}
		out.Categories = kept
	}

	if len(t.Subtasks) > 0 {
		kept := make([]Subtask, 0, len(t.Subtasks))
		for _, sub := range t.Subtasks {
			sub.Text = strings.TrimSpace(sub.Text)
			if sub.Text == "" {
				continue
			}
			if strings.TrimSpace(sub.ID) == "" {
				sub.ID = uuid.NewString()
			}
			kept = append(kept, sub)
		}
		if len(kept) == 0 {
			kept = nil
		}
		out.Subtasks = kept
	}
	return out
}

// NormalizeAll normalizes every task, preserving order.
func NormalizeAll(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Normalize())
	}
	return out
}

// FormatDay renders a time as a wire-format calendar date.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Midnight truncates a time to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from one date to another. Negative
// when to precedes from. Both ends are re-anchored to UTC midnight from their
// calendar components, so mixed locations (a UTC-parsed due date against a
// local clock) and DST-shortened days cannot skew the count.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
