package tracker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sandeepkv93/daytrack/internal/model"
	"github.com/sandeepkv93/daytrack/internal/storage"
)

// DateRange bounds due dates; either side may be empty for an open end.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

func (r DateRange) isSet() bool {
	return r.From != "" || r.To != ""
}

// Criteria is the persisted filter state. An empty axis places no constraint;
// selected values within an axis are alternatives (OR), while the axes
// themselves all have to match (AND).
type Criteria struct {
	DateRange  DateRange        `json:"dateRange"`
	Categories []model.Category `json:"categories,omitempty"`
	Statuses   []model.Status   `json:"statuses,omitempty"`
	Urgencies  []model.Urgency  `json:"urgencies,omitempty"`
}

func (c Criteria) IsZero() bool {
	return !c.DateRange.isSet() && len(c.Categories) == 0 && len(c.Statuses) == 0 && len(c.Urgencies) == 0
}

// Filters reads the persisted criteria; absent or malformed blobs mean no
// constraints.
func (t *Tracker) Filters(ctx context.Context) Criteria {
	raw, err := t.store.Get(ctx, storage.KeyFilters)
	if err != nil {
		return Criteria{}
	}
	var criteria Criteria
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return Criteria{}
	}
	return criteria
}

// SetFilters persists the criteria, replacing prior state.
func (t *Tracker) SetFilters(ctx context.Context, criteria Criteria) error {
	payload, err := json.Marshal(criteria)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, storage.KeyFilters, string(payload))
}

// Search reads the persisted free-text query; absent key means no query.
func (t *Tracker) Search(ctx context.Context) string {
	return t.loadString(ctx, storage.KeySearch)
}

// SetSearch persists the trimmed query. The search blob is a plain string, not
// JSON.
func (t *Tracker) SetSearch(ctx context.Context, query string) error {
	return t.store.Set(ctx, storage.KeySearch, strings.TrimSpace(query))
}

// ApplyFilters keeps the tasks matching every set axis of the criteria.
func ApplyFilters(tasks []model.Task, criteria Criteria, today time.Time) []model.Task {
	if criteria.IsZero() {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if matchesCriteria(task, criteria, today) {
			out = append(out, task)
		}
	}
	return out
}

func matchesCriteria(task model.Task, criteria Criteria, today time.Time) bool {
	if criteria.DateRange.isSet() && !matchesDateRange(task, criteria.DateRange) {
		return false
	}
	if len(criteria.Categories) > 0 && !hasAnyCategory(task, criteria.Categories) {
		return false
	}
	if len(criteria.Statuses) > 0 && !containsStatus(criteria.Statuses, task.Status) {
		return false
	}
	if len(criteria.Urgencies) > 0 && !containsUrgency(criteria.Urgencies, model.UrgencyOf(task, today)) {
		return false
	}
	return true
}

func matchesDateRange(task model.Task, r DateRange) bool {
	due, ok := task.DueTime()
	if !ok {
		// A set range excludes tasks without a due date.
		return false
	}
	if from, err := time.Parse(model.DayLayout, r.From); err == nil && due.Before(from) {
		return false
	}
	if to, err := time.Parse(model.DayLayout, r.To); err == nil && due.After(to) {
		return false
	}
	return true
}

func hasAnyCategory(task model.Task, selected []model.Category) bool {
	for _, want := range selected {
		for _, have := range task.Categories {
			if have == want {
				return true
			}
		}
	}
	return false
}

func containsStatus(selected []model.Status, status model.Status) bool {
	for _, s := range selected {
		if s == status {
			return true
		}
	}
	return false
}

func containsUrgency(selected []model.Urgency, urgency model.Urgency) bool {
	for _, u := range selected {
		if u == urgency {
			return true
		}
	}
	return false
}

// ApplySearch keeps tasks whose title, description, or any subtask text
// contains the query, case-insensitively. An empty query passes everything.
func ApplySearch(tasks []model.Task, query string) []model.Task {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if matchesSearch(task, needle) {
			out = append(out, task)
		}
	}
	return out
}

func matchesSearch(task model.Task, needle string) bool {
	if strings.Contains(strings.ToLower(task.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(task.Description), needle) {
		return true
	}
	for _, sub := range task.Subtasks {
		if strings.Contains(strings.ToLower(sub.Text), needle) {
			return true
		}
	}
	return false
}

// Visible derives the visible subset: persisted filters first, then the
// persisted search query, both narrowing.
func (t *Tracker) Visible(ctx context.Context) []model.Task {
	tasks := ApplyFilters(t.Load(ctx), t.Filters(ctx), t.now())
	return ApplySearch(tasks, t.Search(ctx))
}
