package tracker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sandeepkv93/daytrack/internal/model"
)

// TaskForm carries the fields submitted from the task form. An empty ID means
// creation; a non-empty ID edits the matching task in place.
type TaskForm struct {
	ID                string
	Title             string
	Description       string
	Status            model.Status
	DueDate           string
	Categories        []model.Category
	Subtasks          []model.Subtask
	IsRecurring       bool
	RecurrencePattern model.Pattern
	RecurrenceEndDate string
}

// SubmitTask creates or edits a task from form fields. A title that is empty
// after trimming silently rejects the submission and reports false; the caller
// keeps its form state. Editing an id that no longer exists appends the task.
func (t *Tracker) SubmitTask(ctx context.Context, form TaskForm) (model.Task, bool) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return model.Task{}, false
	}

	task := model.Task{
		ID:                form.ID,
		Title:             title,
		Description:       strings.TrimSpace(form.Description),
		Status:            form.Status,
		DueDate:           form.DueDate,
		Categories:        form.Categories,
		Subtasks:          form.Subtasks,
		IsRecurring:       form.IsRecurring,
		RecurrencePattern: form.RecurrencePattern,
		RecurrenceEndDate: form.RecurrenceEndDate,
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task = task.Normalize()

	tasks := t.Load(ctx)
	existing, found := findTask(tasks, task.ID)
	if found {
		// An edit keeps the instance lineage markers the form does not carry.
		task.ParentRecurringID = existing.ParentRecurringID
		task.IsRecurringInstance = existing.IsRecurringInstance
	}
	tasks = upsertTask(tasks, task)
	if found && existing.Status != model.StatusDone && task.Status == model.StatusDone {
		tasks = t.appendNextInstance(tasks, task)
	}
	t.persist(ctx, tasks)
	return task, true
}

// DeleteTask removes the task; an unknown id is a no-op that still refreshes
// today's history snapshot.
func (t *Tracker) DeleteTask(ctx context.Context, id string) {
	tasks := t.Load(ctx)
	kept := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	t.persist(ctx, kept)
}

// ToggleStatus flips a task between Done and In Progress: a Done task reopens
// as In Progress, anything else completes.
func (t *Tracker) ToggleStatus(ctx context.Context, id string) {
	tasks := t.Load(ctx)
	task, found := findTask(tasks, id)
	if !found {
		return
	}
	if task.Status == model.StatusDone {
		t.applyStatus(ctx, tasks, task, model.StatusInProgress)
		return
	}
	t.applyStatus(ctx, tasks, task, model.StatusDone)
}

// SetStatus moves a task to an explicit status (status select, drag to a board
// column). Unknown ids and unknown statuses are no-ops.
func (t *Tracker) SetStatus(ctx context.Context, id string, status model.Status) {
	if !status.IsValid() {
		return
	}
	tasks := t.Load(ctx)
	task, found := findTask(tasks, id)
	if !found {
		return
	}
	t.applyStatus(ctx, tasks, task, status)
}

// ToggleSubtask sets the done flag on one subtask. Missing task or subtask ids
// are no-ops.
func (t *Tracker) ToggleSubtask(ctx context.Context, taskID, subtaskID string, done bool) {
	tasks := t.Load(ctx)
	task, found := findTask(tasks, taskID)
	if !found {
		return
	}
	changed := false
	for i := range task.Subtasks {
		if task.Subtasks[i].ID == subtaskID {
			task.Subtasks[i].Done = done
			changed = true
			break
		}
	}
	if !changed {
		return
	}
	tasks = upsertTask(tasks, task)
	t.persist(ctx, tasks)
}

// ClearCompleted removes every Done task in one pass.
func (t *Tracker) ClearCompleted(ctx context.Context) {
	tasks := t.Load(ctx)
	kept := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status != model.StatusDone {
			kept = append(kept, task)
		}
	}
	t.persist(ctx, kept)
}

func (t *Tracker) applyStatus(ctx context.Context, tasks []model.Task, task model.Task, status model.Status) {
	wasDone := task.Status == model.StatusDone
	task.Status = status
	tasks = upsertTask(tasks, task)
	if !wasDone && status == model.StatusDone {
		tasks = t.appendNextInstance(tasks, task)
	}
	t.persist(ctx, tasks)
}

// appendNextInstance generates the successor occurrence for a recurring-active
// task unless an equivalent instance already exists. Both completion triggers
// (direct completion and the day-boundary sweep) funnel through here, so the
// (chain root, due date) guard prevents double generation.
func (t *Tracker) appendNextInstance(tasks []model.Task, template model.Task) []model.Task {
	instance, ok := model.NextInstance(template)
	if !ok {
		return tasks
	}
	for _, existing := range tasks {
		if existing.IsRecurringInstance &&
			existing.ParentRecurringID == instance.ParentRecurringID &&
			existing.DueDate == instance.DueDate {
			return tasks
		}
	}
	return append(tasks, instance)
}

func (t *Tracker) persist(ctx context.Context, tasks []model.Task) {
	_ = t.Save(ctx, tasks)
	_ = t.recordToday(ctx, tasks)
}

func findTask(tasks []model.Task, id string) (model.Task, bool) {
	for _, task := range tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func upsertTask(tasks []model.Task, task model.Task) []model.Task {
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			return tasks
		}
	}
	return append(tasks, task)
}
