package tracker

import (
	"context"
	"testing"

	"github.com/sandeepkv93/daytrack/internal/model"
)

func TestSubmitTaskRejectsEmptyTitle(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()

	if _, ok := tr.SubmitTask(ctx, TaskForm{Title: "   "}); ok {
		t.Fatal("expected silent rejection for blank title")
	}
	if tasks := tr.Load(ctx); len(tasks) != 0 {
		t.Fatalf("expected no tasks persisted, got %d", len(tasks))
	}
}

func TestSubmitTaskCreates(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()

	task, ok := tr.SubmitTask(ctx, TaskForm{
		Title:       "  Write report  ",
		Description: "Quarterly numbers",
		Status:      model.StatusPending,
		DueDate:     "2024-01-05",
		Categories:  []model.Category{model.CategoryWork},
	})
	if !ok {
		t.Fatal("expected submission accepted")
	}
	if task.ID == "" {
		t.Fatal("expected assigned id")
	}
	if task.Title != "Write report" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}

	tasks := tr.Load(ctx)
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("unexpected persisted collection: %+v", tasks)
	}

	history := tr.LoadHistory(ctx)
	entry, ok := history["2024-01-02"]
	if !ok {
		t.Fatal("expected history entry for today after submit")
	}
	if entry.Completed != 0 || entry.Total != 1 {
		t.Fatalf("unexpected history entry: %+v", entry)
	}
}

func TestSubmitTaskEditsInPlace(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()

	created, _ := tr.SubmitTask(ctx, TaskForm{Title: "Draft", Status: model.StatusPending})
	edited, ok := tr.SubmitTask(ctx, TaskForm{ID: created.ID, Title: "Draft v2", Status: model.StatusInProgress})
	if !ok {
		t.Fatal("expected edit accepted")
	}
	if edited.ID != created.ID {
		t.Fatalf("expected id preserved, got %q", edited.ID)
	}
	tasks := tr.Load(ctx)
	if len(tasks) != 1 || tasks[0].Title != "Draft v2" || tasks[0].Status != model.StatusInProgress {
		t.Fatalf("unexpected collection after edit: %+v", tasks)
	}
}

func TestSubmitTaskEditPreservesInstanceLineage(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()

	seed := model.Task{
		ID:                  "inst-1",
		Title:               "Water plants",
		Status:              model.StatusPending,
		DueDate:             "2024-01-02",
		IsRecurring:         true,
		RecurrencePattern:   model.PatternDaily,
		ParentRecurringID:   "tmpl-1",
		IsRecurringInstance: true,
	}
	if err := tr.Save(ctx, []model.Task{seed}); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, ok := tr.SubmitTask(ctx, TaskForm{
		ID:                "inst-1",
		Title:             "Water plants (balcony)",
		Status:            model.StatusPending,
		DueDate:           "2024-01-02",
		IsRecurring:       true,
		RecurrencePattern: model.PatternDaily,
	})
	if !ok {
		t.Fatal("expected edit accepted")
	}
	tasks := tr.Load(ctx)
	if tasks[0].ParentRecurringID != "tmpl-1" || !tasks[0].IsRecurringInstance {
		t.Fatalf("expected lineage preserved on edit, got %+v", tasks[0])
	}
}

func TestToggleStatusCompletesAndReopens(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()

	created, _ := tr.SubmitTask(ctx, TaskForm{Title: "Errand", Status: model.StatusPending})
	tr.ToggleStatus(ctx, created.ID)
	if tasks := tr.Load(ctx); tasks[0].Status != model.StatusDone {
		t.Fatalf("expected Done after toggle, got %q", tasks[0].Status)
	}
	tr.ToggleStatus(ctx, created.ID)
	if tasks := tr.Load(ctx); tasks[0].Status != model.StatusInProgress {
		t.Fatalf("expected In Progress after second toggle, got %q", tasks[0].Status)
	}
}

func TestToggleStatusMissingIDIsNoop(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()
	tr.ToggleStatus(ctx, "missing")
	if tasks := tr.Load(ctx); len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestCompletingRecurringTaskSpawnsInstance(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-01")
	ctx := context.Background()

	template, _ := tr.SubmitTask(ctx, TaskForm{
		Title:             "Team retro",
		Status:            model.StatusPending,
		DueDate:           "2024-01-01",
		IsRecurring:       true,
		RecurrencePattern: model.PatternWeekly,
	})
	tr.ToggleStatus(ctx, template.ID)

	tasks := tr.Load(ctx)
	if len(tasks) != 2 {
		t.Fatalf("expected template plus instance, got %d tasks", len(tasks))
	}
	instance := tasks[1]
	if instance.DueDate != "2024-01-08" {
		t.Fatalf("instance due got %q want 2024-01-08", instance.DueDate)
	}
	if instance.Status != model.StatusPending {
		t.Fatalf("instance status got %q want Pending", instance.Status)
	}
	if instance.ParentRecurringID != template.ID {
		t.Fatalf("instance parent got %q want %q", instance.ParentRecurringID, template.ID)
	}
	if !instance.IsRecurringInstance {
		t.Fatal("expected recurring-instance flag")
	}
}

func TestRecurrenceEndBoundStopsGeneration(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-05")
	ctx := context.Background()

	template, _ := tr.SubmitTask(ctx, TaskForm{
		Title:             "Standup",
		Status:            model.StatusPending,
		DueDate:           "2024-01-05",
		IsRecurring:       true,
		RecurrencePattern: model.PatternDaily,
		RecurrenceEndDate: "2024-01-05",
	})
	tr.ToggleStatus(ctx, template.ID)

	if tasks := tr.Load(ctx); len(tasks) != 1 {
		t.Fatalf("expected no instance past end date, got %d tasks", len(tasks))
	}
}

func TestSetStatusDragToDoneSpawnsOnce(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-01")
	ctx := context.Background()

	template, _ := tr.SubmitTask(ctx, TaskForm{
		Title:             "Review inbox",
		Status:            model.StatusPending,
		DueDate:           "2024-01-01",
		IsRecurring:       true,
		RecurrencePattern: model.PatternDaily,
	})
	tr.SetStatus(ctx, template.ID, model.StatusDone)
	if tasks := tr.Load(ctx); len(tasks) != 2 {
		t.Fatalf("expected instance after drag to Done, got %d tasks", len(tasks))
	}

	// Reopening and completing again must not duplicate the existing
	// occurrence: the (root, due date) guard holds.
	tr.SetStatus(ctx, template.ID, model.StatusInProgress)
	tr.SetStatus(ctx, template.ID, model.StatusDone)
	if tasks := tr.Load(ctx); len(tasks) != 2 {
		t.Fatalf("expected dedup across repeat completion, got %d tasks", len(tasks))
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()
	created, _ := tr.SubmitTask(ctx, TaskForm{Title: "Errand", Status: model.StatusPending})
	tr.SetStatus(ctx, created.ID, model.Status("Archived"))
	if tasks := tr.Load(ctx); tasks[0].Status != model.StatusPending {
		t.Fatalf("expected status unchanged, got %q", tasks[0].Status)
	}
}

func TestToggleSubtask(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()

	created, _ := tr.SubmitTask(ctx, TaskForm{
		Title:    "Pack",
		Status:   model.StatusPending,
		Subtasks: []model.Subtask{{ID: "s-1", Text: "Passport"}},
	})
	tr.ToggleSubtask(ctx, created.ID, "s-1", true)
	tasks := tr.Load(ctx)
	if !tasks[0].Subtasks[0].Done {
		t.Fatal("expected subtask marked done")
	}

	tr.ToggleSubtask(ctx, created.ID, "missing", true)
	tr.ToggleSubtask(ctx, "missing", "s-1", false)
	tasks = tr.Load(ctx)
	if !tasks[0].Subtasks[0].Done {
		t.Fatal("expected no-op for missing ids")
	}
}

func TestClearCompleted(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()

	a, _ := tr.SubmitTask(ctx, TaskForm{Title: "Keep", Status: model.StatusPending})
	b, _ := tr.SubmitTask(ctx, TaskForm{Title: "Drop", Status: model.StatusPending})
	tr.ToggleStatus(ctx, b.ID)

	tr.ClearCompleted(ctx)
	tasks := tr.Load(ctx)
	if len(tasks) != 1 || tasks[0].ID != a.ID {
		t.Fatalf("expected only pending task kept, got %+v", tasks)
	}

	history := tr.LoadHistory(ctx)
	entry := history["2024-01-02"]
	if entry.Completed != 0 || entry.Total != 1 {
		t.Fatalf("expected history refreshed after clear, got %+v", entry)
	}
}

func TestDeleteTaskRefreshesHistory(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-02")
	ctx := context.Background()

	created, _ := tr.SubmitTask(ctx, TaskForm{Title: "Gone soon", Status: model.StatusPending})
	tr.DeleteTask(ctx, created.ID)
	if tasks := tr.Load(ctx); len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %d", len(tasks))
	}
	entry := tr.LoadHistory(ctx)["2024-01-02"]
	if entry.Total != 0 {
		t.Fatalf("expected total 0 after delete, got %+v", entry)
	}
}
