package tracker

import (
	"context"

	"github.com/sandeepkv93/daytrack/internal/model"
)

// OnDayBoundary runs the once-per-day maintenance pass the midnight scheduler
// triggers: every recurring-active template due today and already Done gets
// its next occurrence generated, and today's history snapshot is refreshed so
// the new day starts with an entry. Instances are skipped here; they spawn
// successors only through their own completion.
func (t *Tracker) OnDayBoundary(ctx context.Context) {
	tasks := t.Load(ctx)
	today := t.Today()

	changed := false
	for _, task := range tasks {
		if task.IsRecurringInstance || !task.RecurringActive() {
			continue
		}
		if task.DueDate != today || task.Status != model.StatusDone {
			continue
		}
		next := t.appendNextInstance(tasks, task)
		if len(next) != len(tasks) {
			tasks = next
			changed = true
		}
	}

	if changed {
		_ = t.Save(ctx, tasks)
	}
	_ = t.recordToday(ctx, tasks)
}
