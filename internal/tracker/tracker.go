// Package tracker owns the canonical task collection and every rule derived
// from it: normalization, recurrence generation, completion history and
// streaks, filtering and search, and the view projections the presentation
// layer consumes. All mutations are synchronous read-modify-write cycles over
// the persistence gateway.
package tracker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sandeepkv93/daytrack/internal/model"
	"github.com/sandeepkv93/daytrack/internal/storage"
)

type Tracker struct {
	store storage.Store
	now   func() time.Time
}

type Option func(*Tracker)

// WithClock replaces the wall clock, letting tests pin "today".
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func New(store storage.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Today returns the current calendar date in wire format.
func (t *Tracker) Today() string {
	return model.FormatDay(t.now())
}

// Load reads the full task collection in insertion order. Absent or malformed
// blobs degrade to an empty collection; Load never fails.
func (t *Tracker) Load(ctx context.Context) []model.Task {
	raw, err := t.store.Get(ctx, storage.KeyTasks)
	if err != nil {
		return []model.Task{}
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return []model.Task{}
	}
	return model.NormalizeAll(tasks)
}

// Save persists the full collection, replacing prior content.
func (t *Tracker) Save(ctx context.Context, tasks []model.Task) error {
	payload, err := json.Marshal(model.NormalizeAll(tasks))
	if err != nil {
		return err
	}
	return t.store.Set(ctx, storage.KeyTasks, string(payload))
}

// Upsert replaces the task matching its id in place, or appends it.
func (t *Tracker) Upsert(ctx context.Context, task model.Task) error {
	tasks := t.Load(ctx)
	replaced := false
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			replaced = true
			break
		}
	}
	if !replaced {
		tasks = append(tasks, task)
	}
	if err := t.Save(ctx, tasks); err != nil {
		return err
	}
	return t.recordToday(ctx, tasks)
}

// Remove filters out the task with the given id; an absent id is a no-op.
func (t *Tracker) Remove(ctx context.Context, id string) error {
	tasks := t.Load(ctx)
	kept := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	if len(kept) == len(tasks) {
		return nil
	}
	if err := t.Save(ctx, kept); err != nil {
		return err
	}
	return t.recordToday(ctx, kept)
}

func (t *Tracker) loadString(ctx context.Context, key string) string {
	raw, err := t.store.Get(ctx, key)
	if err != nil {
		return ""
	}
	return raw
}
