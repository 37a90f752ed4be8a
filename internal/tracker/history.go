package tracker

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/sandeepkv93/daytrack/internal/model"
	"github.com/sandeepkv93/daytrack/internal/storage"
)

// HistoryEntry snapshots the whole collection's completion counts for one
// calendar day. The day's entry is overwritten, never appended, each time the
// day is touched.
type HistoryEntry struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// History maps wire-format dates to their snapshots.
type History map[string]HistoryEntry

// ChartPoint is one day of the completion-percentage series fed to charting.
type ChartPoint struct {
	Date    string
	Percent int
}

// ChartWindow caps the series length handed to the chart.
const ChartWindow = 14

// LoadHistory reads the full history; absent or malformed blobs degrade to an
// empty map.
func (t *Tracker) LoadHistory(ctx context.Context) History {
	raw, err := t.store.Get(ctx, storage.KeyHistory)
	if err != nil {
		return History{}
	}
	var history History
	if err := json.Unmarshal([]byte(raw), &history); err != nil || history == nil {
		return History{}
	}
	return history
}

func (t *Tracker) saveHistory(ctx context.Context, history History) error {
	payload, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, storage.KeyHistory, string(payload))
}

// RecordToday overwrites today's history entry with the current collection's
// completion counts.
func (t *Tracker) RecordToday(ctx context.Context) {
	_ = t.recordToday(ctx, t.Load(ctx))
}

func (t *Tracker) recordToday(ctx context.Context, tasks []model.Task) error {
	history := t.LoadHistory(ctx)
	today := t.Today()
	completed := 0
	for _, task := range tasks {
		if task.Status == model.StatusDone {
			completed++
		}
	}
	history[today] = HistoryEntry{
		Date:      today,
		Completed: completed,
		Total:     len(tasks),
	}
	return t.saveHistory(ctx, history)
}

// Streak counts consecutive fully-completed days ending at and including
// today. A day qualifies only when its entry exists and every task counted
// that day was Done; a day with zero tasks does not qualify. The walk stops at
// the first missing or non-qualifying day.
func (t *Tracker) Streak(ctx context.Context) int {
	history := t.LoadHistory(ctx)
	streak := 0
	day := model.Midnight(t.now())
	for {
		entry, ok := history[model.FormatDay(day)]
		if !ok {
			return streak
		}
		if entry.Total == 0 || entry.Completed < entry.Total {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// ChartSeries returns the completion-percentage series for the most recent
// days that have history entries, capped at limit, sorted ascending by date.
func (t *Tracker) ChartSeries(ctx context.Context, limit int) []ChartPoint {
	history := t.LoadHistory(ctx)
	dates := make([]string, 0, len(history))
	for date := range history {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if limit > 0 && len(dates) > limit {
		dates = dates[len(dates)-limit:]
	}

	out := make([]ChartPoint, 0, len(dates))
	for _, date := range dates {
		entry := history[date]
		percent := 0
		if entry.Total > 0 {
			percent = int(float64(entry.Completed)/float64(entry.Total)*100 + 0.5)
		}
		out = append(out, ChartPoint{Date: date, Percent: percent})
	}
	return out
}
