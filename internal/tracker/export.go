package tracker

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"

	"github.com/sandeepkv93/daytrack/internal/model"
)

// MarshalCSV serializes tasks for export: one row per task, subtasks rendered
// as checkbox text. Export always covers the raw collection, not the filtered
// view.
func MarshalCSV(tasks []model.Task) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"Title", "Description", "Due Date", "Categories", "Subtasks", "Status"}); err != nil {
		return "", err
	}
	for _, task := range tasks {
		categories := make([]string, 0, len(task.Categories))
		for _, c := range task.Categories {
			categories = append(categories, string(c))
		}
		subtasks := make([]string, 0, len(task.Subtasks))
		for _, sub := range task.Subtasks {
			subtasks = append(subtasks, subtaskMark(sub)+" "+sub.Text)
		}
		row := []string{
			task.Title,
			task.Description,
			task.DueDate,
			strings.Join(categories, ", "),
			strings.Join(subtasks, "; "),
			string(task.Status),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MarshalJSON serializes the raw collection as indented JSON.
func MarshalJSON(tasks []model.Task) (string, error) {
	payload, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// ExportCSV serializes the full persisted collection as CSV.
func (t *Tracker) ExportCSV(ctx context.Context) (string, error) {
	return MarshalCSV(t.Load(ctx))
}

// ExportJSON serializes the full persisted collection as JSON.
func (t *Tracker) ExportJSON(ctx context.Context) (string, error) {
	return MarshalJSON(t.Load(ctx))
}

func subtaskMark(sub model.Subtask) string {
	if sub.Done {
		return "[x]"
	}
	return "[ ]"
}
