package tracker

import "github.com/sandeepkv93/daytrack/internal/model"

// Board buckets a task sequence by status for the kanban view, preserving each
// task's relative order within its column.
type Board struct {
	Pending    []model.Task
	InProgress []model.Task
	Done       []model.Task
}

// BoardOf groups tasks into board columns.
func BoardOf(tasks []model.Task) Board {
	var board Board
	for _, task := range tasks {
		switch task.Status {
		case model.StatusInProgress:
			board.InProgress = append(board.InProgress, task)
		case model.StatusDone:
			board.Done = append(board.Done, task)
		default:
			board.Pending = append(board.Pending, task)
		}
	}
	return board
}

// Column returns the bucket for a status; the board view iterates
// model.Statuses and renders each column in order.
func (b Board) Column(status model.Status) []model.Task {
	switch status {
	case model.StatusInProgress:
		return b.InProgress
	case model.StatusDone:
		return b.Done
	default:
		return b.Pending
	}
}

// DailyList is the flat projection for the list view: the filtered and
// searched sequence unchanged in order.
func DailyList(tasks []model.Task) []model.Task {
	return tasks
}
