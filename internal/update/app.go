package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daytrack/internal/model"
	"github.com/sandeepkv93/daytrack/internal/scheduler"
	"github.com/sandeepkv93/daytrack/internal/tracker"
	"github.com/sandeepkv93/daytrack/internal/views"
)

func waitForDayTickCmd(ch <-chan scheduler.Tick) tea.Cmd {
	return func() tea.Msg {
		tick, ok := <-ch
		if !ok {
			return nil
		}
		return DayTickMsg{Day: tick.Day}
	}
}

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForDayTickCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Form.Active {
			return m.handleFormKey(typed), nil
		}
		if m.SearchActive {
			return m.handleSearchKey(typed), nil
		}
		return m.handleGlobalKey(typed)
	case DayTickMsg:
		m.Tracker.OnDayBoundary(context.Background())
		m.refresh()
		m.Status = StatusBar{Text: "day rolled over: " + typed.Day.Format(model.DayLayout)}
		if m.Scheduler != nil {
			return m, waitForDayTickCmd(m.Scheduler.C())
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, clearStatusCmd()
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

// statusTTL is how long a deferred-command status line stays up.
const statusTTL = 5 * time.Second

func clearStatusCmd() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Daily:
		m.CurrentView = ViewDaily
		m.Cursor = 0
		m.clampCursor()
		return m, nil
	case m.Keys.Board:
		m.CurrentView = ViewBoard
		m.Cursor = 0
		m.Column = 0
		m.clampCursor()
		return m, nil
	case m.Keys.Search:
		m.SearchActive = true
		m.searchInput.SetValue(m.Query)
		m.searchInput.Focus()
		return m, nil
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case m.Keys.Add:
		m = m.openForm(model.Task{}, false)
		return m, nil
	case m.Keys.Edit:
		if task, ok := m.selectedTask(); ok {
			m = m.openForm(task, true)
		}
		return m, nil
	case m.Keys.Toggle:
		if task, ok := m.selectedTask(); ok {
			m.Tracker.ToggleStatus(ctx, task.ID)
			m.refresh()
			m.Status = StatusBar{Text: "toggled: " + task.Title}
		}
		return m, nil
	case m.Keys.Delete:
		if task, ok := m.selectedTask(); ok {
			m.Tracker.DeleteTask(ctx, task.ID)
			m.refresh()
			m.Status = StatusBar{Text: "deleted: " + task.Title}
		}
		return m, nil
	case "s":
		if task, ok := m.selectedTask(); ok && len(task.Subtasks) > 0 {
			m = m.advanceSubtask(task)
		}
		return m, nil
	case m.Keys.Clear:
		m.Tracker.ClearCompleted(ctx)
		m.refresh()
		m.Status = StatusBar{Text: "cleared completed tasks"}
		return m, nil
	case m.Keys.Theme:
		next := tracker.ThemeDark
		if m.Theme == tracker.ThemeDark {
			next = tracker.ThemeLight
		}
		m.Tracker.SetTheme(ctx, next)
		m.refresh()
		m.Status = StatusBar{Text: "theme: " + next}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "j", "down":
		m.Cursor++
		m.clampCursor()
		return m, nil
	case "k", "up":
		m.Cursor--
		m.clampCursor()
		return m, nil
	case "tab":
		if m.CurrentView == ViewBoard {
			m.Column = (m.Column + 1) % len(boardStatuses)
			m.Cursor = 0
			m.clampCursor()
		}
		return m, nil
	case "h", "left":
		if m.CurrentView == ViewBoard {
			m = m.moveSelected(-1)
		}
		return m, nil
	case "l", "right":
		if m.CurrentView == ViewBoard {
			m = m.moveSelected(1)
		}
		return m, nil
	}
	return m, nil
}

// advanceSubtask checks off the first open subtask; with none open it reopens
// the first one, restarting the checklist.
func (m Model) advanceSubtask(task model.Task) Model {
	ctx := context.Background()
	for _, sub := range task.Subtasks {
		if !sub.Done {
			m.Tracker.ToggleSubtask(ctx, task.ID, sub.ID, true)
			m.refresh()
			m.Status = StatusBar{Text: "subtask done: " + sub.Text}
			return m
		}
	}
	first := task.Subtasks[0]
	m.Tracker.ToggleSubtask(ctx, task.ID, first.ID, false)
	m.refresh()
	m.Status = StatusBar{Text: "subtask reopened: " + first.Text}
	return m
}

// moveSelected drags the selected card one column over and follows it.
func (m Model) moveSelected(delta int) Model {
	task, ok := m.selectedTask()
	if !ok {
		return m
	}
	target := m.Column + delta
	if target < 0 || target >= len(boardStatuses) {
		return m
	}
	ctx := context.Background()
	status := boardStatuses[target]
	m.Tracker.SetStatus(ctx, task.ID, status)
	m.refresh()
	m.Column = target
	m.Cursor = 0
	for i, moved := range m.Board.Column(status) {
		if moved.ID == task.ID {
			m.Cursor = i
			break
		}
	}
	m.Status = StatusBar{Text: fmt.Sprintf("moved %q to %s", task.Title, status)}
	return m
}

func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.SearchActive = false
		m.searchInput.Blur()
	case "enter":
		ctx := context.Background()
		m.Tracker.SetSearch(ctx, m.searchInput.Value())
		m.SearchActive = false
		m.searchInput.Blur()
		m.refresh()
		if m.Query == "" {
			m.Status = StatusBar{Text: "search cleared"}
		} else {
			m.Status = StatusBar{Text: "search: " + m.Query}
		}
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		_ = cmd
	}
	return m
}

func (m Model) View() string {
	today := m.Tracker.Today()

	left := ""
	if m.CurrentView == ViewBoard {
		left = m.renderBoardView(today)
	} else {
		left = m.renderDailyView(today)
	}

	right := ""
	if m.Form.Active {
		right = m.renderFormView()
	} else {
		right = m.renderDetailView(today) + "\n\n" + m.renderChartView()
	}
	if m.HelpVisible {
		right += "\n\n" + m.renderHelpView()
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	notification := strings.TrimSpace(strings.Join([]string{
		views.RenderSearchLine(m.SearchActive, m.searchInput.Value()),
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value()),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("daytrack | view: %s | %s", m.CurrentView, today),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s daily | %s board | %s search | %s cmd | %s add | %s help | %s quit",
			m.Keys.Daily, m.Keys.Board, m.Keys.Search, m.Keys.Palette, m.Keys.Add, m.Keys.Help, m.Keys.Quit),
		Theme: m.Theme,
	})
}

func (m Model) renderDailyView(today string) string {
	selected := ""
	if task, ok := m.selectedTask(); ok {
		selected = task.ID
	}
	return views.RenderDailyPanel(views.DailyPanelData{
		Today:         today,
		Items:         taskItems(m.Tasks, today),
		SelectedID:    selected,
		SearchQuery:   m.Query,
		FilterSummary: filterSummary(m.Criteria),
	})
}

func (m Model) renderBoardView(today string) string {
	selected := ""
	if task, ok := m.selectedTask(); ok {
		selected = task.ID
	}
	columns := make([]views.BoardColumnData, 0, len(boardStatuses))
	for _, status := range boardStatuses {
		columns = append(columns, views.BoardColumnData{
			Title: string(status),
			Items: taskItems(m.Board.Column(status), today),
		})
	}
	return views.RenderBoardPanel(views.BoardPanelData{
		Columns:       columns,
		SelectedID:    selected,
		ActiveColumn:  m.Column,
		SearchQuery:   m.Query,
		FilterSummary: filterSummary(m.Criteria),
	})
}

func (m Model) renderDetailView(today string) string {
	task, ok := m.selectedTask()
	if !ok {
		return views.RenderDetailPanel(views.DetailPanelData{})
	}
	subtasks := make([]views.SubtaskData, 0, len(task.Subtasks))
	for _, sub := range task.Subtasks {
		subtasks = append(subtasks, views.SubtaskData{ID: sub.ID, Text: sub.Text, Done: sub.Done})
	}
	return views.RenderDetailPanel(views.DetailPanelData{
		SelectedID:      task.ID,
		Title:           task.Title,
		Status:          string(task.Status),
		DueDate:         task.DueDate,
		Urgency:         string(model.UrgencyOf(task, dayOf(today))),
		Categories:      categoryNames(task.Categories),
		Recurrence:      recurrenceLabel(task),
		Subtasks:        subtasks,
		DescriptionView: views.RenderMarkdown(task.Description, m.Theme),
	})
}

func (m Model) renderChartView() string {
	points := make([]views.ChartPointData, 0, len(m.Chart))
	for _, point := range m.Chart {
		points = append(points, views.ChartPointData{Date: point.Date, Percent: point.Percent})
	}
	return views.RenderChartPanel(views.ChartPanelData{Points: points, Streak: m.Streak})
}

func taskItems(tasks []model.Task, today string) []views.TaskItemData {
	day := dayOf(today)
	out := make([]views.TaskItemData, 0, len(tasks))
	for _, task := range tasks {
		done := 0
		for _, sub := range task.Subtasks {
			if sub.Done {
				done++
			}
		}
		out = append(out, views.TaskItemData{
			ID:            task.ID,
			Title:         task.Title,
			Status:        string(task.Status),
			DueDate:       task.DueDate,
			Urgency:       string(model.UrgencyOf(task, day)),
			Categories:    categoryNames(task.Categories),
			SubtasksDone:  done,
			SubtasksTotal: len(task.Subtasks),
			Recurring:     task.IsRecurring || task.IsRecurringInstance,
		})
	}
	return out
}

func categoryNames(categories []model.Category) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, string(c))
	}
	return out
}

func recurrenceLabel(task model.Task) string {
	if !task.RecurringActive() {
		return ""
	}
	label := string(task.RecurrencePattern)
	if task.RecurrenceEndDate != "" {
		label += " until " + task.RecurrenceEndDate
	}
	return label
}

func filterSummary(c tracker.Criteria) string {
	if c.IsZero() {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, s := range c.Statuses {
		parts = append(parts, "status:"+string(s))
	}
	for _, cat := range c.Categories {
		parts = append(parts, "category:"+string(cat))
	}
	for _, u := range c.Urgencies {
		parts = append(parts, "urgency:"+string(u))
	}
	if c.DateRange.From != "" || c.DateRange.To != "" {
		parts = append(parts, c.DateRange.From+".."+c.DateRange.To)
	}
	return strings.Join(parts, " ")
}

func dayOf(today string) time.Time {
	day, err := time.Parse(model.DayLayout, today)
	if err != nil {
		return time.Now()
	}
	return day
}
