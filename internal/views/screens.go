package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID            string
	Title         string
	Status        string
	DueDate       string
	Urgency       string
	Categories    []string
	SubtasksDone  int
	SubtasksTotal int
	Recurring     bool
}

type DailyPanelData struct {
	Today         string
	Items         []TaskItemData
	SelectedID    string
	SearchQuery   string
	FilterSummary string
}

type BoardColumnData struct {
	Title string
	Items []TaskItemData
}

type BoardPanelData struct {
	Columns       []BoardColumnData
	SelectedID    string
	ActiveColumn  int
	SearchQuery   string
	FilterSummary string
}

type SubtaskData struct {
	ID   string
	Text string
	Done bool
}

type DetailPanelData struct {
	SelectedID      string
	Title           string
	Status          string
	DueDate         string
	Urgency         string
	Categories      []string
	Recurrence      string
	Subtasks        []SubtaskData
	DescriptionView string
}

type ChartPointData struct {
	Date    string
	Percent int
}

type ChartPanelData struct {
	Points []ChartPointData
	Streak int
}

type FormPanelData struct {
	EditingID       string
	TitleView       string
	DescriptionView string
	DueView         string
	CategoriesView  string
	RecurringLabel  string
	EndDateView     string
	ActiveField     string
	ErrorText       string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderDailyPanel(data DailyPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("daily | %s\n", data.Today))
	writeQueryLine(&b, data.SearchQuery, data.FilterSummary)
	if len(data.Items) == 0 {
		b.WriteString("(no tasks match)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		writeTaskLine(&b, item, data.SelectedID == item.ID)
	}
	return strings.TrimSpace(b.String())
}

func RenderBoardPanel(data BoardPanelData) string {
	var b strings.Builder
	b.WriteString("board\n")
	writeQueryLine(&b, data.SearchQuery, data.FilterSummary)
	for i, col := range data.Columns {
		marker := " "
		if i == data.ActiveColumn {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("\n%s %s (%d):\n", marker, col.Title, len(col.Items)))
		if len(col.Items) == 0 {
			b.WriteString("  (empty)\n")
			continue
		}
		for _, item := range col.Items {
			writeTaskLine(&b, item, data.SelectedID == item.ID)
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderDetailPanel(data DetailPanelData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "detail:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("status: %s\n", data.Status))
	if data.DueDate != "" {
		b.WriteString(fmt.Sprintf("due: %s", data.DueDate))
		if data.Urgency != "" {
			b.WriteString(fmt.Sprintf(" [%s]", data.Urgency))
		}
		b.WriteString("\n")
	}
	if len(data.Categories) > 0 {
		b.WriteString(fmt.Sprintf("categories: %s\n", strings.Join(data.Categories, ", ")))
	}
	if data.Recurrence != "" {
		b.WriteString(fmt.Sprintf("repeats: %s\n", data.Recurrence))
	}
	if len(data.Subtasks) > 0 {
		b.WriteString("subtasks:\n")
		for _, sub := range data.Subtasks {
			mark := "[ ]"
			if sub.Done {
				mark = "[x]"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", mark, sub.Text))
		}
	}
	if data.DescriptionView != "" {
		b.WriteString("\n" + data.DescriptionView)
	}
	return strings.TrimSpace(b.String())
}

// RenderChartPanel draws the completion history as horizontal bars, one per
// day, oldest first.
func RenderChartPanel(data ChartPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("streak: %d day(s)\n", data.Streak))
	if len(data.Points) == 0 {
		b.WriteString("chart: (no history)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString("chart:\n")
	for _, point := range data.Points {
		b.WriteString(fmt.Sprintf("%s %s %3d%%\n", point.Date, percentBar(point.Percent, 20), point.Percent))
	}
	return strings.TrimSpace(b.String())
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	if data.EditingID == "" {
		b.WriteString("new task:\n")
	} else {
		b.WriteString(fmt.Sprintf("edit task %s:\n", data.EditingID))
	}
	b.WriteString("keys: [tab] next field [enter] save [esc] cancel\n")
	writeFormField(&b, "title", data.TitleView, data.ActiveField)
	writeFormField(&b, "description", data.DescriptionView, data.ActiveField)
	writeFormField(&b, "due", data.DueView, data.ActiveField)
	writeFormField(&b, "categories", data.CategoriesView, data.ActiveField)
	writeFormField(&b, "repeat", data.RecurringLabel, data.ActiveField)
	writeFormField(&b, "until", data.EndDateView, data.ActiveField)
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: :%s", input)
}

func RenderSearchLine(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("search: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func writeQueryLine(b *strings.Builder, search, filters string) {
	parts := make([]string, 0, 2)
	if search != "" {
		parts = append(parts, "search: "+search)
	}
	if filters != "" {
		parts = append(parts, "filters: "+filters)
	}
	if len(parts) > 0 {
		b.WriteString(strings.Join(parts, " | ") + "\n")
	}
}

func writeTaskLine(b *strings.Builder, item TaskItemData, selected bool) {
	cursor := " "
	if selected {
		cursor = ">"
	}
	mark := "[ ]"
	switch item.Status {
	case "Done":
		mark = "[x]"
	case "In Progress":
		mark = "[~]"
	}
	b.WriteString(fmt.Sprintf("%s %s %s%s", cursor, mark, urgencyBadge(item.Urgency), item.Title))
	if item.DueDate != "" {
		b.WriteString(" due:" + item.DueDate)
	}
	if len(item.Categories) > 0 {
		b.WriteString(" #" + strings.Join(item.Categories, " #"))
	}
	if item.SubtasksTotal > 0 {
		b.WriteString(fmt.Sprintf(" (%d/%d)", item.SubtasksDone, item.SubtasksTotal))
	}
	if item.Recurring {
		b.WriteString(" @repeat")
	}
	b.WriteString("\n")
}

func writeFormField(b *strings.Builder, name, view, active string) {
	marker := " "
	if name == active {
		marker = ">"
	}
	b.WriteString(fmt.Sprintf("%s %s: %s\n", marker, name, view))
}

func urgencyBadge(urgency string) string {
	switch urgency {
	case "Overdue":
		return "[RED] "
	case "Today":
		return "[YELLOW] "
	case "ThisWeek":
		return "[BLUE] "
	case "Later":
		return "[GREEN] "
	default:
		return ""
	}
}

func percentBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}
