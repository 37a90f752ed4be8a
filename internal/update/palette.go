package update

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daytrack/internal/commands"
	"github.com/sandeepkv93/daytrack/internal/model"
	"github.com/sandeepkv93/daytrack/internal/tracker"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m, nil
	}

	// Export does file IO, so it runs as a command and reports back as a
	// message instead of blocking the loop.
	var followUp tea.Cmd

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, ok := m.Tracker.SubmitTask(ctx, tracker.TaskForm{Title: a.Title})
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "title is required"}
			}
			return commands.Result{Message: "added: " + task.Title}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.Tracker.SetSearch(ctx, s.Query)
			if strings.TrimSpace(s.Query) == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: "search: " + s.Query}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			if f.Clear {
				m.Tracker.SetFilters(ctx, tracker.Criteria{})
				return commands.Result{Message: "filters cleared"}, nil
			}
			criteria, err := criteriaFromArgs(f)
			if err != nil {
				return commands.Result{}, err
			}
			m.Tracker.SetFilters(ctx, criteria)
			return commands.Result{Message: "filters: " + filterSummary(criteria)}, nil
		},
		Clear: func() (commands.Result, error) {
			m.Tracker.ClearCompleted(ctx)
			return commands.Result{Message: "cleared completed tasks"}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			followUp = exportCmd(m.Tracker, e.Format)
			return commands.Result{Message: "exporting " + e.Format}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			m.Tracker.SetTheme(ctx, t.Name)
			return commands.Result{Message: "theme: " + t.Name}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.refresh()
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m, followUp
}

// exportCmd serializes the raw collection and writes it next to the process,
// reporting the outcome as a SetStatusMsg or AppErrorMsg.
func exportCmd(tr *tracker.Tracker, format string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var content string
		var err error
		if format == "csv" {
			content, err = tr.ExportCSV(ctx)
		} else {
			content, err = tr.ExportJSON(ctx)
		}
		if err != nil {
			return AppErrorMsg{Err: fmt.Errorf("export %s: %w", format, err)}
		}
		path := "daytrack-export." + format
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("export %s: %w", format, err)}
		}
		return SetStatusMsg{Text: "exported " + path}
	}
}

func criteriaFromArgs(f commands.FilterArgs) (tracker.Criteria, error) {
	criteria := tracker.Criteria{
		DateRange: tracker.DateRange{From: f.From, To: f.To},
	}
	for _, raw := range f.Statuses {
		status := model.Status(raw)
		if !status.IsValid() {
			return tracker.Criteria{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown status: " + raw}
		}
		criteria.Statuses = append(criteria.Statuses, status)
	}
	for _, raw := range f.Categories {
		category := model.Category(raw)
		if !category.IsValid() {
			return tracker.Criteria{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown category: " + raw}
		}
		criteria.Categories = append(criteria.Categories, category)
	}
	for _, raw := range f.Urgencies {
		urgency := model.Urgency(raw)
		if !urgency.IsValid() {
			return tracker.Criteria{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown urgency: " + raw}
		}
		criteria.Urgencies = append(criteria.Urgencies, urgency)
	}
	return criteria, nil
}
