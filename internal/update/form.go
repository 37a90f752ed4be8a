package update

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/daytrack/internal/model"
	"github.com/sandeepkv93/daytrack/internal/tracker"
	"github.com/sandeepkv93/daytrack/internal/views"
)

func (m Model) openForm(task model.Task, editing bool) Model {
	m.Form = FormState{Active: true, Field: FormFieldTitle, Status: model.StatusPending}
	m.titleInput.SetValue("")
	m.descriptionArea.SetValue("")
	m.dueInput.SetValue("")
	m.categoriesInput.SetValue("")
	m.untilInput.SetValue("")
	if editing {
		m.Form.EditingID = task.ID
		m.Form.Status = task.Status
		m.Form.Subtasks = task.Subtasks
		m.Form.Repeat = repeatIndex(task)
		m.titleInput.SetValue(task.Title)
		m.descriptionArea.SetValue(task.Description)
		m.dueInput.SetValue(task.DueDate)
		m.categoriesInput.SetValue(strings.Join(categoryNames(task.Categories), ", "))
		m.untilInput.SetValue(task.RecurrenceEndDate)
	}
	m.focusFormField()
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Form = FormState{}
		m.blurFormInputs()
		m.Status = StatusBar{Text: "form discarded"}
		return m
	case "tab":
		m.Form.Field = nextFormField(m.Form.Field, 1)
		m.focusFormField()
		return m
	case "shift+tab":
		m.Form.Field = nextFormField(m.Form.Field, -1)
		m.focusFormField()
		return m
	case "enter":
		return m.submitForm()
	}

	if m.Form.Field == FormFieldRepeat {
		switch msg.String() {
		case " ", "l", "right":
			m.Form.Repeat = (m.Form.Repeat + 1) % len(repeatChoices)
		case "h", "left":
			m.Form.Repeat = (m.Form.Repeat + len(repeatChoices) - 1) % len(repeatChoices)
		}
		return m
	}

	var cmd tea.Cmd
	switch m.Form.Field {
	case FormFieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case FormFieldDescription:
		m.descriptionArea, cmd = m.descriptionArea.Update(msg)
	case FormFieldDue:
		m.dueInput, cmd = m.dueInput.Update(msg)
	case FormFieldCategories:
		m.categoriesInput, cmd = m.categoriesInput.Update(msg)
	case FormFieldUntil:
		m.untilInput, cmd = m.untilInput.Update(msg)
	}
	_ = cmd
	return m
}

// submitForm commits the form. An empty title keeps the form open with an
// error, mirroring the modal's silent-reject contract.
func (m Model) submitForm() Model {
	form := tracker.TaskForm{
		ID:                m.Form.EditingID,
		Title:             m.titleInput.Value(),
		Description:       m.descriptionArea.Value(),
		Status:            m.Form.Status,
		DueDate:           strings.TrimSpace(m.dueInput.Value()),
		Categories:        parseCategories(m.categoriesInput.Value()),
		Subtasks:          m.Form.Subtasks,
		IsRecurring:       m.Form.Repeat > 0,
		RecurrencePattern: repeatChoices[m.Form.Repeat],
		RecurrenceEndDate: strings.TrimSpace(m.untilInput.Value()),
	}

	task, ok := m.Tracker.SubmitTask(context.Background(), form)
	if !ok {
		m.Form.Err = "title is required"
		return m
	}
	m.Form = FormState{}
	m.blurFormInputs()
	m.refresh()
	m.Status = StatusBar{Text: "saved: " + task.Title}
	return m
}

func (m *Model) focusFormField() {
	m.blurFormInputs()
	switch m.Form.Field {
	case FormFieldTitle:
		m.titleInput.Focus()
	case FormFieldDescription:
		m.descriptionArea.Focus()
	case FormFieldDue:
		m.dueInput.Focus()
	case FormFieldCategories:
		m.categoriesInput.Focus()
	case FormFieldUntil:
		m.untilInput.Focus()
	}
}

func (m *Model) blurFormInputs() {
	m.titleInput.Blur()
	m.descriptionArea.Blur()
	m.dueInput.Blur()
	m.categoriesInput.Blur()
	m.untilInput.Blur()
}

func (m Model) renderFormView() string {
	return views.RenderFormPanel(views.FormPanelData{
		EditingID:       m.Form.EditingID,
		TitleView:       m.titleInput.View(),
		DescriptionView: m.descriptionArea.View(),
		DueView:         m.dueInput.View(),
		CategoriesView:  m.categoriesInput.View(),
		RecurringLabel:  repeatLabel(m.Form.Repeat),
		EndDateView:     m.untilInput.View(),
		ActiveField:     string(m.Form.Field),
		ErrorText:       m.Form.Err,
	})
}

func nextFormField(field FormField, delta int) FormField {
	idx := 0
	for i, f := range formFieldOrder {
		if f == field {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(formFieldOrder)) % len(formFieldOrder)
	return formFieldOrder[idx]
}

func repeatIndex(task model.Task) int {
	if !task.IsRecurring {
		return 0
	}
	for i, p := range repeatChoices {
		if p == task.RecurrencePattern {
			return i
		}
	}
	return 0
}

func repeatLabel(idx int) string {
	if idx <= 0 || idx >= len(repeatChoices) {
		return "none"
	}
	return string(repeatChoices[idx])
}

func parseCategories(raw string) []model.Category {
	parts := strings.Split(raw, ",")
	out := make([]model.Category, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, model.Category(name))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
