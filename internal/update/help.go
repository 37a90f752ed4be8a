package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/daytrack/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Daily, Action: "switch to Daily"},
		{Key: m.Keys.Board, Action: "switch to Board"},
		{Key: m.Keys.Search, Action: "search tasks"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Add, Action: "add task"},
		{Key: m.Keys.Edit, Action: "edit selected task"},
		{Key: "space", Action: "toggle done"},
		{Key: "s", Action: "check off next subtask"},
		{Key: m.Keys.Delete, Action: "delete selected task"},
		{Key: m.Keys.Clear, Action: "clear completed"},
		{Key: m.Keys.Theme, Action: "toggle theme"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewBoard:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "h/l", Action: "move card across columns"},
			{Key: "tab", Action: "next column"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
