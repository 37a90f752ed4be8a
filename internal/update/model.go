package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/daytrack/internal/model"
	"github.com/sandeepkv93/daytrack/internal/scheduler"
	"github.com/sandeepkv93/daytrack/internal/tracker"
)

type View string

const (
	ViewDaily View = "Daily"
	ViewBoard View = "Board"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Daily   string
	Board   string
	Search  string
	Palette string
	Add     string
	Edit    string
	Toggle  string
	Delete  string
	Clear   string
	Theme   string
	Help    string
	Quit    string
}

type PaletteState struct {
	Active bool
	Input  string
}

type FormField string

const (
	FormFieldTitle       FormField = "title"
	FormFieldDescription FormField = "description"
	FormFieldDue         FormField = "due"
	FormFieldCategories  FormField = "categories"
	FormFieldRepeat      FormField = "repeat"
	FormFieldUntil       FormField = "until"
)

var formFieldOrder = []FormField{
	FormFieldTitle,
	FormFieldDescription,
	FormFieldDue,
	FormFieldCategories,
	FormFieldRepeat,
	FormFieldUntil,
}

// repeatChoices cycles through the repeat field; index 0 means not recurring.
var repeatChoices = []model.Pattern{"", model.PatternDaily, model.PatternWeekly, model.PatternMonthly}

type FormState struct {
	Active    bool
	EditingID string
	Field     FormField
	Repeat    int
	Err       string
	// Carried through an edit untouched by the form.
	Status   model.Status
	Subtasks []model.Subtask
}

type Model struct {
	Tracker     *tracker.Tracker
	Scheduler   *scheduler.Engine
	CurrentView View
	Tasks       []model.Task
	Board       tracker.Board
	Cursor      int
	Column      int
	Theme       string
	Streak      int
	Chart       []tracker.ChartPoint
	ChartDays   int
	Query       string
	Criteria    tracker.Criteria

	SearchActive bool
	Palette      PaletteState
	Form         FormState
	HelpVisible  bool
	Status       StatusBar
	Keys         GlobalKeyMap
	Quitting     bool
	LastError    error

	searchInput     textinput.Model
	commandInput    textinput.Model
	titleInput      textinput.Model
	dueInput        textinput.Model
	categoriesInput textinput.Model
	untilInput      textinput.Model
	descriptionArea textarea.Model
	helpModel       help.Model
}

// SetStatusMsg reports the outcome of a deferred command, like an export
// write, back to the status line.
type SetStatusMsg struct {
	Text    string
	IsError bool
}

// ClearStatusMsg expires a transient status line.
type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// DayTickMsg crosses a calendar day boundary; the update loop runs the
// recurrence sweep and re-arms the scheduler listener.
type DayTickMsg struct {
	Day time.Time
}

func NewModel(tr *tracker.Tracker, engine *scheduler.Engine, cfg RuntimeConfig) Model {
	m := Model{
		Tracker:     tr,
		Scheduler:   engine,
		CurrentView: ViewDaily,
		ChartDays:   cfg.ChartDays,
		Keys: GlobalKeyMap{
			Daily:   "1",
			Board:   "2",
			Search:  "/",
			Palette: ":",
			Add:     "a",
			Edit:    "e",
			Toggle:  " ",
			Delete:  "x",
			Clear:   "c",
			Theme:   "t",
			Help:    "?",
			Quit:    "q",
		},
	}
	if m.ChartDays <= 0 {
		m.ChartDays = tracker.ChartWindow
	}
	m.initBubbleComponents()
	if cfg.Theme != "" {
		m.Tracker.SetTheme(context.Background(), cfg.Theme)
	}
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "search tasks"
	m.searchInput.CharLimit = 120

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add | search | filter | clear | export | theme"
	m.commandInput.CharLimit = 200

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "what needs doing"
	m.titleInput.CharLimit = 200

	m.dueInput = textinput.New()
	m.dueInput.Placeholder = model.DayLayout
	m.dueInput.CharLimit = 10

	m.categoriesInput = textinput.New()
	m.categoriesInput.Placeholder = "Work, Personal, ..."
	m.categoriesInput.CharLimit = 120

	m.untilInput = textinput.New()
	m.untilInput.Placeholder = model.DayLayout
	m.untilInput.CharLimit = 10

	m.descriptionArea = textarea.New()
	m.descriptionArea.Placeholder = "notes (markdown)"
	m.descriptionArea.SetHeight(4)

	m.helpModel = help.New()
}

// refresh re-reads the projection state: the visible task list, board
// grouping, streak, chart, and theme.
func (m *Model) refresh() {
	ctx := context.Background()
	m.Tasks = tracker.DailyList(m.Tracker.Visible(ctx))
	m.Board = tracker.BoardOf(m.Tasks)
	m.Streak = m.Tracker.Streak(ctx)
	m.Chart = m.Tracker.ChartSeries(ctx, m.ChartDays)
	m.Theme = m.Tracker.Theme(ctx)
	m.Query = m.Tracker.Search(ctx)
	m.Criteria = m.Tracker.Filters(ctx)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	limit := len(m.currentList())
	if m.Cursor >= limit {
		m.Cursor = limit - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// currentList is the slice the cursor walks: the full daily list, or the
// active board column.
func (m *Model) currentList() []model.Task {
	if m.CurrentView == ViewBoard {
		return m.Board.Column(boardStatuses[m.Column])
	}
	return m.Tasks
}

var boardStatuses = []model.Status{model.StatusPending, model.StatusInProgress, model.StatusDone}

func (m *Model) selectedTask() (model.Task, bool) {
	list := m.currentList()
	if m.Cursor < 0 || m.Cursor >= len(list) {
		return model.Task{}, false
	}
	return list[m.Cursor], true
}
