package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/questd/internal/clock"
	"github.com/sandeepkv93/questd/internal/notify"
	"github.com/sandeepkv93/questd/internal/scheduler"
	"github.com/sandeepkv93/questd/internal/session"
)

type View string

const (
	ViewTasks         View = "Tasks"
	ViewAgenda        View = "Agenda"
	ViewProgress      View = "Progress"
	ViewNotifications View = "Notifications"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks         string
	Agenda        string
	Progress      string
	Notifications string
	Help          string
	Quit          string
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Session        *session.Session
	Toasts         *notify.Recorder
	Reminders      <-chan scheduler.ReminderEvent
	ReminderLog    []scheduler.ReminderEvent
	Clock          clock.Clock
	Palette        CommandPaletteState
	QuickAdd       QuickAddState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	cursor         int
	agendaCursor   int
	taskList       list.Model
	agendaTable    table.Model
	quickAddInput  textinput.Model
	commandInput   textinput.Model
	xpProgress     progress.Model
	helpModel      help.Model
	detailViewport viewport.Model
	uiDensity      int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type QuickAddState struct {
	Active bool
	Input  string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// RunCommandMsg executes a command line as if typed into the palette.
type RunCommandMsg struct {
	Input string
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

// NewModel builds the UI over a session. toasts is the log the session
// writes in-app notifications to; reminders may be nil when no scanner
// runs.
func NewModel(sess *session.Session, toasts *notify.Recorder, reminders <-chan scheduler.ReminderEvent, clk clock.Clock) Model {
	if clk == nil {
		clk = clock.System{}
	}
	if toasts == nil {
		toasts = notify.NewRecorder(0)
	}
	m := Model{
		CurrentView: ViewTasks,
		Session:     sess,
		Toasts:      toasts,
		Reminders:   reminders,
		Clock:       clk,
		Keys: GlobalKeyMap{
			Tasks:         "1",
			Agenda:        "2",
			Progress:      "3",
			Notifications: "4",
			Help:          "?",
			Quit:          "q",
		},
		uiDensity: 1,
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Start", Width: 11},
		{Title: "Time", Width: 12},
		{Title: "Remind", Width: 17},
		{Title: "Task", Width: 20},
	}
	m.agendaTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.Placeholder = "buy milk p:low c:shopping remind:18:00"
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.xpProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	m.helpModel = help.New()
	m.detailViewport = viewport.New(54, 8)
}

func densityDimensions(level int) (listWidth, listHeight, tableHeight, viewportHeight int) {
	switch level {
	case 2:
		return 60, 14, 12, 10
	case 3:
		return 64, 16, 14, 12
	default:
		return 56, 12, 10, 8
	}
}

func (m *Model) cycleDensity() {
	m.uiDensity++
	if m.uiDensity > 3 {
		m.uiDensity = 1
	}
	m.Status = StatusBar{Text: "density changed"}
}

func (m Model) now() time.Time {
	return m.Clock.Now()
}
