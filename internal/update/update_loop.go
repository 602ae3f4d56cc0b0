package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForReminderCmd(m.Reminders)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.QuickAdd.Active {
			return m.handleQuickAddKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette = CommandPaletteState{Active: true}
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case "a":
			m.QuickAdd = QuickAddState{Active: true}
			m.quickAddInput.SetValue("")
			m.quickAddInput.Focus()
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Agenda:
			m.CurrentView = ViewAgenda
			return m, nil
		case m.Keys.Progress:
			m.CurrentView = ViewProgress
			return m, nil
		case m.Keys.Notifications:
			m.CurrentView = ViewNotifications
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "D":
			m.cycleDensity()
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed)
		case ViewAgenda:
			return m.handleAgendaKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case RunCommandMsg:
		return m.runCommand(typed.Input)
	case ReminderDueMsg:
		m.applyReminder(typed.Event)
		return m, waitForReminderCmd(m.Reminders)
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskDetail()
	case ViewAgenda:
		leftPane = m.renderAgendaView()
	case ViewProgress:
		leftPane = m.renderProgressView()
	case ViewNotifications:
		leftPane = m.renderNotificationsView()
		rightPane = views.RenderMarkdown(CommandReference)
	}
	overlay := joinNonEmpty(m.renderQuickAdd(), m.renderCommandPalette(), m.renderHelpIfVisible())
	if overlay != "" {
		rightPane = joinNonEmpty(rightPane, overlay)
	}

	return views.RenderApp(views.AppData{
		Header:        m.header(),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  joinNonEmpty(m.renderLastReminder(), m.renderLatestNotification()),
		Footer: fmt.Sprintf("keys: %s tasks | %s agenda | %s progress | %s notifications | a add | / cmd | %s help | %s quit",
			m.Keys.Tasks, m.Keys.Agenda, m.Keys.Progress, m.Keys.Notifications, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) header() string {
	h := fmt.Sprintf("questd | view: %s", m.CurrentView)
	if m.Session == nil {
		return h
	}
	st := m.Session.Store().Stats()
	return fmt.Sprintf("%s | level %d | %d XP | streak %d", h, st.Level, st.XP, st.Streak)
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewAgenda, ViewProgress, ViewNotifications:
		return true
	default:
		return false
	}
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
