package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/scheduler"
)

const reminderLogLimit = 20

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

// applyReminder records a delivered reminder in the log and the in-app
// notifications. Desktop delivery already happened in the scanner.
func (m *Model) applyReminder(ev scheduler.ReminderEvent) {
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > reminderLogLimit {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-reminderLogLimit:]
	}
	title := scheduler.ReminderTitle(ev)
	body := scheduler.ReminderBody(ev)
	_ = m.Toasts.Notify(title, body)
	m.Status = StatusBar{Text: fmt.Sprintf("%s (%s)", title, body)}
}

func (m Model) renderLastReminder() string {
	if len(m.ReminderLog) == 0 {
		return ""
	}
	last := m.ReminderLog[len(m.ReminderLog)-1]
	return fmt.Sprintf("last-reminder: %s @ %s", last.Text, last.TriggerAt.Format("15:04"))
}
