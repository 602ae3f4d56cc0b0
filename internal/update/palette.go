package update

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/tasks"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		raw := m.commandInput.Value()
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m.runCommand(raw)
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.QuickAdd = QuickAddState{}
		m.quickAddInput.SetValue("")
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "quick add closed"}
	case "enter":
		text := strings.TrimSpace(m.quickAddInput.Value())
		m.QuickAdd = QuickAddState{}
		m.quickAddInput.SetValue("")
		if text == "" {
			return m, nil
		}
		return m.runCommand("add " + text)
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
			m.QuickAdd.Input = m.quickAddInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
		m.QuickAdd.Input = m.quickAddInput.Value()
	}
	return m, nil
}

// runCommand executes one command line against the session and reflects
// the outcome in the status bar. Persist failures keep the change and
// surface as an error status.
func (m Model) runCommand(raw string) (Model, tea.Cmd) {
	raw = strings.TrimSpace(raw)
	if raw == "" || m.Session == nil {
		return m, nil
	}
	res, err := m.Session.Run(context.Background(), raw)
	switch {
	case errors.Is(err, tasks.ErrPersist):
		m.LastError = err
		m.Status = StatusBar{Text: "saved in memory only: " + err.Error(), IsError: true}
	case err != nil:
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	case res.Message != "":
		m.Status = StatusBar{Text: res.Message}
	}
	m.clampCursor()
	return m, nil
}
