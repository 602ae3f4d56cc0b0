package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/questd/internal/views"
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

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

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
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Agenda, Action: "switch to Agenda"},
		{Key: m.Keys.Progress, Action: "switch to Progress"},
		{Key: m.Keys.Notifications, Action: "switch to Notifications"},
		{Key: "a", Action: "quick add task"},
		{Key: "/", Action: "open command palette"},
		{Key: "D", Action: "cycle density"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "x", Action: "complete selected task"},
			{Key: "f", Action: "cycle status filter"},
			{Key: "c", Action: "cycle category filter"},
		}
	case ViewAgenda:
		return []KeyBinding{
			{Key: "j/k", Action: "move agenda cursor"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
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

// CommandReference is the markdown cheat sheet shown next to the
// notification log and by `questd help`.
const CommandReference = `# Commands

- ` + "`add <text> [p:high|medium|low] [c:<category>] [start:YYYY-MM-DD] [end:YYYY-MM-DD] [from:HH:MM] [to:HH:MM] [remind:YYYY-MM-DDTHH:MM|HH:MM|+30m]`" + `
- ` + "`done <id>`" + ` completes a task (id prefix accepted)
- ` + "`filter [status:all|ongoing|finished] [cat:<category>|all] [prio:<priority>|all]`" + `
- ` + "`category <label>`" + ` adds a category
- ` + "`stats`" + ` shows level, XP and streak
`
