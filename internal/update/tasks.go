package update

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/tasks"
	"github.com/sandeepkv93/questd/internal/views"
)

const (
	dateLayout     = "2006-01-02"
	reminderLayout = "2006-01-02 15:04"
)

func (m Model) visibleTasks() []model.Task {
	if m.Session == nil {
		return nil
	}
	return m.Session.Visible()
}

func (m Model) currentTask() (model.Task, bool) {
	items := m.visibleTasks()
	if len(items) == 0 {
		return model.Task{}, false
	}
	idx := m.cursor
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	return items[idx], true
}

// clampCursor keeps the cursor on the selected task when the list changes
// under it, falling back to the nearest valid row.
func (m *Model) clampCursor() {
	items := m.visibleTasks()
	if m.SelectedTaskID != "" {
		if idx := slices.IndexFunc(items, func(t model.Task) bool { return t.ID == m.SelectedTaskID }); idx >= 0 {
			m.cursor = idx
			return
		}
	}
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.SelectedTaskID = ""
	if len(items) > 0 {
		m.SelectedTaskID = items[m.cursor].ID
	}
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Session == nil {
		return m, nil
	}
	items := m.visibleTasks()
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		m.SelectedTaskID = ""
		m.clampCursor()
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		m.SelectedTaskID = ""
		m.clampCursor()
	case "x", "enter", " ":
		task, ok := m.currentTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m, nil
		}
		if task.Completed {
			m.Status = StatusBar{Text: "task already completed"}
			return m, nil
		}
		return m.runCommand("done " + task.ID)
	case "f":
		return m.runCommand("filter " + m.nextStatusFilter())
	case "c":
		return m.runCommand("filter " + m.nextCategoryFilter())
	}
	return m, nil
}

func (m Model) nextStatusFilter() string {
	f := m.Session.Filter()
	next := tasks.StatusAll
	switch f.Status {
	case "", tasks.StatusAll:
		next = tasks.StatusOngoing
	case tasks.StatusOngoing:
		next = tasks.StatusFinished
	}
	return filterArgs(tasks.Filter{Status: next, Category: f.Category, Priority: f.Priority})
}

func (m Model) nextCategoryFilter() string {
	f := m.Session.Filter()
	cycle := append([]string{tasks.All}, m.Session.Store().Categories()...)
	current := f.Category
	if current == "" {
		current = tasks.All
	}
	idx := slices.Index(cycle, current)
	f.Category = cycle[(idx+1)%len(cycle)]
	return filterArgs(f)
}

func filterArgs(f tasks.Filter) string {
	parts := make([]string, 0, 3)
	if f.Status != "" {
		parts = append(parts, "status:"+string(f.Status))
	}
	if f.Category != "" {
		parts = append(parts, "cat:"+f.Category)
	}
	if f.Priority != "" {
		parts = append(parts, "prio:"+f.Priority)
	}
	return strings.Join(parts, " ")
}

func (m *Model) syncBubbleData() {
	listWidth, listHeight, tableHeight, viewportHeight := densityDimensions(m.uiDensity)
	m.taskList.SetSize(listWidth, listHeight)
	m.agendaTable.SetHeight(tableHeight)
	m.detailViewport.Height = viewportHeight

	m.clampCursor()
	items := m.visibleTasks()
	listItems := make([]list.Item, 0, len(items))
	for _, t := range items {
		state := "open"
		if t.Completed {
			state = "done"
		}
		listItems = append(listItems, listItem{title: t.Text, description: fmt.Sprintf("%s | %s | %s", t.Priority, t.Category, state)})
	}
	m.taskList.SetItems(listItems)
	if len(listItems) > 0 {
		m.taskList.Select(m.cursor)
	}

	rows := agendaRows(m.allTasks())
	m.agendaTable.SetRows(rows)
	if m.agendaCursor >= len(rows) {
		m.agendaCursor = max(len(rows)-1, 0)
	}
	if len(rows) > 0 {
		m.agendaTable.SetCursor(m.agendaCursor)
	}

	m.quickAddInput.SetValue(m.QuickAdd.Input)
	m.commandInput.SetValue(m.Palette.Input)
	if m.QuickAdd.Active {
		m.quickAddInput.Focus()
	} else {
		m.quickAddInput.Blur()
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}

	md := "_No description_"
	if task, ok := m.currentTask(); ok && strings.TrimSpace(task.Description) != "" {
		md = task.Description
	}
	m.detailViewport.SetContent(views.RenderMarkdown(md))
}

func (m Model) allTasks() []model.Task {
	if m.Session == nil {
		return nil
	}
	return m.Session.Store().List(tasks.Filter{})
}

func (m Model) renderTasksView() string {
	items := m.visibleTasks()
	data := make([]views.TaskItemData, 0, len(items))
	for _, t := range items {
		reminder := ""
		if t.ReminderTime != nil && t.ReminderFiredAt == nil && !t.Completed {
			reminder = t.ReminderTime.Format(reminderLayout)
		}
		data = append(data, views.TaskItemData{
			ID:        t.ID,
			Text:      t.Text,
			Category:  t.Category,
			Priority:  string(t.Priority),
			Completed: t.Completed,
			Reminder:  reminder,
		})
	}
	counts := ""
	if m.Session != nil {
		c := m.Session.Store().Counts()
		counts = fmt.Sprintf("all: %d | ongoing: %d | finished: %d", c.All, c.Ongoing, c.Finished)
	}
	filter := ""
	if m.Session != nil {
		filter = describeFilter(m.Session.Filter())
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		Filter:     filter,
		ListView:   m.taskList.View(),
		Items:      data,
		SelectedID: m.SelectedTaskID,
		Counts:     counts,
	})
}

func (m Model) renderTaskDetail() string {
	task, ok := m.currentTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	state := "ongoing"
	completed := ""
	if task.Completed {
		state = "finished"
		if task.CompletedAt != nil {
			completed = task.CompletedAt.Format(reminderLayout)
		}
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		ID:           task.ID,
		Text:         task.Text,
		Category:     task.Category,
		Priority:     string(task.Priority),
		State:        state,
		Created:      task.CreatedAt.Format(reminderLayout),
		Completed:    completed,
		Schedule:     scheduleLines(task, m),
		MarkdownView: m.detailViewport.View(),
	})
}

func scheduleLines(t model.Task, m Model) []string {
	var out []string
	if t.StartDate != nil {
		out = append(out, "start: "+t.StartDate.Format(dateLayout))
	}
	if t.EndDate != nil {
		out = append(out, "end: "+t.EndDate.Format(dateLayout))
	}
	if t.StartTime != "" || t.EndTime != "" {
		out = append(out, fmt.Sprintf("time: %s-%s", t.StartTime, t.EndTime))
	}
	if t.ReminderTime != nil {
		out = append(out, fmt.Sprintf("reminder: %s (%s)", t.ReminderTime.Format(reminderLayout), t.ReminderState(m.now())))
	}
	return out
}

// agendaRows lists tasks that carry any schedule, soonest first.
func agendaRows(items []model.Task) []table.Row {
	scheduled := make([]model.Task, 0, len(items))
	for _, t := range items {
		if t.StartDate != nil || t.ReminderTime != nil || t.StartTime != "" {
			scheduled = append(scheduled, t)
		}
	}
	slices.SortStableFunc(scheduled, func(a, b model.Task) int {
		return agendaKey(a).Compare(agendaKey(b))
	})
	rows := make([]table.Row, 0, len(scheduled))
	for _, t := range scheduled {
		start, remind, span := "", "", ""
		if t.StartDate != nil {
			start = t.StartDate.Format(dateLayout)
		}
		if t.ReminderTime != nil {
			remind = t.ReminderTime.Format(reminderLayout)
		}
		if t.StartTime != "" || t.EndTime != "" {
			span = t.StartTime + "-" + t.EndTime
		}
		text := t.Text
		if t.Completed {
			text = "(done) " + text
		}
		rows = append(rows, table.Row{start, span, remind, text})
	}
	return rows
}

func (m Model) handleAgendaKey(msg tea.KeyMsg) Model {
	n := len(m.agendaTable.Rows())
	switch msg.String() {
	case "j", "down":
		if m.agendaCursor < n-1 {
			m.agendaCursor++
		}
	case "k", "up":
		if m.agendaCursor > 0 {
			m.agendaCursor--
		}
	}
	return m
}

func (m Model) renderAgendaView() string {
	return views.RenderAgendaPanel(views.AgendaPanelData{
		TableView: m.agendaTable.View(),
		Empty:     len(m.agendaTable.Rows()) == 0,
	})
}

func describeFilter(f tasks.Filter) string {
	status, cat, prio := string(f.Status), f.Category, f.Priority
	if status == "" {
		status = tasks.All
	}
	if cat == "" {
		cat = tasks.All
	}
	if prio == "" {
		prio = tasks.All
	}
	return fmt.Sprintf("status:%s cat:%s prio:%s", status, cat, prio)
}
