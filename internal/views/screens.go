package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID        string
	Text      string
	Category  string
	Priority  string
	Completed bool
	Reminder  string
}

type TaskPanelData struct {
	Filter     string
	ListView   string
	Items      []TaskItemData
	SelectedID string
	Counts     string
}

type TaskDetailData struct {
	ID           string
	Text         string
	Category     string
	Priority     string
	State        string
	Created      string
	Completed    string
	Schedule     []string
	MarkdownView string
}

type AgendaPanelData struct {
	TableView string
	Empty     bool
}

type ProgressPanelData struct {
	Level        int
	XP           int
	IntoLevel    int
	LevelSpan    int
	Streak       int
	LastTaskDate string
	Badges       []string
	ProgressView string
	Categories   []CategoryCount
}

type CategoryCount struct {
	Label string
	Count int
}

type NotificationData struct {
	Title string
	Body  string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(fmt.Sprintf("filter: %s\n", data.Filter))
	if data.Counts != "" {
		b.WriteString(data.Counts + "\n")
	}
	b.WriteString("actions: [j/k]move [x]done [a]add [f]status [c]category\n")
	if len(data.Items) == 0 {
		b.WriteString("\n(no tasks match)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(data.ListView + "\n\n")
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s (%s)", cursor, check, priorityBadge(item.Priority), item.Text, item.Category))
		if item.Reminder != "" {
			b.WriteString(" remind:" + item.Reminder)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetail(data TaskDetailData) string {
	if strings.TrimSpace(data.ID) == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.ID))
	b.WriteString(fmt.Sprintf("priority: %s\n", data.Priority))
	b.WriteString(fmt.Sprintf("category: %s\n", data.Category))
	b.WriteString(fmt.Sprintf("state: %s\n", data.State))
	b.WriteString(fmt.Sprintf("created: %s\n", data.Created))
	if data.Completed != "" {
		b.WriteString(fmt.Sprintf("completed: %s\n", data.Completed))
	}
	for _, line := range data.Schedule {
		b.WriteString(line + "\n")
	}
	if data.MarkdownView != "" {
		b.WriteString("\n" + data.MarkdownView)
	}
	return strings.TrimSpace(b.String())
}

func RenderAgendaPanel(data AgendaPanelData) string {
	var b strings.Builder
	b.WriteString("agenda:\n")
	b.WriteString("actions: [j/k]move\n")
	if data.Empty {
		b.WriteString("(nothing scheduled)")
		return b.String()
	}
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderProgressPanel(data ProgressPanelData) string {
	var b strings.Builder
	b.WriteString("progress:\n")
	b.WriteString(fmt.Sprintf("level: %d\n", data.Level))
	b.WriteString(fmt.Sprintf("xp: %d (%d/%d to next level)\n", data.XP, data.IntoLevel, data.LevelSpan))
	b.WriteString(data.ProgressView + "\n")
	b.WriteString(fmt.Sprintf("streak: %d day(s)\n", data.Streak))
	if data.LastTaskDate != "" {
		b.WriteString(fmt.Sprintf("last completion: %s\n", data.LastTaskDate))
	}
	if len(data.Badges) == 0 {
		b.WriteString("badges: (none yet)\n")
	} else {
		b.WriteString("badges:\n")
		for _, badge := range data.Badges {
			b.WriteString("- " + badge + "\n")
		}
	}
	if len(data.Categories) > 0 {
		b.WriteString("\ncategories:\n")
		for _, c := range data.Categories {
			b.WriteString(fmt.Sprintf("- %s: %d\n", c.Label, c.Count))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderNotificationsPanel(items []NotificationData) string {
	var b strings.Builder
	b.WriteString("notifications:\n")
	if len(items) == 0 {
		b.WriteString("(empty)")
		return b.String()
	}
	for i := len(items) - 1; i >= 0; i-- {
		b.WriteString(fmt.Sprintf("- %s: %s\n", items[i].Title, items[i].Body))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderQuickAdd(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "quick add:\n" + inputView
}

func RenderNotification(title, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", title, body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func priorityBadge(p string) string {
	switch p {
	case "high":
		return "[RED]"
	case "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
