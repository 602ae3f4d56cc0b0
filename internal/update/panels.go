package update

import (
	"github.com/sandeepkv93/questd/internal/progress"
	"github.com/sandeepkv93/questd/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderQuickAdd() string {
	return views.RenderQuickAdd(m.QuickAdd.Active, m.quickAddInput.View())
}

func (m Model) renderLatestNotification() string {
	msgs := m.Toasts.Messages()
	if len(msgs) == 0 {
		return ""
	}
	last := msgs[len(msgs)-1]
	return views.RenderNotification(last.Title, last.Body)
}

func (m Model) renderNotificationsView() string {
	msgs := m.Toasts.Messages()
	items := make([]views.NotificationData, 0, len(msgs))
	for _, msg := range msgs {
		items = append(items, views.NotificationData{Title: msg.Title, Body: msg.Body})
	}
	return views.RenderNotificationsPanel(items)
}

func (m Model) renderProgressView() string {
	if m.Session == nil {
		return views.RenderProgressPanel(views.ProgressPanelData{})
	}
	store := m.Session.Store()
	stats := store.Stats()
	into, span := progress.LevelProgress(stats)
	counts := store.Counts()
	cats := make([]views.CategoryCount, 0, len(counts.ByCategory))
	for _, label := range store.Categories() {
		cats = append(cats, views.CategoryCount{Label: label, Count: counts.ByCategory[label]})
	}
	return views.RenderProgressPanel(views.ProgressPanelData{
		Level:        stats.Level,
		XP:           stats.XP,
		IntoLevel:    into,
		LevelSpan:    span,
		Streak:       stats.Streak,
		LastTaskDate: stats.LastTaskDate,
		Badges:       stats.Badges,
		ProgressView: m.xpProgress.ViewAs(levelPercent(into, span)),
		Categories:   cats,
	})
}
