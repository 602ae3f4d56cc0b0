package update

import (
	"time"

	"github.com/sandeepkv93/questd/internal/model"
)

// agendaKey orders scheduled tasks by reminder, then start date. Tasks
// with neither sort last.
func agendaKey(t model.Task) time.Time {
	switch {
	case t.ReminderTime != nil:
		return *t.ReminderTime
	case t.StartDate != nil:
		return *t.StartDate
	default:
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
}

func levelPercent(into, span int) float64 {
	if span <= 0 {
		return 0
	}
	pct := float64(into) / float64(span)
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}
