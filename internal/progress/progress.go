// Package progress holds the pure state transitions of the gamification
// layer: experience per priority, level derivation, streaks and badges.
package progress

import (
	"time"

	"github.com/sandeepkv93/questd/internal/model"
)

const (
	BadgeEarlyBird   = "Early Bird"
	BadgeWeekWarrior = "Week Warrior"

	earlyBirdBeforeHour = 9
	weekWarriorStreak   = 7
)

// Delta describes what a single completion changed.
type Delta struct {
	XPGained      int
	PreviousLevel int
	NewLevel      int
	LeveledUp     bool
	Streak        int
	NewBadges     []string
}

func XPFor(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 30
	case model.PriorityMedium:
		return 20
	case model.PriorityLow:
		return 10
	default:
		return 0
	}
}

// ApplyCompletion folds one completion into stats. Streaks compare calendar
// days of completedAt in its own location; the time of day never matters.
func ApplyCompletion(stats model.UserStats, p model.Priority, completedAt time.Time) (model.UserStats, Delta) {
	prevLevel := model.LevelFor(stats.XP)
	gained := XPFor(p)
	newXP := stats.XP + gained
	newLevel := model.LevelFor(newXP)

	today := model.DayKey(completedAt)
	yesterday := model.DayKey(model.DateOf(completedAt).AddDate(0, 0, -1))

	streak := stats.Streak
	switch {
	case stats.LastTaskDate == today:
	case stats.LastTaskDate == yesterday || stats.Streak == 0:
		streak = stats.Streak + 1
	default:
		streak = 1
	}

	next := model.UserStats{
		XP:           newXP,
		Level:        newLevel,
		Streak:       streak,
		LastTaskDate: today,
		Badges:       append([]string(nil), stats.Badges...),
	}

	var earned []string
	if completedAt.Hour() < earlyBirdBeforeHour && !next.HasBadge(BadgeEarlyBird) {
		earned = append(earned, BadgeEarlyBird)
	}
	if streak >= weekWarriorStreak && !next.HasBadge(BadgeWeekWarrior) {
		earned = append(earned, BadgeWeekWarrior)
	}
	next.Badges = append(next.Badges, earned...)

	return next, Delta{
		XPGained:      gained,
		PreviousLevel: prevLevel,
		NewLevel:      newLevel,
		LeveledUp:     newLevel > prevLevel,
		Streak:        streak,
		NewBadges:     earned,
	}
}

// LevelProgress returns the xp earned inside the current level and the
// size of a level.
func LevelProgress(stats model.UserStats) (into, span int) {
	xp := stats.XP
	if xp < 0 {
		xp = 0
	}
	return xp % model.XPPerLevel, model.XPPerLevel
}
