package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/questd/internal/model"
)

func noon(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestXPForIsFixed(t *testing.T) {
	assert.Equal(t, 30, XPFor(model.PriorityHigh))
	assert.Equal(t, 20, XPFor(model.PriorityMedium))
	assert.Equal(t, 10, XPFor(model.PriorityLow))
	assert.Equal(t, 0, XPFor(model.Priority("bogus")))
}

func TestFirstCompletionBootstrapsStreak(t *testing.T) {
	next, delta := ApplyCompletion(model.NewUserStats(), model.PriorityLow, noon(2026, 2, 9))

	assert.Equal(t, 10, next.XP)
	assert.Equal(t, 1, next.Level)
	assert.Equal(t, 1, next.Streak)
	assert.Equal(t, "2026-02-09", next.LastTaskDate)
	assert.Equal(t, 10, delta.XPGained)
	assert.False(t, delta.LeveledUp)
}

func TestSameDayRepeatKeepsStreak(t *testing.T) {
	day := noon(2026, 2, 9)
	first, _ := ApplyCompletion(model.NewUserStats(), model.PriorityMedium, day)
	second, delta := ApplyCompletion(first, model.PriorityHigh, day.Add(3*time.Hour))

	assert.Equal(t, first.Streak, second.Streak)
	assert.Equal(t, 50, second.XP)
	assert.Equal(t, 1, delta.Streak)
}

func TestConsecutiveDaysIncreaseStreak(t *testing.T) {
	stats := model.NewUserStats()
	for i := 0; i < 3; i++ {
		var delta Delta
		stats, delta = ApplyCompletion(stats, model.PriorityLow, noon(2026, 2, 9+i))
		require.Equal(t, i+1, delta.Streak)
	}
	assert.Equal(t, 3, stats.Streak)
	assert.Equal(t, "2026-02-11", stats.LastTaskDate)
}

func TestGapResetsStreak(t *testing.T) {
	stats, _ := ApplyCompletion(model.NewUserStats(), model.PriorityLow, noon(2026, 2, 9))
	stats, _ = ApplyCompletion(stats, model.PriorityLow, noon(2026, 2, 10))
	require.Equal(t, 2, stats.Streak)

	// Skip the 11th and 12th.
	stats, delta := ApplyCompletion(stats, model.PriorityLow, noon(2026, 2, 13))
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 1, delta.Streak)
}

func TestStreakUsesCalendarDaysNotElapsedTime(t *testing.T) {
	late := time.Date(2026, 2, 9, 23, 50, 0, 0, time.UTC)
	early := time.Date(2026, 2, 10, 9, 10, 0, 0, time.UTC)
	stats, _ := ApplyCompletion(model.NewUserStats(), model.PriorityLow, late)
	stats, _ = ApplyCompletion(stats, model.PriorityLow, early)
	assert.Equal(t, 2, stats.Streak)
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	stats, _ := ApplyCompletion(model.NewUserStats(), model.PriorityLow, noon(2026, 2, 28))
	stats, _ = ApplyCompletion(stats, model.PriorityLow, noon(2026, 3, 1))
	assert.Equal(t, 2, stats.Streak)
}

func TestLevelInvariantHoldsAcrossTransitions(t *testing.T) {
	stats := model.NewUserStats()
	levelUps := 0
	for i := 0; i < 20; i++ {
		var delta Delta
		stats, delta = ApplyCompletion(stats, model.PriorityHigh, noon(2026, 2, 9))
		require.Equal(t, stats.XP/100+1, stats.Level)
		if delta.LeveledUp {
			levelUps++
			assert.Equal(t, delta.PreviousLevel+1, delta.NewLevel)
		}
	}
	assert.Equal(t, 600, stats.XP)
	assert.Equal(t, 7, stats.Level)
	assert.Equal(t, 6, levelUps)
}

func TestLevelUpSignal(t *testing.T) {
	stats := model.UserStats{XP: 90, Level: 1, Streak: 1, LastTaskDate: "2026-02-09"}
	next, delta := ApplyCompletion(stats, model.PriorityLow, noon(2026, 2, 9))
	assert.True(t, delta.LeveledUp)
	assert.Equal(t, 2, next.Level)
	assert.Equal(t, 100, next.XP)
}

func TestBadgesAwardedOnce(t *testing.T) {
	dawn := time.Date(2026, 2, 9, 7, 30, 0, 0, time.UTC)
	stats, delta := ApplyCompletion(model.NewUserStats(), model.PriorityLow, dawn)
	assert.Equal(t, []string{BadgeEarlyBird}, delta.NewBadges)

	_, delta = ApplyCompletion(stats, model.PriorityLow, dawn.Add(time.Hour))
	assert.Empty(t, delta.NewBadges)

	stats = model.NewUserStats()
	for i := 0; i < 7; i++ {
		stats, delta = ApplyCompletion(stats, model.PriorityLow, noon(2026, 2, 1+i))
	}
	assert.Equal(t, []string{BadgeWeekWarrior}, delta.NewBadges)
	assert.True(t, stats.HasBadge(BadgeWeekWarrior))
}

func TestApplyCompletionDoesNotAliasBadges(t *testing.T) {
	base := model.UserStats{Badges: make([]string, 0, 4)}
	next, _ := ApplyCompletion(base, model.PriorityLow, time.Date(2026, 2, 9, 6, 0, 0, 0, time.UTC))
	assert.Len(t, next.Badges, 1)
	assert.Empty(t, base.Badges)
}

func TestLevelProgress(t *testing.T) {
	into, span := LevelProgress(model.UserStats{XP: 250})
	assert.Equal(t, 50, into)
	assert.Equal(t, 100, span)
}
