package model

// XPPerLevel is the amount of experience that separates two levels.
const XPPerLevel = 100

type UserStats struct {
	XP           int      `json:"xp"`
	Level        int      `json:"level"`
	Streak       int      `json:"streak"`
	LastTaskDate string   `json:"lastTaskDate"`
	Badges       []string `json:"badges,omitempty"`
}

func NewUserStats() UserStats {
	return UserStats{Level: 1}
}

// LevelFor is the level reached with xp experience points.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// Normalize repairs a loaded record: negative counters are clamped and the
// level is recomputed from xp.
func (s UserStats) Normalize() UserStats {
	if s.XP < 0 {
		s.XP = 0
	}
	if s.Streak < 0 {
		s.Streak = 0
	}
	s.Level = LevelFor(s.XP)
	return s
}

func (s UserStats) HasBadge(name string) bool {
	for _, b := range s.Badges {
		if b == name {
			return true
		}
	}
	return false
}
