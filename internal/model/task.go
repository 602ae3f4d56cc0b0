package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority  = errors.New("model: invalid task priority")
	ErrInvalidClockTime = errors.New("model: invalid clock time")
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the closed priority vocabulary, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority accepts any casing and surrounding space.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

// Schedule carries the optional scheduling metadata of a task. Fields are
// independent and stored as given; an end date before the start date is
// accepted.
type Schedule struct {
	StartDate    *time.Time
	EndDate      *time.Time
	StartTime    string
	EndTime      string
	ReminderTime *time.Time
}

type Task struct {
	ID              string     `json:"id"`
	Text            string     `json:"text"`
	Description     string     `json:"description,omitempty"`
	Completed       bool       `json:"completed"`
	Category        string     `json:"category"`
	Priority        Priority   `json:"priority"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	StartTime       string     `json:"startTime,omitempty"`
	EndTime         string     `json:"endTime,omitempty"`
	ReminderTime    *time.Time `json:"reminderTime,omitempty"`
	ReminderFiredAt *time.Time `json:"reminderFiredAt,omitempty"`
}

func (t Task) Schedule() Schedule {
	return Schedule{
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		ReminderTime: t.ReminderTime,
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("model: task category is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not completed")
	}
	if err := ValidateClockTime(t.StartTime); err != nil {
		return err
	}
	return ValidateClockTime(t.EndTime)
}

// ValidateClockTime checks the HH:MM shape of an optional clock time.
func ValidateClockTime(v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse("15:04", v); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidClockTime, v)
	}
	return nil
}

// DateOf truncates t to midnight of its calendar day in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey formats the calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
