package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Buy milk",
		Category:  "shopping",
		Priority:  PriorityLow,
		CreatedAt: now,
		StartTime: "09:30",
		EndTime:   "10:00",
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateCompletedRequiresCompletedAt(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Done task",
		Category:  "work",
		Priority:  PriorityMedium,
		CreatedAt: now,
		Completed: true,
	}
	err := task.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "model: completed_at is required when task is completed" {
		t.Fatalf("unexpected error: %v", err)
	}

	task.Completed = false
	task.CompletedAt = &now
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for completed_at on open task")
	}
}

func TestTaskValidateInvalidFields(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Bad priority",
		Category:  "work",
		Priority:  Priority("urgent"),
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.Priority = PriorityHigh
	task.StartTime = "25:99"
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidClockTime) {
		t.Fatalf("expected ErrInvalidClockTime, got: %v", err)
	}
}

func TestEndBeforeStartIsAccepted(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "Odd window",
		Category:  "other",
		Priority:  PriorityLow,
		CreatedAt: start,
		StartDate: &start,
		EndDate:   &end,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected end-before-start to be accepted, got %v", err)
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"high":     PriorityHigh,
		" Medium ": PriorityMedium,
		"LOW":      PriorityLow,
	}
	for in, want := range cases {
		got, err := ParsePriority(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %q, want %q", in, got, want)
		}
	}
	if _, err := ParsePriority("critical"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestDayKeyIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	early := time.Date(2026, 2, 9, 0, 5, 0, 0, loc)
	late := time.Date(2026, 2, 9, 23, 55, 0, 0, loc)
	if DayKey(early) != DayKey(late) {
		t.Fatalf("expected same day key, got %q and %q", DayKey(early), DayKey(late))
	}
	if DayKey(early) != "2026-02-09" {
		t.Fatalf("unexpected day key %q", DayKey(early))
	}
	if !DateOf(late).Equal(time.Date(2026, 2, 9, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected DateOf: %v", DateOf(late))
	}
}

func TestUserStatsNormalizeRecomputesLevel(t *testing.T) {
	s := UserStats{XP: 250, Level: 9, Streak: -1}.Normalize()
	if s.Level != 3 || s.Streak != 0 {
		t.Fatalf("unexpected normalized stats: %+v", s)
	}
	if NewUserStats().Level != 1 {
		t.Fatal("expected new stats to start at level 1")
	}
}
