package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/questd/internal/model"
)

func TestSnapshotDefaultsWhenEmpty(t *testing.T) {
	snap, err := LoadSnapshot(context.Background(), NewMemoryRecordStore())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Tasks) != 0 || len(snap.Categories) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if snap.Stats.Level != 1 || snap.Stats.XP != 0 || snap.Stats.Streak != 0 {
		t.Fatalf("unexpected default stats: %+v", snap.Stats)
	}
}

func TestTasksRecordPreservesAbsentFields(t *testing.T) {
	ctx := context.Background()
	rs := NewMemoryRecordStore()
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	remind := created.Add(2 * time.Hour)
	start := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{ID: "b", Text: "Plan trip", Category: "personal", Priority: model.PriorityHigh, CreatedAt: created, StartDate: &start, StartTime: "08:00", ReminderTime: &remind},
		{ID: "a", Text: "Buy milk", Category: "shopping", Priority: model.PriorityLow, CreatedAt: created},
	}
	if err := SaveTasks(ctx, rs, tasks); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, _ := rs.Get(ctx, KeyTasks)
	if strings.Contains(string(raw), "null") {
		t.Fatalf("absent fields must be omitted, got %s", raw)
	}
	if !strings.Contains(string(raw), `"reminderTime":"2026-02-09T14:00:00Z"`) {
		t.Fatalf("expected ISO-8601 reminder time, got %s", raw)
	}

	snap, err := LoadSnapshot(ctx, rs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Tasks) != 2 || snap.Tasks[0].ID != "b" || snap.Tasks[1].ID != "a" {
		t.Fatalf("unexpected order: %+v", snap.Tasks)
	}
	got := snap.Tasks[0]
	if got.ReminderTime == nil || !got.ReminderTime.Equal(remind) {
		t.Fatalf("reminder not restored: %+v", got)
	}
	if got.StartDate == nil || !got.StartDate.Equal(start) || got.EndDate != nil {
		t.Fatalf("dates not restored: %+v", got)
	}
	if snap.Tasks[1].CompletedAt != nil || snap.Tasks[1].ReminderTime != nil {
		t.Fatalf("absent fields must stay nil: %+v", snap.Tasks[1])
	}
}

func TestStatsRecordRecomputesLevelAndLegacyDay(t *testing.T) {
	ctx := context.Background()
	rs := NewMemoryRecordStore()
	if err := rs.Put(ctx, KeyStats, []byte(`{"xp":230,"level":1,"streak":2,"lastTaskDate":"Mon Feb 09 2026"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	snap, err := LoadSnapshot(ctx, rs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Stats.Level != 3 {
		t.Fatalf("expected level recomputed to 3, got %d", snap.Stats.Level)
	}
	if snap.Stats.LastTaskDate != "2026-02-09" {
		t.Fatalf("expected normalized day key, got %q", snap.Stats.LastTaskDate)
	}
}

func TestCategoriesRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	rs := NewMemoryRecordStore()
	if err := SaveCategories(ctx, rs, []string{"work", "garden"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	snap, err := LoadSnapshot(ctx, rs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Categories) != 2 || snap.Categories[1] != "garden" {
		t.Fatalf("unexpected categories: %v", snap.Categories)
	}
}

func TestLoadSnapshotRejectsCorruptRecord(t *testing.T) {
	ctx := context.Background()
	rs := NewMemoryRecordStore()
	_ = rs.Put(ctx, KeyTasks, []byte(`{not json`))
	if _, err := LoadSnapshot(ctx, rs); err == nil {
		t.Fatal("expected decode error")
	}
}
