package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/sandeepkv93/questd/internal/model"
)

// Snapshot is the full durable state of one user.
type Snapshot struct {
	Tasks      []model.Task
	Stats      model.UserStats
	Categories []string
}

// legacyDayLayout is the day format older stats records were written with.
const legacyDayLayout = "Mon Jan 02 2006"

// LoadSnapshot reads all records. Missing records yield empty defaults.
func LoadSnapshot(ctx context.Context, rs RecordStore) (Snapshot, error) {
	out := Snapshot{Stats: model.NewUserStats()}

	if err := loadRecord(ctx, rs, KeyTasks, &out.Tasks); err != nil {
		return Snapshot{}, err
	}
	if err := loadRecord(ctx, rs, KeyStats, &out.Stats); err != nil {
		return Snapshot{}, err
	}
	if err := loadRecord(ctx, rs, KeyCategories, &out.Categories); err != nil {
		return Snapshot{}, err
	}
	out.Stats = out.Stats.Normalize()
	out.Stats.LastTaskDate = normalizeDayKey(out.Stats.LastTaskDate)
	return out, nil
}

func SaveTasks(ctx context.Context, rs RecordStore, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return saveRecord(ctx, rs, KeyTasks, tasks)
}

func SaveStats(ctx context.Context, rs RecordStore, stats model.UserStats) error {
	return saveRecord(ctx, rs, KeyStats, stats)
}

func SaveCategories(ctx context.Context, rs RecordStore, labels []string) error {
	if labels == nil {
		labels = []string{}
	}
	return saveRecord(ctx, rs, KeyCategories, labels)
}

func loadRecord(ctx context.Context, rs RecordStore, key string, dst any) error {
	raw, err := rs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func saveRecord(ctx context.Context, rs RecordStore, key string, v any) error {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := rs.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func normalizeDayKey(v string) string {
	if v == "" {
		return ""
	}
	if _, err := time.Parse(time.DateOnly, v); err == nil {
		return v
	}
	if t, err := time.Parse(legacyDayLayout, v); err == nil {
		return model.DayKey(t)
	}
	return v
}
