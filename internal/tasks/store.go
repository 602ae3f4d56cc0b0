// Package tasks owns the in-memory task collection and the user's progress
// record. Every mutating command updates memory first and then persists
// the affected records.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/questd/internal/category"
	"github.com/sandeepkv93/questd/internal/clock"
	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/progress"
	"github.com/sandeepkv93/questd/internal/storage"
)

var (
	ErrBlankText    = errors.New("tasks: task text is blank")
	ErrNotFound     = errors.New("tasks: task not found")
	ErrAmbiguousRef = errors.New("tasks: task reference is ambiguous")
	ErrPersist      = errors.New("tasks: persist failed")
)

type AddInput struct {
	Text        string
	Description string
	Category    string
	Priority    model.Priority
	Schedule    model.Schedule
}

type Store struct {
	mu       sync.Mutex
	records  storage.RecordStore
	clock    clock.Clock
	newID    func() string
	tasks    []model.Task
	stats    model.UserStats
	registry *category.Registry
	log      *log.Entry
}

func New(records storage.RecordStore, clk clock.Clock) *Store {
	if records == nil {
		records = storage.NewMemoryRecordStore()
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Store{
		records:  records,
		clock:    clk,
		newID:    uuid.NewString,
		stats:    model.NewUserStats(),
		registry: category.NewRegistry(),
		log:      log.WithField("component", "tasks"),
	}
}

// Open builds a store and restores its state from records.
func Open(ctx context.Context, records storage.RecordStore, clk clock.Clock) (*Store, error) {
	s := New(records, clk)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Load(ctx context.Context) error {
	snap, err := storage.LoadSnapshot(ctx, s.records)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = snap.Tasks
	s.stats = snap.Stats
	s.registry = category.Restore(snap.Categories)
	s.log.WithFields(log.Fields{"tasks": len(s.tasks), "xp": s.stats.XP}).Debug("state loaded")
	return nil
}

func (s *Store) Add(ctx context.Context, in AddInput) (model.Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return model.Task{}, ErrBlankText
	}
	if !in.Priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidPriority, in.Priority)
	}
	if err := model.ValidateClockTime(in.Schedule.StartTime); err != nil {
		return model.Task{}, err
	}
	if err := model.ValidateClockTime(in.Schedule.EndTime); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := s.registry.Validate(in.Category)
	if err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:           s.newID(),
		Text:         text,
		Description:  strings.TrimSpace(in.Description),
		Category:     cat,
		Priority:     in.Priority,
		CreatedAt:    s.clock.Now(),
		StartDate:    in.Schedule.StartDate,
		EndDate:      in.Schedule.EndDate,
		StartTime:    in.Schedule.StartTime,
		EndTime:      in.Schedule.EndTime,
		ReminderTime: in.Schedule.ReminderTime,
	}
	s.tasks = slices.Insert(s.tasks, 0, task)
	s.log.WithFields(log.Fields{"id": task.ID, "category": task.Category, "priority": task.Priority}).Info("task added")

	return task, s.persistLocked(ctx, storage.KeyTasks)
}

// Complete marks the task done and credits its experience. Unknown or
// already completed tasks report ok == false and change nothing.
func (s *Store) Complete(ctx context.Context, id string) (model.Task, progress.Delta, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 || s.tasks[idx].Completed {
		return model.Task{}, progress.Delta{}, false, nil
	}

	now := s.clock.Now()
	task := s.tasks[idx]
	task.Completed = true
	task.CompletedAt = &now
	s.tasks[idx] = task

	stats, delta := progress.ApplyCompletion(s.stats, task.Priority, now)
	s.stats = stats
	s.log.WithFields(log.Fields{
		"id":        task.ID,
		"xp_gained": delta.XPGained,
		"level":     delta.NewLevel,
		"streak":    delta.Streak,
	}).Info("task completed")

	return task, delta, true, s.persistLocked(ctx, storage.KeyTasks, storage.KeyStats)
}

func (s *Store) AddCategory(ctx context.Context, label string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added, err := s.registry.Add(label)
	if err != nil {
		return "", err
	}
	s.log.WithField("category", added).Info("category added")
	return added, s.persistLocked(ctx, storage.KeyCategories)
}

// Query yields the tasks matching f, most recently added first. The view is
// taken over a snapshot of the collection at call time and can be ranged
// over any number of times.
func (s *Store) Query(f Filter) iter.Seq[model.Task] {
	snapshot := s.snapshot()
	return func(yield func(model.Task) bool) {
		for _, t := range snapshot {
			if !f.Matches(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func (s *Store) List(f Filter) []model.Task {
	return slices.Collect(s.Query(f))
}

func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := Counts{ByCategory: make(map[string]int, s.registry.Len())}
	for _, label := range s.registry.Labels() {
		out.ByCategory[label] = 0
	}
	for _, t := range s.tasks {
		out.All++
		if t.Completed {
			out.Finished++
		} else {
			out.Ongoing++
		}
		out.ByCategory[t.Category]++
	}
	return out
}

func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

// Resolve finds a task by full id or unique id prefix.
func (s *Store) Resolve(ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(ref); idx >= 0 {
		return s.tasks[idx], nil
	}
	var found []model.Task
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return model.Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return model.Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousRef, ref, len(found))
	}
}

func (s *Store) Stats() model.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.stats
	out.Badges = slices.Clone(s.stats.Badges)
	return out
}

func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Labels()
}

func (s *Store) HasCategory(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Contains(label)
}

// DueReminders lists open tasks whose reminder time has passed and which
// have not been notified yet.
func (s *Store) DueReminders(now time.Time) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Task
	for _, t := range s.tasks {
		if t.ReminderState(now) == model.ReminderDue {
			out = append(out, t)
		}
	}
	return out
}

// MarkReminderFired claims the reminder of id for delivery at at. It
// reports false, changing nothing, when the reminder is no longer due: the
// task was completed or already notified in the meantime.
func (s *Store) MarkReminderFired(ctx context.Context, id string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.tasks[idx].ReminderState(at) != model.ReminderDue {
		return false, nil
	}
	s.tasks[idx].ReminderFiredAt = &at
	return true, s.persistLocked(ctx, storage.KeyTasks)
}

func (s *Store) snapshot() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// persistLocked writes the given records. A failed write leaves the
// in-memory state as is; the caller gets ErrPersist.
func (s *Store) persistLocked(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		var err error
		switch key {
		case storage.KeyTasks:
			err = storage.SaveTasks(ctx, s.records, s.tasks)
		case storage.KeyStats:
			err = storage.SaveStats(ctx, s.records, s.stats)
		case storage.KeyCategories:
			err = storage.SaveCategories(ctx, s.records, s.registry.Labels())
		}
		if err != nil {
			s.log.WithError(err).WithField("record", key).Error("persist failed")
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrPersist, errors.Join(errs...))
	}
	return nil
}
