// Package scheduler runs the periodic reminder sweep.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/questd/internal/clock"
	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/notify"
)

const (
	DefaultInterval = time.Minute
	DefaultBuffer   = 64
)

// Source is the slice of the task store the scanner needs.
type Source interface {
	DueReminders(now time.Time) []model.Task
	MarkReminderFired(ctx context.Context, id string, at time.Time) (bool, error)
}

type Config struct {
	Interval time.Duration
	Buffer   int
}

type ReminderEvent struct {
	TaskID    string
	Text      string
	Priority  model.Priority
	Category  string
	TriggerAt time.Time
	FiredAt   time.Time
}

type Scanner struct {
	mu       sync.Mutex
	scanMu   sync.Mutex
	source   Source
	notifier notify.Notifier
	clock    clock.Clock
	interval time.Duration
	out      chan ReminderEvent
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	dropped  uint64
	log      *log.Entry
}

func NewScanner(source Source, notifier notify.Notifier, clk clock.Clock, cfg Config) *Scanner {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &Scanner{
		source:   source,
		notifier: notifier,
		clock:    clk,
		interval: cfg.Interval,
		out:      make(chan ReminderEvent, cfg.Buffer),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		log:      log.WithField("component", "scheduler"),
	}
}

// C delivers an event for every reminder fired by the background loop. It
// is closed by Stop.
func (s *Scanner) C() <-chan ReminderEvent {
	return s.out
}

func (s *Scanner) Interval() time.Duration { return s.interval }

func (s *Scanner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	go s.loop()
}

// Stop halts the loop and waits for it to exit. Safe to call more than
// once.
func (s *Scanner) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if !s.started {
		s.stopped = true
		close(s.out)
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stopCh)
	s.mu.Unlock()
	<-s.doneCh
}

func (s *Scanner) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}

// ScanOnce notifies every due reminder exactly once and returns the fired
// events. Delivery failures are logged and do not stop the sweep.
func (s *Scanner) ScanOnce(ctx context.Context) []ReminderEvent {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	now := s.clock.Now()
	due := s.source.DueReminders(now)
	fired := make([]ReminderEvent, 0, len(due))
	for _, task := range due {
		if ctx.Err() != nil {
			break
		}
		entry := s.log.WithField("task_id", task.ID)
		ev := ReminderEvent{
			TaskID:    task.ID,
			Text:      task.Text,
			Priority:  task.Priority,
			Category:  task.Category,
			TriggerAt: *task.ReminderTime,
			FiredAt:   now,
		}
		claimed, err := s.source.MarkReminderFired(ctx, task.ID, now)
		if err != nil {
			entry.WithError(err).Warn("mark reminder fired")
		}
		if !claimed {
			continue
		}
		if err := s.notifier.Notify(ReminderTitle(ev), ReminderBody(ev)); err != nil {
			entry.WithError(err).Warn("reminder notification failed")
		}
		fired = append(fired, ev)
	}
	if len(fired) > 0 {
		s.log.WithField("count", len(fired)).Debug("reminders fired")
	}
	return fired
}

func (s *Scanner) loop() {
	defer close(s.doneCh)
	defer close(s.out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.publish(s.ScanOnce(ctx))
	for {
		select {
		case <-ticker.C:
			s.publish(s.ScanOnce(ctx))
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scanner) publish(events []ReminderEvent) {
	for _, ev := range events {
		select {
		case s.out <- ev:
		default:
			atomic.AddUint64(&s.dropped, 1)
		}
	}
}

func ReminderTitle(ev ReminderEvent) string {
	return fmt.Sprintf("Reminder: %s", ev.Text)
}

func ReminderBody(ev ReminderEvent) string {
	return fmt.Sprintf("Priority: %s | Category: %s", ev.Priority, ev.Category)
}
