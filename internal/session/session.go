// Package session binds the command language to the task store: it owns
// the active filter and turns store outcomes into user-facing messages.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/questd/internal/category"
	"github.com/sandeepkv93/questd/internal/classifier"
	"github.com/sandeepkv93/questd/internal/clock"
	"github.com/sandeepkv93/questd/internal/commands"
	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/notify"
	"github.com/sandeepkv93/questd/internal/progress"
	"github.com/sandeepkv93/questd/internal/tasks"
)

type Session struct {
	store      *tasks.Store
	classifier classifier.Classifier
	toasts     notify.Notifier
	clock      clock.Clock
	filter     tasks.Filter
}

// New wires a session. c may be nil, in which case new tasks get the
// default priority and category. toasts receives in-app messages such as
// "Level up!".
func New(store *tasks.Store, c classifier.Classifier, toasts notify.Notifier, clk clock.Clock) *Session {
	if clk == nil {
		clk = clock.System{}
	}
	return &Session{store: store, classifier: c, toasts: toasts, clock: clk}
}

func (s *Session) Store() *tasks.Store { return s.store }

func (s *Session) Filter() tasks.Filter { return s.filter }

func (s *Session) SetFilter(f tasks.Filter) { s.filter = f }

// Visible lists the tasks matching the active filter.
func (s *Session) Visible() []model.Task {
	return s.store.List(s.filter)
}

// Run parses and executes one command line.
func (s *Session) Run(ctx context.Context, input string) (commands.Result, error) {
	cmd, err := commands.Parse(input, s.clock.Now())
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Execute(cmd, s.Handlers(ctx))
}

func (s *Session) Handlers(ctx context.Context) commands.Handlers {
	return commands.Handlers{
		Add:      func(a commands.AddArgs) (commands.Result, error) { return s.add(ctx, a) },
		Done:     func(a commands.DoneArgs) (commands.Result, error) { return s.complete(ctx, a.Ref) },
		Filter:   s.applyFilter,
		Category: func(a commands.CategoryArgs) (commands.Result, error) { return s.addCategory(ctx, a.Label) },
		Stats:    s.stats,
	}
}

func (s *Session) add(ctx context.Context, a commands.AddArgs) (commands.Result, error) {
	if strings.TrimSpace(a.Text) == "" {
		return commands.Result{}, nil
	}
	in := tasks.AddInput{
		Text:     a.Text,
		Category: a.Category,
		Priority: a.Priority,
		Schedule: a.Schedule,
	}
	if in.Priority == "" || in.Category == "" {
		resolved := classifier.Resolve(ctx, s.classifier, a.Text, s.store)
		if in.Priority == "" {
			in.Priority = resolved.Priority
		}
		if in.Category == "" {
			in.Category = resolved.Category
		}
		if s.classifier != nil && resolved.Description != strings.TrimSpace(a.Text) {
			in.Description = resolved.Description
		}
	}

	task, err := s.store.Add(ctx, in)
	if errors.Is(err, tasks.ErrBlankText) {
		return commands.Result{}, nil
	}
	if err != nil && task.ID == "" {
		return commands.Result{}, err
	}
	s.toast("Task added", fmt.Sprintf("%q added to your %s list", task.Text, task.Category))
	return commands.Result{Message: fmt.Sprintf("added %s [%s/%s] %s", shortID(task.ID), task.Priority, task.Category, task.Text)}, err
}

func (s *Session) complete(ctx context.Context, ref string) (commands.Result, error) {
	target, err := s.store.Resolve(ref)
	if err != nil {
		return commands.Result{}, err
	}
	task, delta, ok, err := s.store.Complete(ctx, target.ID)
	if !ok {
		return commands.Result{Message: fmt.Sprintf("%s is already completed", shortID(target.ID))}, err
	}
	s.toast("Task completed", fmt.Sprintf("+%d XP gained!", delta.XPGained))
	if delta.LeveledUp {
		s.toast("Level up!", fmt.Sprintf("You reached Level %d!", delta.NewLevel))
	}
	for _, badge := range delta.NewBadges {
		s.toast("Badge unlocked!", badgeDescription(badge))
	}
	msg := fmt.Sprintf("completed %s (+%d XP, level %d, streak %d)", task.Text, delta.XPGained, delta.NewLevel, delta.Streak)
	return commands.Result{Message: msg}, err
}

func (s *Session) applyFilter(a commands.FilterArgs) (commands.Result, error) {
	f := tasks.Filter{Status: tasks.Status(a.Status), Category: a.Category, Priority: a.Priority}
	if c := category.Normalize(f.Category); c != "" && c != tasks.All && !s.store.HasCategory(c) {
		return commands.Result{}, fmt.Errorf("%w: %q", category.ErrInvalidCategory, a.Category)
	}
	s.filter = f
	n := len(s.Visible())
	return commands.Result{Message: fmt.Sprintf("showing %d tasks (%s)", n, describeFilter(f))}, nil
}

func (s *Session) addCategory(ctx context.Context, label string) (commands.Result, error) {
	added, err := s.store.AddCategory(ctx, label)
	if errors.Is(err, category.ErrBlankLabel) {
		return commands.Result{}, nil
	}
	if err != nil && added == "" {
		return commands.Result{}, err
	}
	return commands.Result{Message: fmt.Sprintf("category %s added", added)}, err
}

func (s *Session) stats() (commands.Result, error) {
	st := s.store.Stats()
	into, span := progress.LevelProgress(st)
	msg := fmt.Sprintf("level %d | %d XP (%d/%d) | streak %d days", st.Level, st.XP, into, span, st.Streak)
	if len(st.Badges) > 0 {
		msg += " | badges: " + strings.Join(st.Badges, ", ")
	}
	return commands.Result{Message: msg}, nil
}

func (s *Session) toast(title, body string) {
	if s.toasts == nil {
		return
	}
	if err := s.toasts.Notify(title, body); err != nil {
		log.WithError(err).Debug("toast dropped")
	}
}

func describeFilter(f tasks.Filter) string {
	status := string(f.Status)
	if status == "" {
		status = tasks.All
	}
	cat := f.Category
	if cat == "" {
		cat = tasks.All
	}
	prio := f.Priority
	if prio == "" {
		prio = tasks.All
	}
	return fmt.Sprintf("status:%s cat:%s prio:%s", status, cat, prio)
}

func badgeDescription(badge string) string {
	switch badge {
	case progress.BadgeEarlyBird:
		return "Early Bird - Completed task before 9 AM!"
	case progress.BadgeWeekWarrior:
		return "Week Warrior - 7 day streak!"
	default:
		return badge
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
