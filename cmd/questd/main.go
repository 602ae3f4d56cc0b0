package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/questd/internal/classifier"
	"github.com/sandeepkv93/questd/internal/clock"
	"github.com/sandeepkv93/questd/internal/config"
	"github.com/sandeepkv93/questd/internal/notify"
	"github.com/sandeepkv93/questd/internal/scheduler"
	"github.com/sandeepkv93/questd/internal/session"
	"github.com/sandeepkv93/questd/internal/storage"
	"github.com/sandeepkv93/questd/internal/tasks"
	"github.com/sandeepkv93/questd/internal/update"
	"github.com/sandeepkv93/questd/internal/views"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.RuntimeConfigFromEnv(config.DefaultRuntimeConfig())

	mode := "tui"
	if len(args) > 0 {
		mode = args[0]
	}

	fallback := io.Writer(os.Stderr)
	if mode == "tui" {
		fallback = io.Discard
	}
	closer, err := config.SetupLogging(cfg, fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "questd: open log file: %v\n", err)
		return 1
	}
	defer closer.Close()

	if mode == "help" {
		fmt.Println(views.RenderMarkdown(update.CommandReference))
		return 0
	}

	ctx := context.Background()
	records, err := openRecords(ctx, cfg)
	if err != nil {
		log.WithError(err).WithField("store", cfg.Store).Error("open record store")
		fmt.Fprintf(os.Stderr, "questd: open %s store: %v\n", cfg.Store, err)
		return 1
	}
	defer records.Close()

	clk := clock.System{}
	store, err := tasks.Open(ctx, records, clk)
	if err != nil {
		log.WithError(err).Error("load state")
		fmt.Fprintf(os.Stderr, "questd: load state: %v\n", err)
		return 1
	}

	switch mode {
	case "tui":
		return runTUI(cfg, store, clk)
	case "remind":
		return runRemind(cfg, store, clk)
	default:
		return runCommand(ctx, cfg, store, clk, strings.Join(args, " "))
	}
}

func openRecords(ctx context.Context, cfg config.RuntimeConfig) (storage.RecordStore, error) {
	switch cfg.Store {
	case config.StoreRedis:
		return storage.OpenRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case config.StoreMemory:
		return storage.NewMemoryRecordStore(), nil
	default:
		return storage.OpenSQLite(cfg.DBPath)
	}
}

func newClassifier(cfg config.RuntimeConfig) classifier.Classifier {
	if cfg.ClassifierURL == "" {
		return nil
	}
	return classifier.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierAPIKey, cfg.ClassifierTimeout)
}

func reminderNotifier(cfg config.RuntimeConfig) notify.Notifier {
	out := notify.Multi{notify.Log{}}
	if cfg.DesktopNotifications {
		out = append(out, notify.Desktop{})
	}
	return out
}

func newScanner(cfg config.RuntimeConfig, store *tasks.Store, clk clock.Clock, n notify.Notifier) *scheduler.Scanner {
	return scheduler.NewScanner(store, n, clk, scheduler.Config{
		Interval: cfg.ReminderInterval,
		Buffer:   cfg.SchedulerBuffer,
	})
}

func runTUI(cfg config.RuntimeConfig, store *tasks.Store, clk clock.Clock) int {
	toasts := notify.NewRecorder(0)
	scanner := newScanner(cfg, store, clk, reminderNotifier(cfg))
	scanner.Start()
	defer scanner.Stop()

	sess := session.New(store, newClassifier(cfg), toasts, clk)
	program := tea.NewProgram(update.NewModel(sess, toasts, scanner.C(), clk))
	if _, err := program.Run(); err != nil {
		log.WithError(err).Error("tui exited")
		fmt.Fprintf(os.Stderr, "questd failed: %v\n", err)
		return 1
	}
	return 0
}

// runRemind runs the reminder scanner without a UI until interrupted.
func runRemind(cfg config.RuntimeConfig, store *tasks.Store, clk clock.Clock) int {
	scanner := newScanner(cfg, store, clk, reminderNotifier(cfg))
	scanner.Start()
	go func() {
		for ev := range scanner.C() {
			log.WithFields(log.Fields{"task_id": ev.TaskID, "trigger_at": ev.TriggerAt}).Debug("reminder delivered")
		}
	}()
	log.WithField("interval", scanner.Interval()).Info("reminder scanner running")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"reminder-scanner": func(ctx context.Context) error {
				scanner.Stop()
				if n := scanner.Dropped(); n > 0 {
					log.WithField("dropped", n).Warn("reminder events dropped")
				}
				return nil
			},
		},
	)
	return <-wait
}

// runCommand executes one command line and prints the result, e.g.
// `questd add buy milk p:low c:shopping`. Due reminders are swept once
// first so a cron-driven invocation still delivers them.
func runCommand(ctx context.Context, cfg config.RuntimeConfig, store *tasks.Store, clk clock.Clock, input string) int {
	scanner := newScanner(cfg, store, clk, reminderNotifier(cfg))
	for _, ev := range scanner.ScanOnce(ctx) {
		fmt.Printf("%s (%s)\n", scheduler.ReminderTitle(ev), scheduler.ReminderBody(ev))
	}

	sess := session.New(store, newClassifier(cfg), notify.Log{}, clk)
	res, err := sess.Run(ctx, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "questd: %v\n", err)
		return 1
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	}
	if strings.HasPrefix(strings.TrimSpace(input), "filter") || strings.HasPrefix(strings.TrimSpace(input), "show") {
		for _, t := range sess.Visible() {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			fmt.Printf("[%s] %s %-6s %-9s %s\n", mark, shortID(t.ID), t.Priority, t.Category, t.Text)
		}
	}
	return 0
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
