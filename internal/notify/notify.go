package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Notifier delivers a user-visible alert. Callers treat errors as
// non-fatal.
type Notifier interface {
	Notify(title, body string) error
}

type Noop struct{}

func (Noop) Notify(string, string) error { return nil }

// Desktop shells out to notify-send on Linux and osascript on macOS.
type Desktop struct{}

func (Desktop) Notify(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Log writes notifications to the logger; used in headless mode.
type Log struct {
	Logger *log.Logger
}

func (l Log) Notify(title, body string) error {
	logger := l.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	logger.WithField("title", title).Info(body)
	return nil
}

// Multi fans a notification out to every notifier and returns the first
// error after all of them ran.
type Multi []Notifier

func (m Multi) Notify(title, body string) error {
	var first error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(title, body); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Recorder keeps every notification it receives; the TUI uses it as its
// in-app notification log.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []Message
}

type Message struct {
	Title string
	Body  string
}

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 40
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Message{Title: title, Body: body})
	if len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
	return nil
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.items...)
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
