package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/questd/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeFilter   Type = "filter"
	TypeCategory Type = "category"
	TypeStats    Type = "stats"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs leaves Priority and Category empty when the user did not give
// them; the handler then consults the classifier. Text may be empty, which
// the handler treats as a no-op.
type AddArgs struct {
	Text     string
	Priority model.Priority
	Category string
	Schedule model.Schedule
}

type DoneArgs struct {
	Ref string
}

type FilterArgs struct {
	Status   string
	Category string
	Priority string
}

type CategoryArgs struct {
	Label string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Done     *DoneArgs
	Filter   *FilterArgs
	Category *CategoryArgs
}

const (
	dateLayout     = time.DateOnly
	dateTimeLayout = "2006-01-02T15:04"
)

// Parse reads one command. now anchors relative reminder times
// ("remind:+30m") and supplies the location for dates.
func Parse(input string, now time.Time) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args, now)
	case TypeDone, "complete":
		return parseDone(input, args)
	case TypeFilter, "show":
		return parseFilter(input, args)
	case TypeCategory, "cat":
		return parseCategory(input, args)
	case TypeStats:
		return Command{Type: TypeStats, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string, now time.Time) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		key, val, ok := splitOption(arg)
		if !ok {
			words = append(words, arg)
			continue
		}
		switch key {
		case "p", "prio", "priority":
			p, err := model.ParsePriority(val)
			if err != nil {
				return Command{}, invalidArg("priority must be high, medium or low: %s", val)
			}
			out.Priority = p
		case "c", "cat", "category":
			out.Category = strings.ToLower(val)
		case "start":
			d, err := time.ParseInLocation(dateLayout, val, now.Location())
			if err != nil {
				return Command{}, invalidArg("start must be YYYY-MM-DD: %s", val)
			}
			out.Schedule.StartDate = &d
		case "end":
			d, err := time.ParseInLocation(dateLayout, val, now.Location())
			if err != nil {
				return Command{}, invalidArg("end must be YYYY-MM-DD: %s", val)
			}
			out.Schedule.EndDate = &d
		case "from":
			if err := model.ValidateClockTime(val); err != nil {
				return Command{}, invalidArg("from must be HH:MM: %s", val)
			}
			out.Schedule.StartTime = val
		case "to":
			if err := model.ValidateClockTime(val); err != nil {
				return Command{}, invalidArg("to must be HH:MM: %s", val)
			}
			out.Schedule.EndTime = val
		case "remind":
			at, err := parseReminder(val, now)
			if err != nil {
				return Command{}, invalidArg("remind must be YYYY-MM-DDTHH:MM, HH:MM or +duration: %s", val)
			}
			out.Schedule.ReminderTime = &at
		default:
			words = append(words, arg)
		}
	}
	out.Text = strings.TrimSpace(strings.Join(words, " "))
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalidArg("done requires a task id")
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Ref: args[0]}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	out := FilterArgs{}
	for _, arg := range args {
		key, val, ok := splitOption(arg)
		if !ok {
			return Command{}, invalidArg("filter expects key:value pairs, got %s", arg)
		}
		val = strings.ToLower(val)
		switch key {
		case "status", "s":
			switch val {
			case "all", "ongoing", "finished":
				out.Status = val
			default:
				return Command{}, invalidArg("status must be all, ongoing or finished: %s", val)
			}
		case "cat", "c", "category":
			out.Category = val
		case "prio", "p", "priority":
			if val != "all" && !model.Priority(val).IsValid() {
				return Command{}, invalidArg("priority must be all, high, medium or low: %s", val)
			}
			out.Priority = val
		default:
			return Command{}, invalidArg("unknown filter: %s", key)
		}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &out}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	label := strings.TrimSpace(strings.Join(args, " "))
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Label: label}}, nil
}

func parseReminder(val string, now time.Time) (time.Time, error) {
	if strings.HasPrefix(val, "+") {
		d, err := time.ParseDuration(strings.TrimPrefix(val, "+"))
		if err != nil || d <= 0 {
			return time.Time{}, fmt.Errorf("bad duration %q", val)
		}
		return now.Add(d), nil
	}
	if at, err := time.ParseInLocation(dateTimeLayout, val, now.Location()); err == nil {
		return at, nil
	}
	clock, err := time.ParseInLocation("15:04", val, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}

func splitOption(arg string) (string, string, bool) {
	key, val, ok := strings.Cut(arg, ":")
	if !ok || key == "" || val == "" {
		return "", "", false
	}
	key = strings.ToLower(key)
	switch key {
	case "p", "prio", "priority", "c", "cat", "category", "start", "end", "from", "to", "remind", "status", "s":
		return key, val, true
	default:
		return "", "", false
	}
}

func invalidArg(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}
