package tasks

import (
	"strings"

	"github.com/sandeepkv93/questd/internal/category"
	"github.com/sandeepkv93/questd/internal/model"
)

type Status string

const (
	StatusAll      Status = "all"
	StatusOngoing  Status = "ongoing"
	StatusFinished Status = "finished"
)

// All matches every category or priority in a Filter.
const All = category.Wildcard

// Filter combines status, category and priority with AND. Empty fields
// mean "all".
type Filter struct {
	Status   Status
	Category string
	Priority string
}

func (s Status) IsValid() bool {
	switch s {
	case "", StatusAll, StatusOngoing, StatusFinished:
		return true
	default:
		return false
	}
}

func (f Filter) Matches(t model.Task) bool {
	switch f.Status {
	case StatusOngoing:
		if t.Completed {
			return false
		}
	case StatusFinished:
		if !t.Completed {
			return false
		}
	}
	if c := category.Normalize(f.Category); c != "" && c != All && c != t.Category {
		return false
	}
	if p := strings.ToLower(strings.TrimSpace(f.Priority)); p != "" && p != All && model.Priority(p) != t.Priority {
		return false
	}
	return true
}

// Counts are derived from the live collection on demand.
type Counts struct {
	All        int
	Ongoing    int
	Finished   int
	ByCategory map[string]int
}
