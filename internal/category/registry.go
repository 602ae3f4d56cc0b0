package category

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrBlankLabel        = errors.New("category: label is blank")
	ErrDuplicateCategory = errors.New("category: duplicate category")
	ErrInvalidCategory   = errors.New("category: unknown category")
	ErrReservedLabel     = errors.New("category: label is reserved")
)

const DefaultCategory = "personal"

// Wildcard is the filter value meaning "every category"; it can never be
// a label.
const Wildcard = "all"

// Defaults seed every new registry and cannot be removed.
var Defaults = []string{"work", "personal", "shopping", "other"}

// Registry is an ordered set of lower-cased category labels. It only grows.
// Registry is not safe for concurrent use; the task store serializes access.
type Registry struct {
	labels []string
}

func NewRegistry() *Registry {
	return &Registry{labels: slices.Clone(Defaults)}
}

// Restore rebuilds a registry from persisted labels. Defaults are always
// present; blank, reserved or duplicate entries are dropped.
func Restore(labels []string) *Registry {
	r := NewRegistry()
	for _, l := range labels {
		_, _ = r.Add(l)
	}
	return r
}

// Normalize lower-cases label and folds inner whitespace runs to "-" so a
// label is always a single command word.
func Normalize(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "-")
}

func (r *Registry) Add(label string) (string, error) {
	norm := Normalize(label)
	if norm == "" {
		return "", ErrBlankLabel
	}
	if norm == Wildcard {
		return "", fmt.Errorf("%w: %q", ErrReservedLabel, norm)
	}
	if r.Contains(norm) {
		return "", fmt.Errorf("%w: %q", ErrDuplicateCategory, norm)
	}
	r.labels = append(r.labels, norm)
	return norm, nil
}

func (r *Registry) Contains(label string) bool {
	return slices.Contains(r.labels, Normalize(label))
}

// Validate returns the normalized label or ErrInvalidCategory.
func (r *Registry) Validate(label string) (string, error) {
	norm := Normalize(label)
	if !slices.Contains(r.labels, norm) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, label)
	}
	return norm, nil
}

func (r *Registry) Labels() []string {
	return slices.Clone(r.labels)
}

func (r *Registry) Len() int { return len(r.labels) }
