package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Record keys of the durable layout.
const (
	KeyTasks      = "tasks"
	KeyStats      = "stats"
	KeyCategories = "categories"
)

// RecordStore is a durable key-value store holding one logical record per
// key. Get returns ErrNotFound for keys that were never written.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
