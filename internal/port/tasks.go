package port

import (
	"context"

	"github.com/google/uuid"
)

// TaskKind identifies an outbound async task.
type TaskKind string

const (
	TaskStorageCleanup  TaskKind = "storage_cleanup"
	TaskCacheInvalidate TaskKind = "cache_invalidate"
	TaskSearchDeindex   TaskKind = "search_deindex"
)

// Task is a fire-and-forget unit of work dispatched off the request path.
// Storage cleanup is at-least-once and idempotent by key.
type Task struct {
	Kind        TaskKind  `json:"kind"`
	StorageKeys []string  `json:"storage_keys,omitempty"`
	CacheKeys   []string  `json:"cache_keys,omitempty"`
	MocID       uuid.UUID `json:"moc_id,omitempty"`
}

// TaskDispatcher publishes tasks to the outbound queue. Dispatch failures
// are the caller's to log; they must never fail the primary operation.
type TaskDispatcher interface {
	Dispatch(ctx context.Context, task Task) error
}
