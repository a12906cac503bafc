package tasks

import (
	"context"
	"fmt"
	"log"

	"brickvault/internal/port"
)

// Runner applies dispatched tasks against the storage, cache, and search
// ports. It is transport-agnostic: the AMQP consumer feeds it in
// production, tests feed it directly.
type Runner struct {
	storage port.ObjectStorage
	cache   port.Cache
	search  port.SearchIndex
	bucket  string
}

// NewRunner creates a task Runner.
func NewRunner(storage port.ObjectStorage, cache port.Cache, search port.SearchIndex, bucket string) *Runner {
	return &Runner{storage: storage, cache: cache, search: search, bucket: bucket}
}

// Run executes one task. Errors are returned so the consumer can requeue.
func (r *Runner) Run(ctx context.Context, task port.Task) error {
	switch task.Kind {
	case port.TaskStorageCleanup:
		if len(task.StorageKeys) == 0 {
			return nil
		}
		log.Printf("taskRunner: deleting %d storage objects", len(task.StorageKeys))
		if err := r.storage.DeleteObjects(ctx, r.bucket, task.StorageKeys); err != nil {
			return fmt.Errorf("storage cleanup: %w", err)
		}
		return nil

	case port.TaskCacheInvalidate:
		if err := r.cache.Invalidate(ctx, task.CacheKeys...); err != nil {
			return fmt.Errorf("cache invalidate: %w", err)
		}
		return nil

	case port.TaskSearchDeindex:
		if err := r.search.RemoveMoc(ctx, task.MocID); err != nil {
			return fmt.Errorf("search deindex: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown task kind %q", task.Kind)
	}
}
