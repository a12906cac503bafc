package noop

import (
	"context"
	"log"

	"brickvault/internal/port"
)

type dispatcher struct{}

// NewDispatcher returns a TaskDispatcher that logs tasks instead of
// publishing them. Used when no broker is configured.
func NewDispatcher() port.TaskDispatcher {
	return &dispatcher{}
}

func (d *dispatcher) Dispatch(_ context.Context, task port.Task) error {
	log.Printf("noopDispatcher: dropping task %s (storage_keys=%d cache_keys=%d)",
		task.Kind, len(task.StorageKeys), len(task.CacheKeys))
	return nil
}
