package port

import "context"

// Cache abstracts read-cache invalidation. This service never writes cache
// entries; it only evicts them after mutations.
type Cache interface {
	Invalidate(ctx context.Context, keys ...string) error
}
