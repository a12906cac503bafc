package port

import (
	"context"

	"github.com/google/uuid"
)

// QuotaStatus is the result of a rate-limit check.
type QuotaStatus struct {
	Allowed           bool
	Remaining         int
	RetryAfterSeconds int
}

// RateLimiter abstracts the per-owner, per-day upload budget. The counter is
// only advanced via Increment; abandoned sessions never consume quota.
type RateLimiter interface {
	CheckLimit(ctx context.Context, ownerID uuid.UUID) (*QuotaStatus, error)
	Increment(ctx context.Context, ownerID uuid.UUID) error
}
