package port

import (
	"context"

	"github.com/google/uuid"
)

// SearchIndex abstracts search-index document removal for deleted MOCs.
type SearchIndex interface {
	RemoveMoc(ctx context.Context, mocID uuid.UUID) error
}
