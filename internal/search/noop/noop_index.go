package noop

import (
	"context"
	"log"

	"github.com/google/uuid"

	"brickvault/internal/port"
)

type noopIndex struct{}

// NewSearchIndex returns a SearchIndex that logs removals instead of
// talking to a search backend. Used until an indexing service is deployed.
func NewSearchIndex() port.SearchIndex {
	return &noopIndex{}
}

func (n *noopIndex) RemoveMoc(_ context.Context, mocID uuid.UUID) error {
	log.Printf("noopSearchIndex: would remove moc %s from index", mocID)
	return nil
}
