package service

import (
	"context"
	"log"
	"time"

	"brickvault/internal/port"
)

// SessionSweeper periodically transitions pending upload sessions past
// their deadline to expired. Sessions themselves are never deleted.
type SessionSweeper struct {
	sessionRepo port.UploadSessionRepository
	interval    time.Duration
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(sessionRepo port.UploadSessionRepository, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{sessionRepo: sessionRepo, interval: interval}
}

// Start runs the sweep loop until ctx is canceled.
func (w *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("sessionSweeper: started (interval=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("sessionSweeper: shutdown")
			return
		case <-ticker.C:
			n, err := w.sessionRepo.ExpireStale(ctx, time.Now().UTC())
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("sessionSweeper: sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("sessionSweeper: expired %d stale sessions", n)
			}
		}
	}
}
