package cleanup

import (
	"context"
	"log"
	"time"
)

// IdleSessionStore is the part of the session manager the worker needs.
type IdleSessionStore interface {
	CleanupIdleSessions(ttl time.Duration) []string
}

// GameCloser disconnects whoever is still watching an evicted board.
type GameCloser interface {
	CloseGame(gameID, reason string)
}

type Worker struct {
	Sessions IdleSessionStore
	Closer   GameCloser
	Interval time.Duration
	IdleTTL  time.Duration
}

func NewWorker(sessions IdleSessionStore, closer GameCloser, interval, idleTTL time.Duration) *Worker {
	return &Worker{Sessions: sessions, Closer: closer, Interval: interval, IdleTTL: idleTTL}
}

// Start runs a cleanup right away and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	removed := w.Sessions.CleanupIdleSessions(w.IdleTTL)
	if len(removed) == 0 {
		return
	}
	log.Printf("[CLEANUP] Removed %d idle boards", len(removed))

	if w.Closer == nil {
		return
	}
	for _, gameID := range removed {
		w.Closer.CloseGame(gameID, "idle timeout")
	}
}
