package game

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/pkg/uid"
)

var ErrSessionNotFound = errors.New("game not found")

// SessionManager keeps every live board in memory, keyed by game id.
type SessionManager struct {
	Session  map[string]*GameSession // gameID → GameSession
	mu       sync.RWMutex
	notifier Notifier
	now      func() time.Time
}

func NewSessionManager(notifier Notifier) *SessionManager {
	return &SessionManager{
		Session:  make(map[string]*GameSession),
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateSession builds a board of the given size and starts it, so the first
// drop can follow immediately.
func (sm *SessionManager) CreateSession(height, width int, player1Color, player2Color string) (*GameSession, error) {
	g, err := domain.NewGame(height, width)
	if err != nil {
		return nil, err
	}
	palette, err := NewPalette(player1Color, player2Color)
	if err != nil {
		return nil, err
	}
	g.Reset()

	session := &GameSession{
		GameID:    uid.GenerateGameID(),
		Game:      g,
		Palette:   palette,
		CreatedAt: sm.now(),
		notifier:  sm.notifier,
		now:       sm.now,
	}
	session.Touch()

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s (%dx%d)", session.GameID, height, width)
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return ErrSessionNotFound
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.Session, gameID)
	return nil
}

type Summary struct {
	GameID    string            `json:"gameId"`
	Height    int               `json:"height"`
	Width     int               `json:"width"`
	Status    domain.GameStatus `json:"status"`
	MoveCount int               `json:"moveCount"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ListSessions returns every live board, oldest first.
func (sm *SessionManager) ListSessions() []Summary {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, s := range sm.Session {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	summaries := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		summaries = append(summaries, Summary{
			GameID:    s.GameID,
			Height:    s.Game.Height(),
			Width:     s.Game.Width(),
			Status:    s.Game.Status(),
			MoveCount: s.Game.MoveCount(),
			CreatedAt: s.CreatedAt,
		})
		s.mu.Unlock()
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].GameID < summaries[j].GameID
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries
}

// CleanupIdleSessions drops boards nobody has touched for longer than ttl and
// returns their ids, sorted, so the caller can disconnect their watchers.
func (sm *SessionManager) CleanupIdleSessions(ttl time.Duration) []string {
	now := sm.now()
	isIdle := func(s *GameSession) bool {
		return now.Sub(s.LastActivity()) > ttl
	}

	sm.mu.RLock()
	var candidates []*GameSession
	for _, session := range sm.Session {
		if isIdle(session) {
			candidates = append(candidates, session)
		}
	}
	sm.mu.RUnlock()

	if len(candidates) == 0 {
		return nil
	}

	sm.mu.Lock()
	removed := make([]string, 0, len(candidates))
	for _, session := range candidates {
		// the board may have been replaced, removed or used since the scan
		if sm.Session[session.GameID] != session || !isIdle(session) {
			continue
		}
		delete(sm.Session, session.GameID)
		removed = append(removed, session.GameID)
	}
	sm.mu.Unlock()

	if len(removed) > 0 {
		sort.Strings(removed)
		log.Printf("[SESSION] Memory cleanup: Removed %d idle game sessions", len(removed))
	}
	return removed
}
