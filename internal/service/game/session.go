package game

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iamasit07/connect4/internal/domain"
)

// Notifier pushes messages to everyone watching a game.
type Notifier interface {
	Broadcast(gameID string, message domain.ServerMessage)
}

// GameSession is one hot-seat board. The engine has no locking of its own,
// so every call into it goes through mu. Broadcasts are queued on pending
// under mu and sent under sendMu only.
type GameSession struct {
	GameID       string
	Game         *domain.Game
	Palette      *Palette
	CreatedAt    time.Time
	FinishedAt   time.Time
	lastActivity atomic.Int64 // unix nanos
	mu           sync.Mutex
	sendMu       sync.Mutex
	pending      []domain.ServerMessage
	notifier     Notifier
	now          func() time.Time
}

// View is what adapters render: the board state plus the player colors.
type View struct {
	GameID string                     `json:"gameId"`
	State  domain.Snapshot            `json:"state"`
	Colors map[domain.PlayerID]string `json:"colors"`
}

func (gs *GameSession) View() View {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.viewLocked()
}

func (gs *GameSession) viewLocked() View {
	return View{
		GameID: gs.GameID,
		State:  gs.Game.Snapshot(),
		Colors: gs.Palette.Colors(),
	}
}

// HandleDrop plays a piece for whoever is to move and tells watchers about it.
func (gs *GameSession) HandleDrop(column int) (domain.DropResult, error) {
	gs.mu.Lock()
	gs.Touch()

	result, err := gs.Game.DropPiece(column)
	if err != nil {
		gs.mu.Unlock()
		return result, err
	}

	snapshot := gs.Game.Snapshot()
	messages := []domain.ServerMessage{{
		Type:   "move_made",
		GameID: gs.GameID,
		Move:   &result,
		State:  &snapshot,
	}}

	if result.Outcome != domain.OutcomeContinue {
		gs.FinishedAt = gs.now()
		message := "Tie!"
		if result.Outcome == domain.OutcomeWin {
			message = gs.Palette.Describe(result.Player) + " won!"
		}
		log.Printf("[GAME] Game %s over after %d moves: %s", gs.GameID, snapshot.MoveCount, message)

		messages = append(messages, domain.ServerMessage{
			Type:    "game_over",
			GameID:  gs.GameID,
			Message: message,
			Move:    &result,
			State:   &snapshot,
		})
	}

	gs.unlockAndBroadcast(messages...)
	return result, nil
}

// Restart clears the board and hands the first move back to player 1.
func (gs *GameSession) Restart() View {
	gs.mu.Lock()
	gs.Game.Reset()
	gs.FinishedAt = time.Time{}
	gs.Touch()

	view := gs.viewLocked()
	gs.unlockAndBroadcast(domain.ServerMessage{
		Type:   "state",
		GameID: gs.GameID,
		State:  &view.State,
		Colors: view.Colors,
	})
	return view
}

// Touch marks the board as in use so idle cleanup leaves it alone.
func (gs *GameSession) Touch() {
	gs.lastActivity.Store(gs.now().UnixNano())
}

func (gs *GameSession) LastActivity() time.Time {
	return time.Unix(0, gs.lastActivity.Load()).UTC()
}

// unlockAndBroadcast must be called with mu held. Messages join the queue in
// move order and whoever holds sendMu drains it, so a slow watcher never
// keeps mu locked.
func (gs *GameSession) unlockAndBroadcast(messages ...domain.ServerMessage) {
	if gs.notifier == nil {
		gs.mu.Unlock()
		return
	}
	gs.pending = append(gs.pending, messages...)
	gs.mu.Unlock()

	gs.sendMu.Lock()
	defer gs.sendMu.Unlock()
	for {
		gs.mu.Lock()
		batch := gs.pending
		gs.pending = nil
		gs.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, message := range batch {
			gs.notifier.Broadcast(gs.GameID, message)
		}
	}
}
