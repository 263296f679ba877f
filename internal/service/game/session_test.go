package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4/internal/domain"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []domain.ServerMessage
}

func (r *recordingNotifier) Broadcast(gameID string, message domain.ServerMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingNotifier) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	for i, m := range r.messages {
		out[i] = m.Type
	}
	return out
}

func (r *recordingNotifier) last() domain.ServerMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.messages[len(r.messages)-1]
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager() (*SessionManager, *recordingNotifier, *fakeClock) {
	notifier := &recordingNotifier{}
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	sm := NewSessionManager(notifier)
	sm.now = clock.Now
	return sm, notifier, clock
}

func TestCreateSessionStartsTheGame(t *testing.T) {
	sm, _, _ := newTestManager()

	session, err := sm.CreateSession(6, 7, "red", "yellow")
	require.NoError(t, err)

	view := session.View()
	assert.Equal(t, domain.StatusActive, view.State.Status)
	assert.Equal(t, domain.Player1, view.State.ActivePlayer)
	assert.Equal(t, "red", view.Colors[domain.Player1])
	assert.Equal(t, "yellow", view.Colors[domain.Player2])

	got, err := sm.GetSession(session.GameID)
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestCreateSessionValidation(t *testing.T) {
	sm, _, _ := newTestManager()

	_, err := sm.CreateSession(3, 3, "red", "blue")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 2)

	_, err = sm.CreateSession(6, 7, "red", "Red")
	assert.ErrorIs(t, err, ErrColorTaken)
	assert.Empty(t, sm.ListSessions())
}

func TestHandleDropBroadcastsMoves(t *testing.T) {
	sm, notifier, _ := newTestManager()
	session, err := sm.CreateSession(6, 7, "red", "yellow")
	require.NoError(t, err)

	res, err := session.HandleDrop(3)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeContinue, res.Outcome)

	msg := notifier.last()
	assert.Equal(t, "move_made", msg.Type)
	assert.Equal(t, session.GameID, msg.GameID)
	require.NotNil(t, msg.Move)
	assert.Equal(t, domain.Position{Row: 5, Column: 3}, msg.Move.Position)
	require.NotNil(t, msg.State)
	assert.Equal(t, domain.Player2, msg.State.ActivePlayer)
}

func TestHandleDropRejectionsAreNotBroadcast(t *testing.T) {
	sm, notifier, _ := newTestManager()
	session, err := sm.CreateSession(4, 4, "", "")
	require.NoError(t, err)

	_, err = session.HandleDrop(9)
	assert.ErrorIs(t, err, domain.ErrInvalidColumn)
	assert.Empty(t, notifier.types())
}

func TestHandleDropWinAnnouncesWinner(t *testing.T) {
	sm, notifier, clock := newTestManager()
	session, err := sm.CreateSession(6, 7, "black", "green")
	require.NoError(t, err)

	for _, col := range []int{0, 6, 1, 6, 2, 6} {
		_, err := session.HandleDrop(col)
		require.NoError(t, err)
	}
	clock.t = clock.t.Add(time.Minute)
	res, err := session.HandleDrop(3)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeWin, res.Outcome)

	types := notifier.types()
	assert.Equal(t, []string{"move_made", "game_over"}, types[len(types)-2:])
	over := notifier.last()
	assert.Equal(t, "Player 1 (black) won!", over.Message)
	assert.Equal(t, clock.t, session.FinishedAt)

	_, err = session.HandleDrop(4)
	assert.ErrorIs(t, err, domain.ErrGameAlreadyOver)
}

func TestRestart(t *testing.T) {
	sm, notifier, _ := newTestManager()
	session, err := sm.CreateSession(4, 4, "red", "blue")
	require.NoError(t, err)

	_, err = session.HandleDrop(0)
	require.NoError(t, err)

	view := session.Restart()
	assert.Equal(t, 0, view.State.MoveCount)
	assert.Equal(t, domain.Player1, view.State.ActivePlayer)
	assert.True(t, session.FinishedAt.IsZero())
	assert.Equal(t, "state", notifier.last().Type)
}

func TestConcurrentDropsAreSerialized(t *testing.T) {
	sm, _, _ := newTestManager()
	session, err := sm.CreateSession(20, 20, "", "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			_, _ = session.HandleDrop(col * 2)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, session.View().State.MoveCount)
}

func TestListAndRemoveSessions(t *testing.T) {
	sm, _, clock := newTestManager()

	first, err := sm.CreateSession(6, 7, "", "")
	require.NoError(t, err)
	clock.t = clock.t.Add(time.Second)
	second, err := sm.CreateSession(5, 5, "", "")
	require.NoError(t, err)

	list := sm.ListSessions()
	require.Len(t, list, 2)
	assert.Equal(t, first.GameID, list[0].GameID)
	assert.Equal(t, second.GameID, list[1].GameID)
	assert.Equal(t, 5, list[1].Width)

	require.NoError(t, sm.RemoveSession(first.GameID))
	assert.ErrorIs(t, sm.RemoveSession(first.GameID), ErrSessionNotFound)
	_, err = sm.GetSession(first.GameID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCleanupIdleSessions(t *testing.T) {
	sm, _, clock := newTestManager()

	idle, err := sm.CreateSession(6, 7, "", "")
	require.NoError(t, err)
	busy, err := sm.CreateSession(6, 7, "", "")
	require.NoError(t, err)
	watched, err := sm.CreateSession(6, 7, "", "")
	require.NoError(t, err)

	clock.t = clock.t.Add(50 * time.Minute)
	_, err = busy.HandleDrop(0)
	require.NoError(t, err)
	watched.Touch()

	clock.t = clock.t.Add(20 * time.Minute)
	removed := sm.CleanupIdleSessions(time.Hour)

	assert.Equal(t, []string{idle.GameID}, removed)
	_, err = sm.GetSession(idle.GameID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = sm.GetSession(busy.GameID)
	assert.NoError(t, err)
	_, err = sm.GetSession(watched.GameID)
	assert.NoError(t, err)

	assert.Empty(t, sm.CleanupIdleSessions(time.Hour))
}

// blockingNotifier parks every Broadcast until release is closed.
type blockingNotifier struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingNotifier) Broadcast(gameID string, message domain.ServerMessage) {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	<-b.release
}

func TestSlowWatcherDoesNotBlockTheBoard(t *testing.T) {
	notifier := &blockingNotifier{entered: make(chan struct{}, 1), release: make(chan struct{})}
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	sm := NewSessionManager(notifier)
	sm.now = clock.Now

	session, err := sm.CreateSession(6, 7, "", "")
	require.NoError(t, err)

	dropped := make(chan error, 1)
	go func() {
		_, err := session.HandleDrop(3)
		dropped <- err
	}()

	select {
	case <-notifier.entered:
	case <-time.After(time.Second):
		t.Fatal("broadcast never started")
	}

	// the broadcast is stuck; readers and cleanup must still get through
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.Equal(t, 1, session.View().State.MoveCount)
		assert.Len(t, sm.ListSessions(), 1)
		assert.Empty(t, sm.CleanupIdleSessions(time.Hour))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("board stayed locked during broadcast")
	}

	// a second drop queues behind the stuck broadcast without holding the board
	second := make(chan error, 1)
	go func() {
		_, err := session.HandleDrop(4)
		second <- err
	}()
	require.Eventually(t, func() bool {
		return session.View().State.MoveCount == 2
	}, time.Second, time.Millisecond)

	close(notifier.release)
	require.NoError(t, <-dropped)
	require.NoError(t, <-second)
}

func TestBroadcastsKeepMoveOrder(t *testing.T) {
	sm, notifier, _ := newTestManager()
	session, err := sm.CreateSession(10, 10, "", "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	// one column, so colors alternate vertically and nobody wins
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = session.HandleDrop(0)
		}()
	}
	wg.Wait()

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.messages, 10)
	for i, m := range notifier.messages {
		assert.Equal(t, i+1, m.State.MoveCount)
	}
}
