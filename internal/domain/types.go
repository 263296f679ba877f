package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Other returns the opponent of p. Empty has no opponent.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

const (
	// smallest board on which four-in-a-row can exist in every direction
	MinDimension = 4
	ToWin        = 4

	// largest dimension accepted from raw adapter input
	MaxParsedDimension = 100

	DefaultRows    = 6
	DefaultColumns = 7
)

// to represent the game status
type GameStatus string

const (
	StatusNotStarted GameStatus = "not_started"
	StatusActive     GameStatus = "active"
	StatusWon        GameStatus = "won"
	StatusDraw       GameStatus = "draw"
)

// Outcome is what happened after a piece landed
type Outcome string

const (
	OutcomeContinue Outcome = "continue"
	OutcomeWin      Outcome = "win"
	OutcomeTie      Outcome = "tie"
)

type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// DropResult describes an accepted move.
type DropResult struct {
	Position Position   `json:"position"`
	Player   PlayerID   `json:"player"`
	Outcome  Outcome    `json:"outcome"`
	Line     []Position `json:"line,omitempty"` // winning four, only set on OutcomeWin
}

// Snapshot is a read-only copy of a game for adapters to render.
type Snapshot struct {
	Height       int          `json:"height"`
	Width        int          `json:"width"`
	Board        [][]PlayerID `json:"board"`
	ActivePlayer PlayerID     `json:"activePlayer"`
	Over         bool         `json:"over"`
	Status       GameStatus   `json:"status"`
	Winner       PlayerID     `json:"winner,omitempty"`
	WinningLine  []Position   `json:"winningLine,omitempty"`
	MoveCount    int          `json:"moveCount"`
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn   Error = "invalid column"
	ErrColumnFull      Error = "column is full"
	ErrGameAlreadyOver Error = "game is already over"
	ErrNotStarted      Error = "game has not been started"
)
