package domain

// Game owns one board and the turn order played on it. It does no locking;
// callers must not invoke it from more than one goroutine at a time.
type Game struct {
	height        int
	width         int
	board         [][]PlayerID
	currentPlayer PlayerID
	status        GameStatus
	winner        PlayerID
	winningLine   []Position
	moveCount     int
}

// NewGame validates the dimensions and returns a game that still needs Reset
// before the first move.
func NewGame(height, width int) (*Game, error) {
	if err := ValidateDimensions(height, width); err != nil {
		return nil, err
	}

	return &Game{
		height:        height,
		width:         width,
		board:         NewBoard(height, width),
		currentPlayer: Player1,
		status:        StatusNotStarted,
	}, nil
}

// NewGameFromInput is NewGame for raw, unparsed dimensions.
func NewGameFromInput(height, width string) (*Game, error) {
	h, w, err := ParseDimensions(height, width)
	if err != nil {
		return nil, err
	}
	return NewGame(h, w)
}

// Reset starts a fresh round: empty board, player 1 to move.
func (g *Game) Reset() {
	g.board = NewBoard(g.height, g.width)
	g.currentPlayer = Player1
	g.status = StatusActive
	g.winner = Empty
	g.winningLine = nil
	g.moveCount = 0
}

func (g *Game) DropPiece(column int) (DropResult, error) {
	switch g.status {
	case StatusNotStarted:
		return DropResult{}, ErrNotStarted
	case StatusWon, StatusDraw:
		return DropResult{}, ErrGameAlreadyOver
	}

	if column < 0 || column >= g.width {
		return DropResult{}, ErrInvalidColumn
	}

	player := g.currentPlayer
	row, err := DropDisk(g.board, column, player)
	if err != nil {
		return DropResult{}, err
	}
	g.moveCount++

	result := DropResult{
		Position: Position{Row: row, Column: column},
		Player:   player,
	}

	if line := CheckWin(g.board, row, column, player); line != nil {
		g.status = StatusWon
		g.winner = player
		g.winningLine = line
		result.Outcome = OutcomeWin
		result.Line = line
		return result, nil
	}

	if IsBoardFull(g.board) {
		g.status = StatusDraw
		result.Outcome = OutcomeTie
		return result, nil
	}

	g.currentPlayer = player.Other()
	result.Outcome = OutcomeContinue
	return result, nil
}

func (g *Game) Height() int { return g.height }

func (g *Game) Width() int { return g.width }

// Cell returns the occupant of (row, column); out-of-range cells read as Empty.
func (g *Game) Cell(row, column int) PlayerID {
	if !InBounds(g.board, row, column) {
		return Empty
	}
	return g.board[row][column]
}

func (g *Game) Board() [][]PlayerID {
	return CopyBoard(g.board)
}

func (g *Game) ActivePlayer() PlayerID { return g.currentPlayer }

func (g *Game) Status() GameStatus { return g.status }

func (g *Game) Winner() PlayerID { return g.winner }

func (g *Game) MoveCount() int { return g.moveCount }

func (g *Game) IsOver() bool {
	return g.status == StatusWon || g.status == StatusDraw
}

// ValidMoves lists the columns that can still take a piece. Empty once the
// game is over.
func (g *Game) ValidMoves() []int {
	if g.status != StatusActive {
		return []int{}
	}
	return GetValidMoves(g.board)
}

func (g *Game) Snapshot() Snapshot {
	var line []Position
	if g.winningLine != nil {
		line = append([]Position(nil), g.winningLine...)
	}
	return Snapshot{
		Height:       g.height,
		Width:        g.width,
		Board:        CopyBoard(g.board),
		ActivePlayer: g.currentPlayer,
		Over:         g.IsOver(),
		Status:       g.status,
		Winner:       g.winner,
		WinningLine:  line,
		MoveCount:    g.moveCount,
	}
}
