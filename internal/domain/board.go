package domain

// Boards are row-major: board[0] is the top row and board[len(board)-1] the
// bottom row, so pieces settle at the highest row index that is still empty.

func NewBoard(rows, columns int) [][]PlayerID {
	board := make([][]PlayerID, rows)
	for i := range board {
		board[i] = make([]PlayerID, columns)
	}
	return board
}

func boardSize(board [][]PlayerID) (int, int) {
	if len(board) == 0 {
		return 0, 0
	}
	return len(board), len(board[0])
}

func InBounds(board [][]PlayerID, row, column int) bool {
	rows, columns := boardSize(board)
	return row >= 0 && row < rows && column >= 0 && column < columns
}

func IsValidMove(board [][]PlayerID, column int) bool {
	_, columns := boardSize(board)
	if column < 0 || column >= columns {
		return false
	}

	// a column is open while its top cell is empty
	return board[0][column] == Empty
}

// LowestEmptyRow returns the row a piece dropped into column would land on,
// or -1 when the column is full.
func LowestEmptyRow(board [][]PlayerID, column int) int {
	for row := len(board) - 1; row >= 0; row-- {
		if board[row][column] == Empty {
			return row
		}
	}
	return -1
}

func DropDisk(board [][]PlayerID, column int, player PlayerID) (int, error) {
	_, columns := boardSize(board)
	if column < 0 || column >= columns {
		return -1, ErrInvalidColumn
	}

	row := LowestEmptyRow(board, column)
	if row < 0 {
		return -1, ErrColumnFull
	}
	board[row][column] = player
	return row, nil
}

func IsBoardFull(board [][]PlayerID) bool {
	if len(board) == 0 {
		return true
	}
	for _, cell := range board[0] {
		if cell == Empty {
			return false
		}
	}
	return true
}

// this creates a deep copy of the board
func CopyBoard(board [][]PlayerID) [][]PlayerID {
	newBoard := make([][]PlayerID, len(board))
	for i := range board {
		newBoard[i] = make([]PlayerID, len(board[i]))
		copy(newBoard[i], board[i])
	}
	return newBoard
}

func GetValidMoves(board [][]PlayerID) []int {
	_, columns := boardSize(board)
	validMoves := []int{}
	for col := 0; col < columns; col++ {
		if IsValidMove(board, col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// CountDiskInDirection counts player's pieces walking from (row, column)
// by (deltaRow, deltaCol), not including the starting cell.
func CountDiskInDirection(board [][]PlayerID, row, column int, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for InBounds(board, r, c) && board[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
