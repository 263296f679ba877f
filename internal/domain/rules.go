package domain

// the four ways to line up pieces, as (deltaRow, deltaCol) steps
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

// CheckWin only looks at lines passing through (row, column), which is enough
// right after a piece lands there: any new four-in-a-row must include it.
// It returns the winning four cells, or nil.
func CheckWin(board [][]PlayerID, row, column int, player PlayerID) []Position {
	if !InBounds(board, row, column) || board[row][column] != player {
		return nil
	}

	for _, d := range directions {
		back := CountDiskInDirection(board, row, column, -d[0], -d[1], player)
		forward := CountDiskInDirection(board, row, column, d[0], d[1], player)
		if back+forward+1 < ToWin {
			continue
		}

		startRow, startCol := row-back*d[0], column-back*d[1]
		return lineFrom(startRow, startCol, d)
	}

	return nil
}

// ScanWin looks at every cell as the start of a line in each direction.
// Slower than CheckWin but needs no knowledge of the last move.
func ScanWin(board [][]PlayerID, player PlayerID) []Position {
	rows, columns := boardSize(board)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			for _, d := range directions {
				line := lineFrom(r, c, d)
				if lineOwnedBy(board, line, player) {
					return line
				}
			}
		}
	}
	return nil
}

func lineFrom(row, column int, d [2]int) []Position {
	line := make([]Position, ToWin)
	for i := range line {
		line[i] = Position{Row: row + i*d[0], Column: column + i*d[1]}
	}
	return line
}

func lineOwnedBy(board [][]PlayerID, line []Position, player PlayerID) bool {
	for _, p := range line {
		if !InBounds(board, p.Row, p.Column) || board[p.Row][p.Column] != player {
			return false
		}
	}
	return true
}
