package render

import (
	"fmt"
	"strings"

	"github.com/iamasit07/connect4/internal/domain"
)

// Symbols are the characters drawn for each cell state.
type Symbols map[domain.PlayerID]string

var DefaultSymbols = Symbols{
	domain.Empty:   ".",
	domain.Player1: "X",
	domain.Player2: "O",
}

// Text draws the board with 1-based column numbers on top, one line per row,
// and a status line underneath. Cells on the winning line are wrapped in
// brackets. describe is passed through to Status.
func Text(s domain.Snapshot, symbols Symbols, describe func(domain.PlayerID) string) string {
	if symbols == nil {
		symbols = DefaultSymbols
	}

	winning := make(map[domain.Position]bool, len(s.WinningLine))
	for _, p := range s.WinningLine {
		winning[p] = true
	}

	var b strings.Builder
	for c := 0; c < s.Width; c++ {
		fmt.Fprintf(&b, "%3d", c+1)
	}
	b.WriteString("\n")

	for r := 0; r < s.Height; r++ {
		for c := 0; c < s.Width; c++ {
			sym := symbols[s.Board[r][c]]
			if winning[domain.Position{Row: r, Column: c}] {
				fmt.Fprintf(&b, "[%s]", sym)
			} else {
				fmt.Fprintf(&b, " %s ", sym)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(Status(s, describe))
	b.WriteString("\n")
	return b.String()
}

// Status is a one-line summary of whose turn it is or how the game ended.
// describe names a player; nil falls back to "Player N".
func Status(s domain.Snapshot, describe func(domain.PlayerID) string) string {
	if describe == nil {
		describe = func(p domain.PlayerID) string { return fmt.Sprintf("Player %d", p) }
	}

	switch s.Status {
	case domain.StatusNotStarted:
		return "Press start to play"
	case domain.StatusWon:
		return describe(s.Winner) + " won!"
	case domain.StatusDraw:
		return "Tie!"
	}
	return describe(s.ActivePlayer) + " to move"
}
