package domain

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Random play on assorted board sizes: after every move the localized check
// must agree with a scan of the whole board.
func TestCheckWinMatchesFullScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sizes := [][2]int{{4, 4}, {6, 7}, {5, 9}, {8, 4}}

	for round := 0; round < 300; round++ {
		size := sizes[round%len(sizes)]
		board := NewBoard(size[0], size[1])
		player := Player1

		for {
			moves := GetValidMoves(board)
			if len(moves) == 0 {
				break
			}
			col := moves[rng.Intn(len(moves))]
			row, err := DropDisk(board, col, player)
			require.NoError(t, err)

			local := CheckWin(board, row, col, player)
			scan := ScanWin(board, player)
			require.Equal(t, scan != nil, local != nil, "round %d board %v", round, board)
			if local != nil {
				for _, p := range local {
					assert.Equal(t, player, board[p.Row][p.Column])
				}
				break
			}
			player = player.Other()
		}
	}
}

func TestCheckWinIgnoresOtherPlayer(t *testing.T) {
	board := NewBoard(6, 7)
	for c := 0; c < 4; c++ {
		board[5][c] = Player2
	}
	assert.Nil(t, CheckWin(board, 5, 0, Player1))
	assert.NotNil(t, CheckWin(board, 5, 0, Player2))
	assert.Nil(t, ScanWin(board, Player1))
}

func TestCheckWinFindsMiddlePlacement(t *testing.T) {
	board := NewBoard(6, 7)
	for _, c := range []int{1, 2, 4} {
		board[5][c] = Player1
	}
	board[5][3] = Player1

	line := CheckWin(board, 5, 3, Player1)
	assert.Equal(t, []Position{{5, 1}, {5, 2}, {5, 3}, {5, 4}}, line)
}

func TestDropDisk(t *testing.T) {
	board := NewBoard(4, 4)

	_, err := DropDisk(board, 4, Player1)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	for want := 3; want >= 0; want-- {
		row, err := DropDisk(board, 2, Player1)
		require.NoError(t, err)
		assert.Equal(t, want, row)
	}
	row, err := DropDisk(board, 2, Player1)
	assert.Equal(t, -1, row)
	assert.ErrorIs(t, err, ErrColumnFull)
	assert.False(t, IsValidMove(board, 2))
	assert.False(t, IsBoardFull(board))
}

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		name    string
		height  string
		width   string
		wantH   int
		wantW   int
		reasons []ViolationReason
	}{
		{name: "plain", height: "6", width: "7", wantH: 6, wantW: 7},
		{name: "whole float", height: "6.0", width: "4", wantH: 6, wantW: 4},
		{name: "non numeric", height: "tall", width: "7", reasons: []ViolationReason{ReasonNonNumeric}},
		{name: "empty", height: "", width: "", reasons: []ViolationReason{ReasonNonNumeric, ReasonNonNumeric}},
		{name: "fraction", height: "6", width: "6.5", reasons: []ViolationReason{ReasonNotInteger}},
		{name: "too small", height: "3", width: "0", reasons: []ViolationReason{ReasonTooSmall, ReasonTooSmall}},
		{name: "mixed", height: "abc", width: "1", reasons: []ViolationReason{ReasonNonNumeric, ReasonTooSmall}},
		{name: "nan", height: "NaN", width: "7", reasons: []ViolationReason{ReasonNonNumeric}},
		{name: "infinity", height: "7", width: "1e400", reasons: []ViolationReason{ReasonNonNumeric}},
		{name: "largest allowed", height: "100", width: "100.0", wantH: 100, wantW: 100},
		{name: "huge integers", height: "3000000000", width: "4000000000", reasons: []ViolationReason{ReasonTooLarge, ReasonTooLarge}},
		{name: "huge float", height: "3000000000.0", width: "4", reasons: []ViolationReason{ReasonTooLarge}},
		{name: "just over", height: "101", width: "7", reasons: []ViolationReason{ReasonTooLarge}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, w, err := ParseDimensions(tt.height, tt.width)
			if len(tt.reasons) == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.wantH, h)
				assert.Equal(t, tt.wantW, w)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]ViolationReason, len(verr.Violations))
			for i, v := range verr.Violations {
				got[i] = v.Reason
			}
			assert.Equal(t, tt.reasons, got)
			assert.Zero(t, h)
			assert.Zero(t, w)
		})
	}
}
