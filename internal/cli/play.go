// Package cli is the terminal hot-seat front end: two people share one
// keyboard and take turns typing column numbers.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/render"
	"github.com/iamasit07/connect4/internal/service/game"
)

type Player struct {
	in      *bufio.Scanner
	out     io.Writer
	game    *domain.Game
	palette *game.Palette
	symbols render.Symbols
}

func NewPlayer(in io.Reader, out io.Writer, g *domain.Game, palette *game.Palette) *Player {
	return &Player{
		in:      bufio.NewScanner(in),
		out:     out,
		game:    g,
		palette: palette,
		symbols: render.DefaultSymbols,
	}
}

// Run plays rounds until input ends or someone types "q". After each round
// the players are asked whether to go again.
func (p *Player) Run() error {
	for {
		p.game.Reset()
		quit, err := p.playRound()
		if err != nil || quit {
			return err
		}

		fmt.Fprint(p.out, "Play again? [y/N] ")
		answer, ok := p.readLine()
		if !ok || !strings.EqualFold(answer, "y") {
			return nil
		}
	}
}

func (p *Player) playRound() (bool, error) {
	for {
		p.draw()

		player := p.game.ActivePlayer()
		fmt.Fprintf(p.out, "%s [%s], column 1-%d (q to quit): ",
			p.palette.Describe(player), p.symbols[player], p.game.Width())

		line, ok := p.readLine()
		if !ok || strings.EqualFold(line, "q") {
			return true, nil
		}

		column, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(p.out, "'%s' is not a column number\n", line)
			continue
		}

		result, err := p.game.DropPiece(column - 1)
		switch {
		case errors.Is(err, domain.ErrInvalidColumn):
			fmt.Fprintf(p.out, "Pick a column between 1 and %d\n", p.game.Width())
			continue
		case errors.Is(err, domain.ErrColumnFull):
			fmt.Fprintln(p.out, "That column is full")
			continue
		case err != nil:
			return false, fmt.Errorf("drop piece: %w", err)
		}

		if result.Outcome != domain.OutcomeContinue {
			p.draw()
			return false, nil
		}
	}
}

func (p *Player) draw() {
	fmt.Fprint(p.out, render.Text(p.game.Snapshot(), p.symbols, p.palette.Describe))
}

func (p *Player) readLine() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}
