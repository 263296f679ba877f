package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iamasit07/connect4/internal/domain"
)

var (
	ErrColorTaken    = errors.New("color already taken by the other player")
	ErrUnknownPlayer = errors.New("unknown player")
)

// Palette maps player ids to display colors. The engine never sees colors;
// only adapters do.
type Palette struct {
	colors map[domain.PlayerID]string
}

func NewPalette(player1Color, player2Color string) (*Palette, error) {
	p := &Palette{colors: make(map[domain.PlayerID]string, 2)}
	if err := p.SetColor(domain.Player1, player1Color); err != nil {
		return nil, err
	}
	if err := p.SetColor(domain.Player2, player2Color); err != nil {
		return nil, err
	}
	return p, nil
}

// SetColor assigns a color to a player. An empty color leaves the current
// one in place; a color the opponent already has is refused.
func (p *Palette) SetColor(player domain.PlayerID, color string) error {
	if !player.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, player)
	}

	color = strings.TrimSpace(color)
	if color == "" {
		return nil
	}
	if strings.EqualFold(p.colors[player.Other()], color) {
		return fmt.Errorf("%w: %s", ErrColorTaken, color)
	}

	p.colors[player] = color
	return nil
}

func (p *Palette) Color(player domain.PlayerID) string {
	return p.colors[player]
}

func (p *Palette) Colors() map[domain.PlayerID]string {
	out := make(map[domain.PlayerID]string, len(p.colors))
	for k, v := range p.colors {
		out[k] = v
	}
	return out
}

// Describe names a player for end-of-game messages, e.g. "Player 1 (red)".
func (p *Palette) Describe(player domain.PlayerID) string {
	if color := p.colors[player]; color != "" {
		return fmt.Sprintf("Player %d (%s)", player, color)
	}
	return fmt.Sprintf("Player %d", player)
}
