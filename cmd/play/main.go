package main

import (
	"flag"
	"log"
	"os"

	"github.com/iamasit07/connect4/internal/cli"
	"github.com/iamasit07/connect4/internal/config"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	height := flag.String("height", cfg.BoardHeight, "board height, 4 or more")
	width := flag.String("width", cfg.BoardWidth, "board width, 4 or more")
	p1Color := flag.String("p1", cfg.Player1Color, "player 1 color")
	p2Color := flag.String("p2", cfg.Player2Color, "player 2 color")
	flag.Parse()

	g, err := domain.NewGameFromInput(*height, *width)
	if err != nil {
		log.Fatalf("Cannot build board: %v", err)
	}
	palette, err := game.NewPalette(*p1Color, *p2Color)
	if err != nil {
		log.Fatalf("Cannot assign colors: %v", err)
	}

	if err := cli.NewPlayer(os.Stdin, os.Stdout, g, palette).Run(); err != nil {
		log.Fatal(err)
	}
}
