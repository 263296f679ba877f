package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	ExtraOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	BoardHeight     string        `env:"BOARD_HEIGHT" envDefault:"6"`
	BoardWidth      string        `env:"BOARD_WIDTH" envDefault:"7"`
	Player1Color    string        `env:"PLAYER1_COLOR" envDefault:"red"`
	Player2Color    string        `env:"PLAYER2_COLOR" envDefault:"yellow"`
	SessionIdleTTL  time.Duration `env:"SESSION_IDLE_TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"./static"`

	// AllowedOrigins is FrontendURL plus every ALLOWED_ORIGINS entry.
	AllowedOrigins []string
}

// LoadDotEnv reads .env from the working directory or its parent, if present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("[CONFIG] No .env file found, using environment variables")
		}
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.CleanupInterval <= 0 {
		return nil, fmt.Errorf("CLEANUP_INTERVAL must be positive, got %s", cfg.CleanupInterval)
	}

	cfg.AllowedOrigins = []string{cfg.FrontendURL}
	for _, origin := range cfg.ExtraOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" && trimmed != cfg.FrontendURL {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg, nil
}
