// Package config reads the simulator settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/minaorangina/taboo/deck"
	"github.com/minaorangina/taboo/random"
)

var (
	ErrInvalidTurnLength = errors.New("turn length must be positive")
	ErrInvalidTickRate   = errors.New("tick rate must be positive")
)

type Config struct {
	Addr       string        `env:"TABOO_ADDR,default=:8000"`
	WordsPath  string        `env:"TABOO_WORDS"`
	TurnLength time.Duration `env:"TABOO_TURN_LENGTH,default=60s"`
	TickRate   time.Duration `env:"TABOO_TICK_RATE,default=33ms"`
	Seed       int64         `env:"TABOO_SEED,default=0"`
}

// Load decodes the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TurnLength <= 0 {
		return ErrInvalidTurnLength
	}
	if c.TickRate <= 0 {
		return ErrInvalidTickRate
	}
	return nil
}

// Pool loads the configured dataset, or the bundled one if none is set
func (c *Config) Pool(logger *log.Logger) (*deck.Pool, error) {
	if c.WordsPath == "" {
		return deck.DefaultPool(logger)
	}

	f, err := os.Open(c.WordsPath)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	pool, err := deck.LoadPool(f, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.WordsPath, err)
	}
	return pool, nil
}

// Rand returns the shuffler for a new game. With a fixed seed every game
// deals the same order.
func (c *Config) Rand() deck.Shuffler {
	return random.New(c.Seed)
}
