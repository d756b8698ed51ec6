// Package config loads sit-and-go tournament configuration from HCL.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// TournamentConfig is the complete configuration for a sit-and-go.
type TournamentConfig struct {
	Game   *GameSettings `hcl:"game,block"`
	Levels []BlindLevel  `hcl:"level,block"`
}

// GameSettings contains table-level configuration.
type GameSettings struct {
	StartingChips  int    `hcl:"starting_chips,optional"`
	MaxPlayers     int    `hcl:"max_players,optional"`
	HandsPerLevel  int    `hcl:"hands_per_level,optional"`
	TimeoutSeconds int    `hcl:"decision_timeout_seconds,optional"`
	LogLevel       string `hcl:"log_level,optional"`
}

// BlindLevel defines one step of the blind schedule, applied in order.
type BlindLevel struct {
	SmallBlind int `hcl:"small_blind"`
	BigBlind   int `hcl:"big_blind"`
}

// Default returns the default tournament configuration.
func Default() *TournamentConfig {
	return &TournamentConfig{
		Game: &GameSettings{
			StartingChips:  1500,
			MaxPlayers:     6,
			HandsPerLevel:  10,
			TimeoutSeconds: 30,
			LogLevel:       "info",
		},
		Levels: []BlindLevel{
			{SmallBlind: 10, BigBlind: 20},
			{SmallBlind: 15, BigBlind: 30},
			{SmallBlind: 25, BigBlind: 50},
			{SmallBlind: 50, BigBlind: 100},
			{SmallBlind: 75, BigBlind: 150},
			{SmallBlind: 100, BigBlind: 200},
		},
	}
}

// Load reads and validates a tournament configuration file.
func Load(path string) (*TournamentConfig, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source into a configuration, filling defaults for any
// setting left unset.
func Parse(src []byte, filename string) (*TournamentConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing config: %s", diags.Error())
	}

	config := &TournamentConfig{}
	diags = gohcl.DecodeBody(file.Body, nil, config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyDefaults(config *TournamentConfig) {
	defaults := Default()
	if config.Game == nil {
		config.Game = &GameSettings{}
	}
	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = defaults.Game.StartingChips
	}
	if config.Game.MaxPlayers == 0 {
		config.Game.MaxPlayers = defaults.Game.MaxPlayers
	}
	if config.Game.HandsPerLevel == 0 {
		config.Game.HandsPerLevel = defaults.Game.HandsPerLevel
	}
	if config.Game.TimeoutSeconds == 0 {
		config.Game.TimeoutSeconds = defaults.Game.TimeoutSeconds
	}
	if config.Game.LogLevel == "" {
		config.Game.LogLevel = defaults.Game.LogLevel
	}
	if len(config.Levels) == 0 {
		config.Levels = defaults.Levels
	}
}

// Validate checks the configuration for inconsistencies.
func (c *TournamentConfig) Validate() error {
	if c.Game.MaxPlayers < 2 || c.Game.MaxPlayers > 6 {
		return fmt.Errorf("max_players must be 2-6, got %d", c.Game.MaxPlayers)
	}
	if c.Game.StartingChips <= 0 {
		return fmt.Errorf("starting_chips must be positive, got %d", c.Game.StartingChips)
	}
	if c.Game.HandsPerLevel <= 0 {
		return fmt.Errorf("hands_per_level must be positive, got %d", c.Game.HandsPerLevel)
	}
	for i, level := range c.Levels {
		if level.SmallBlind <= 0 || level.BigBlind <= 0 {
			return fmt.Errorf("level %d: blinds must be positive", i+1)
		}
		if level.BigBlind < level.SmallBlind {
			return fmt.Errorf("level %d: big blind %d below small blind %d", i+1, level.BigBlind, level.SmallBlind)
		}
		if i > 0 && level.BigBlind < c.Levels[i-1].BigBlind {
			return fmt.Errorf("level %d: blinds must not decrease", i+1)
		}
	}
	return nil
}

// LevelFor returns the blind level in effect after handsPlayed hands.
func (c *TournamentConfig) LevelFor(handsPlayed int) BlindLevel {
	idx := handsPlayed / c.Game.HandsPerLevel
	if idx >= len(c.Levels) {
		idx = len(c.Levels) - 1
	}
	return c.Levels[idx]
}
