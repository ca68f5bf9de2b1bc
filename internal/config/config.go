// Package config loads auction war session files written in HCL.
//
// A session file names the players and how many games they play:
//
//	session {
//	  games     = 5000
//	  seed      = 42
//	  workers   = 4
//	  log_level = "warn"
//	}
//
//	player "Adam" {
//	  strategy = "high"
//	}
//
//	player "Bob" {
//	  strategy = "pass"
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/auctionwar/internal/bot"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultGames            = 1000
	DefaultWorkers          = 1
	DefaultLogLevel         = "info"
	DefaultProgressInterval = 5 * time.Second
)

// Config represents a complete session file
type Config struct {
	Session SessionSettings `hcl:"session,block"`
	Players []PlayerConfig  `hcl:"player,block"`
}

// SessionSettings contains session-level configuration
type SessionSettings struct {
	Games            int    `hcl:"games,optional"`
	Seed             int64  `hcl:"seed,optional"`
	Workers          int    `hcl:"workers,optional"`
	LogLevel         string `hcl:"log_level,optional"`
	ProgressInterval string `hcl:"progress_interval,optional"`
}

// PlayerConfig seats one player
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
}

// fileConfig mirrors Config with an optional session block
type fileConfig struct {
	Session *SessionSettings `hcl:"session,block"`
	Players []PlayerConfig   `hcl:"player,block"`
}

// Default returns the classic two-player match: a bot that plays its
// highest card against one that always passes
func Default() *Config {
	return &Config{
		Session: SessionSettings{
			Games:            DefaultGames,
			Workers:          DefaultWorkers,
			LogLevel:         DefaultLogLevel,
			ProgressInterval: DefaultProgressInterval.String(),
		},
		Players: []PlayerConfig{
			{Name: "Adam", Strategy: bot.StrategyHigh},
			{Name: "Bob", Strategy: bot.StrategyPass},
		},
	}
}

// Load reads a session file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes a session file held in memory
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var raw fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := &Config{Players: raw.Players}
	if raw.Session != nil {
		config.Session = *raw.Session
	}
	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Session.Games == 0 {
		c.Session.Games = DefaultGames
	}
	if c.Session.Workers == 0 {
		c.Session.Workers = DefaultWorkers
	}
	if c.Session.LogLevel == "" {
		c.Session.LogLevel = DefaultLogLevel
	}
	if c.Session.ProgressInterval == "" {
		c.Session.ProgressInterval = DefaultProgressInterval.String()
	}
	if len(c.Players) == 0 {
		c.Players = Default().Players
	}
}

// Validate checks the configuration can seat a playable session
func (c *Config) Validate() error {
	if c.Session.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Session.Games)
	}
	if c.Session.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Session.Workers)
	}
	if _, err := c.Progress(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("%w: at least two players are required, got %d", ErrInvalidConfig, len(c.Players))
	}

	seen := make(map[string]bool, len(c.Players))
	humans := 0
	for _, p := range c.Players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: player name must not be empty", ErrInvalidConfig)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate player name %q", ErrInvalidConfig, p.Name)
		}
		seen[p.Name] = true

		if p.Strategy == bot.StrategyHuman {
			humans++
			continue
		}
		if !bot.IsKnown(p.Strategy) {
			return fmt.Errorf("%w: player %s: unknown strategy %q (valid: %s)",
				ErrInvalidConfig, p.Name, p.Strategy, strings.Join(bot.Names(), ", "))
		}
	}
	if humans > 1 {
		return fmt.Errorf("%w: only one human player is supported, got %d", ErrInvalidConfig, humans)
	}
	return nil
}

// Progress returns the parsed progress interval
func (c *Config) Progress() (time.Duration, error) {
	d, err := time.ParseDuration(c.Session.ProgressInterval)
	if err != nil {
		return 0, fmt.Errorf("progress_interval: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("progress_interval must not be negative, got %s", d)
	}
	return d, nil
}

// HasHuman reports whether any seat is played by a person
func (c *Config) HasHuman() bool {
	for _, p := range c.Players {
		if p.Strategy == bot.StrategyHuman {
			return true
		}
	}
	return false
}

// ParsePlayer parses a "name=strategy" command line value
func ParsePlayer(s string) (PlayerConfig, error) {
	name, strategy, ok := strings.Cut(s, "=")
	name, strategy = strings.TrimSpace(name), strings.TrimSpace(strategy)
	if !ok || name == "" || strategy == "" {
		return PlayerConfig{}, fmt.Errorf("%w: player %q must be name=strategy", ErrInvalidConfig, s)
	}
	return PlayerConfig{Name: name, Strategy: strategy}, nil
}

// SetHuman seats name as the human player, replacing its strategy or
// adding a new seat when no player has that name
func (c *Config) SetHuman(name string) {
	for i := range c.Players {
		if c.Players[i].Name == name {
			c.Players[i].Strategy = bot.StrategyHuman
			return
		}
	}
	c.Players = append(c.Players, PlayerConfig{Name: name, Strategy: bot.StrategyHuman})
}
