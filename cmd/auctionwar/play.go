package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/cmd/auctionwar/shared"
	"github.com/lox/auctionwar/internal/bot"
	"github.com/lox/auctionwar/internal/config"
	"github.com/lox/auctionwar/internal/game"
	"github.com/lox/auctionwar/internal/report"
	"github.com/lox/auctionwar/internal/session"
	"github.com/lox/auctionwar/internal/tui"
)

// PlayCmd runs a session of games and prints the scoreboard
type PlayCmd struct {
	Config   string   `short:"c" type:"path" default:"auctionwar.hcl" env:"AUCTIONWAR_CONFIG" help:"Session file (HCL), defaults apply when it does not exist"`
	Games    int      `short:"n" env:"AUCTIONWAR_GAMES" help:"Number of games to play (overrides the session file)"`
	Seed     int64    `env:"AUCTIONWAR_SEED" help:"Random seed (overrides the session file, 0 keeps it)"`
	Workers  int      `short:"w" env:"AUCTIONWAR_WORKERS" help:"Games played in parallel (overrides the session file)"`
	Player   []string `short:"p" help:"Seat a player as name=strategy, repeatable (replaces the session file players)"`
	Human    string   `env:"AUCTIONWAR_HUMAN" help:"Take the named seat yourself"`
	Plain    bool     `help:"Prompt on plain stdin/stdout instead of the interactive view"`
	Narrate  bool     `help:"Print every hand as it is played"`
	Reasons  bool     `help:"Include bot reasoning in the narration"`
	JSON     bool     `help:"Print results as JSON"`
	Out      string   `short:"o" type:"path" help:"Also write JSON results to this file"`
	LogLevel string   `env:"AUCTIONWAR_LOG_LEVEL" help:"Log level: debug, info, warn or error (overrides the session file)"`
	LogJSON  bool     `env:"AUCTIONWAR_LOG_JSON" help:"Write logs as JSON"`
	NoColor  bool     `env:"AUCTIONWAR_NO_COLOR" help:"Disable colours and styling"`
	Progress string   `env:"AUCTIONWAR_PROGRESS" help:"Progress log interval such as 2s, 0 disables (overrides the session file)"`
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger, err := shared.SetupLogger(cfg.Session.LogLevel, c.LogJSON)
	if err != nil {
		return err
	}
	shared.SetupColor(c.NoColor, logger)

	// Log lines would tear the interactive prompt
	if cfg.HasHuman() && !c.Plain && logger.GetLevel() < log.WarnLevel {
		logger.SetLevel(log.WarnLevel)
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	results, runErr := c.run(ctx, cfg, logger, os.Stdin, os.Stdout)
	if results == nil {
		return runErr
	}

	if err := c.write(os.Stdout, results); err != nil {
		return err
	}
	if c.Out != "" {
		if err := report.SaveJSON(c.Out, results); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		logger.Info("Results saved", "path", c.Out)
	}

	// An interrupted session still reports the games it finished
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// loadConfig reads the session file and lays the flags over it
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Games > 0 {
		cfg.Session.Games = c.Games
	}
	if c.Seed != 0 {
		cfg.Session.Seed = c.Seed
	}
	if c.Workers > 0 {
		cfg.Session.Workers = c.Workers
	}
	if c.LogLevel != "" {
		cfg.Session.LogLevel = c.LogLevel
	}
	if c.Progress != "" {
		cfg.Session.ProgressInterval = c.Progress
	}
	if len(c.Player) > 0 {
		players := make([]config.PlayerConfig, 0, len(c.Player))
		for _, s := range c.Player {
			p, err := config.ParsePlayer(s)
			if err != nil {
				return nil, err
			}
			players = append(players, p)
		}
		cfg.Players = players
	}
	if c.Human != "" {
		cfg.SetHuman(c.Human)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sessionConfig translates a validated session file for the runner
func (c *PlayCmd) sessionConfig(cfg *config.Config, logger *log.Logger, in io.Reader, out io.Writer) (session.Config, error) {
	progress, err := cfg.Progress()
	if err != nil {
		return session.Config{}, err
	}

	sc := session.Config{
		Games:            cfg.Session.Games,
		Seed:             cfg.Session.Seed,
		Workers:          cfg.Session.Workers,
		Logger:           logger,
		ProgressInterval: progress,
	}

	var human string
	for _, p := range cfg.Players {
		sc.Players = append(sc.Players, session.PlayerSpec{Name: p.Name, Strategy: p.Strategy})
		if p.Strategy == bot.StrategyHuman {
			human = p.Name
		}
	}

	if human != "" {
		if c.Plain {
			prompter, err := tui.NewLinePrompter(human, in, out)
			if err != nil {
				return session.Config{}, err
			}
			sc.Prompter = prompter
			sc.Subscribers = append(sc.Subscribers, prompter)
		} else {
			prompter := tui.NewPrompter(human, logger)
			sc.Prompter = prompter
			sc.Subscribers = append(sc.Subscribers, prompter)
		}
	}

	if c.Narrate {
		sc.Subscribers = append(sc.Subscribers, report.NewNarrator(out, game.FormattingOptions{
			ShowReasonings: c.Reasons,
			ShowScores:     true,
			Perspective:    human,
		}))
	}
	return sc, nil
}

func (c *PlayCmd) run(ctx context.Context, cfg *config.Config, logger *log.Logger, in io.Reader, out io.Writer) (*session.Results, error) {
	sc, err := c.sessionConfig(cfg, logger, in, out)
	if err != nil {
		return nil, err
	}
	if closer, ok := sc.Prompter.(io.Closer); ok {
		defer closer.Close()
	}

	runner, err := session.New(sc)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx)
}

// write prints results in the requested format
func (c *PlayCmd) write(w io.Writer, results *session.Results) error {
	if c.JSON {
		return report.WriteJSON(w, results)
	}
	if err := report.WriteSummary(w, results); err != nil {
		return err
	}
	if err := report.WriteLeaderboard(w, results); err != nil {
		return err
	}
	return report.WriteScoreboard(w, results)
}
