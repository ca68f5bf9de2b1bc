// Package session plays many auction war games between the same players
// and keeps a fractional-win scoreboard.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/auctionwar/internal/bot"
	"github.com/lox/auctionwar/internal/deck"
	"github.com/lox/auctionwar/internal/game"
	"github.com/lox/auctionwar/internal/randutil"
	"github.com/lox/auctionwar/internal/statistics"
)

// ErrNoPrompter is returned when a human seat has nobody to ask
var ErrNoPrompter = errors.New("human player requires a prompter")

// PlayerSpec seats one player by name and strategy
type PlayerSpec struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

// Progress is reported periodically while a session runs
type Progress struct {
	Completed int
	Total     int
	Elapsed   time.Duration
}

// Config holds configuration for running a session
type Config struct {
	Games            int
	Seed             int64 // 0 picks a time-based seed
	Workers          int
	Players          []PlayerSpec
	Logger           *log.Logger
	Clock            quartz.Clock
	ProgressInterval time.Duration // 0 disables progress reporting
	OnProgress       func(Progress)

	// Prompter answers for the human seat, if there is one
	Prompter game.Prompter
	// Subscribers receive every table event. They are not synchronised,
	// so a session with subscribers runs on a single worker.
	Subscribers  []game.EventSubscriber
	TableOptions []game.TableOption
}

// Runner plays a session
type Runner struct {
	config Config
}

// New validates config and fills in defaults
func New(config Config) (*Runner, error) {
	if config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", config.Games)
	}
	if len(config.Players) < 2 {
		return nil, fmt.Errorf("at least 2 players required, got %d", len(config.Players))
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers < 1 {
		config.Workers = 1
	}

	seen := make(map[string]bool, len(config.Players))
	for _, p := range config.Players {
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true

		if p.Strategy == bot.StrategyHuman {
			if config.Prompter == nil {
				return nil, fmt.Errorf("player %s: %w", p.Name, ErrNoPrompter)
			}
			continue
		}
		if !bot.IsKnown(p.Strategy) {
			return nil, fmt.Errorf("player %s: %w: %q", p.Name, bot.ErrUnknownStrategy, p.Strategy)
		}
	}

	if config.Workers > 1 && (config.HasHuman() || len(config.Subscribers) > 0) {
		config.Logger.Debug("Interactive session, using a single worker", "requested", config.Workers)
		config.Workers = 1
	}
	config.Workers = min(config.Workers, config.Games)
	config.Seed = randutil.Resolve(config.Seed)

	return &Runner{config: config}, nil
}

// HasHuman reports whether any seat is played by a person
func (c Config) HasHuman() bool {
	for _, p := range c.Players {
		if p.Strategy == bot.StrategyHuman {
			return true
		}
	}
	return false
}

// Seed returns the resolved seed the session plays with
func (r *Runner) Seed() int64 {
	return r.config.Seed
}

// Workers returns the number of workers the session will use
func (r *Runner) Workers() int {
	return r.config.Workers
}

// NewGame seats fresh agents for every player at a new table drawing
// from rng
func (r *Runner) NewGame(rng *rand.Rand) (*game.Table, error) {
	players := make([]*game.Player, len(r.config.Players))
	for i, spec := range r.config.Players {
		var agent game.Agent
		if spec.Strategy == bot.StrategyHuman {
			agent = game.NewHumanAgent(r.config.Prompter, r.config.Logger)
		} else {
			var err error
			agent, err = bot.New(spec.Strategy, rng, r.config.Logger)
			if err != nil {
				return nil, fmt.Errorf("player %s: %w", spec.Name, err)
			}
		}
		players[i] = game.NewPlayer(spec.Name, agent)
	}

	opts := append([]game.TableOption{game.WithLogger(r.config.Logger)}, r.config.TableOptions...)
	table := game.NewTable(rng, players, opts...)
	for _, sub := range r.config.Subscribers {
		table.EventBus().Subscribe(sub)
	}
	return table, nil
}

// Run plays every game and returns the aggregated results. Worker w plays
// games w, w+Workers, w+2*Workers... with its own table and generator, so
// a fixed seed and worker count always reproduce the same scoreboard.
//
// If ctx is cancelled the games completed so far are returned along with
// ctx.Err().
func (r *Runner) Run(ctx context.Context) (*Results, error) {
	cfg := r.config
	start := cfg.Clock.Now()
	var completed atomic.Int64

	cfg.Logger.Info("Starting session",
		"games", cfg.Games,
		"players", len(cfg.Players),
		"workers", cfg.Workers,
		"seed", cfg.Seed)

	progressCtx, stopProgress := context.WithCancel(ctx)
	defer stopProgress()
	r.startProgress(progressCtx, start, &completed)

	partials := make([]*Results, cfg.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		partial := newResults(cfg)
		partials[w] = partial

		g.Go(func() error {
			rng := randutil.Derive(cfg.Seed, w)
			table, err := r.NewGame(rng)
			if err != nil {
				return err
			}
			for gameNum := w; gameNum < cfg.Games; gameNum += cfg.Workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				table.Reset()
				winners := table.RunGame()
				partial.record(table, winners)
				completed.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()

	results := newResults(cfg)
	for _, partial := range partials {
		results.merge(partial)
	}
	results.Elapsed = cfg.Clock.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			cfg.Logger.Warn("Session interrupted", "completed", results.Games, "requested", cfg.Games)
			return results, ctxErr
		}
		return nil, err
	}

	cfg.Logger.Info("Session complete", "games", results.Games, "elapsed", results.Elapsed)
	return results, nil
}

// startProgress reports progress every ProgressInterval until ctx is done
func (r *Runner) startProgress(ctx context.Context, start time.Time, completed *atomic.Int64) quartz.Waiter {
	cfg := r.config
	if cfg.ProgressInterval <= 0 {
		return nil
	}
	return cfg.Clock.TickerFunc(ctx, cfg.ProgressInterval, func() error {
		p := Progress{
			Completed: int(completed.Load()),
			Total:     cfg.Games,
			Elapsed:   cfg.Clock.Since(start),
		}
		cfg.Logger.Info("Progress", "completed", p.Completed, "total", p.Total, "elapsed", p.Elapsed.Round(time.Millisecond))
		if cfg.OnProgress != nil {
			cfg.OnProgress(p)
		}
		return nil
	}, "session", "progress")
}

// Play is a convenience function for running a session with basic parameters
func Play(ctx context.Context, games int, seed int64, players []PlayerSpec, logger *log.Logger) (*Results, error) {
	runner, err := New(Config{
		Games:   games,
		Seed:    seed,
		Players: players,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx)
}

// spent sums the cards a player committed over a game
func spent(p *game.Player) int {
	return deck.Sum(p.Discards())
}
