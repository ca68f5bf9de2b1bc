package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/game"
)

// ErrUnknownStrategy is returned by New for names it does not recognise
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy names accepted by New
const (
	StrategyPass         = "pass"
	StrategyHigh         = "high"
	StrategyLastStanding = "last-standing"
	StrategyJustAbove    = "just-above"
	StrategyRandom       = "random"
	StrategyValue        = "value"

	// StrategyHuman seats a person instead of a bot. New does not build
	// it; callers pair it with a game.HumanAgent.
	StrategyHuman = "human"
)

type strategy struct {
	description string
	build       func(rng *rand.Rand, logger *log.Logger) game.Agent
}

var strategies = map[string]strategy{
	StrategyPass: {
		description: "always passes",
		build:       func(_ *rand.Rand, l *log.Logger) game.Agent { return NewPassBot(l) },
	},
	StrategyHigh: {
		description: "plays its highest card once per hand",
		build:       func(_ *rand.Rand, l *log.Logger) game.Agent { return NewHighBot(l) },
	},
	StrategyLastStanding: {
		description: "passes until every opponent is out, then bids its lowest legal card",
		build:       func(_ *rand.Rand, l *log.Logger) game.Agent { return NewLastStandingBot(l) },
	},
	StrategyJustAbove: {
		description: "bids the smallest legal card above the hole card",
		build:       func(_ *rand.Rand, l *log.Logger) game.Agent { return NewJustAboveBot(l) },
	},
	StrategyRandom: {
		description: "passes a third of the time, otherwise plays a random legal card",
		build:       func(r *rand.Rand, l *log.Logger) game.Agent { return NewRandBot(r, l) },
	},
	StrategyValue: {
		description: "bids up to the hole card adjusted for what is left in the pool",
		build:       func(_ *rand.Rand, l *log.Logger) game.Agent { return NewValueBot(l) },
	},
}

// New builds the named strategy. rng is only consulted by randomised
// strategies and may be nil for the others.
func New(name string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	if name == StrategyRandom && rng == nil {
		return nil, fmt.Errorf("strategy %q requires a random source", name)
	}
	return s.build(rng, logger.WithPrefix(name)), nil
}

// Names returns every registered strategy name, sorted
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of the named strategy
func Describe(name string) (string, bool) {
	s, ok := strategies[name]
	return s.description, ok
}

// IsKnown reports whether New accepts name
func IsKnown(name string) bool {
	_, ok := strategies[name]
	return ok
}
