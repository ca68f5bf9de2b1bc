package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/deck"
)

// TableOption configures a Table during creation.
type TableOption func(*tableConfig)

// PoolFactory builds the card pool for a new game
type PoolFactory func(rng deck.Shuffler) *deck.Pool

type tableConfig struct {
	logger      *log.Logger
	poolFactory PoolFactory
	eventBus    EventBus
	gameID      func() string
}

// WithLogger sets the logger used for diagnostics. Default discards output.
func WithLogger(logger *log.Logger) TableOption {
	return func(c *tableConfig) {
		c.logger = logger
	}
}

// WithPoolFactory replaces the standard 28-card pool, e.g. with a fixed
// sequence of cards for deterministic tests.
func WithPoolFactory(factory PoolFactory) TableOption {
	return func(c *tableConfig) {
		c.poolFactory = factory
	}
}

// WithEventBus sets the bus that game events are published on
func WithEventBus(bus EventBus) TableOption {
	return func(c *tableConfig) {
		c.eventBus = bus
	}
}

// WithGameIDs sets the generator used to label each game
func WithGameIDs(next func() string) TableOption {
	return func(c *tableConfig) {
		c.gameID = next
	}
}

// FixedPool returns a PoolFactory that always deals exactly cards, drawing
// from the end of the slice first.
func FixedPool(cards ...deck.Rank) PoolFactory {
	return func(deck.Shuffler) *deck.Pool {
		return deck.NewPoolFromCards(cards, nil)
	}
}

func defaultTableConfig() *tableConfig {
	return &tableConfig{
		logger:      log.New(io.Discard),
		poolFactory: deck.NewPool,
		eventBus:    NewEventBus(),
		gameID:      newGameID,
	}
}
