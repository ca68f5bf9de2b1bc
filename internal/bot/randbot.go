package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/game"
)

// RandBot is a simple bot that picks uniformly among passing and its legal plays
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) DecidePlay(view game.TableView) game.Decision {
	legal := view.LegalValues()
	if len(legal) == 0 {
		return game.PassDecision("rand-bot has no legal plays")
	}

	// Pass with probability 1/3, otherwise a uniform legal card
	if r.rng.IntN(3) == 0 {
		return game.PassDecision("rand-bot random pass")
	}
	return game.PlayDecision(legal[r.rng.IntN(len(legal))], "rand-bot random card")
}
