package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/deck"
	"github.com/lox/auctionwar/internal/game"
)

// averageCard is the expected value of a full pool
const averageCard = 8.0

// ValueBot prices the hole card against what is left in the pool. When the
// remaining pool is rich it holds back; when it is poor it pays up, since
// its cards are worth less in later hands.
type ValueBot struct {
	logger *log.Logger
}

// NewValueBot creates a new ValueBot instance
func NewValueBot(logger *log.Logger) *ValueBot {
	return &ValueBot{logger: logger}
}

// Budget returns the highest cumulative total the bot will pay for the hole card
func (v *ValueBot) Budget(view game.TableView) int {
	margin := (averageCard - view.PoolExpectedValue) / 2
	if view.PoolRemaining == 0 {
		// Last hand: cards are worthless afterwards
		return deck.Sum(view.Biddable) + view.Acting().Total
	}
	budget := float64(view.Hole) + margin
	if budget < 0 {
		return 0
	}
	return int(budget)
}

func (v *ValueBot) DecidePlay(view game.TableView) game.Decision {
	budget := v.Budget(view)
	total := view.Acting().Total

	for _, card := range view.LegalValues() {
		if total+int(card) > budget {
			break
		}
		v.logger.Debug("Value bot bidding", "value", card, "budget", budget, "pool_ev", view.PoolExpectedValue)
		return game.PlayDecision(card, "value-bot bidding within budget")
	}
	return game.PassDecision("value-bot price above budget")
}
