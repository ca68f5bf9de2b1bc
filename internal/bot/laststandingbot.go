package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/game"
)

// LastStandingBot waits until every opponent has spent their hand, then
// collects the remaining pool as cheaply as it can.
type LastStandingBot struct {
	logger *log.Logger
}

// NewLastStandingBot creates a new LastStandingBot instance
func NewLastStandingBot(logger *log.Logger) *LastStandingBot {
	return &LastStandingBot{logger: logger}
}

func (l *LastStandingBot) DecidePlay(view game.TableView) game.Decision {
	for _, opp := range view.Opponents() {
		if !opp.Out {
			return game.PassDecision("last-standing-bot waiting for opponents to run out")
		}
	}

	legal := view.LegalValues()
	if len(legal) == 0 {
		return game.PassDecision("last-standing-bot has nothing legal")
	}
	return game.PlayDecision(legal[0], "last-standing-bot sweeping with lowest card")
}
