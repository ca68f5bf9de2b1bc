package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/game"
)

// JustAboveBot bids the smallest card that is worth more than the hole
// card and still beats the leader. It never pays less than the prize is
// worth, and never more than it has to.
type JustAboveBot struct {
	logger *log.Logger
}

// NewJustAboveBot creates a new JustAboveBot instance
func NewJustAboveBot(logger *log.Logger) *JustAboveBot {
	return &JustAboveBot{logger: logger}
}

func (j *JustAboveBot) DecidePlay(view game.TableView) game.Decision {
	for _, v := range view.LegalValues() {
		if v > view.Hole {
			j.logger.Debug("Just-above bot bidding", "value", v, "hole", view.Hole, "leading", view.LeadingTotal)
			return game.PlayDecision(v, "just-above-bot outbidding with the next card above the hole")
		}
	}
	return game.PassDecision("just-above-bot cannot beat the leader above the hole card")
}
