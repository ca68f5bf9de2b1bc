package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/game"
)

// HighBot commits its highest card once per hand and passes afterwards
type HighBot struct {
	logger *log.Logger
}

// NewHighBot creates a new HighBot instance
func NewHighBot(logger *log.Logger) *HighBot {
	return &HighBot{logger: logger}
}

func (h *HighBot) DecidePlay(view game.TableView) game.Decision {
	if len(view.Biddable) == 0 {
		return game.PassDecision("high-bot has no cards")
	}
	if view.Acting().Total > 0 {
		return game.PassDecision("high-bot already played this hand")
	}

	highest := view.Biddable[len(view.Biddable)-1]
	h.logger.Debug("High bot playing", "value", highest, "hole", view.Hole)
	return game.PlayDecision(highest, "high-bot playing highest card")
}
