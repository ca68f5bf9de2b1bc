package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/game"
)

// PassBot never commits a card
type PassBot struct {
	logger *log.Logger
}

// NewPassBot creates a new PassBot instance
func NewPassBot(logger *log.Logger) *PassBot {
	return &PassBot{logger: logger}
}

func (p *PassBot) DecidePlay(game.TableView) game.Decision {
	return game.PassDecision("pass-bot passing")
}
