package game

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/deck"
)

// DefaultMaxAttempts is how many malformed inputs a human gets before the
// turn is treated as a pass
const DefaultMaxAttempts = 3

// Prompter collects one line of input from a human for the given view.
// It blocks until the human answers.
type Prompter interface {
	Prompt(view TableView, problem string) (string, error)
}

// HumanAgent asks a person for each decision through a Prompter
type HumanAgent struct {
	prompter    Prompter
	maxAttempts int
	logger      *log.Logger
}

// NewHumanAgent creates a human agent reading decisions from prompter
func NewHumanAgent(prompter Prompter, logger *log.Logger) *HumanAgent {
	return &HumanAgent{
		prompter:    prompter,
		maxAttempts: DefaultMaxAttempts,
		logger:      logger,
	}
}

// WithMaxAttempts sets how many malformed answers are tolerated per turn
func (h *HumanAgent) WithMaxAttempts(n int) *HumanAgent {
	if n > 0 {
		h.maxAttempts = n
	}
	return h
}

// DecidePlay prompts until the human enters a card or passes. Cards the
// player does not hold are returned as entered; the table rejects them.
func (h *HumanAgent) DecidePlay(view TableView) Decision {
	problem := ""
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		line, err := h.prompter.Prompt(view, problem)
		if err != nil {
			h.logger.Debug("Prompt failed, passing", "error", err)
			return PassDecision("no input")
		}

		decision, ok := ParseDecision(line)
		if ok {
			return decision
		}
		problem = "enter a card (2-14, T, J, Q, K, A) or 'pass'"
		h.logger.Debug("Malformed input", "input", line, "attempt", attempt)
	}
	return PassDecision("too many malformed inputs")
}

// ParseDecision interprets a line of human input. An empty line, "p" or
// "pass" passes; anything ParseRank accepts is a play.
func ParseDecision(line string) (Decision, bool) {
	line = strings.ToLower(strings.TrimSpace(line))
	switch line {
	case "", "p", "pass":
		return PassDecision("human passes"), true
	}

	fields := strings.Fields(line)
	if len(fields) == 2 && (fields[0] == "play" || fields[0] == "bid") {
		line = fields[1]
	}

	value, err := deck.ParseRank(line)
	if err != nil {
		return Decision{}, false
	}
	return PlayDecision(value, "human plays"), true
}
