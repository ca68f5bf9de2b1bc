package game

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowReasonings bool   // Include agent reasoning
	ShowScores     bool   // Append running scores to hand summaries
	Perspective    string // Player name rendered as "You"
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any known event, returning "" for unknown types
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case HandStartEvent:
		return ef.FormatHandStart(e)
	case PlayEvent:
		return ef.FormatPlay(e)
	case PassEvent:
		return ef.FormatPass(e)
	case InvalidPlayEvent:
		return ef.FormatInvalidPlay(e)
	case HandEndEvent:
		return ef.FormatHandEnd(e)
	case GameOverEvent:
		return ef.FormatGameOver(e)
	}
	return ""
}

// FormatHandStart formats the hole card reveal
func (ef *EventFormatter) FormatHandStart(event HandStartEvent) string {
	return fmt.Sprintf("*** HAND #%d *** hole card %s, %d left in the pool, %s starts",
		event.Hand, event.Hole, event.PoolRemaining, ef.name(event.Starter))
}

// FormatPlay formats a committed card
func (ef *EventFormatter) FormatPlay(event PlayEvent) string {
	text := fmt.Sprintf("%s: plays %s (total %d)", ef.name(event.Player), event.Value, event.Total)
	return ef.withReasoning(text, event.Reasoning)
}

// FormatPass formats a pass. Forced passes follow a rejected play.
func (ef *EventFormatter) FormatPass(event PassEvent) string {
	text := fmt.Sprintf("%s: passes", ef.name(event.Player))
	if event.Forced {
		text = fmt.Sprintf("%s: is forced to pass", ef.name(event.Player))
	}
	return ef.withReasoning(text, event.Reasoning)
}

// FormatInvalidPlay formats a rejected card
func (ef *EventFormatter) FormatInvalidPlay(event InvalidPlayEvent) string {
	return fmt.Sprintf("%s: tried to play %s, rejected", ef.name(event.Player), event.Value)
}

// FormatHandEnd formats the award of the hole card
func (ef *EventFormatter) FormatHandEnd(event HandEndEvent) string {
	winner := ef.name(event.Winner)
	verb := "wins"
	if winner == "You" {
		verb = "win"
	}
	text := fmt.Sprintf("%s %s %s", winner, verb, event.Hole)
	if ef.opts.ShowScores && len(event.Scores) > 0 {
		text += " " + ef.formatScores(event.Scores)
	}
	return text
}

// FormatGameOver formats the end of a game
func (ef *EventFormatter) FormatGameOver(event GameOverEvent) string {
	reason := "the pool is empty"
	if event.Reason == ReasonAllOut {
		reason = "every player is out of cards"
	}

	names := make([]string, len(event.Winners))
	for i, w := range event.Winners {
		names[i] = ef.name(w)
	}
	verb := "wins"
	switch {
	case len(names) > 1:
		verb = "tie"
	case len(names) == 1 && names[0] == "You":
		verb = "win"
	}
	return fmt.Sprintf("Game over after %d hands, %s. %s %s", event.Hands, reason, strings.Join(names, " and "), verb)
}

func (ef *EventFormatter) name(player string) string {
	if ef.opts.Perspective != "" && player == ef.opts.Perspective {
		return "You"
	}
	return player
}

func (ef *EventFormatter) withReasoning(text, reasoning string) string {
	if ef.opts.ShowReasonings && reasoning != "" {
		return fmt.Sprintf("%s [%s]", text, reasoning)
	}
	return text
}

func (ef *EventFormatter) formatScores(scores map[string]int) string {
	parts := make([]string, 0, len(scores))
	for _, name := range slices.Sorted(maps.Keys(scores)) {
		parts = append(parts, fmt.Sprintf("%s=%d", name, scores[name]))
	}
	return "(" + strings.Join(parts, " ") + ")"
}
