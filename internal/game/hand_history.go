package game

import (
	"fmt"
	"strings"

	"github.com/lox/auctionwar/internal/deck"
)

// HandAction represents a single turn taken during a hand
type HandAction struct {
	PlayerName string
	Passed     bool
	Forced     bool
	Value      deck.Rank // Committed card, or the rejected card when Invalid
	Total      int
	Invalid    bool
	Reasoning  string
}

// HandRecord is the audit trail of one completed hand
type HandRecord struct {
	Number  int
	Hole    deck.Rank
	Starter string
	Winner  string
	Actions []HandAction
}

// Commitments returns the total each player committed in the hand
func (r HandRecord) Commitments() map[string]int {
	totals := make(map[string]int)
	for _, a := range r.Actions {
		if !a.Passed {
			totals[a.PlayerName] = a.Total
		}
	}
	return totals
}

// String renders the hand as a short multi-line summary
func (r HandRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hand #%d: hole %s, %s starts\n", r.Number, r.Hole, r.Starter)
	for _, a := range r.Actions {
		switch {
		case a.Invalid:
			fmt.Fprintf(&b, "  %s: invalid play %s, forced to pass\n", a.PlayerName, a.Value)
		case a.Passed:
			fmt.Fprintf(&b, "  %s: passes\n", a.PlayerName)
		default:
			fmt.Fprintf(&b, "  %s: plays %s (total %d)\n", a.PlayerName, a.Value, a.Total)
		}
	}
	fmt.Fprintf(&b, "  %s wins %s\n", r.Winner, r.Hole)
	return b.String()
}
