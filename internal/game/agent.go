package game

import "github.com/lox/auctionwar/internal/deck"

// Decision represents an agent's choice for one turn: commit a card or pass
type Decision struct {
	Pass      bool
	Value     deck.Rank // Card to commit when not passing
	Reasoning string    // Human-readable explanation
}

// PassDecision returns a decision to pass for the rest of the hand
func PassDecision(reasoning string) Decision {
	return Decision{Pass: true, Reasoning: reasoning}
}

// PlayDecision returns a decision to commit the given card
func PlayDecision(value deck.Rank, reasoning string) Decision {
	return Decision{Value: value, Reasoning: reasoning}
}

// PlayerView is the public, read-only state of a player at the table
type PlayerView struct {
	Name          string
	Commitments   []deck.Rank // Cards committed in the current hand
	Total         int         // Sum of Commitments
	Passed        bool
	Out           bool
	BiddableCount int
	Score         int
}

// TableView is the read-only state an agent receives when deciding a play
type TableView struct {
	Hole              deck.Rank
	PoolExpectedValue float64
	PoolRemaining     int
	HandNumber        int
	Players           []PlayerView // ALL players, public information only
	ActingPlayerIdx   int          // Which player in the slice is deciding
	Biddable          []deck.Rank  // Acting player's remaining cards, ascending
	LeadingTotal      int          // Highest total among the other active players
}

// Acting returns the view of the player who is deciding
func (v TableView) Acting() PlayerView {
	return v.Players[v.ActingPlayerIdx]
}

// Opponents returns every player except the acting one
func (v TableView) Opponents() []PlayerView {
	others := make([]PlayerView, 0, len(v.Players)-1)
	for i, p := range v.Players {
		if i != v.ActingPlayerIdx {
			others = append(others, p)
		}
	}
	return others
}

// IsLegal reports whether committing value would be accepted by the table:
// the acting player must hold the card and its new total must strictly
// exceed the leading total.
func (v TableView) IsLegal(value deck.Rank) bool {
	held := false
	for _, b := range v.Biddable {
		if b == value {
			held = true
			break
		}
	}
	return held && v.Acting().Total+int(value) > v.LeadingTotal
}

// LegalValues returns every biddable card that IsLegal accepts, ascending
func (v TableView) LegalValues() []deck.Rank {
	var legal []deck.Rank
	for _, b := range v.Biddable {
		if v.IsLegal(b) {
			legal = append(legal, b)
		}
	}
	return legal
}

// Agent represents any entity (human or bot) that decides plays for a player.
// Agents receive an immutable view and return a decision; the table applies
// it. Implementations must not retain or mutate the view's slices.
type Agent interface {
	DecidePlay(view TableView) Decision
}

// AgentFunc adapts a plain function to the Agent interface
type AgentFunc func(view TableView) Decision

// DecidePlay calls f(view)
func (f AgentFunc) DecidePlay(view TableView) Decision {
	return f(view)
}
