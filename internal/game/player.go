package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/auctionwar/internal/deck"
)

// ErrInvalidPlay marks a decision the table refused. It is diagnostic only:
// the player is forced to pass and the hand carries on.
var ErrInvalidPlay = errors.New("invalid play")

// CommitResult describes what happened when a player was asked to act
type CommitResult struct {
	Passed    bool
	Forced    bool      // Pass was imposed rather than chosen
	Value     deck.Rank // Card committed, or the rejected card on an invalid play
	Total     int       // Player's total for the hand after this turn
	Reasoning string
	Err       error // Wraps ErrInvalidPlay when the decision was rejected
}

// Player holds one seat's cards and bookkeeping for the current game.
// Identity (Name) is stable across games; everything else resets.
type Player struct {
	Name  string
	Agent Agent

	biddable    []deck.Rank // ascending
	commitments []deck.Rank
	passed      bool
	wins        []deck.Rank
	discards    []deck.Rank
}

// NewPlayer creates a player holding the full Two..Ace biddable set
func NewPlayer(name string, agent Agent) *Player {
	p := &Player{Name: name, Agent: agent}
	p.Reset()
	return p
}

// Reset restores the player to the start-of-game state
func (p *Player) Reset() {
	p.biddable = deck.AllRanks()
	p.commitments = nil
	p.passed = false
	p.wins = nil
	p.discards = nil
}

// Commit asks the player's agent for a play and applies it if legal.
// view must describe the table from this player's seat; its LeadingTotal
// is the bar the new total has to clear.
func (p *Player) Commit(view TableView) CommitResult {
	if p.passed {
		return CommitResult{Passed: true, Forced: true, Total: p.Total(), Reasoning: "already passed"}
	}
	if p.IsOut() {
		p.passed = true
		return CommitResult{Passed: true, Forced: true, Total: p.Total(), Reasoning: "no cards left"}
	}

	decision := p.Agent.DecidePlay(view)
	if decision.Pass {
		p.passed = true
		return CommitResult{Passed: true, Total: p.Total(), Reasoning: decision.Reasoning}
	}

	if err := p.validate(decision.Value, view.LeadingTotal); err != nil {
		p.passed = true
		return CommitResult{
			Passed:    true,
			Forced:    true,
			Value:     decision.Value,
			Total:     p.Total(),
			Reasoning: decision.Reasoning,
			Err:       err,
		}
	}

	idx, _ := slices.BinarySearch(p.biddable, decision.Value)
	p.biddable = slices.Delete(p.biddable, idx, idx+1)
	p.commitments = append(p.commitments, decision.Value)

	return CommitResult{Value: decision.Value, Total: p.Total(), Reasoning: decision.Reasoning}
}

func (p *Player) validate(value deck.Rank, leading int) error {
	if _, held := slices.BinarySearch(p.biddable, value); !held {
		return fmt.Errorf("%w: %s does not hold %s", ErrInvalidPlay, p.Name, value)
	}
	if total := p.Total() + int(value); total <= leading {
		return fmt.Errorf("%w: %s total %d does not beat leading total %d", ErrInvalidPlay, p.Name, total, leading)
	}
	return nil
}

// forcePass marks the player as out of the current hand without consulting
// its agent
func (p *Player) forcePass() {
	p.passed = true
}

// SettleHand closes out the hand for this player: commitments are
// discarded and, when won is true, the hole card is added to wins.
func (p *Player) SettleHand(hole deck.Rank, won bool) {
	p.discards = append(p.discards, p.commitments...)
	p.commitments = nil
	if won {
		p.wins = append(p.wins, hole)
	}
	p.passed = false
}

// IsOut returns true when the player has no biddable cards left
func (p *Player) IsOut() bool {
	return len(p.biddable) == 0
}

// Score returns the total value of hole cards won
func (p *Player) Score() int {
	return deck.Sum(p.wins)
}

// Total returns the sum of cards committed in the current hand
func (p *Player) Total() int {
	return deck.Sum(p.commitments)
}

// Passed reports whether the player is finished with the current hand
func (p *Player) Passed() bool {
	return p.passed
}

// Biddable returns the cards still available to commit, ascending
func (p *Player) Biddable() []deck.Rank {
	return slices.Clone(p.biddable)
}

// Commitments returns the cards committed in the current hand
func (p *Player) Commitments() []deck.Rank {
	return slices.Clone(p.commitments)
}

// Wins returns the hole cards won this game
func (p *Player) Wins() []deck.Rank {
	return slices.Clone(p.wins)
}

// Discards returns cards spent in earlier hands of this game
func (p *Player) Discards() []deck.Rank {
	return slices.Clone(p.discards)
}

// View returns the public state of the player
func (p *Player) View() PlayerView {
	return PlayerView{
		Name:          p.Name,
		Commitments:   p.Commitments(),
		Total:         p.Total(),
		Passed:        p.passed,
		Out:           p.IsOut(),
		BiddableCount: len(p.biddable),
		Score:         p.Score(),
	}
}

// String returns a one-line summary of the player's game state
func (p *Player) String() string {
	return fmt.Sprintf("%s biddable=%s wins=%s (%d) discards=%s",
		p.Name, deck.FormatRanks(p.biddable), deck.FormatRanks(p.wins), p.Score(), deck.FormatRanks(p.discards))
}
