package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/auctionwar/internal/deck"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// passAgent always passes
type passAgent struct {
	calls int
}

func (a *passAgent) DecidePlay(TableView) Decision {
	a.calls++
	return PassDecision("always pass")
}

// highAgent plays its highest card once per hand
type highAgent struct {
	calls int
}

func (a *highAgent) DecidePlay(view TableView) Decision {
	a.calls++
	if len(view.Biddable) == 0 || view.Acting().Total > 0 {
		return PassDecision("already played")
	}
	return PlayDecision(view.Biddable[len(view.Biddable)-1], "highest card")
}

// scriptedAgent returns predetermined decisions, passing once exhausted
type scriptedAgent struct {
	decisions []Decision
	index     int
	views     []TableView
}

func script(decisions ...Decision) *scriptedAgent {
	return &scriptedAgent{decisions: decisions}
}

func (a *scriptedAgent) DecidePlay(view TableView) Decision {
	a.views = append(a.views, view)
	if a.index >= len(a.decisions) {
		return PassDecision("script exhausted")
	}
	d := a.decisions[a.index]
	a.index++
	return d
}

func play(v deck.Rank) Decision {
	return PlayDecision(v, "scripted")
}

// recordingSubscriber captures every event published on a bus
type recordingSubscriber struct {
	events []GameEvent
}

func (r *recordingSubscriber) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *recordingSubscriber) ofType(et EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

// newTestTable seats one player per agent, named A, B, C...
func newTestTable(t *testing.T, cards []deck.Rank, agents ...Agent) *Table {
	t.Helper()
	players := make([]*Player, len(agents))
	for i, a := range agents {
		players[i] = NewPlayer(string(rune('A'+i)), a)
	}
	return NewTable(nil, players,
		WithLogger(testLogger()),
		WithPoolFactory(FixedPool(cards...)),
		WithGameIDs(func() string { return "test-game" }),
	)
}

// spendAll empties a player's biddable set by committing every card
func spendAll(t *testing.T, p *Player) {
	t.Helper()
	for _, v := range p.Biddable() {
		p.commitments = append(p.commitments, v)
	}
	p.biddable = nil
	p.SettleHand(0, false)
}
