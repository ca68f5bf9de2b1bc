package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/auctionwar/internal/deck"
)

// Table runs auction games between a fixed, ordered set of players.
// A Table is not safe for concurrent use.
type Table struct {
	players []*Player
	rng     deck.Shuffler

	pool        *deck.Pool
	hole        deck.Rank
	hasHole     bool
	nextStarter int // Seat that opens the next hand
	handNumber  int
	history     []HandRecord
	gameID      string
	overReason  GameOverReason

	logger      *log.Logger
	eventBus    EventBus
	poolFactory PoolFactory
	nextGameID  func() string
}

// NewTable creates a table ready to play its first game. The rng feeds the
// card pool; pass nil for a deterministic pool.
//
// Example usage:
//
//	players := []*game.Player{
//	    game.NewPlayer("Adam", bot.NewHighBot(logger)),
//	    game.NewPlayer("Bob", bot.NewPassBot(logger)),
//	}
//	t := game.NewTable(randutil.New(42), players, game.WithLogger(logger))
//	winners := t.RunGame()
func NewTable(rng deck.Shuffler, players []*Player, opts ...TableOption) *Table {
	if len(players) < 2 {
		panic("at least 2 players required")
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p == nil || p.Agent == nil {
			panic("every player needs an agent")
		}
		if seen[p.Name] {
			panic(fmt.Sprintf("duplicate player name %q", p.Name))
		}
		seen[p.Name] = true
	}

	cfg := defaultTableConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	t := &Table{
		players:     players,
		rng:         rng,
		logger:      cfg.logger,
		eventBus:    cfg.eventBus,
		poolFactory: cfg.poolFactory,
		nextGameID:  cfg.gameID,
	}
	t.Reset()
	return t
}

// Reset starts a new game: a fresh pool replaces the old one and every
// player gets their full hand back.
func (t *Table) Reset() {
	t.pool = t.poolFactory(t.rng)
	for _, p := range t.players {
		p.Reset()
	}
	t.hole = 0
	t.hasHole = false
	t.nextStarter = 0
	t.handNumber = 0
	t.history = nil
	t.overReason = ""
	t.gameID = t.nextGameID()
}

// RunGame plays hands until the game ends and returns the winners
func (t *Table) RunGame() []*Player {
	for t.RunHand() {
	}

	winners := t.Winners()
	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = w.Name
	}
	t.logger.Debug("Game over", "game", t.gameID, "hands", t.handNumber, "reason", t.overReason, "winners", names)
	t.eventBus.Publish(GameOverEvent{
		GameID:    t.gameID,
		Hands:     t.handNumber,
		Reason:    t.overReason,
		Winners:   names,
		timestamp: time.Now(),
	})
	return winners
}

// RunHand auctions one hole card. It returns false when the game is over,
// either because the pool is exhausted or every player is out.
func (t *Table) RunHand() bool {
	if t.allOut() {
		t.logger.Debug("Every player is out", "game", t.gameID)
		t.overReason = ReasonAllOut
		return false
	}

	hole, ok := t.pool.Draw()
	if !ok {
		t.logger.Debug("Pool exhausted", "game", t.gameID)
		t.overReason = ReasonPoolExhausted
		return false
	}

	t.handNumber++
	t.hole, t.hasHole = hole, true
	record := HandRecord{Number: t.handNumber, Hole: hole}

	// Out players sit the hand out and are never asked to decide
	for _, p := range t.players {
		if p.IsOut() {
			p.forcePass()
		}
	}

	starter := t.firstActiveFrom(t.nextStarter)
	record.Starter = t.players[starter].Name

	t.logger.Debug("Hand start", "game", t.gameID, "hand", t.handNumber, "hole", hole, "starter", record.Starter)
	t.eventBus.Publish(HandStartEvent{
		GameID:        t.gameID,
		Hand:          t.handNumber,
		Hole:          hole,
		Starter:       record.Starter,
		PoolRemaining: t.pool.Remaining(),
		timestamp:     time.Now(),
	})

	winner := t.runBidding(starter, &record)
	t.settle(winner, &record)

	t.nextStarter = (t.nextStarter + 1) % len(t.players)

	switch {
	case t.pool.IsEmpty():
		t.overReason = ReasonPoolExhausted
		return false
	case t.allOut():
		t.overReason = ReasonAllOut
		return false
	default:
		return true
	}
}

// runBidding polls players in rotation from starter until the hand has a
// winner.
func (t *Table) runBidding(starter int, record *HandRecord) *Player {
	// Every turn either spends a card or ends a player's hand
	maxTurns := len(t.players) * (int(deck.Ace-deck.Two) + 2)

	cursor := starter
	for turn := 0; ; turn++ {
		if turn > maxTurns {
			panic(fmt.Sprintf("hand %d did not finish within %d turns", t.handNumber, maxTurns))
		}

		p := t.players[cursor]
		result := p.Commit(t.viewFor(cursor))
		t.recordTurn(p, result, record)

		if w := t.lastStanding(); w != nil {
			return w
		}

		// Everyone has passed, which only happens when the opener was the
		// sole player able to act. The opener takes the card by default.
		next := t.nextActiveAgent(cursor)
		if next < 0 {
			return t.players[starter]
		}
		cursor = next
	}
}

// nextActiveAgent returns the seat after cursor, in rotation order, of the
// next player who has not passed. A player who spent their last card
// earlier in the hand is still visited so Commit can force them to pass.
// It returns -1 when everyone has passed.
func (t *Table) nextActiveAgent(cursor int) int {
	n := len(t.players)
	for step := 1; step <= n; step++ {
		i := (cursor + step) % n
		if !t.players[i].Passed() {
			return i
		}
	}
	return -1
}

// firstActiveFrom returns the first seat at or after seat whose player is
// not out, or -1 when every player is out.
func (t *Table) firstActiveFrom(seat int) int {
	n := len(t.players)
	for step := range n {
		i := (seat + step) % n
		if !t.players[i].IsOut() {
			return i
		}
	}
	return -1
}

// lastStanding returns the only player still in the hand, if there is
// exactly one.
func (t *Table) lastStanding() *Player {
	var last *Player
	for _, p := range t.players {
		if !p.Passed() {
			if last != nil {
				return nil
			}
			last = p
		}
	}
	return last
}

func (t *Table) allOut() bool {
	for _, p := range t.players {
		if !p.IsOut() {
			return false
		}
	}
	return true
}

func (t *Table) viewFor(seat int) TableView {
	views := make([]PlayerView, len(t.players))
	leading := 0
	for i, p := range t.players {
		views[i] = p.View()
		if i != seat && !p.Passed() && p.Total() > leading {
			leading = p.Total()
		}
	}
	return TableView{
		Hole:              t.hole,
		PoolExpectedValue: t.pool.ExpectedValue(),
		PoolRemaining:     t.pool.Remaining(),
		HandNumber:        t.handNumber,
		Players:           views,
		ActingPlayerIdx:   seat,
		Biddable:          t.players[seat].Biddable(),
		LeadingTotal:      leading,
	}
}

func (t *Table) recordTurn(p *Player, result CommitResult, record *HandRecord) {
	record.Actions = append(record.Actions, HandAction{
		PlayerName: p.Name,
		Passed:     result.Passed,
		Forced:     result.Forced,
		Value:      result.Value,
		Total:      result.Total,
		Invalid:    result.Err != nil,
		Reasoning:  result.Reasoning,
	})

	switch {
	case result.Err != nil:
		t.logger.Warn("Invalid play, forcing pass", "game", t.gameID, "hand", t.handNumber, "player", p.Name, "value", result.Value, "error", result.Err)
		t.eventBus.Publish(InvalidPlayEvent{
			GameID:    t.gameID,
			Hand:      t.handNumber,
			Player:    p.Name,
			Value:     result.Value,
			Err:       result.Err,
			timestamp: time.Now(),
		})
		t.publishPass(p, result)
	case result.Passed:
		t.logger.Debug("Player passes", "game", t.gameID, "hand", t.handNumber, "player", p.Name, "forced", result.Forced)
		t.publishPass(p, result)
	default:
		t.logger.Debug("Player plays", "game", t.gameID, "hand", t.handNumber, "player", p.Name, "value", result.Value, "total", result.Total, "reasoning", result.Reasoning)
		t.eventBus.Publish(PlayEvent{
			GameID:    t.gameID,
			Hand:      t.handNumber,
			Player:    p.Name,
			Value:     result.Value,
			Total:     result.Total,
			Reasoning: result.Reasoning,
			timestamp: time.Now(),
		})
	}
}

func (t *Table) publishPass(p *Player, result CommitResult) {
	t.eventBus.Publish(PassEvent{
		GameID:    t.gameID,
		Hand:      t.handNumber,
		Player:    p.Name,
		Forced:    result.Forced,
		Reasoning: result.Reasoning,
		timestamp: time.Now(),
	})
}

// settle hands the hole card to winner (if any) and closes the hand for
// every player.
func (t *Table) settle(winner *Player, record *HandRecord) {
	for _, p := range t.players {
		p.SettleHand(t.hole, p == winner)
	}

	record.Winner = winner.Name
	t.logger.Debug("Hand won", "game", t.gameID, "hand", t.handNumber, "winner", winner.Name, "hole", t.hole)
	t.history = append(t.history, *record)

	t.eventBus.Publish(HandEndEvent{
		GameID:    t.gameID,
		Hand:      t.handNumber,
		Winner:    record.Winner,
		Hole:      t.hole,
		Scores:    t.Scores(),
		timestamp: time.Now(),
	})

	t.hole = 0
	t.hasHole = false
}

// Winners returns every player tied for the highest score
func (t *Table) Winners() []*Player {
	best := 0
	for _, p := range t.players {
		best = max(best, p.Score())
	}
	var winners []*Player
	for _, p := range t.players {
		if p.Score() == best {
			winners = append(winners, p)
		}
	}
	return winners
}

// Scores returns each player's current score keyed by name
func (t *Table) Scores() map[string]int {
	scores := make(map[string]int, len(t.players))
	for _, p := range t.players {
		scores[p.Name] = p.Score()
	}
	return scores
}

// Players returns the seated players in rotation order
func (t *Table) Players() []*Player {
	return t.players
}

// Pool returns the current game's card pool
func (t *Table) Pool() *deck.Pool {
	return t.pool
}

// Hole returns the card being auctioned, if a hand is in progress
func (t *Table) Hole() (deck.Rank, bool) {
	return t.hole, t.hasHole
}

// NextStarter returns the seat that opens the next hand
func (t *Table) NextStarter() int {
	return t.nextStarter
}

// HandNumber returns the number of hands played in the current game
func (t *Table) HandNumber() int {
	return t.handNumber
}

// History returns the records of completed hands in the current game
func (t *Table) History() []HandRecord {
	return t.history
}

// GameID returns the identifier of the current game
func (t *Table) GameID() string {
	return t.gameID
}

// OverReason returns why the last game stopped, or "" while it is running
func (t *Table) OverReason() GameOverReason {
	return t.overReason
}

// EventBus returns the bus the table publishes on
func (t *Table) EventBus() EventBus {
	return t.eventBus
}

func newGameID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
