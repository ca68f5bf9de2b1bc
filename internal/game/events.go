package game

import (
	"time"

	"github.com/lox/auctionwar/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for auction events
const (
	EventTypeHandStart   EventType = "hand_start"
	EventTypePlay        EventType = "play"
	EventTypePass        EventType = "pass"
	EventTypeInvalidPlay EventType = "invalid_play"
	EventTypeHandEnd     EventType = "hand_end"
	EventTypeGameOver    EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameOverReason explains why a game stopped
type GameOverReason string

const (
	ReasonPoolExhausted GameOverReason = "pool_exhausted"
	ReasonAllOut        GameOverReason = "all_out"
)

// GameEvent represents anything that happens during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published once a hole card has been drawn
type HandStartEvent struct {
	GameID        string
	Hand          int
	Hole          deck.Rank
	Starter       string
	PoolRemaining int
	timestamp     time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// PlayEvent is published when a player commits a card
type PlayEvent struct {
	GameID    string
	Hand      int
	Player    string
	Value     deck.Rank
	Total     int
	Reasoning string
	timestamp time.Time
}

func (e PlayEvent) EventType() EventType { return EventTypePlay }
func (e PlayEvent) Timestamp() time.Time { return e.timestamp }

// PassEvent is published when a player drops out of the hand
type PassEvent struct {
	GameID    string
	Hand      int
	Player    string
	Forced    bool
	Reasoning string
	timestamp time.Time
}

func (e PassEvent) EventType() EventType { return EventTypePass }
func (e PassEvent) Timestamp() time.Time { return e.timestamp }

// InvalidPlayEvent is published when the table rejects a decision
type InvalidPlayEvent struct {
	GameID    string
	Hand      int
	Player    string
	Value     deck.Rank
	Err       error
	timestamp time.Time
}

func (e InvalidPlayEvent) EventType() EventType { return EventTypeInvalidPlay }
func (e InvalidPlayEvent) Timestamp() time.Time { return e.timestamp }

// HandEndEvent is published after the hole card has been awarded
type HandEndEvent struct {
	GameID    string
	Hand      int
	Winner    string
	Hole      deck.Rank
	Scores    map[string]int
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published when a game can no longer continue
type GameOverEvent struct {
	GameID    string
	Hands     int
	Reason    GameOverReason
	Winners   []string
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. It is not safe for
// concurrent use; each table owns its own bus.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) {
	f(event)
}
