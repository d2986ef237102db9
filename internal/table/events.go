package table

import (
	"sync"
	"time"

	"github.com/lox/craps/craps"
)

// EventType identifies a table event.
type EventType string

const (
	EventTypeBetPlaced    EventType = "bet_placed"
	EventTypeRollResolved EventType = "roll_resolved"
	EventTypePointChange  EventType = "point_change"
	EventTypeTakeDown     EventType = "take_down"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything a table publishes.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// BetPlacedEvent is published after a wager or odds bet is accepted.
type BetPlacedEvent struct {
	Category  craps.BetCategory
	Number    int // odds number, zero for flat bets
	Amount    craps.Money
	Balance   craps.Money
	timestamp time.Time
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }
func (e BetPlacedEvent) Timestamp() time.Time { return e.timestamp }

// RollResolvedEvent carries the round that was just recorded.
type RollResolvedEvent struct {
	Round     Round
	timestamp time.Time
}

func (e RollResolvedEvent) EventType() EventType { return EventTypeRollResolved }
func (e RollResolvedEvent) Timestamp() time.Time { return e.timestamp }

// PointChangeEvent is published when a roll turns the point on or off.
type PointChangeEvent struct {
	From      craps.Point
	To        craps.Point
	timestamp time.Time
}

func (e PointChangeEvent) EventType() EventType { return EventTypePointChange }
func (e PointChangeEvent) Timestamp() time.Time { return e.timestamp }

// TakeDownEvent is published when bets are returned to the player.
type TakeDownEvent struct {
	Returned  []craps.Stake
	Balance   craps.Money
	timestamp time.Time
}

func (e TakeDownEvent) EventType() EventType { return EventTypeTakeDown }
func (e TakeDownEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives table events.
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription.
type EventBus interface {
	Subscribe(subscriber EventSubscriber) (unsubscribe func())
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]EventSubscriber
	order       []int
}

// NewEventBus creates an empty bus.
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{subscribers: make(map[int]EventSubscriber)}
}

// Subscribe adds subscriber and returns a function that removes it.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) func() {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	id := bus.nextID
	bus.nextID++
	bus.subscribers[id] = subscriber
	bus.order = append(bus.order, id)

	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		if _, ok := bus.subscribers[id]; !ok {
			return
		}
		delete(bus.subscribers, id)
		for i, v := range bus.order {
			if v == id {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
	}
}

// Publish sends event to every subscriber. Subscribers may call back into the
// bus but must not block.
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, 0, len(bus.order))
	for _, id := range bus.order {
		subs = append(subs, bus.subscribers[id])
	}
	bus.mu.RUnlock()

	for _, sub := range subs {
		sub.OnEvent(event)
	}
}
