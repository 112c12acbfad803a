package blackjack

import (
	"casinotable/pkg/chips"
)

// Event is published on the game's EventBus
type Event interface {
	EventName() string
}

// StackPickedUp is published when chips are lifted off the free pile
type StackPickedUp struct {
	Denomination int
	Index        int
	Chips        []chips.Chip
}

// EventName returns the name of the event
func (StackPickedUp) EventName() string { return "stack-picked-up" }

// StackDropped is published when held chips are released outside a betting area
type StackDropped struct {
	Position Point
	Chips    []chips.Chip
}

// EventName returns the name of the event
func (StackDropped) EventName() string { return "stack-dropped" }

// BetAreaHit is published when held chips are released over a betting area
type BetAreaHit struct {
	AreaID int
	Chips  []chips.Chip
}

// EventName returns the name of the event
func (BetAreaHit) EventName() string { return "bet-area-hit" }

// Handler receives published events
type Handler func(event Event) error

// Subscription identifies a handler on the bus
type Subscription int

type subscriber struct {
	id      Subscription
	handler Handler
}

// EventBus delivers events to subscribers in subscription order
type EventBus struct {
	subscribers []subscriber
	nextID      Subscription
}

// NewEventBus returns an empty bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a handler for every event
func (e *EventBus) Subscribe(handler Handler) Subscription {
	e.nextID++
	e.subscribers = append(e.subscribers, subscriber{id: e.nextID, handler: handler})
	return e.nextID
}

// Unsubscribe removes a handler
func (e *EventBus) Unsubscribe(id Subscription) {
	for i, sub := range e.subscribers {
		if sub.id == id {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to each subscriber, stopping at the first error
func (e *EventBus) Publish(event Event) error {
	// handlers may unsubscribe while we iterate
	subscribers := make([]subscriber, len(e.subscribers))
	copy(subscribers, e.subscribers)

	for _, sub := range subscribers {
		if err := sub.handler(event); err != nil {
			return err
		}
	}

	return nil
}
