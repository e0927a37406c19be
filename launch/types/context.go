package types

import (
	"context"
	"time"
)

// Context carries per-transaction chain metadata through engine entry points.
// The host (transaction sequencer) constructs one per call; the engine treats
// block height and time as the single source of truth for fee decay, cooldowns
// and staleness checks.
type Context struct {
	context.Context

	blockHeight int64
	blockTime   time.Time
	events      *EventManager
}

// NewContext returns a Context anchored at the given block height and time.
func NewContext(parent context.Context, blockHeight int64, blockTime time.Time) Context {
	if parent == nil {
		parent = context.Background()
	}
	return Context{
		Context:     parent,
		blockHeight: blockHeight,
		blockTime:   blockTime,
		events:      NewEventManager(),
	}
}

// BlockHeight returns the host block number of the current transaction.
func (c Context) BlockHeight() int64 { return c.blockHeight }

// BlockTime returns the host block timestamp of the current transaction.
func (c Context) BlockTime() time.Time { return c.blockTime }

// EventManager returns the event sink for the current transaction.
func (c Context) EventManager() *EventManager { return c.events }

// WithBlockHeight returns a copy of the context at a different height.
// The event manager is shared, not copied.
func (c Context) WithBlockHeight(height int64) Context {
	c.blockHeight = height
	return c
}

// WithBlockTime returns a copy of the context at a different block time.
func (c Context) WithBlockTime(t time.Time) Context {
	c.blockTime = t
	return c
}

// Attribute is a key/value pair attached to an Event.
type Attribute struct {
	Key   string
	Value string
}

// NewAttribute builds an event attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Event is a typed notification emitted by the engine.
type Event struct {
	Type       string
	Attributes []Attribute
}

// NewEvent builds an event of the given type.
func NewEvent(eventType string, attrs ...Attribute) Event {
	return Event{Type: eventType, Attributes: attrs}
}

// EventManager collects events emitted during a single transaction.
type EventManager struct {
	events []Event
}

// NewEventManager returns an empty event manager.
func NewEventManager() *EventManager {
	return &EventManager{}
}

// EmitEvent appends an event to the transaction's event log.
func (em *EventManager) EmitEvent(event Event) {
	em.events = append(em.events, event)
}

// EmitEvents appends multiple events.
func (em *EventManager) EmitEvents(events []Event) {
	em.events = append(em.events, events...)
}

// Events returns all events emitted so far, in emission order.
func (em *EventManager) Events() []Event {
	return em.events
}
