package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventQuery EventType = "query"
	EventStore EventType = "store"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Automaton string    `json:"automaton"`
}

// QueryEvent describes a finished membership query.
type QueryEvent struct {
	EventBase
	Length   int           `json:"length"`
	Accepted bool          `json:"accepted"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// StoreEvent describes a change to a stored automaton.
type StoreEvent struct {
	EventBase
	Operation string `json:"operation"` // "save" or "delete"
	States    int    `json:"states,omitempty"`
}

// LifecycleHooks defines callbacks for registry observability.
type LifecycleHooks struct {
	OnQuery func(context.Context, *QueryEvent)
	OnStore func(context.Context, *StoreEvent)
}

// CombineHooks fans every event out to each of the given hooks in order.
func CombineHooks(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnQuery: func(ctx context.Context, e *QueryEvent) {
			for _, h := range hooks {
				if h.OnQuery != nil {
					h.OnQuery(ctx, e)
				}
			}
		},
		OnStore: func(ctx context.Context, e *StoreEvent) {
			for _, h := range hooks {
				if h.OnStore != nil {
					h.OnStore(ctx, e)
				}
			}
		},
	}
}
