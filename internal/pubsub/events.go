// Package pubsub provides a generic publish/subscribe event system. It
// decouples background producers (the file watcher, analysis runs, the
// logger) from the Bubble Tea update loop that consumes them.
package pubsub

import (
	"context"
	"time"
)

// EventType classifies what happened to the payload.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
