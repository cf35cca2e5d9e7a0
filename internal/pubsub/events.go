// Package pubsub provides a generic publish/subscribe event system.
// Settings snapshots, change notifications and log lines all travel over it.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	SnapshotEvent EventType = "snapshot" // a new immutable value replaced the previous one
	ChangedEvent  EventType = "changed"  // an external source (file, buffer) changed
	LogLineEvent  EventType = "log"      // a formatted log line was written
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events. *Broker and
// *settings.Store satisfy it.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}
