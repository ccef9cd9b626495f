// Package bus provides the async event bus between the platform gateway
// and the command router.
package bus

import (
	"context"
	"time"
)

// InboundEvent is a message event received from the platform gateway.
type InboundEvent struct {
	// EventID is the platform message ID of the event itself.
	EventID string `json:"event_id"`
	// SpaceID is the channel the event was posted in.
	SpaceID string `json:"space_id"`
	// WorkspaceID is the guild the event belongs to; empty for DMs.
	WorkspaceID string `json:"workspace_id"`
	// CategoryID is the parent category of the channel; empty for DMs.
	CategoryID string `json:"category_id"`
	AuthorID   string `json:"author_id"`
	// AuthorIsBot is set when the platform marks the author as a bot account.
	AuthorIsBot bool   `json:"author_is_bot"`
	Content     string `json:"content"`
	// ReplyToID references the event this one replies to, when any.
	ReplyToID string `json:"reply_to_id,omitempty"`
	// DM marks events from a private one-to-one channel.
	DM        bool      `json:"dm"`
	TraceID   string    `json:"trace_id"`
	Timestamp time.Time `json:"timestamp"`
}

// EventBus decouples the platform gateway from command processing.
type EventBus struct {
	inbound chan *InboundEvent
}

// NewEventBus creates a new event bus.
func NewEventBus() *EventBus {
	return &EventBus{inbound: make(chan *InboundEvent, 100)}
}

// Publish sends an event from the gateway to the router.
func (b *EventBus) Publish(ev *InboundEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	b.inbound <- ev
}

// Consume blocks until an event is available or the context is cancelled.
func (b *EventBus) Consume(ctx context.Context) (*InboundEvent, error) {
	select {
	case ev := <-b.inbound:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the number of pending events.
func (b *EventBus) Size() int {
	return len(b.inbound)
}
