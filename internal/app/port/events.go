package port

import "wallet_companion/internal/domain/entity"

// EventPublisher receives state-change events from the services. Publishing
// must never block the caller; slow subscribers are the publisher's problem.
type EventPublisher interface {
	Publish(event entity.Event)
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) Publish(entity.Event) {}
