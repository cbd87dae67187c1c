package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// FlowEvent carries the fields shared by all ledger events.
type FlowEvent struct {
	EventID    uuid.UUID
	Username   string
	OccurredAt time.Time
}

// NewFlowEvent stamps a new event for the account named username.
func NewFlowEvent(username string) FlowEvent {
	return FlowEvent{
		EventID:    uuid.New(),
		Username:   username,
		OccurredAt: time.Now().UTC(),
	}
}
