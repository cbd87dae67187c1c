package eventbus

import (
	"context"

	"github.com/Badi1298/Bankist/pkg/domain/events"
)

// HandlerFunc processes one event. A returned error is logged by the bus and
// never reaches the emitter.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus defines the contract for publishing and subscribing to domain events.
type Bus interface {
	Register(eventType events.EventType, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
