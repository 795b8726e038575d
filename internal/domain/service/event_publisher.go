package service

import (
	"context"
	"time"

	"tasktrack/internal/domain/entity"
)

// Todo event types published on state changes.
const (
	TodoEventCreated = "todo.created"
	TodoEventUpdated = "todo.updated"
	TodoEventToggled = "todo.toggled"
	TodoEventDeleted = "todo.deleted"
)

// TodoEvent describes a single state change of a todo. For deletions the
// Todo field carries the last observed state of the removed item.
type TodoEvent struct {
	Type       string       `json:"type"`
	TodoID     string       `json:"todo_id"`
	OwnerID    string       `json:"owner_id,omitempty"`
	Todo       *entity.Todo `json:"todo,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing todo state-change events.
type EventPublisher interface {
	// PublishTodoEvent publishes a todo state-change event.
	PublishTodoEvent(ctx context.Context, event *TodoEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}

// TodoEventHandler consumes todo events delivered by an in-process source.
type TodoEventHandler func(event *TodoEvent)

// TodoEventSource is implemented by publishers that can also fan events out
// to in-process subscribers. Subscribe returns an unsubscribe handle;
// calling it more than once is harmless.
type TodoEventSource interface {
	Subscribe(handler TodoEventHandler) (unsubscribe func())
}
