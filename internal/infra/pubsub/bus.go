// Package pubsub provides the event-publisher implementations: an
// in-process bus with subscribe/unsubscribe, a local HTTP push publisher
// for development, and a Google Cloud Pub/Sub publisher.
package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"tasktrack/internal/domain/service"
)

// Bus is an in-process publisher that fans every event out to the
// currently subscribed handlers. It implements both service.EventPublisher
// and service.TodoEventSource.
type Bus struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[uint64]service.TodoEventHandler
	nextID      uint64
	closed      bool
}

// NewBus creates an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger:      logger,
		subscribers: make(map[uint64]service.TodoEventHandler),
	}
}

// Subscribe registers a handler and returns its unsubscribe handle.
// Calling the handle more than once is harmless.
func (b *Bus) Subscribe(handler service.TodoEventHandler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		delete(b.subscribers, id)
	}
}

// PublishTodoEvent delivers the event to every subscriber synchronously,
// in the caller's goroutine. Events published after Close are dropped.
func (b *Bus) PublishTodoEvent(_ context.Context, event *service.TodoEvent) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()

		return nil
	}
	handlers := make([]service.TodoEventHandler, 0, len(b.subscribers))
	for _, handler := range b.subscribers {
		handlers = append(handlers, handler)
	}
	b.mu.RUnlock()

	b.logger.Debug("[Bus] Delivering event",
		slog.String("event_type", event.Type),
		slog.String("todo_id", event.TodoID),
		slog.Int("subscriber_count", len(handlers)),
	)

	for _, handler := range handlers {
		handler(event)
	}

	return nil
}

// Close drops all subscribers and stops delivery.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subscribers = make(map[uint64]service.TodoEventHandler)

	return nil
}
