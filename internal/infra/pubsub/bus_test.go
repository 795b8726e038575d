package pubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tasktrack/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus() *Bus {
	return NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := newTestBus()

	var first, second []string
	bus.Subscribe(func(event *service.TodoEvent) {
		first = append(first, event.Type)
	})
	bus.Subscribe(func(event *service.TodoEvent) {
		second = append(second, event.Type)
	})

	err := bus.PublishTodoEvent(context.Background(), &service.TodoEvent{
		Type:   service.TodoEventCreated,
		TodoID: "t1",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{service.TodoEventCreated}, first)
	assert.Equal(t, []string{service.TodoEventCreated}, second)
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := newTestBus()
	ctx := context.Background()

	var got int
	unsubscribe := bus.Subscribe(func(*service.TodoEvent) { got++ })

	require.NoError(t, bus.PublishTodoEvent(ctx, &service.TodoEvent{Type: service.TodoEventCreated}))
	unsubscribe()
	require.NoError(t, bus.PublishTodoEvent(ctx, &service.TodoEvent{Type: service.TodoEventUpdated}))

	assert.Equal(t, 1, got)

	// A second call to the handle is harmless.
	unsubscribe()
}

func TestBus_OtherSubscribersSurviveUnsubscribe(t *testing.T) {
	bus := newTestBus()
	ctx := context.Background()

	var kept int
	unsubscribe := bus.Subscribe(func(*service.TodoEvent) {})
	bus.Subscribe(func(*service.TodoEvent) { kept++ })
	unsubscribe()

	require.NoError(t, bus.PublishTodoEvent(ctx, &service.TodoEvent{Type: service.TodoEventDeleted}))

	assert.Equal(t, 1, kept)
}

func TestBus_CloseDropsSubscribers(t *testing.T) {
	bus := newTestBus()
	ctx := context.Background()

	var got int
	bus.Subscribe(func(*service.TodoEvent) { got++ })

	require.NoError(t, bus.Close())
	require.NoError(t, bus.PublishTodoEvent(ctx, &service.TodoEvent{Type: service.TodoEventCreated}))

	assert.Zero(t, got)
}
