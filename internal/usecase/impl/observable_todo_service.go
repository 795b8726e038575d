package impl

import (
	"context"
	"log/slog"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/service"
	"tasktrack/internal/usecase"
)

// observableTodoService decorates a TodoUsecase with state-change event
// publishing. Business rules live entirely in the wrapped service; this
// layer only observes successful mutations, so the two can never drift.
// Subscribers attach to the event source (e.g. the in-process bus) that
// backs the injected publisher.
type observableTodoService struct {
	inner     usecase.TodoUsecase
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewObservableTodoService wraps inner so every successful mutation is
// published as a TodoEvent. Publish failures are logged and do not fail
// the operation: the store, not the event stream, is the source of truth.
func NewObservableTodoService(inner usecase.TodoUsecase, publisher service.EventPublisher, logger *slog.Logger) usecase.TodoUsecase {
	return &observableTodoService{
		inner:     inner,
		publisher: publisher,
		logger:    logger,
	}
}

func (srv *observableTodoService) ListTodos(ctx context.Context, ownerID string) ([]*entity.Todo, error) {
	return srv.inner.ListTodos(ctx, ownerID)
}

func (srv *observableTodoService) GetTodo(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	return srv.inner.GetTodo(ctx, id, ownerID)
}

func (srv *observableTodoService) CreateTodo(ctx context.Context, input *usecase.CreateTodoInput, ownerID string) (*entity.Todo, error) {
	todo, err := srv.inner.CreateTodo(ctx, input, ownerID)
	if err != nil {
		return nil, err
	}
	srv.publish(ctx, service.TodoEventCreated, todo)

	return todo, nil
}

func (srv *observableTodoService) UpdateTodo(ctx context.Context, input *usecase.UpdateTodoInput, ownerID string) (*entity.Todo, error) {
	todo, err := srv.inner.UpdateTodo(ctx, input, ownerID)
	if err != nil {
		return nil, err
	}
	srv.publish(ctx, service.TodoEventUpdated, todo)

	return todo, nil
}

func (srv *observableTodoService) ToggleTodo(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	todo, err := srv.inner.ToggleTodo(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	srv.publish(ctx, service.TodoEventToggled, todo)

	return todo, nil
}

func (srv *observableTodoService) DeleteTodo(ctx context.Context, id, ownerID string) error {
	// Capture the final state first so the deletion event can carry it.
	todo, err := srv.inner.GetTodo(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := srv.inner.DeleteTodo(ctx, id, ownerID); err != nil {
		return err
	}

	if todo != nil {
		srv.publish(ctx, service.TodoEventDeleted, todo)
	}

	return nil
}

func (srv *observableTodoService) CountActiveTodos(ctx context.Context, ownerID string) (int, error) {
	return srv.inner.CountActiveTodos(ctx, ownerID)
}

func (srv *observableTodoService) CountCompletedTodos(ctx context.Context, ownerID string) (int, error) {
	return srv.inner.CountCompletedTodos(ctx, ownerID)
}

func (srv *observableTodoService) publish(ctx context.Context, eventType string, todo *entity.Todo) {
	event := &service.TodoEvent{
		Type:       eventType,
		TodoID:     todo.ID,
		OwnerID:    todo.UserID,
		Todo:       todo.Clone(),
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishTodoEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to publish todo event",
			slog.String("type", eventType),
			slog.String("todoID", todo.ID),
			slog.Any("error", err),
		)
	}
}
