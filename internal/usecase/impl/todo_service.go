// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// todoService implements the TodoUsecase interface. It is a stateless
// façade over the todo repository: validation and ownership checks happen
// here, storage stays behind the port.
type todoService struct {
	todoRepo repository.TodoRepository
	logger   *slog.Logger
}

// TodoServiceParams holds dependencies for todoService, injected by Fx.
type TodoServiceParams struct {
	fx.In

	TodoRepo repository.TodoRepository
	Logger   *slog.Logger
}

// NewTodoService is the constructor for todoService. It receives all dependencies as interfaces.
func NewTodoService(params TodoServiceParams) usecase.TodoUsecase {
	return &todoService{
		todoRepo: params.TodoRepo,
		logger:   params.Logger,
	}
}

// ListTodos returns the todos owned by ownerID, or every todo when ownerID is empty.
func (srv *todoService) ListTodos(ctx context.Context, ownerID string) ([]*entity.Todo, error) {
	if ownerID == "" {
		todos, err := srv.todoRepo.GetAll(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list todos")
		}

		return todos, nil
	}

	todos, err := srv.todoRepo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos by owner")
	}

	return todos, nil
}

// GetTodo returns the todo with the given id, or nil when absent.
func (srv *todoService) GetTodo(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	todo, err := srv.todoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to get todo by id")
	}

	if err := authorizeOwner(todo, ownerID); err != nil {
		return nil, err
	}

	return todo, nil
}

// CreateTodo validates the input and persists a new todo owned by ownerID.
func (srv *todoService) CreateTodo(ctx context.Context, input *usecase.CreateTodoInput, ownerID string) (*entity.Todo, error) {
	if ownerID == "" {
		srv.logger.Warn("Create todo rejected without owner")

		return nil, errors.Wrap(domainerrors.ErrAuthenticationRequired, "create todo requires an owner")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "todo title must not be empty")
	}

	todo := &entity.Todo{
		Title:     title,
		Completed: false,
		UserID:    ownerID,
	}

	if err := srv.todoRepo.Create(ctx, todo); err != nil {
		srv.logger.Error("Failed to create todo", slog.String("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create todo")
	}

	srv.logger.Debug("Todo created", slog.String("todoID", todo.ID), slog.String("ownerID", ownerID))

	return todo, nil
}

// UpdateTodo merges the provided fields into the stored todo and persists it.
func (srv *todoService) UpdateTodo(ctx context.Context, input *usecase.UpdateTodoInput, ownerID string) (*entity.Todo, error) {
	var title string
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "todo title must not be empty")
		}
	}

	todo, err := srv.loadOwned(ctx, input.ID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		todo.Title = title
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	touch(todo)

	if err := srv.todoRepo.Update(ctx, todo); err != nil {
		srv.logger.Error("Failed to update todo", slog.String("todoID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update todo")
	}

	return todo, nil
}

// ToggleTodo flips the completed flag of the todo with the given id.
func (srv *todoService) ToggleTodo(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	todo, err := srv.loadOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	todo.Completed = !todo.Completed
	touch(todo)

	if err := srv.todoRepo.Update(ctx, todo); err != nil {
		srv.logger.Error("Failed to toggle todo", slog.String("todoID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to toggle todo")
	}

	return todo, nil
}

// DeleteTodo removes the todo with the given id. Deleting an id that does
// not exist fails with ErrTodoNotFound, the same policy as every adapter.
func (srv *todoService) DeleteTodo(ctx context.Context, id, ownerID string) error {
	if _, err := srv.loadOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := srv.todoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return errors.Wrap(domainerrors.ErrTodoNotFound, "todo already deleted")
		}
		srv.logger.Error("Failed to delete todo", slog.String("todoID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete todo")
	}

	srv.logger.Debug("Todo deleted", slog.String("todoID", id))

	return nil
}

// CountActiveTodos returns the number of uncompleted todos.
func (srv *todoService) CountActiveTodos(ctx context.Context, ownerID string) (int, error) {
	return srv.count(ctx, ownerID, false)
}

// CountCompletedTodos returns the number of completed todos.
func (srv *todoService) CountCompletedTodos(ctx context.Context, ownerID string) (int, error) {
	return srv.count(ctx, ownerID, true)
}

func (srv *todoService) count(ctx context.Context, ownerID string, completed bool) (int, error) {
	todos, err := srv.ListTodos(ctx, ownerID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count todos")
	}

	count := 0
	for _, todo := range todos {
		if todo.Completed == completed {
			count++
		}
	}

	return count, nil
}

// loadOwned fetches a todo and enforces ownership against ownerID.
func (srv *todoService) loadOwned(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	todo, err := srv.todoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTodoNotFound, "todo does not exist")
		}

		return nil, errors.Wrap(err, "failed to load todo")
	}

	if err := authorizeOwner(todo, ownerID); err != nil {
		return nil, err
	}

	return todo, nil
}

// authorizeOwner fails when an owner id is supplied and does not match the
// todo's owner. An empty ownerID skips the check.
func authorizeOwner(todo *entity.Todo, ownerID string) error {
	if ownerID != "" && todo.UserID != ownerID {
		return errors.Wrap(domainerrors.ErrForbidden, "todo belongs to another user")
	}

	return nil
}

func touch(todo *entity.Todo) {
	now := time.Now().UTC()
	todo.UpdatedAt = &now
}
