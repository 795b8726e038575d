// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tasktrack/internal/domain/entity"
)

// --- Input DTOs ---

// CreateTodoInput defines the data required to create a new todo.
type CreateTodoInput struct {
	Title string `json:"title" validate:"required"`
}

// UpdateTodoInput defines a partial update of an existing todo. Nil fields
// are left untouched; a non-nil Title must not trim to the empty string.
type UpdateTodoInput struct {
	ID        string  `json:"id" validate:"required"`
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TodoUsecase defines the interface for todo-related business operations.
// Operations taking an ownerID enforce ownership when it is non-empty; an
// empty ownerID on the read operations deliberately skips the owner filter
// for single-user or administrative use.
type TodoUsecase interface {
	// ListTodos returns the todos owned by ownerID, or every todo when
	// ownerID is empty. An empty result is not an error.
	ListTodos(ctx context.Context, ownerID string) ([]*entity.Todo, error)

	// GetTodo returns the todo with the given id, or nil when absent.
	// Fails with ErrForbidden when ownerID is non-empty and does not match
	// the todo's owner.
	GetTodo(ctx context.Context, id, ownerID string) (*entity.Todo, error)

	// CreateTodo validates the input and persists a new todo owned by
	// ownerID, with Completed false and a freshly generated id.
	CreateTodo(ctx context.Context, input *CreateTodoInput, ownerID string) (*entity.Todo, error)

	// UpdateTodo merges the provided fields into the stored todo and persists it.
	UpdateTodo(ctx context.Context, input *UpdateTodoInput, ownerID string) (*entity.Todo, error)

	// ToggleTodo flips the completed flag of the todo with the given id.
	ToggleTodo(ctx context.Context, id, ownerID string) (*entity.Todo, error)

	// DeleteTodo removes the todo with the given id.
	DeleteTodo(ctx context.Context, id, ownerID string) error

	// CountActiveTodos returns the number of uncompleted todos in the
	// (optionally owner-filtered) set.
	CountActiveTodos(ctx context.Context, ownerID string) (int, error)

	// CountCompletedTodos returns the number of completed todos in the
	// (optionally owner-filtered) set.
	CountCompletedTodos(ctx context.Context, ownerID string) (int, error)
}
