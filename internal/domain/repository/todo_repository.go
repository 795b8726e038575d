// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tasktrack/internal/domain/entity"
)

// ErrTodoNotFound is a domain-specific error returned when a todo is not found.
// Every adapter family returns it for an absent id, including Delete; a
// delete of an unknown id is an error, never a silent no-op.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository defines the standard operations for todo persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Implementations return independent copies; their backing collections never
// escape by reference.
type TodoRepository interface {
	// GetAll retrieves every todo in the store.
	GetAll(ctx context.Context) ([]*entity.Todo, error)

	// GetAllByOwner retrieves the todos owned by the given user.
	GetAllByOwner(ctx context.Context, ownerID string) ([]*entity.Todo, error)

	// GetByID retrieves a single todo by its unique ID.
	// Returns ErrTodoNotFound when no todo has that id.
	GetByID(ctx context.Context, id string) (*entity.Todo, error)

	// Create persists a new todo. Implementations assign a fresh unique ID
	// and CreatedAt when they are unset, and write them back to the entity.
	Create(ctx context.Context, todo *entity.Todo) error

	// Update replaces the stored todo identified by todo.ID.
	// Returns ErrTodoNotFound when no todo has that id.
	Update(ctx context.Context, todo *entity.Todo) error

	// Delete removes the todo with the given id.
	// Returns ErrTodoNotFound when no todo has that id.
	Delete(ctx context.Context, id string) error
}
