// Package memory implements the repository ports with in-process
// collections. It is the default wiring for tests and development; the
// backing maps live exactly as long as the adapter instance.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/google/uuid"
)

// todoRepository implements repository.TodoRepository over a map.
type todoRepository struct {
	mu    sync.Mutex
	todos map[string]*entity.Todo
}

// NewTodoRepository is the constructor for the in-memory todo repository.
func NewTodoRepository() repository.TodoRepository {
	return &todoRepository{
		todos: make(map[string]*entity.Todo),
	}
}

// GetAll retrieves every todo, ordered by creation time.
func (repo *todoRepository) GetAll(_ context.Context) ([]*entity.Todo, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	return repo.collect(func(*entity.Todo) bool { return true }), nil
}

// GetAllByOwner retrieves the todos owned by the given user.
func (repo *todoRepository) GetAllByOwner(_ context.Context, ownerID string) ([]*entity.Todo, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	return repo.collect(func(todo *entity.Todo) bool { return todo.UserID == ownerID }), nil
}

// GetByID retrieves a single todo by its unique ID.
func (repo *todoRepository) GetByID(_ context.Context, id string) (*entity.Todo, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	todo, ok := repo.todos[id]
	if !ok {
		return nil, repository.ErrTodoNotFound
	}

	return todo.Clone(), nil
}

// Create persists a new todo, assigning a fresh id and creation time when unset.
func (repo *todoRepository) Create(_ context.Context, todo *entity.Todo) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}

	repo.todos[todo.ID] = todo.Clone()

	return nil
}

// Update replaces the stored todo identified by todo.ID.
func (repo *todoRepository) Update(_ context.Context, todo *entity.Todo) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.todos[todo.ID]; !ok {
		return repository.ErrTodoNotFound
	}

	repo.todos[todo.ID] = todo.Clone()

	return nil
}

// Delete removes the todo with the given id.
func (repo *todoRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.todos[id]; !ok {
		return repository.ErrTodoNotFound
	}

	delete(repo.todos, id)

	return nil
}

// collect clones every matching todo. Callers hold the lock.
func (repo *todoRepository) collect(match func(*entity.Todo) bool) []*entity.Todo {
	result := make([]*entity.Todo, 0, len(repo.todos))
	for _, todo := range repo.todos {
		if match(todo) {
			result = append(result, todo.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}

		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result
}
