// Package remote implements the repository ports against a remote store
// reached through the HTTP client port. A 404 on a lookup is recovered
// into the port's not-found sentinel; every other transport failure
// propagates.
package remote

import (
	"context"
	"net/url"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/infra/httpclient"

	"github.com/pkg/errors"
)

type todoRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (record *todoRecord) toDomain() *entity.Todo {
	todo := &entity.Todo{
		ID:        record.ID,
		Title:     record.Title,
		Completed: record.Completed,
		UserID:    record.UserID,
		CreatedAt: record.CreatedAt,
	}
	if record.UpdatedAt != nil {
		updatedAt := *record.UpdatedAt
		todo.UpdatedAt = &updatedAt
	}

	return todo
}

// todoRepository implements repository.TodoRepository over the wire.
type todoRepository struct {
	client httpclient.Client
}

// NewTodoRepository is the constructor for the remote todo repository.
func NewTodoRepository(client httpclient.Client) repository.TodoRepository {
	return &todoRepository{client: client}
}

// GetAll retrieves every todo from the remote store.
func (repo *todoRepository) GetAll(ctx context.Context) ([]*entity.Todo, error) {
	return repo.list(ctx, nil)
}

// GetAllByOwner retrieves the todos owned by the given user, delegating
// the filtering to the remote store.
func (repo *todoRepository) GetAllByOwner(ctx context.Context, ownerID string) ([]*entity.Todo, error) {
	query := url.Values{}
	query.Set("userId", ownerID)

	return repo.list(ctx, query)
}

// GetByID retrieves a single todo; a remote 404 becomes ErrTodoNotFound.
func (repo *todoRepository) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	resp, err := repo.client.Get(ctx, "/todos/"+url.PathEscape(id), nil)
	if err != nil {
		if httpclient.IsNotFound(err) {
			return nil, repository.ErrTodoNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch todo")
	}

	var record todoRecord
	if err := resp.DecodeJSON(&record); err != nil {
		return nil, err
	}

	return record.toDomain(), nil
}

// Create posts the todo and copies the server-assigned fields back.
func (repo *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	body := map[string]any{
		"title":     todo.Title,
		"completed": todo.Completed,
		"userId":    todo.UserID,
	}
	if todo.ID != "" {
		body["id"] = todo.ID
	}
	if !todo.CreatedAt.IsZero() {
		body["createdAt"] = todo.CreatedAt
	}

	resp, err := repo.client.Post(ctx, "/todos", body)
	if err != nil {
		return errors.Wrap(err, "failed to create todo")
	}

	var record todoRecord
	if err := resp.DecodeJSON(&record); err != nil {
		return err
	}

	todo.ID = record.ID
	todo.CreatedAt = record.CreatedAt

	return nil
}

// Update patches the stored todo identified by todo.ID.
func (repo *todoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	body := map[string]any{
		"title":     todo.Title,
		"completed": todo.Completed,
	}
	if todo.UpdatedAt != nil {
		body["updatedAt"] = todo.UpdatedAt
	}

	_, err := repo.client.Patch(ctx, "/todos/"+url.PathEscape(todo.ID), body)
	if err != nil {
		if httpclient.IsNotFound(err) {
			return repository.ErrTodoNotFound
		}

		return errors.Wrap(err, "failed to update todo")
	}

	return nil
}

// Delete removes the todo with the given id.
func (repo *todoRepository) Delete(ctx context.Context, id string) error {
	_, err := repo.client.Delete(ctx, "/todos/"+url.PathEscape(id))
	if err != nil {
		if httpclient.IsNotFound(err) {
			return repository.ErrTodoNotFound
		}

		return errors.Wrap(err, "failed to delete todo")
	}

	return nil
}

func (repo *todoRepository) list(ctx context.Context, query url.Values) ([]*entity.Todo, error) {
	resp, err := repo.client.Get(ctx, "/todos", query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}

	var records []todoRecord
	if err := resp.DecodeJSON(&records); err != nil {
		return nil, err
	}

	todos := make([]*entity.Todo, 0, len(records))
	for i := range records {
		todos = append(todos, records[i].toDomain())
	}

	return todos, nil
}
