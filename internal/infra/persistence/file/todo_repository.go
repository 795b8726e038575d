package file

import (
	"context"
	"sync"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const todosKey = "todos"

// todoRecord is the wire shape of a todo inside the blob. Dates travel as
// ISO-8601 strings and come back as time values on load.
type todoRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toTodoDomain(record *todoRecord) *entity.Todo {
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

func fromTodoDomain(todo *entity.Todo) todoRecord {
	record := todoRecord{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		UserID:    todo.UserID,
		CreatedAt: todo.CreatedAt,
	}
	if todo.UpdatedAt != nil {
		updatedAt := *todo.UpdatedAt
		record.UpdatedAt = &updatedAt
	}

	return record
}

// todoRepository implements repository.TodoRepository over a blob store.
type todoRepository struct {
	mu    sync.Mutex
	store *Store
}

// NewTodoRepository is the constructor for the persisted todo repository.
func NewTodoRepository(store *Store) repository.TodoRepository {
	return &todoRepository{store: store}
}

// GetAll retrieves every todo in the blob.
func (repo *todoRepository) GetAll(_ context.Context) ([]*entity.Todo, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	todos := make([]*entity.Todo, 0, len(records))
	for i := range records {
		todos = append(todos, toTodoDomain(&records[i]))
	}

	return todos, nil
}

// GetAllByOwner retrieves the todos owned by the given user.
func (repo *todoRepository) GetAllByOwner(ctx context.Context, ownerID string) ([]*entity.Todo, error) {
	todos, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]*entity.Todo, 0, len(todos))
	for _, todo := range todos {
		if todo.UserID == ownerID {
			owned = append(owned, todo)
		}
	}

	return owned, nil
}

// GetByID retrieves a single todo by its unique ID.
func (repo *todoRepository) GetByID(_ context.Context, id string) (*entity.Todo, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == id {
			return toTodoDomain(&records[i]), nil
		}
	}

	return nil, repository.ErrTodoNotFound
}

// Create appends a new todo and rewrites the whole blob.
func (repo *todoRepository) Create(_ context.Context, todo *entity.Todo) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return err
	}

	if todo.ID == "" {
		todo.ID = freshTodoID(records)
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}

	records = append(records, fromTodoDomain(todo))

	return repo.save(records)
}

// Update replaces the stored todo identified by todo.ID.
func (repo *todoRepository) Update(_ context.Context, todo *entity.Todo) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == todo.ID {
			records[i] = fromTodoDomain(todo)

			return repo.save(records)
		}
	}

	return repository.ErrTodoNotFound
}

// Delete removes the todo with the given id.
func (repo *todoRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)

			return repo.save(records)
		}
	}

	return repository.ErrTodoNotFound
}

func (repo *todoRepository) load() ([]todoRecord, error) {
	var records []todoRecord
	if _, err := repo.store.Load(todosKey, &records); err != nil {
		return nil, errors.Wrap(err, "failed to load todos blob")
	}

	return records, nil
}

func (repo *todoRepository) save(records []todoRecord) error {
	if err := repo.store.Save(todosKey, records); err != nil {
		return errors.Wrap(err, "failed to save todos blob")
	}

	return nil
}

// freshTodoID generates an id that cannot collide with anything already
// in the blob, whatever shape those ids have (numeric ids from an older
// backend included).
func freshTodoID(records []todoRecord) string {
	for {
		id := uuid.NewString()
		taken := false
		for i := range records {
			if records[i].ID == id {
				taken = true

				break
			}
		}
		if !taken {
			return id
		}
	}
}
