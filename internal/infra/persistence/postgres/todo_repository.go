package postgres

import (
	"context"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// todoRepository implements repository.TodoRepository using GORM.
type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository is the constructor for the PostgreSQL todo repository.
func NewTodoRepository(db *gorm.DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

func toTodoDomain(todoM *model.TodoModel) *entity.Todo {
	todo := &entity.Todo{
		ID:        todoM.ID,
		Title:     todoM.Title,
		Completed: todoM.Completed,
		UserID:    todoM.UserID,
		CreatedAt: todoM.CreatedAt,
	}
	if todoM.UpdatedAt != nil {
		updatedAt := *todoM.UpdatedAt
		todo.UpdatedAt = &updatedAt
	}

	return todo
}

func fromTodoDomain(todo *entity.Todo) *model.TodoModel {
	todoM := &model.TodoModel{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		UserID:    todo.UserID,
		CreatedAt: todo.CreatedAt,
	}
	if todo.UpdatedAt != nil {
		updatedAt := *todo.UpdatedAt
		todoM.UpdatedAt = &updatedAt
	}

	return todoM
}

// GetAll retrieves every todo, ordered by creation time.
func (repo *todoRepository) GetAll(ctx context.Context) ([]*entity.Todo, error) {
	return repo.list(ctx, repo.db.WithContext(ctx))
}

// GetAllByOwner retrieves the todos owned by the given user.
func (repo *todoRepository) GetAllByOwner(ctx context.Context, ownerID string) ([]*entity.Todo, error) {
	return repo.list(ctx, repo.db.WithContext(ctx).Where("user_id = ?", ownerID))
}

// GetByID retrieves a single todo by its unique ID.
func (repo *todoRepository) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	var todoM model.TodoModel
	if err := repo.db.WithContext(ctx).First(&todoM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}

		return nil, errors.Wrap(err, "failed to find todo by id")
	}

	return toTodoDomain(&todoM), nil
}

// Create persists a new todo, assigning a fresh id and creation time when unset.
func (repo *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now().UTC()
	}

	if err := repo.db.WithContext(ctx).Create(fromTodoDomain(todo)).Error; err != nil {
		return errors.Wrap(err, "failed to create todo")
	}

	return nil
}

// Update replaces the stored todo identified by todo.ID.
func (repo *todoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ?", todo.ID).
		Updates(map[string]any{
			"title":      todo.Title,
			"completed":  todo.Completed,
			"updated_at": todo.UpdatedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update todo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	return nil
}

// Delete removes the todo with the given id.
func (repo *todoRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.WithContext(ctx).Delete(&model.TodoModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete todo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	return nil
}

func (repo *todoRepository) list(_ context.Context, tx *gorm.DB) ([]*entity.Todo, error) {
	var todoMs []model.TodoModel
	if err := tx.Order("created_at, id").Find(&todoMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}

	todos := make([]*entity.Todo, 0, len(todoMs))
	for i := range todoMs {
		todos = append(todos, toTodoDomain(&todoMs[i]))
	}

	return todos, nil
}
