package memory

import (
	"context"
	"testing"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoRepository_CreateAssignsIDAndCreatedAt(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	todo := &entity.Todo{Title: "Buy milk", UserID: "u1"}
	require.NoError(t, repo.Create(ctx, todo))

	assert.NotEmpty(t, todo.ID)
	assert.False(t, todo.CreatedAt.IsZero())

	stored, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", stored.Title)
}

func TestTodoRepository_GetByIDReturnsCopy(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	todo := &entity.Todo{Title: "Buy milk", UserID: "u1"}
	require.NoError(t, repo.Create(ctx, todo))

	first, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	first.Title = "mutated by caller"

	second, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", second.Title)
}

func TestTodoRepository_GetAllByOwnerFilters(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Todo{Title: "mine", UserID: "u1"}))
	require.NoError(t, repo.Create(ctx, &entity.Todo{Title: "theirs", UserID: "u2"}))
	require.NoError(t, repo.Create(ctx, &entity.Todo{Title: "also mine", UserID: "u1"}))

	owned, err := repo.GetAllByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	for _, todo := range owned {
		assert.Equal(t, "u1", todo.UserID)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTodoRepository_GetAllOrderedByCreation(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &entity.Todo{ID: "b", Title: "second", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.Todo{ID: "a", Title: "first", CreatedAt: base}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
}

func TestTodoRepository_UpdateAndDelete(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	todo := &entity.Todo{Title: "Buy milk", UserID: "u1"}
	require.NoError(t, repo.Create(ctx, todo))

	updatedAt := time.Now().UTC()
	todo.Title = "Buy oat milk"
	todo.Completed = true
	todo.UpdatedAt = &updatedAt
	require.NoError(t, repo.Update(ctx, todo))

	stored, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", stored.Title)
	assert.True(t, stored.Completed)
	require.NotNil(t, stored.UpdatedAt)

	require.NoError(t, repo.Delete(ctx, todo.ID))

	_, err = repo.GetByID(ctx, todo.ID)
	assert.ErrorIs(t, err, repository.ErrTodoNotFound)
}

func TestTodoRepository_MissingIDErrors(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrTodoNotFound)

	err = repo.Update(ctx, &entity.Todo{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, repository.ErrTodoNotFound)

	err = repo.Delete(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrTodoNotFound)
}
