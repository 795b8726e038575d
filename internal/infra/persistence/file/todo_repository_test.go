package file

import (
	"context"
	"testing"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	return store
}

func TestTodoRepository_SurvivesReopen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	repo := NewTodoRepository(store)
	todo := &entity.Todo{Title: "Buy milk", UserID: "u1"}
	require.NoError(t, repo.Create(ctx, todo))

	// A fresh adapter over the same store sees the same data.
	reopened := NewTodoRepository(store)
	stored, err := reopened.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", stored.Title)
	assert.Equal(t, "u1", stored.UserID)
}

func TestTodoRepository_DatesRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	updatedAt := createdAt.Add(time.Hour)
	todo := &entity.Todo{
		ID:        "t1",
		Title:     "Buy milk",
		UserID:    "u1",
		CreatedAt: createdAt,
		UpdatedAt: &updatedAt,
	}

	repo := NewTodoRepository(store)
	require.NoError(t, repo.Create(ctx, todo))

	stored, err := NewTodoRepository(store).GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, stored.CreatedAt.Equal(createdAt))
	require.NotNil(t, stored.UpdatedAt)
	assert.True(t, stored.UpdatedAt.Equal(updatedAt))
}

func TestTodoRepository_CreateAvoidsExistingIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repo := NewTodoRepository(store)

	require.NoError(t, repo.Create(ctx, &entity.Todo{ID: "1", Title: "legacy record"}))

	todo := &entity.Todo{Title: "Buy milk"}
	require.NoError(t, repo.Create(ctx, todo))
	assert.NotEmpty(t, todo.ID)
	assert.NotEqual(t, "1", todo.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTodoRepository_UpdateDeleteAndOwnerFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repo := NewTodoRepository(store)

	mine := &entity.Todo{Title: "mine", UserID: "u1"}
	theirs := &entity.Todo{Title: "theirs", UserID: "u2"}
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, theirs))

	mine.Completed = true
	require.NoError(t, repo.Update(ctx, mine))

	owned, err := repo.GetAllByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.True(t, owned[0].Completed)

	require.NoError(t, repo.Delete(ctx, mine.ID))

	_, err = repo.GetByID(ctx, mine.ID)
	assert.ErrorIs(t, err, repository.ErrTodoNotFound)

	err = repo.Delete(ctx, mine.ID)
	assert.ErrorIs(t, err, repository.ErrTodoNotFound)
}

func TestTodoRepository_EmptyStoreReadsAsEmpty(t *testing.T) {
	repo := NewTodoRepository(newTestStore(t))

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
